package toolchain

// cargo.go contains utilities for building project build tool commands.

// CargoOptions contains options for running the tests of a managed project.
type CargoOptions struct {
	Tool       []string // Build tool command and leading arguments (e.g. ["cargo"])
	ProjectDir string   // Project root, used as working directory
	Manifest   string   // Manifest path relative to ProjectDir (e.g. "Cargo.toml")
	NoRun      bool     // Only compile the tests
}

// BuildCargoArgs builds the test invocation arguments, without the tool itself.
func BuildCargoArgs(opts CargoOptions) []string {
	args := append([]string{}, opts.Tool[1:]...)
	args = append(args, "test")
	if opts.NoRun {
		args = append(args, "--no-run")
	}
	return append(args, "--manifest-path", opts.Manifest)
}

// BuildCargoCommand builds the full build tool invocation.
func BuildCargoCommand(opts CargoOptions) Command {
	return Command{
		Name: opts.Tool[0],
		Args: BuildCargoArgs(opts),
		Dir:  opts.ProjectDir,
	}
}
