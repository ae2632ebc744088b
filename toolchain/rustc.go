package toolchain

// rustc.go contains utilities for building single-file compile commands.

// CompileOptions contains options for compiling one source file as a test binary.
type CompileOptions struct {
	Compiler []string // Compiler command and leading arguments (e.g. ["rustc"])
	Source   string   // Source file to compile
	Output   string   // Path of the produced test binary
	Dir      string   // Working directory
}

// BuildCompileArgs builds the compiler arguments, without the compiler itself.
func BuildCompileArgs(opts CompileOptions) []string {
	args := append([]string{}, opts.Compiler[1:]...)
	return append(args, opts.Source, "--test", "-o", opts.Output)
}

// BuildCompileCommand builds the full compile invocation.
func BuildCompileCommand(opts CompileOptions) Command {
	return Command{
		Name: opts.Compiler[0],
		Args: BuildCompileArgs(opts),
		Dir:  opts.Dir,
	}
}
