package model

// ProjectShape classifies how exercises under a root are laid out and
// therefore how each one is built and run.
type ProjectShape uint8

const (
	// ShapeStandalone means every exercise is an independent single-file
	// unit compiled directly with the compiler.
	ShapeStandalone ProjectShape = iota
	// ShapeManaged means exercises are test targets inside a project
	// driven by the project build tool.
	ShapeManaged
)

func (s ProjectShape) String() string {
	switch s {
	case ShapeStandalone:
		return "standalone"
	case ShapeManaged:
		return "managed"
	default:
		return "unknown"
	}
}
