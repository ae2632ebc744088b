package toolchain

import (
	"fmt"

	"github.com/google/shlex"
)

// ParseCommand splits a command string such as "rustc --edition 2021" into
// its words using shell quoting rules.
func ParseCommand(s string) ([]string, error) {
	words, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("invalid command %q: %w", s, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("invalid command %q: empty", s)
	}
	return words, nil
}
