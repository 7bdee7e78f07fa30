package probe

import (
	"fmt"
)

// Default backs the package level boundary functions. Code that does not
// depend on process wide state should create its own PathProbe.
var Default = NewPathProbe(DefaultConfig(), nil)

// ContractViolationError is returned when a boundary call receives a
// missing path entry.
type ContractViolationError struct {
	Index int
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("path at index %d is missing", e.Index)
}

// CheckForRootNative probes paths using Default and reports 1 for every
// openable path and 0 otherwise.
func CheckForRootNative(paths []*string) ([]int, error) {
	return Default.CheckForRootNative(paths)
}

// SetLogDebugMessages toggles diagnostic logging of Default.
func SetLogDebugMessages(enabled bool) {
	Default.SetLogDebugMessages(enabled)
}

// CheckForRootNative validates every entry before probing anything; a nil
// entry fails the whole call.
func (p *PathProbe) CheckForRootNative(paths []*string) ([]int, error) {
	plain := make([]string, len(paths))
	for i, path := range paths {
		if path == nil {
			return nil, &ContractViolationError{Index: i}
		}
		plain[i] = *path
	}

	found := p.CheckPaths(plain)
	results := make([]int, len(found))
	for i, ok := range found {
		if ok {
			results[i] = 1
		}
	}

	return results, nil
}
