package pipeline

import "fmt"

// MissingDependencyError reports an enabled integration whose backing
// service, library or setting is unavailable.
type MissingDependencyError struct {
	Dependency string
	Hint       string
	Err        error
}

func (e *MissingDependencyError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("missing dependency %s", e.Dependency)
	}
	return fmt.Sprintf("missing dependency %s: %v", e.Dependency, e.Err)
}

func (e *MissingDependencyError) Unwrap() error {
	return e.Err
}

func Missing(dependency, hint string, err error) error {
	return &MissingDependencyError{Dependency: dependency, Hint: hint, Err: err}
}
