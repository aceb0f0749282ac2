package metadata

import "github.com/cockroachdb/errors"

// ErrInvalidYAML is matched by every decode failure, whatever the cause.
var ErrInvalidYAML = errors.New("invalid YAML")

// YAMLError wraps a failure from the YAML engine. It matches ErrInvalidYAML
// under errors.Is and unwraps to the engine's own error.
type YAMLError struct {
	Err error
}

func (e *YAMLError) Error() string {
	return ErrInvalidYAML.Error() + ": " + e.Err.Error()
}

func (e *YAMLError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidYAML.
func (e *YAMLError) Is(target error) bool {
	return target == ErrInvalidYAML
}
