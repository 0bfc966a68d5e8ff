package lattice

import (
	"fmt"
)

// ConfigError reports a configuration or geometry value which cannot be used
// to set up a simulation.
type ConfigError struct {
	Field string
	Msg   string
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("invalid '%s': %s", err.Field, err.Msg)
}

// ConfigErrorf returns a ConfigError for the given field.
func ConfigErrorf(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// DivergenceError reports a node whose density has become non-positive or
// non-finite.
type DivergenceError struct {
	Step    int
	X, Y, Z int
	Density float64
}

func (err *DivergenceError) Error() string {
	return fmt.Sprintf(
		"simulation diverged at step %d: density at (%d, %d, %d) is %g",
		err.Step, err.X, err.Y, err.Z, err.Density,
	)
}
