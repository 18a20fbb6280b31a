package profile

import "fmt"

// ConfigurationError reports an invalid profile definition. It is returned at
// load time, before any scoring call can observe the profile.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid profile configuration: %s: %s", e.Field, e.Reason)
}
