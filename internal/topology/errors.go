package topology

import (
	"errors"
	"fmt"

	"github.com/edvin/regionfailover/internal/model"
)

// ErrCrossRegionReference is returned when an entity would reference an
// entity that belongs to another region.
var ErrCrossRegionReference = errors.New("cross-region reference")

// ErrTableNotFound is returned by a provisioning collaborator when a table
// referenced by name does not exist.
var ErrTableNotFound = errors.New("table not found")

// ConfigurationError reports a missing or invalid composition input. It is
// returned before any entity has been created.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// ReferenceResolutionError reports that a secondary region's table reference
// does not resolve to the table created by the main region. It is produced by
// the provisioning collaborator and is not locally recoverable.
type ReferenceResolutionError struct {
	Table  string
	Region model.Region
	Err    error
}

func (e *ReferenceResolutionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("table %q referenced from %s does not resolve", e.Table, e.Region)
	}
	return fmt.Sprintf("table %q referenced from %s does not resolve: %v", e.Table, e.Region, e.Err)
}

func (e *ReferenceResolutionError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
