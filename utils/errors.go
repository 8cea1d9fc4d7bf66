package utils

import (
	"github.com/pkg/errors"
)

// NewUnknownAttributesError is used when a configuration carries keys that nothing reads.
func NewUnknownAttributesError(keys []string) error {
	return errors.Errorf("unknown attributes %q", keys)
}

// NewNonIntegralError is used when a fractional number is given for an integer option.
func NewNonIntegralError(v float64) error {
	return errors.Errorf("expected an integer but got %v", v)
}
