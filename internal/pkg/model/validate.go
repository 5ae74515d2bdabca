package model

import (
	"github.com/marmotedu/component-base/pkg/validation"
	"github.com/marmotedu/component-base/pkg/validation/field"
)

// Validate checks struct-tag constraints on a Config (currently just the
// display name: presence, length, and the urlsafe/nochinese tags).
func (c *Config) Validate() field.ErrorList {
	val := validation.NewValidator(c)
	return val.Validate()
}
