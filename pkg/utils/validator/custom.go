package validator

import (
	"net/url"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	v10 "github.com/go-playground/validator/v10"
)

var (
	// urlSafeRegex matches only letters, numbers, underscores, and hyphens
	urlSafeRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	// chineseRegex matches Chinese characters (CJK Unified Ideographs)
	// Using \p{Han} to match Han script characters (Chinese, Japanese Kanji, etc.)
	chineseRegex = regexp.MustCompile(`\p{Han}`)
)

func init() {
	// Register custom validators
	if v, ok := binding.Validator.Engine().(*v10.Validate); ok {
		if err := RegisterCustomValidators(v); err != nil {
			panic("Failed to register custom validators: " + err.Error())
		}
	}
}

// RegisterCustomValidators registers custom validation functions to the validator instance
func RegisterCustomValidators(v *v10.Validate) error {
	// Register urlsafe validator: only allows letters, numbers, underscores, and hyphens
	if err := v.RegisterValidation("urlsafe", validateURLSafe); err != nil {
		return err
	}

	// Register nochinese validator: disallows Chinese characters
	if err := v.RegisterValidation("nochinese", validateNoChinese); err != nil {
		return err
	}

	return nil
}

// validateURLSafe checks if the string contains only URL-safe characters
// (letters, numbers, underscores, and hyphens). Config and rename requests
// use this so a peer's display name never has to be escaped when it is
// echoed back into a URL path.
func validateURLSafe(fl v10.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty values are handled by required tag
	}
	return urlSafeRegex.MatchString(value)
}

// validateNoChinese checks if the string does not contain Chinese characters
func validateNoChinese(fl v10.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty values are handled by required tag
	}

	// Check for Chinese characters using regex
	return !chineseRegex.MatchString(value)
}

// ValidateURLSafeString is a helper function to validate a string directly
func ValidateURLSafeString(s string) bool {
	return urlSafeRegex.MatchString(s)
}

// ValidateNoChineseString is a helper function to validate a string has no Chinese
func ValidateNoChineseString(s string) bool {
	return !chineseRegex.MatchString(s)
}

// IsURLSafe checks if a string can be safely used in a URL path segment
func IsURLSafe(s string) bool {
	// Try to encode as URL path segment
	encoded := url.PathEscape(s)
	// If encoding changes the string, it contains unsafe characters
	return encoded == s || len(encoded) == len(s)
}
