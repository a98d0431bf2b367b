package service

import (
	"fmt"
	"strings"

	appErrors "github.com/noah-isme/fileflow-portal-api/pkg/errors"
)

type extensionLookup interface {
	AllowedExtensions(category string) ([]string, bool)
}

// UploadValidator checks a filename against its category's extensions.
type UploadValidator struct {
	registry extensionLookup
}

// NewUploadValidator constructs a validator over the registry.
func NewUploadValidator(registry extensionLookup) *UploadValidator {
	return &UploadValidator{registry: registry}
}

// Validate rejects unknown categories and extensions outside the category's
// set. The error message lists the accepted extensions.
func (v *UploadValidator) Validate(category, filename string) error {
	allowed, ok := v.registry.AllowedExtensions(category)
	if !ok {
		return appErrors.Clone(appErrors.ErrUnsupportedCategory, fmt.Sprintf("unsupported category %q", category))
	}
	ext := FileExtension(filename)
	if ext != "" {
		for _, candidate := range allowed {
			if candidate == ext {
				return nil
			}
		}
	}
	return appErrors.Clone(appErrors.ErrUnsupportedExtension,
		fmt.Sprintf("invalid file type for %s; accepted formats: %s", category, strings.Join(allowed, ", ")))
}

// FileExtension returns the lowercased text after the last dot, or "" when
// there is no dot or the name ends with one.
func FileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}
