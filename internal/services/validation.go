package services

import (
	"fmt"
	"strings"
)

// Field-level messages, phrased like the form errors clients already render.
const (
	msgBlank        = "can't be blank"
	msgInvalid      = "is invalid"
	msgTaken        = "has already been taken"
	msgTooWeak      = "is too weak"
	msgConfirmation = "doesn't match password"
	msgMissing      = "does not exist"
)

// ValidationError collects every violated constraint, keyed by field.
type ValidationError struct {
	Fields map[string][]string
	order  []string
}

func (verr *ValidationError) Add(field string, message string) {
	if verr.Fields == nil {
		verr.Fields = make(map[string][]string)
	}
	if _, seen := verr.Fields[field]; !seen {
		verr.order = append(verr.order, field)
	}
	verr.Fields[field] = append(verr.Fields[field], message)
}

func (verr *ValidationError) HasErrors() bool {
	return verr != nil && len(verr.Fields) > 0
}

// Has reports whether field has at least one violation.
func (verr *ValidationError) Has(field string) bool {
	return verr != nil && len(verr.Fields[field]) > 0
}

// FieldNames returns violated fields in the order they were first reported.
func (verr *ValidationError) FieldNames() []string {
	return append([]string(nil), verr.order...)
}

func (verr *ValidationError) Error() string {
	parts := make([]string, 0, len(verr.order))
	for _, field := range verr.order {
		parts = append(parts, fmt.Sprintf("%s %s", field, strings.Join(verr.Fields[field], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// orNil keeps a typed-nil *ValidationError from leaking into an error interface.
func (verr *ValidationError) orNil() error {
	if !verr.HasErrors() {
		return nil
	}
	return verr
}
