package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError collects per-field failures. Its message lists fields in
// name order so the same bad input always reads the same way.
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	fields := make([]string, 0, len(v.Fields))
	for field := range v.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, strings.Join(v.Fields[field], ", "))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// ValidationBuilder accumulates field failures for a Validate method
type ValidationBuilder struct {
	fields map[string][]string
}

// NewValidationBuilder creates a new validation builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{fields: make(map[string][]string)}
}

// Field adds a validation error for a field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.fields[field] = append(vb.fields[field], message)
	return vb
}

// Fieldf adds a formatted validation error for a field
func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	return vb.Field(field, fmt.Sprintf(format, args...))
}

// RequiredField adds a required field error
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// IntRange fails field unless minValue <= value <= maxValue
func (vb *ValidationBuilder) IntRange(field string, value, minValue, maxValue int) *ValidationBuilder {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d, got %d", minValue, maxValue, value)
	}
	return vb
}

// Build returns nil when nothing failed. Otherwise it returns an
// InvalidArgument error whose metadata holds one entry per failed field, so
// gRPC clients see each field in the ErrorInfo detail.
func (vb *ValidationBuilder) Build() error {
	if len(vb.fields) == 0 {
		return nil
	}

	ve := &ValidationError{Fields: vb.fields}
	err := &Error{Code: CodeInvalidArgument, Message: ve.Error(), Cause: ve}
	for field, messages := range vb.fields {
		err.WithMeta(field, strings.Join(messages, ", "))
	}
	return err
}
