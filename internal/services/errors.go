package services

import (
	"errors"
	"sort"
	"strings"
)

// ErrUnexpectedInvoiceList is reported when /facturas answers with neither
// an array nor an {items} envelope.
var ErrUnexpectedInvoiceList = errors.New("La API no devolvió una lista de facturas (respuesta inesperada).")

// ValidationError carries per-field messages for a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return strings.Join(parts, " ")
}

// Field returns the message for name, or "".
func (e *ValidationError) Field(name string) string {
	return e.Fields[name]
}

type fieldErrors map[string]string

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

func invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// FieldErrors extracts the per-field messages from err, or nil.
func FieldErrors(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
