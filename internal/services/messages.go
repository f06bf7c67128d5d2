package services

import (
	"errors"

	"github.com/dmitrijs2005/factorg/internal/client"
)

// UserError is a failure whose text is meant for the person using the panel.
type UserError struct {
	Msg string
	Err error
}

func (e *UserError) Error() string { return e.Msg }
func (e *UserError) Unwrap() error { return e.Err }

// Message picks the text to show for err: validation messages, then a
// UserError, then the backend detail, then fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Msg
	}
	return client.Message(err, fallback)
}
