package request

import (
	"encoding/json"
	"io"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DecodeError is returned when a body is not valid JSON
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode reads a JSON body into v and checks its validate tags.
// Malformed JSON yields a *DecodeError; missing fields a validator.ValidationErrors.
func Decode(body io.Reader, v any) error {
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return &DecodeError{Err: err}
	}
	return validate.Struct(v)
}
