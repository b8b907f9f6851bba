package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, &Error{Status: http.StatusBadRequest, Message: "bad 1"}, BadRequest("bad %d", 1))
	assert.Equal(t, &Error{Status: http.StatusInternalServerError, Message: "oops"}, Internal("oops"))
	assert.Equal(t, &Error{Status: http.StatusMethodNotAllowed, Message: "Method PUT is not allowed"}, MethodNotAllowed(http.MethodPut))
}

func TestFrom(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", BadRequest("missing"))
	assert.Equal(t, BadRequest("missing"), From(wrapped))

	assert.Equal(t, Internal("boom"), From(errors.New("boom")))
}
