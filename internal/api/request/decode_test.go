package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Register(t *testing.T) {
	var req RegisterRequest
	err := Decode(strings.NewReader(`{"playername":"Hero","username":"h1","password":"pw"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, RegisterRequest{PlayerName: "Hero", UserName: "h1", Password: "pw"}, req)
}

func TestDecode_MissingField(t *testing.T) {
	var req RegisterRequest
	err := Decode(strings.NewReader(`{"playername":"Hero","username":"h1"}`), &req)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "Password", verrs[0].Field())
}

func TestDecode_EmptyStringIsMissing(t *testing.T) {
	var req LoginRequest
	err := Decode(strings.NewReader(`{"username":"","password":"pw"}`), &req)

	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestDecode_MalformedJSON(t *testing.T) {
	var req LoginRequest
	err := Decode(strings.NewReader(`{"username":`), &req)

	var de *DecodeError
	assert.True(t, errors.As(err, &de))
}
