package platformerrors

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError_GeneratesUUIDAndRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")

	err := NewError(ctx, LayerRoute, ErrorTypeValidation, "bad command", nil, "")
	_, parseErr := uuid.Parse(err.UUID)
	require.NoError(t, parseErr)
	assert.Equal(t, "req-1", err.RequestID)
	assert.Contains(t, err.Error(), "[route][VALIDATION]")
}

func TestNewError_CustomUUID(t *testing.T) {
	err := NewError(context.Background(), LayerHandler, ErrorTypeInternal, "boom", errors.New("cause"), "fixed-id")
	assert.Equal(t, "fixed-id", err.UUID)
	assert.Contains(t, err.Error(), "boom: cause")
}

func TestAsError(t *testing.T) {
	assert.Nil(t, AsError(context.Background(), LayerDomain, nil, "msg"))

	inner := NewError(context.Background(), LayerInfrastructure, ErrorTypeExternal, "serper down", nil, "inner-id")
	wrapped := AsError(context.Background(), LayerHandler, inner, "execute")
	assert.Equal(t, ErrorTypeExternal, wrapped.Type)
	assert.Equal(t, "inner-id", wrapped.UUID)
	assert.Equal(t, "execute: serper down", wrapped.Message)
	assert.True(t, IsErrorType(wrapped, ErrorTypeExternal))

	plain := AsError(context.Background(), LayerHandler, errors.New("x"), "execute")
	assert.Equal(t, ErrorTypeInternal, plain.Type)
	assert.False(t, IsErrorType(errors.New("x"), ErrorTypeInternal))
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := map[ErrorType]int{
		ErrorTypeNotFound:       http.StatusNotFound,
		ErrorTypeValidation:     http.StatusBadRequest,
		ErrorTypeUnauthorized:   http.StatusUnauthorized,
		ErrorTypeForbidden:      http.StatusForbidden,
		ErrorTypeNotImplemented: http.StatusNotImplemented,
		ErrorTypeExternal:       http.StatusBadGateway,
		ErrorTypeInternal:       http.StatusInternalServerError,
		ErrorType("other"):      http.StatusInternalServerError,
	}
	for errorType, status := range tests {
		assert.Equal(t, status, ErrorTypeToHTTPStatus(errorType), errorType)
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	err := NewErrorWithContext(WithRequestID(context.Background(), "req-9"), LayerRoute, ErrorTypeValidation,
		"invalid body", errors.New("eof"), "id-1", map[string]any{"path": "/v1/execute"})
	LogError(logger, err)

	out := buf.String()
	assert.Contains(t, out, `"error_uuid":"id-1"`)
	assert.Contains(t, out, `"request_id":"req-9"`)
	assert.Contains(t, out, `"path":"/v1/execute"`)
	assert.Contains(t, out, `"message":"invalid body"`)

	LogError(logger, nil)
}
