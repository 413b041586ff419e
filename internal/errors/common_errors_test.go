package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeConfig,
				Message: "sheet POSISI TERAKHIR not found",
			},
			wantMessage: "[CONFIG] sheet POSISI TERAKHIR not found",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeStorage,
				Message: "failed to write stock table",
				Cause:   fmt.Errorf("disk full"),
			},
			wantMessage: "[STORAGE] failed to write stock table: disk full",
		},
		{
			name: "error with empty message",
			appError: &AppError{
				Type: ErrTypeValidation,
			},
			wantMessage: "[VALIDATION] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewStorageError("failed to open workbook", cause)

	assert.ErrorIs(t, err, cause)
	assert.Nil(t, NewValidationError("bad").Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	err := NewConfigError("missing column", nil).
		WithContext("column", "location").
		WithContext("row", 3)

	assert.Equal(t, "location", err.Context["column"])
	assert.Equal(t, 3, err.Context["row"])

	bare := &AppError{Type: ErrTypeParsing}
	bare.WithContext("cell", "B3")
	require.NotNil(t, bare.Context)
	assert.Equal(t, "B3", bare.Context["cell"])
}

func TestIsType(t *testing.T) {
	wrapped := fmt.Errorf("export: %w", NewConfigError("sheet missing", nil))

	assert.True(t, IsType(wrapped, ErrTypeConfig))
	assert.False(t, IsType(wrapped, ErrTypeStorage))
	assert.False(t, IsType(errors.New("plain"), ErrTypeConfig))
	assert.False(t, IsType(nil, ErrTypeConfig))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantMsg  string
	}{
		{"config", NewConfigError("bad range", nil), ErrTypeConfig, "bad range"},
		{"parsing", NewParsingError("bad header", nil), ErrTypeParsing, "bad header"},
		{"storage", NewStorageError("cannot write", nil), ErrTypeStorage, "cannot write"},
		{"validation", NewValidationError("invalid"), ErrTypeValidation, "invalid"},
		{"not found", NewNotFoundError("stock table"), ErrTypeNotFound, "stock table not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantMsg, tt.err.Message)
			assert.NotNil(t, tt.err.Context)
		})
	}
}

func TestErrNoData(t *testing.T) {
	err := fmt.Errorf("render stock table: %w", ErrNoData)
	assert.ErrorIs(t, err, ErrNoData)
}
