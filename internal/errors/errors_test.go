package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptError_Unwrap_PreservesOriginalError(t *testing.T) {
	// Given: an original error
	originalErr := errors.New("original error")

	// When: wrapping with OptError
	optErr := New(ErrCodeFileNotFound, "catalog not readable: brands.yaml", originalErr)

	// Then: unwrapping returns original error
	require.NotNil(t, optErr)
	assert.Equal(t, originalErr, errors.Unwrap(optErr))
	assert.True(t, errors.Is(optErr, originalErr))
}

func TestOptError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		expected string
	}{
		{
			name:     "config error",
			code:     ErrCodeConfigNotFound,
			message:  "config file not found",
			expected: "[ERR_101_CONFIG_NOT_FOUND] config file not found",
		},
		{
			name:     "duplicate id",
			code:     ErrCodeDuplicateID,
			message:  "duplicate option id \"acme\"",
			expected: "[ERR_407_DUPLICATE_OPTION_ID] duplicate option id \"acme\"",
		},
		{
			name:     "unknown catalog",
			code:     ErrCodeCatalogNotFound,
			message:  "unknown catalog \"shoes\"",
			expected: "[ERR_409_CATALOG_NOT_FOUND] unknown catalog \"shoes\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, nil)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestOptError_Is_MatchesByCode(t *testing.T) {
	err1 := New(ErrCodeEmptyLabel, "option 1 has no label", nil)
	err2 := New(ErrCodeEmptyLabel, "option 7 has no label", nil)

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, New(ErrCodeDuplicateID, "dup", nil)))
}

func TestOptError_Is_ThroughFmtWrapping(t *testing.T) {
	inner := New(ErrCodeCatalogNotFound, "unknown catalog", nil)
	wrapped := fmt.Errorf("loading sheet: %w", inner)

	assert.True(t, errors.Is(wrapped, New(ErrCodeCatalogNotFound, "", nil)))
	assert.Equal(t, ErrCodeCatalogNotFound, GetCode(wrapped))
	assert.Equal(t, CategoryValidation, GetCategory(wrapped))
}

func TestOptError_WithDetailAndSuggestion(t *testing.T) {
	err := New(ErrCodeDuplicateID, "duplicate option id", nil).
		WithDetail("catalog", "brands").
		WithDetail("id", "bandId12323e12e").
		WithSuggestion("Give every option a unique id")

	assert.Equal(t, "brands", err.Details["catalog"])
	assert.Equal(t, "bandId12323e12e", err.Details["id"])
	assert.Equal(t, "Give every option a unique id", err.Suggestion)
}

func TestOptError_CategoryFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantCategory Category
	}{
		{ErrCodeConfigNotFound, CategoryConfig},
		{ErrCodeConfigInvalid, CategoryConfig},
		{ErrCodeFileNotFound, CategoryIO},
		{ErrCodeFileCorrupt, CategoryIO},
		{ErrCodeInvalidLetter, CategoryValidation},
		{ErrCodeDraftInvalid, CategoryValidation},
		{ErrCodeInternal, CategoryInternal},
		{"BAD", CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantCategory, err.Category)
		})
	}
}

func TestOptError_SeverityFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantSeverity Severity
	}{
		{ErrCodeFileCorrupt, SeverityFatal},
		{ErrCodeInternal, SeverityFatal},
		{ErrCodeCatalogNotFound, SeverityWarning},
		{ErrCodeFileNotFound, SeverityError},
		{ErrCodeEmptyLabel, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantSeverity, err.Severity)
		})
	}
}

func TestWrap_CreatesOptErrorFromError(t *testing.T) {
	originalErr := errors.New("something went wrong")

	optErr := Wrap(ErrCodeInternal, originalErr)

	require.NotNil(t, optErr)
	assert.Equal(t, ErrCodeInternal, optErr.Code)
	assert.Equal(t, "something went wrong", optErr.Message)
	assert.Equal(t, originalErr, optErr.Cause)
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestConstructors_SetCategory(t *testing.T) {
	assert.Equal(t, CategoryConfig, ConfigError("invalid yaml syntax", nil).Category)
	assert.Equal(t, CategoryIO, IOError("cannot read file", nil).Category)
	assert.Equal(t, CategoryValidation, ValidationError("letter must be A-Z", nil).Category)
	assert.Equal(t, CategoryInternal, InternalError("unexpected", nil).Category)
}

func TestIsFatal_ChecksFatalSeverity(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"corrupt file", New(ErrCodeFileCorrupt, "catalog corrupt", nil), true},
		{"wrapped internal", fmt.Errorf("ctx: %w", InternalError("boom", nil)), true},
		{"validation", New(ErrCodeEmptyLabel, "no label", nil), false},
		{"standard error", errors.New("standard error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFatal(tt.err))
		})
	}
}

func TestGetCode_StandardError(t *testing.T) {
	assert.Equal(t, "", GetCode(errors.New("plain")))
	assert.Equal(t, Category(""), GetCategory(errors.New("plain")))
}
