// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code lookup

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/implx/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "trait not indexed",
			wantStr: "[NOT_FOUND] trait not indexed",
		},
		{
			name:    "already_installed",
			code:    errors.ErrAlreadyInstalled,
			message: "consumer already installed",
			wantStr: "[CONSUMER_ALREADY_INSTALLED] consumer already installed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrFragmentParse, "bad fragment %s at line %d", "trait.BitXor.js", 3)
	assert.Equal(t, "bad fragment trait.BitXor.js at line 3", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrFragmentRead, "cannot read fragment")

		assert.Equal(t, errors.ErrFragmentRead, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[FRAGMENT_READ] cannot read fragment: base error", err.Error())
		assert.True(t, stderrors.Is(err, baseErr))
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})

	t.Run("wrapf_formats", func(t *testing.T) {
		err := errors.Wrapf(baseErr, errors.ErrConfigLoad, "loading %s", "implx.toml")
		assert.Equal(t, "loading implx.toml", err.Message)
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrFragmentParse, "bad fragment").
		WithDetail("path", "implementors/core/ops/trait.BitXor.js").
		WithDetail("offset", 42)

	assert.Equal(t, "implementors/core/ops/trait.BitXor.js", err.Details["path"])
	assert.Equal(t, 42, err.Details["offset"])

	bare := &errors.ImplxError{Code: errors.ErrInternal}
	bare.WithDetail("k", "v")
	assert.Equal(t, "v", bare.Details["k"])
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNotFound, "error 1")
	err2 := errors.New(errors.ErrNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(fmt.Errorf("outer: %w", err1), err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrNotFound, "not found"),
			code:     errors.ErrNotFound,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrNotFound, "not found"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_in_fmt",
			err:      fmt.Errorf("context: %w", errors.New(errors.ErrEntryParse, "bad entry")),
			code:     errors.ErrEntryParse,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrNotFound,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCodeAndDetails(t *testing.T) {
	err := errors.New(errors.ErrUnsupportedFormat, "no decoder").WithDetail("ext", ".xml")

	assert.Equal(t, errors.ErrUnsupportedFormat, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, ".xml", details["ext"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}
