package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategoryFromCode(t *testing.T) {
	tests := []struct {
		code     string
		category Category
	}{
		{ErrCodeConfigInvalid, CategoryConfig},
		{ErrCodeUnknownIndexer, CategoryConfig},
		{ErrCodeResourceNotAvailable, CategoryRepo},
		{ErrCodeIndexerFailed, CategoryIndexing},
		{ErrCodeFieldCollision, CategoryIndexing},
		{ErrCodeInvalidInput, CategoryValidation},
		{ErrCodeInternal, CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "boom", nil)
			assert.Equal(t, tt.category, err.Category)
		})
	}
}

func TestNew_DerivesSeverityFromCode(t *testing.T) {
	assert.Equal(t, SeverityWarning, New(ErrCodeFieldCollision, "", nil).Severity)
	assert.Equal(t, SeverityFatal, New(ErrCodeUnknownIndexer, "", nil).Severity)
	assert.Equal(t, SeverityError, New(ErrCodeIndexerFailed, "", nil).Severity)
}

func TestError_FormatsCodeAndMessage(t *testing.T) {
	err := New(ErrCodeUnknownIndexer, `no indexer named "bogus" is registered`, nil)
	assert.Equal(t, `[ERR_103_UNKNOWN_INDEXER] no indexer named "bogus" is registered`, err.Error())
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrCodeResourceNotAvailable, cause)

	require.NotNil(t, err)
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, stderrors.Is(err, cause))
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestIs_MatchesByCode(t *testing.T) {
	err := New(ErrCodeFieldCollision, "field x already set", nil)
	target := New(ErrCodeFieldCollision, "any message", nil)

	assert.True(t, stderrors.Is(err, target))
	assert.False(t, stderrors.Is(err, New(ErrCodeIndexerFailed, "", nil)))
}

func TestWithDetail_Chains(t *testing.T) {
	err := New(ErrCodeFieldCollision, "collision", nil).
		WithDetail("field", "title__txt").
		WithDetail("indexer", "facets")

	assert.Equal(t, "title__txt", err.Details["field"])
	assert.Equal(t, "facets", err.Details["indexer"])
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(New(ErrCodeConfigInvalid, "", nil)))
	assert.False(t, IsFatal(New(ErrCodeIndexerFailed, "", nil)))
	assert.False(t, IsFatal(stderrors.New("plain")))
	assert.False(t, IsFatal(nil))
}
