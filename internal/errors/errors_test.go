package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategoryFromCode(t *testing.T) {
	err := New(CodeIndexMissing, "no index", nil)
	assert.Equal(t, CategoryIndex, err.Category)
}

func TestWrap_NilErrorReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(CodeIO, nil))
}

func TestWrap_NonNilErrorCarriesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeIO, cause)
	require.NotNil(t, err)
	assert.Equal(t, cause, err.Cause)
	assert.ErrorIs(t, err, cause)
}

func TestCoreError_IsMatchesByCode(t *testing.T) {
	a := New(CodeParse, "bad json", nil)
	b := New(CodeParse, "different message, same code", nil)
	c := New(CodeIO, "unrelated", nil)

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestIsFatal_ClassifiesKnownCodes(t *testing.T) {
	assert.True(t, IsFatal(New(CodeIndexMissing, "x", nil)))
	assert.True(t, IsFatal(New(CodeParse, "x", nil)))
	assert.False(t, IsFatal(New(CodeEmptyQuery, "x", nil)))
	assert.False(t, IsFatal(nil))
}

func TestGetCode_ReturnsEmptyForNonCoreError(t *testing.T) {
	assert.Equal(t, Code(""), GetCode(errors.New("plain error")))
	assert.Equal(t, CodeBroken, GetCode(New(CodeBroken, "x", nil)))
}

func TestWithSuggestionAndDetail_ChainableBuilders(t *testing.T) {
	err := New(CodeParse, "corrupt", nil).
		WithSuggestion("rebuild the index").
		WithDetail("path", "forward_index.json")

	assert.Equal(t, "rebuild the index", err.Suggestion)
	assert.Equal(t, "forward_index.json", err.Details["path"])
}
