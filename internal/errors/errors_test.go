package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder(t *testing.T) {
	t.Parallel()

	err := Newf("failed to parse row %d", 7).
		Category(CategoryValidation).
		Component("survey").
		Context("file", "density.csv").
		Build()

	require.Error(t, err)
	assert.Equal(t, "failed to parse row 7", err.Error())
	assert.Equal(t, CategoryValidation, err.Category)
	assert.Equal(t, "survey", err.GetComponent())
	assert.Equal(t, "density.csv", err.GetContext()["file"])
	assert.False(t, err.GetTimestamp().IsZero())
}

func TestDefaultCategory(t *testing.T) {
	t.Parallel()

	err := Newf("something broke").Build()
	assert.Equal(t, CategoryGeneric, err.Category)
}

func TestIsCategory(t *testing.T) {
	t.Parallel()

	base := Newf("missing taxon").Category(CategoryNotFound).Build()
	wrapped := Newf("lookup failed: %w", base).Category(CategoryNetwork).Build()

	assert.True(t, IsNotFound(base))
	assert.False(t, IsNotFound(Newf("other").Category(CategoryNetwork).Build()))

	// As should surface the outermost enhanced error
	var ee *EnhancedError
	require.True(t, As(wrapped, &ee))
	assert.Equal(t, CategoryNetwork, ee.Category)
}

func TestContextCopyIsIsolated(t *testing.T) {
	t.Parallel()

	err := Newf("x").Context("key", "value").Build()
	ctx := err.GetContext()
	ctx["key"] = "mutated"

	assert.Equal(t, "value", err.GetContext()["key"])
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	inner := NewStd("inner")
	err := Newf("outer: %w", inner).Build()

	assert.True(t, Is(err, inner))
}
