package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSliceValue(t *testing.T) {
	v, err := StringSlice{"a@example.com", "b@example.com"}.Value()
	require.NoError(t, err)
	assert.Equal(t, "a@example.com,b@example.com", v)

	v, err = StringSlice{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "", v)

	_, err = StringSlice{"a,b"}.Value()
	assert.Error(t, err)
}

func TestStringSliceScan(t *testing.T) {
	var s StringSlice

	require.NoError(t, s.Scan("a@example.com,b@example.com"))
	assert.Equal(t, StringSlice{"a@example.com", "b@example.com"}, s)

	require.NoError(t, s.Scan(""))
	assert.Empty(t, s)

	require.NoError(t, s.Scan(nil))
	assert.Empty(t, s)

	require.NoError(t, s.Scan([]byte("x@example.com")))
	assert.Equal(t, StringSlice{"x@example.com"}, s)

	assert.Error(t, s.Scan(42))
}

func TestStringSliceContains(t *testing.T) {
	s := StringSlice{"a@example.com", "b@example.com"}
	assert.True(t, s.Contains("b@example.com"))
	assert.False(t, s.Contains("c@example.com"))
	assert.False(t, StringSlice{}.Contains("a@example.com"))
}
