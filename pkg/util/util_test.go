package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, EmptyString, FirstNonEmpty("", " "))
}

func TestRecast(t *testing.T) {
	var out struct {
		FName string `json:"fName"`
	}
	require.NoError(t, Recast(map[string]any{"fName": "John"}, &out))
	assert.Equal(t, "John", out.FName)

	require.NoError(t, Recast([]byte(`{"fName":"Adam"}`), &out))
	assert.Equal(t, "Adam", out.FName)
}

func TestFprintJSONWrapsSlices(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FprintJSON(&buf, []string{"John"}))
	assert.Contains(t, buf.String(), "items")
	assert.Contains(t, buf.String(), "John")
}
