package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadExclusions(t *testing.T) {
	e, err := ReadExclusions(strings.NewReader("Area 88\n\n  Eyeshield 21  \n07-Ghost"))
	require.NoError(t, err)

	assert.Equal(t, 3, e.Len())
	assert.True(t, e.Contains("area 88"))
	assert.True(t, e.Contains("Eyeshield 21"))
	assert.True(t, e.Contains("  07-ghost  "))

	// Exact titles only, never substrings.
	assert.False(t, e.Contains("Area 8"))
	assert.False(t, e.Contains("Area 888"))
}

func TestExclusionsAdd(t *testing.T) {
	e := NewExclusions(nil)
	assert.Equal(t, 0, e.Len())

	e.Add("Cyborg 009")
	e.Add("")
	e.Add("   ")

	assert.Equal(t, 1, e.Len())
	assert.True(t, e.Contains("cyborg 009"))
}

func TestExclusionsAddFrom(t *testing.T) {
	e := DefaultExclusions()
	before := e.Len()

	require.NoError(t, e.AddFrom(strings.NewReader("My 9th Life\n\n")))

	assert.Equal(t, before+1, e.Len())
	assert.True(t, e.Contains("my 9th life"))
}

func TestExclusionsNilReceiver(t *testing.T) {
	var e *Exclusions
	assert.False(t, e.Contains("anything"))
	assert.Equal(t, 0, e.Len())
}

func TestDefaultExclusions(t *testing.T) {
	e := DefaultExclusions()
	assert.Greater(t, e.Len(), 0)
	assert.True(t, e.Contains("Ichigo 100%"))
	assert.True(t, e.Contains("20th Century Boys"))
}
