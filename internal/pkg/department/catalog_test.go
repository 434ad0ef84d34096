package department

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CanonicalIsCaseInsensitive(t *testing.T) {
	c, err := New([]string{"Engineering", " HR ", "Design"})
	require.NoError(t, err)

	got, ok := c.Canonical("engineering")
	assert.True(t, ok)
	assert.Equal(t, "Engineering", got)

	got, ok = c.Canonical("  hr")
	assert.True(t, ok)
	assert.Equal(t, "HR", got)

	_, ok = c.Canonical("Astrology")
	assert.False(t, ok)

	assert.Equal(t, []string{"Engineering", "HR", "Design"}, c.Names())
}

func TestNew_RejectsDuplicatesAndEmpty(t *testing.T) {
	_, err := New([]string{"Sales", "sales"})
	assert.Error(t, err)

	_, err = New([]string{"", "  "})
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestNames_ReturnsCopy(t *testing.T) {
	c, err := New(DefaultNames)
	require.NoError(t, err)

	names := c.Names()
	names[0] = "Mutated"
	assert.Equal(t, "Engineering", c.Names()[0])
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "departments.yaml")
	require.NoError(t, os.WriteFile(path, []byte("departments:\n  - Engineering\n  - Research\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Engineering", "Research"}, c.Names())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOrdering_Compare(t *testing.T) {
	o := NewOrdering()
	assert.Negative(t, o.Compare("design", "Engineering"))
	assert.Positive(t, o.Compare("Sales", "HR"))
	assert.Zero(t, o.Compare("Legal", "Legal"))
}
