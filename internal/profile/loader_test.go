package profile

import (
	"os"
	"path/filepath"
	"testing"

	"fixture-generator/store"
	"fixture-generator/strategy"
	"fixture-generator/synth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
fixed:
  string: Widget
  int64: 42
choices:
  fixture-generator/store.OrderStatus: [PENDING, PAID]
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "1", p.Version)
	assert.Equal(t, "Widget", p.Fixed["string"])
	assert.Equal(t, 42, p.Fixed["int64"])
	assert.Equal(t, []any{"PENDING", "PAID"}, p.Choices["fixture-generator/store.OrderStatus"])
	assert.Equal(t, []string{"fixture-generator/store.OrderStatus", "int64", "string"}, p.IDs())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("fixed: [1, 2"))
	assert.ErrorContains(t, err, "failed to parse profile YAML")

	_, err = Parse([]byte("choices:\n  string: []\n"))
	assert.ErrorIs(t, err, ErrEmptyChoices)

	_, err = Parse([]byte("fixed:\n  string: a\nchoices:\n  string: [b]\n"))
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = Parse([]byte("fixed:\n  \"\": a\n"))
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, p.Fixed, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApply(t *testing.T) {
	p, err := Parse([]byte(sample))
	require.NoError(t, err)

	s := synth.New(synth.DefaultConfig())
	p.Apply(s.Registry())

	for range 20 {
		order := synth.MustMake[store.Order](s)
		assert.Equal(t, int64(42), order.ID)
		assert.Contains(t, []store.OrderStatus{store.StatusPending, store.StatusPaid}, order.Status)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "Widget", order.Items[0].Name)
	}
}

func TestChoice(t *testing.T) {
	seen := map[any]bool{}

	g := Choice([]any{"a", "b"})
	for range 200 {
		v, err := g.Generate()
		require.NoError(t, err)
		seen[v] = true
	}

	assert.Len(t, seen, 2)

	_, err := Choice(nil).Generate()
	assert.ErrorIs(t, err, ErrEmptyChoices)

	r := strategy.NewEmptyRegistry()
	(&Profile{Fixed: map[string]any{"bool": true}}).Apply(r)
	assert.True(t, r.Has("bool"))
}
