package recognize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDictionary(t *testing.T) {
	d := DefaultDictionary()

	require.NotNil(t, d.Name)
	require.NotNil(t, d.Email)
	require.NotNil(t, d.Phone)

	assert.Equal(t, 5, d.Name.Labels["nome"])
	assert.Equal(t, 4, d.Name.Labels["vorname"])
	assert.Equal(t, 5, d.Phone.Labels["handy"])
	assert.Equal(t, "email", d.Email.Patterns[0])
	assert.Equal(t, []string{"phone", "telephone", "mobile"}, d.Phone.Patterns[:3])

	for _, fd := range []*FieldDictionary{d.Name, d.Email, d.Phone} {
		for label, w := range fd.Labels {
			assert.GreaterOrEqual(t, w, 3, "label %q", label)
			assert.LessOrEqual(t, w, 5, "label %q", label)
		}
	}
}

func TestParseDictionary(t *testing.T) {
	t.Run("lower-cases labels and patterns", func(t *testing.T) {
		d, err := ParseDictionary([]byte("phone:\n  labels:\n    Handy: 5\n  patterns: [HANDY]\n"))
		require.NoError(t, err)

		assert.Equal(t, map[string]int{"handy": 5}, d.Phone.Labels)
		assert.Equal(t, []string{"handy"}, d.Phone.Patterns)
		assert.Nil(t, d.Name)
	})

	t.Run("rejects non-positive weights", func(t *testing.T) {
		_, err := ParseDictionary([]byte("name:\n  labels:\n    nome: 0\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "positive weight")
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		_, err := ParseDictionary([]byte("adress:\n  labels:\n    rua: 5\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown field type "adress"`)
	})

	t.Run("rejects invalid yaml", func(t *testing.T) {
		_, err := ParseDictionary([]byte("name: [unclosed"))
		assert.Error(t, err)
	})
}

func TestLoadDictionary_OverridesOnlyDefinedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.yaml")
	require.NoError(t, os.WriteFile(path, []byte("phone:\n  labels:\n    ramal: 4\n  patterns: [ramal]\n"), 0600))

	d, err := LoadDictionary(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"ramal": 4}, d.Phone.Labels)
	assert.Equal(t, 5, d.Name.Labels["nome"], "name table keeps defaults")

	r := New(Options{Dictionary: d})
	assert.Equal(t, 4.0, r.ScoreColumnName("Ramal", "phone"))
	assert.Equal(t, 0.0, r.ScoreColumnName("Telefone", "phone"))
}

func TestLoadDictionary_Missing(t *testing.T) {
	_, err := LoadDictionary(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
