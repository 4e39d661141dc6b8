package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingText(t *testing.T) {
	r := Recipe{
		ID:   "potato_1",
		Name: "Жареная картошка",
		Preparation: Preparation{
			Description: "Картофель обжаривается на сковороде до золотистой корочки.",
		},
		Ingredients: []string{"картофель", "масло", "соль"},
		Process:     []string{"Нарезать картофель.", "Обжарить до готовности."},
	}

	text := r.EmbeddingText()
	assert.Contains(t, text, "Жареная картошка")
	assert.Contains(t, text, "Ингредиенты: картофель, масло, соль")
	assert.Contains(t, text, "Обжарить до готовности.")

	// Stable across calls
	assert.Equal(t, text, r.EmbeddingText())
}

func TestEmbeddingTextMinimalRecipe(t *testing.T) {
	r := Recipe{ID: "x", Name: "Борщ"}
	assert.Equal(t, "Борщ", r.EmbeddingText())
}

func TestPayloadFields(t *testing.T) {
	r := Recipe{ID: "potato_1", Name: "Жареная картошка", Category: "main", Source: "grandma"}
	p := r.Payload()
	assert.Equal(t, "potato_1", p["recipe_id"])
	assert.Equal(t, "Жареная картошка", p["recipe_name"])
	assert.Equal(t, "main", p["category"])
	assert.Equal(t, "grandma", p["source"])

	// Optional fields omitted when empty
	p = (&Recipe{ID: "x", Name: "y"}).Payload()
	_, hasCategory := p["category"]
	assert.False(t, hasCategory)
}

func TestPointIDDeterministic(t *testing.T) {
	a := PointID("potato_1")
	b := PointID("potato_1")
	c := PointID("borscht_1")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, a)
}

func TestLoadCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")
	raw := `{
	  "recipes": [
	    {
	      "id": "potato_1",
	      "name": "Жареная картошка",
	      "category": "main",
	      "preparation": {"description": "Обжарить картофель."},
	      "ingredients": ["картофель"]
	    }
	  ]
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	corpus, err := LoadCorpus(path)
	require.NoError(t, err)
	require.Len(t, corpus.Recipes, 1)
	assert.Equal(t, "potato_1", corpus.Recipes[0].ID)
}

func TestLoadCorpusRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")
	raw := `{"recipes": [{"name": "nameless id"}]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err := LoadCorpus(path)
	assert.Error(t, err)
}

func TestLoadCorpusMissingFile(t *testing.T) {
	_, err := LoadCorpus(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
