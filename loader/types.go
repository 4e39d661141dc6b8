package loader

import (
	"fmt"
	"strings"
)

// Preparation holds the free-text cooking description of a recipe.
type Preparation struct {
	Description string `json:"description"`
}

// Recipe is one document of the corpus.
type Recipe struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category,omitempty"`
	Source      string      `json:"source,omitempty"`
	Preparation Preparation `json:"preparation"`
	Ingredients []string    `json:"ingredients,omitempty"`
	Process     []string    `json:"process,omitempty"`
}

// Corpus is the on-disk recipe collection format.
type Corpus struct {
	Recipes []Recipe `json:"recipes"`
}

// EmbeddingText flattens the recipe into the single text that gets
// embedded: name, description, ingredient list, and process steps joined
// with newlines. Field order is stable so re-uploads produce identical
// vectors.
func (r *Recipe) EmbeddingText() string {
	var sb strings.Builder
	sb.WriteString(r.Name)

	if r.Preparation.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(r.Preparation.Description)
	}
	if len(r.Ingredients) > 0 {
		sb.WriteString("\nИнгредиенты: ")
		sb.WriteString(strings.Join(r.Ingredients, ", "))
	}
	for _, step := range r.Process {
		sb.WriteString("\n")
		sb.WriteString(step)
	}
	return sb.String()
}

// Payload builds the metadata stored alongside the vectors. The field names
// are part of the search contract: the evaluator and dashboard resolve hit
// identity through recipe_id and recipe_name.
func (r *Recipe) Payload() map[string]any {
	payload := map[string]any{
		"recipe_id":   r.ID,
		"recipe_name": r.Name,
	}
	if r.Category != "" {
		payload["category"] = r.Category
	}
	if r.Source != "" {
		payload["source"] = r.Source
	}
	return payload
}

// Validate checks the minimal fields a recipe needs to be indexed.
func (r *Recipe) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("recipe without id")
	}
	if r.Name == "" {
		return fmt.Errorf("recipe %s without name", r.ID)
	}
	return nil
}
