// Package loader reads recipe corpora from disk and ingests them into the
// vector database.
//
// Each recipe is flattened into one embedding text (name, description,
// ingredients, process steps), embedded with the active provider, and
// upserted as a hybrid point. Point ids are name-based UUIDs derived from
// the recipe id, making uploads idempotent.
package loader
