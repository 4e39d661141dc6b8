package vectordb

import "strconv"

// Payload field access is centralized here so every call site reads a
// hit's identity and display name with the same precedence. Collections
// loaded by different scripts disagree on field names; the precedence
// lists below are the single source of truth.
var (
	// idFieldPrecedence: recipe-scoped id first, generic id second.
	idFieldPrecedence = []string{"recipe_id", "id"}

	// nameFieldPrecedence: recipe-scoped name first, generic name second.
	nameFieldPrecedence = []string{"recipe_name", "name"}
)

// PayloadID returns a hit's document identifier, or "" when the payload
// carries none of the recognized id fields.
func PayloadID(payload map[string]any) string {
	return firstStringField(payload, idFieldPrecedence)
}

// PayloadName returns a hit's display name, or "" when the payload carries
// none of the recognized name fields.
func PayloadName(payload map[string]any) string {
	return firstStringField(payload, nameFieldPrecedence)
}

func firstStringField(payload map[string]any, keys []string) string {
	for _, key := range keys {
		value, present := payload[key]
		if !present {
			continue
		}
		switch v := value.(type) {
		case string:
			return v
		case int64:
			return strconv.FormatInt(v, 10)
		case float64:
			// Integral JSON numbers used as ids.
			if v == float64(int64(v)) {
				return strconv.FormatInt(int64(v), 10)
			}
		}
	}
	return ""
}
