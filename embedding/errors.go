package embedding

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors. These are fatal at construction time: the process
// must not start with an unusable embedding backend.
var (
	// ErrUnsupportedProvider is returned for an unknown EMBEDDING_PROVIDER value.
	ErrUnsupportedProvider = errors.New("unsupported embedding provider")

	// ErrMissingAPIKey is returned when the OpenAI backend is selected
	// without OPENAI_API_KEY set.
	ErrMissingAPIKey = errors.New("missing OPENAI_API_KEY")

	// ErrMissingEndpoint is returned when the BGE-M3 backend is selected
	// without a base URL.
	ErrMissingEndpoint = errors.New("missing BGE_M3_URL")

	// ErrNoTexts is returned when an embedding request carries no input.
	ErrNoTexts = errors.New("no texts provided")
)

// MalformedResponseError reports a successful HTTP response whose body did
// not contain a recognizable embedding structure. It carries the request
// shapes that were attempted and a snippet of the offending body for
// diagnosis.
type MalformedResponseError struct {
	URL             string
	AttemptedShapes []string
	Snippet         string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("embedding: no recognizable embeddings in response from %s (attempted shapes: %s): %s",
		e.URL, strings.Join(e.AttemptedShapes, ", "), e.Snippet)
}

// bodySnippet truncates a response body for inclusion in error messages.
func bodySnippet(body []byte) string {
	const maxSnippet = 200
	s := strings.TrimSpace(string(body))
	if len(s) > maxSnippet {
		return s[:maxSnippet] + "..."
	}
	return s
}
