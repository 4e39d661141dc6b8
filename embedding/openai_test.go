package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-3-small", req.Model)
		assert.Equal(t, []string{"first", "second"}, req.Input)

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float32{0.1, 0.2}},
				{"embedding": []float32{0.3, 0.4}},
			},
		})
	}))
	defer srv.Close()

	provider, err := newOpenAIProvider(&Config{
		Provider:      ProviderOpenAI,
		OpenAIAPIKey:  "sk-test",
		OpenAIBaseURL: srv.URL,
		HTTPTimeoutS:  5,
	})
	require.NoError(t, err)

	out, err := provider.Embed(context.Background(), []string{"first", "second"})
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, []float32{0.1, 0.2}, out[0].Dense)
	assert.Equal(t, []float32{0.3, 0.4}, out[1].Dense)
	assert.Nil(t, out[0].Sparse, "hosted backend is dense-only")
}

func TestOpenAIEmbed_EmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	provider, err := newOpenAIProvider(&Config{
		Provider:      ProviderOpenAI,
		OpenAIAPIKey:  "sk-test",
		OpenAIBaseURL: srv.URL,
		HTTPTimeoutS:  5,
	})
	require.NoError(t, err)

	_, err = provider.Embed(context.Background(), []string{"a"})

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestNewClient_UnknownProvider(t *testing.T) {
	_, err := NewClient(&Config{Provider: "word2vec"})
	require.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	_, err := NewClient(&Config{Provider: ProviderOpenAI})
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewClient_Dimensions(t *testing.T) {
	openai, err := NewClient(&Config{
		Provider:      ProviderOpenAI,
		OpenAIAPIKey:  "sk-test",
		OpenAIBaseURL: "https://api.openai.com/v1",
		HTTPTimeoutS:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1536, openai.Dimensions())

	bge, err := NewClient(&Config{
		Provider:     ProviderBGEM3,
		BGEURL:       "http://localhost",
		BGEPort:      "8000",
		BGEEndpoint:  "/embed",
		HTTPTimeoutS: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1024, bge.Dimensions())
}

func TestConfig_BGEAPIURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "port appended",
			cfg:  Config{BGEURL: "http://embed.internal", BGEPort: "8000", BGEEndpoint: "/embed"},
			want: "http://embed.internal:8000/embed",
		},
		{
			name: "port already in URL",
			cfg:  Config{BGEURL: "http://embed.internal:9000", BGEPort: "8000", BGEEndpoint: "/embed"},
			want: "http://embed.internal:9000/embed",
		},
		{
			name: "trailing slash trimmed",
			cfg:  Config{BGEURL: "http://embed.internal:9000/", BGEPort: "8000", BGEEndpoint: "/embed"},
			want: "http://embed.internal:9000/embed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.bgeAPIURL())
		})
	}
}
