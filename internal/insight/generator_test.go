package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/titangym/backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWithoutAPIKey(t *testing.T) {
	g := NewGenerator(config.InsightConfig{Endpoint: "http://unused.invalid"})
	got := g.Generate(context.Background(), []string{"más clases"})
	assert.Equal(t, "Configura tu API_KEY para recibir análisis de IA.", got)
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := generateResponse{}
		resp.Candidates = []struct {
			Content content `json:"content"`
		}{
			{Content: content{Parts: []part{{Text: "  1. Ampliar horarios.  "}}}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	g := NewGenerator(config.InsightConfig{
		Endpoint: srv.URL,
		APIKey:   "test-key",
		Model:    "gemini-2.0-flash",
		Timeout:  2 * time.Second,
	})

	got := g.Generate(context.Background(), []string{"más clases", "mejores duchas"})
	assert.Equal(t, "1. Ampliar horarios.", got)
	assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, gotBody.Contents, 1)
	prompt := gotBody.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "más clases | mejores duchas")
	assert.Contains(t, prompt, "resumen ejecutivo")
	require.NotNil(t, gotBody.SystemInstruction)
	assert.Contains(t, gotBody.SystemInstruction.Parts[0].Text, "consultor de negocios")
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewGenerator(config.InsightConfig{Endpoint: srv.URL, APIKey: "k", Model: "m", Timeout: time.Second})
	got := g.Generate(context.Background(), nil)
	assert.Equal(t, "Error al conectar con la inteligencia artificial.", got)
}

func TestGenerateUnreachableHost(t *testing.T) {
	// A closed server forces a transport error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	g := NewGenerator(config.InsightConfig{Endpoint: srv.URL, APIKey: "k", Model: "m", Timeout: time.Second})
	got := g.Generate(context.Background(), []string{"algo"})
	assert.Equal(t, "Error al conectar con la inteligencia artificial.", got)
}

func TestGenerateEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	g := NewGenerator(config.InsightConfig{Endpoint: srv.URL, APIKey: "k", Model: "m", Timeout: time.Second})
	got := g.Generate(context.Background(), nil)
	assert.Equal(t, "No se pudo generar el análisis.", got)
}

func TestGenerateBlankText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`))
	}))
	defer srv.Close()

	g := NewGenerator(config.InsightConfig{Endpoint: srv.URL, APIKey: "k", Model: "m", Timeout: time.Second})
	got := g.Generate(context.Background(), nil)
	assert.Equal(t, "No se pudo generar el análisis.", got)
}

func TestGenerateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	g := NewGenerator(config.InsightConfig{Endpoint: srv.URL, APIKey: "k", Model: "m", Timeout: 20 * time.Millisecond})
	start := time.Now()
	got := g.Generate(context.Background(), nil)
	assert.Equal(t, "Error al conectar con la inteligencia artificial.", got)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}
