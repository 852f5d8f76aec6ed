// Package insight wraps the outbound text-generation call that produces
// the dashboard's business summary. The call is advisory: every failure
// mode collapses to a fixed fallback sentence and is never surfaced as an
// error.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/titangym/backend/internal/config"

	log "github.com/sirupsen/logrus"
)

const (
	fallbackNoKey   = "Configura tu API_KEY para recibir análisis de IA."
	fallbackEmpty   = "No se pudo generar el análisis."
	fallbackFailure = "Error al conectar con la inteligencia artificial."

	systemInstruction = "Eres un experto consultor de negocios para gimnasios de alto rendimiento. Hablas español profesional."
	promptTemplate    = "Analiza las siguientes sugerencias de clientes de un gimnasio y proporciona un resumen ejecutivo con 3 puntos clave para mejorar el negocio: %s"
)

// Generator produces a natural-language insight from customer feedback.
type Generator struct {
	endpoint   string
	apiKey     string
	model      string
	timeout    time.Duration
	httpClient *http.Client
}

func NewGenerator(cfg config.InsightConfig) *Generator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Generator{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// request/response shapes for the generateContent REST call. Only the
// fields we read are declared.
type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate turns the suggestion texts into an executive summary. It
// never blocks past the configured timeout and never returns an error:
// a missing key, a transport failure, a non-2xx status and an empty
// answer each map to their fixed sentence.
func (g *Generator) Generate(ctx context.Context, suggestions []string) string {
	if g.apiKey == "" {
		return fallbackNoKey
	}

	prompt := fmt.Sprintf(promptTemplate, strings.Join(suggestions, " | "))
	body, err := json.Marshal(generateRequest{
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
	})
	if err != nil {
		log.WithError(err).Warn("insight: marshal request")
		return fallbackFailure
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.endpoint, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.WithError(err).Warn("insight: build request")
		return fallbackFailure
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("insight: generate call failed")
		return fallbackFailure
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithField("status", resp.StatusCode).Warn("insight: generate call rejected")
		return fallbackFailure
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.WithError(err).Warn("insight: decode response")
		return fallbackFailure
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return fallbackEmpty
	}
	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return fallbackEmpty
	}
	return text
}
