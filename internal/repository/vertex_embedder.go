package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pdf-insights/internal/domain"

	"golang.org/x/oauth2/google"
)

// VertexEmbedder implements domain.Embedder against the Vertex AI
// text-embedding predict endpoint. One instance is created per process
// and reused for every encode call of a run.
type VertexEmbedder struct {
	config domain.Config
	logger domain.Logger
	client *http.Client
}

func NewVertexEmbedder(config domain.Config, logger domain.Logger) domain.Embedder {
	return &VertexEmbedder{
		config: config,
		logger: logger,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// Embed encodes a single text.
func (e *VertexEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch encodes all texts in one predict call. Both ranking
// stages rely on this staying a single vectorized request rather than
// one request per item.
func (e *VertexEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	projectID := e.config.GetVertexProjectID()
	location := e.config.GetVertexLocation()
	if projectID == "" {
		return nil, fmt.Errorf("%w: VERTEX_PROJECT_ID is not set", domain.ErrEmbedderUnavailable)
	}

	// Endpoint: https://{LOCATION}-aiplatform.googleapis.com/v1/projects/{PROJECT}/locations/{LOCATION}/publishers/google/models/{MODEL}:predict
	url := fmt.Sprintf(
		"https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:predict",
		location, projectID, location, e.config.GetEmbeddingModel(),
	)

	instances := make([]map[string]interface{}, len(texts))
	for i, text := range texts {
		instances[i] = map[string]interface{}{"content": text}
	}
	jsonBody, err := json.Marshal(map[string]interface{}{"instances": instances})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}

	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return nil, fmt.Errorf("failed to get default credentials: %w", err)
	}
	token, err := creds.TokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	e.logger.Debug("Embedding batch", "size", len(texts), "model", e.config.GetEmbeddingModel())
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding API returned status: %d", resp.StatusCode)
	}

	var result struct {
		Predictions []struct {
			Embeddings struct {
				Values []float32 `json:"values"`
			} `json:"embeddings"`
		} `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Predictions) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(result.Predictions))
	}
	vectors := make([][]float32, len(result.Predictions))
	for i, p := range result.Predictions {
		if len(p.Embeddings.Values) == 0 {
			return nil, fmt.Errorf("empty embedding at index %d", i)
		}
		vectors[i] = p.Embeddings.Values
	}
	return vectors, nil
}
