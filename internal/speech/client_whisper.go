package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

type WhisperClient struct {
	client *openai.Client
}

func NewWhisperClient(apiKey, baseURL string, httpCli *http.Client) *WhisperClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpCli != nil {
		cfg.HTTPClient = httpCli
	}

	return &WhisperClient{
		client: openai.NewClientWithConfig(cfg),
	}
}

func (c *WhisperClient) Transcribe(ctx context.Context, audio Audio) (string, error) {
	name := audio.Name
	if name == "" {
		name = "audio.webm"
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: name,
		Reader:   bytes.NewReader(audio.Data),
	})
	if err != nil {
		var apiErr *openai.APIError
		// go-openai отдаёт только разобранный error.message, сырого тела ответа наружу нет
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
			return "", &UpstreamError{Provider: "OpenAI", StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
		}
		return "", fmt.Errorf("whisper: %w", err)
	}

	return resp.Text, nil
}
