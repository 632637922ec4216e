package tts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/agent-os/agentos/internal/build"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAI defaults.
const (
	OpenAIModel = "gpt-4o-mini-tts"
	OpenAIVoice = "nova"
)

// OpenAI synthesizes speech with the audio/speech endpoint.
type OpenAI struct {
	Model string
	Voice string

	client *openai.Client
	player Player
}

// NewOpenAI creates an OpenAI speaker playing through player.
func NewOpenAI(apiKey string, player Player, opts ...option.RequestOption) *OpenAI {
	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHeader("User-Agent", build.UserAgent()),
	}, opts...)
	client := openai.NewClient(reqOpts...)
	return &OpenAI{Model: OpenAIModel, Voice: OpenAIVoice, client: &client, player: player}
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	Instructions   string `json:"instructions,omitempty"`
	ResponseFormat string `json:"response_format"`
}

// MarshalJSON lets the client send the request as a JSON body.
func (r speechRequest) MarshalJSON() ([]byte, error) {
	type plain speechRequest
	return json.Marshal(plain(r))
}

// Synthesize returns the spoken text as WAV audio. WAV is requested so
// every platform player can handle it.
func (o *OpenAI) Synthesize(ctx context.Context, text string) ([]byte, error) {
	var resp *http.Response
	err := o.client.Post(ctx, "audio/speech", speechRequest{
		Model:          o.Model,
		Input:          text,
		Voice:          o.Voice,
		Instructions:   "Speak in a cheerful and positive tone.",
		ResponseFormat: "wav",
	}, &resp)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("OpenAI speech request failed (status=%d): %s",
				apiErr.StatusCode, strings.TrimSpace(apiErr.Message))
		}
		return nil, fmt.Errorf("OpenAI speech request failed: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("OpenAI returned no audio")
	}
	return audio, nil
}

// Speak implements Speaker.
func (o *OpenAI) Speak(ctx context.Context, text string) error {
	audio, err := o.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	return PlayBytes(ctx, o.player, audio, ".wav")
}
