package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/agent-os/agentos/internal/build"
	"github.com/hashicorp/go-retryablehttp"
)

// Gemini defaults.
const (
	GeminiBaseURL = "https://generativelanguage.googleapis.com"
	GeminiModel   = "gemini-2.5-flash-preview-tts"
	GeminiVoice   = "Kore"
)

// Gemini synthesizes speech with the generateContent endpoint of a Gemini
// TTS model and plays the returned PCM as WAV.
type Gemini struct {
	BaseURL string
	Model   string
	Voice   string

	apiKey string
	client *retryablehttp.Client
	player Player
}

// NewGemini creates a Gemini speaker playing through player.
func NewGemini(apiKey string, player Player) *Gemini {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMax = 2 * time.Second
	client.Logger = nil

	return &Gemini{
		BaseURL: GeminiBaseURL,
		Model:   GeminiModel,
		Voice:   GeminiVoice,
		apiKey:  apiKey,
		client:  client,
		player:  player,
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseModalities []string `json:"responseModalities"`
		SpeechConfig       struct {
			VoiceConfig struct {
				PrebuiltVoiceConfig struct {
					VoiceName string `json:"voiceName"`
				} `json:"prebuiltVoiceConfig"`
			} `json:"voiceConfig"`
		} `json:"speechConfig"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Synthesize returns the spoken text as WAV audio.
func (g *Gemini) Synthesize(ctx context.Context, text string) ([]byte, error) {
	var body geminiRequest
	body.Contents = []geminiContent{{Parts: []geminiPart{{Text: "Say cheerfully: " + text}}}}
	body.GenerationConfig.ResponseModalities = []string{"AUDIO"}
	body.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName = g.Voice

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(g.BaseURL, "/"), g.Model)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("User-Agent", build.UserAgent())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(raw))
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, msg)
	}

	for _, c := range parsed.Candidates {
		for _, p := range c.Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			pcm, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("decoding audio: %w", err)
			}
			return WAV(pcm, GeminiSampleRate, GeminiChannels, GeminiBitsPerSample), nil
		}
	}
	return nil, fmt.Errorf("gemini response contained no audio")
}

// Speak implements Speaker.
func (g *Gemini) Speak(ctx context.Context, text string) error {
	audio, err := g.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	return PlayBytes(ctx, g.player, audio, ".wav")
}
