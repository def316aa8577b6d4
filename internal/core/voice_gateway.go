package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultVoiceBaseURL = "https://api.elevenlabs.io"
	synthesisTimeout    = 30 * time.Second

	// Cap on the error body kept for diagnostics.
	maxErrorBodyBytes = 4096
)

// VoiceConfig holds the static synthesis parameters used when a request
// does not override them.
type VoiceConfig struct {
	APIKey       string
	VoiceID      string
	Model        string
	Stability    float64
	Similarity   float64
	Style        float64
	SpeakerBoost bool
}

// SynthesisOptions overrides individual voice parameters for one call.
// Nil fields fall back to the gateway's configuration.
type SynthesisOptions struct {
	VoiceID      string
	Stability    *float64
	Similarity   *float64
	Style        *float64
	SpeakerBoost *bool
}

// VoiceGateway converts text into synthesized speech via the ElevenLabs
// HTTP API and passes the compressed audio through unmodified. It is
// independent of the chat flow; a failure here never touches chat state.
type VoiceGateway struct {
	cfg        VoiceConfig
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewVoiceGateway(cfg VoiceConfig, logger *zap.Logger) *VoiceGateway {
	return &VoiceGateway{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: synthesisTimeout},
		baseURL:    defaultVoiceBaseURL,
		logger:     logger,
	}
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// Synthesize returns raw audio bytes for the given text. The credential
// check happens before any network I/O.
func (g *VoiceGateway) Synthesize(ctx context.Context, text string, opts *SynthesisOptions) ([]byte, error) {
	if g.cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}

	voiceID := g.cfg.VoiceID
	settings := voiceSettings{
		Stability:       g.cfg.Stability,
		SimilarityBoost: g.cfg.Similarity,
		Style:           g.cfg.Style,
		UseSpeakerBoost: g.cfg.SpeakerBoost,
	}
	if opts != nil {
		if opts.VoiceID != "" {
			voiceID = opts.VoiceID
		}
		if opts.Stability != nil {
			settings.Stability = *opts.Stability
		}
		if opts.Similarity != nil {
			settings.SimilarityBoost = *opts.Similarity
		}
		if opts.Style != nil {
			settings.Style = *opts.Style
		}
		if opts.SpeakerBoost != nil {
			settings.UseSpeakerBoost = *opts.SpeakerBoost
		}
	}

	payload, err := json.Marshal(synthesisRequest{
		Text:          text,
		ModelID:       g.cfg.Model,
		VoiceSettings: settings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal synthesis request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, synthesisTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", g.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		g.logger.Warn("voice synthesis rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, &SynthesisError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading audio body: %v", ErrSynthesisFailed, err)
	}
	return audio, nil
}
