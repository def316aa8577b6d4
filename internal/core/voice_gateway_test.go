package core

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// countingTransport records requests and serves a canned response.
type countingTransport struct {
	calls    int
	lastReq  *http.Request
	lastBody []byte
	status   int
	respBody string
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls++
	c.lastReq = req
	if req.Body != nil {
		c.lastBody, _ = io.ReadAll(req.Body)
	}
	return &http.Response{
		StatusCode: c.status,
		Body:       io.NopCloser(strings.NewReader(c.respBody)),
		Header:     make(http.Header),
	}, nil
}

func newTestVoiceGateway(t *testing.T, apiKey string, transport http.RoundTripper) *VoiceGateway {
	t.Helper()
	g := NewVoiceGateway(VoiceConfig{
		APIKey:       apiKey,
		VoiceID:      "voice-1",
		Model:        "eleven_turbo_v2",
		Stability:    0.5,
		Similarity:   0.75,
		SpeakerBoost: true,
	}, zaptest.NewLogger(t))
	g.httpClient = &http.Client{Transport: transport}
	return g
}

func TestSynthesizeMissingCredential(t *testing.T) {
	transport := &countingTransport{status: http.StatusOK}
	g := newTestVoiceGateway(t, "", transport)

	_, err := g.Synthesize(context.Background(), "hello", nil)
	assert.ErrorIs(t, err, ErrMissingCredential)
	// The credential check must fire before any network call.
	assert.Zero(t, transport.calls)
}

func TestSynthesizeSuccess(t *testing.T) {
	transport := &countingTransport{status: http.StatusOK, respBody: "mp3-bytes"}
	g := newTestVoiceGateway(t, "key", transport)

	audio, err := g.Synthesize(context.Background(), "hello world", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)
	assert.Equal(t, 1, transport.calls)

	assert.Equal(t, "key", transport.lastReq.Header.Get("xi-api-key"))
	assert.Contains(t, transport.lastReq.URL.Path, "/v1/text-to-speech/voice-1")

	var req synthesisRequest
	require.NoError(t, json.Unmarshal(transport.lastBody, &req))
	assert.Equal(t, "hello world", req.Text)
	assert.Equal(t, "eleven_turbo_v2", req.ModelID)
	assert.Equal(t, 0.5, req.VoiceSettings.Stability)
	assert.True(t, req.VoiceSettings.UseSpeakerBoost)
}

func TestSynthesizeOptionOverrides(t *testing.T) {
	transport := &countingTransport{status: http.StatusOK, respBody: "audio"}
	g := newTestVoiceGateway(t, "key", transport)

	style := 0.9
	_, err := g.Synthesize(context.Background(), "hi", &SynthesisOptions{
		VoiceID: "voice-2",
		Style:   &style,
	})
	require.NoError(t, err)

	assert.Contains(t, transport.lastReq.URL.Path, "voice-2")
	var req synthesisRequest
	require.NoError(t, json.Unmarshal(transport.lastBody, &req))
	assert.Equal(t, 0.9, req.VoiceSettings.Style)
	// Non-overridden settings keep their configured values.
	assert.Equal(t, 0.75, req.VoiceSettings.SimilarityBoost)
}

func TestSynthesizeAPIError(t *testing.T) {
	transport := &countingTransport{status: http.StatusUnauthorized, respBody: `{"detail":"bad key"}`}
	g := newTestVoiceGateway(t, "key", transport)

	_, err := g.Synthesize(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSynthesisFailed)

	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
	assert.Equal(t, http.StatusUnauthorized, synthErr.StatusCode)
	assert.Contains(t, synthErr.Body, "bad key")
}
