package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/janedoe/portfolio-server/internal/auth"
	"github.com/janedoe/portfolio-server/internal/core"
	"github.com/janedoe/portfolio-server/internal/store"
)

const testAdminPassword = "let-me-in"

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(ctx context.Context, systemInstruction string, history []core.ChatTurn) (string, error) {
	return s.reply, s.err
}

type testServer struct {
	router    http.Handler
	store     *store.SQLiteStore
	completer *stubCompleter
	tokens    *auth.TokenIssuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zaptest.NewLogger(t)

	dbStore, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { dbStore.Close() })

	completer := &stubCompleter{reply: "An engineer."}
	builder := core.NewContextBuilder(dbStore)
	conversations := core.NewConversationService(dbStore, builder, completer, logger)
	// No API key configured: the TTS endpoint reports its credential error.
	voice := core.NewVoiceGateway(core.VoiceConfig{VoiceID: "v"}, logger)
	tokens := auth.NewTokenIssuer("test-secret")

	hash, err := auth.HashPassword(testAdminPassword)
	require.NoError(t, err)

	handler := NewAPIHandler(dbStore, conversations, voice, tokens, hash, logger)
	return &testServer{
		router:    NewRouter(handler, logger),
		store:     dbStore,
		completer: completer,
		tokens:    tokens,
	}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) adminHeaders(t *testing.T) map[string]string {
	t.Helper()
	token, err := ts.tokens.Generate()
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChatPrompts(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.store.CreateChatPrompt(&store.ChatPrompt{Text: "What patents does Jane hold?"}))

	rec := ts.do(t, http.MethodGet, "/api/chat/prompts", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var prompts []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prompts))
	assert.Equal(t, []string{"What patents does Jane hold?"}, prompts)
}

func TestChatRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.store.UpsertProfile(&store.Profile{Name: "Jane Doe", Title: "Engineer"}))

	rec := ts.do(t, http.MethodPost, "/api/chat/conversations", nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var conv store.Conversation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conv))
	require.NotEmpty(t, conv.ID)

	rec = ts.do(t, http.MethodPost, "/api/chat/conversations/"+conv.ID+"/messages",
		map[string]string{"content": "A"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var turn []store.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &turn))
	require.Len(t, turn, 2)
	assert.Equal(t, store.RoleUser, turn[0].Role)
	assert.Equal(t, "A", turn[0].Content)
	assert.Equal(t, store.RoleAssistant, turn[1].Role)
	assert.NotEmpty(t, turn[1].Content)

	rec = ts.do(t, http.MethodGet, "/api/chat/conversations/"+conv.ID+"/messages", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var messages []store.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	assert.Len(t, messages, 2)
}

func TestChatUnknownConversation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/chat/conversations/nope/messages",
		map[string]string{"content": "A"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/chat/conversations/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatCompletionFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.completer.err = errors.New("upstream down")

	rec := ts.do(t, http.MethodPost, "/api/chat/conversations", nil, nil)
	var conv store.Conversation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conv))

	rec = ts.do(t, http.MethodPost, "/api/chat/conversations/"+conv.ID+"/messages",
		map[string]string{"content": "A"}, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// The user message survives for a retry.
	messages, err := ts.store.GetMessages(conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, store.RoleUser, messages[0].Role)

	// Retry succeeds once the gateway recovers, without resending text.
	ts.completer.err = nil
	rec = ts.do(t, http.MethodPost, "/api/chat/conversations/"+conv.ID+"/retry", nil, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	messages, err = ts.store.GetMessages(conv.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestTextToSpeechNotConfigured(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/chat/text-to-speech",
		map[string]string{"text": "hello"}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdminLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/admin/login",
		map[string]string{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/admin/login",
		map[string]string{"password": testAdminPassword}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
}

func TestAdminMutationsRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPut, "/api/admin/profile",
		store.Profile{Name: "Jane Doe"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/admin/profile",
		store.Profile{Name: "Jane Doe"}, ts.adminHeaders(t))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/profile", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile store.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Jane Doe", profile.Name)
}

func TestAdminPatentValidation(t *testing.T) {
	ts := newTestServer(t)
	headers := ts.adminHeaders(t)

	rec := ts.do(t, http.MethodPost, "/api/admin/patents",
		store.Patent{Number: "US 1", Title: "Widget", Status: "Pending"}, headers)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/admin/patents",
		store.Patent{Number: "US 1", Title: "Widget", Status: store.PatentStatusAwarded}, headers)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/patents", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var patents []store.Patent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &patents))
	require.Len(t, patents, 1)
	assert.Equal(t, store.PatentStatusAwarded, patents[0].Status)
}

func TestAdminExperienceCRUD(t *testing.T) {
	ts := newTestServer(t)
	headers := ts.adminHeaders(t)

	rec := ts.do(t, http.MethodPost, "/api/admin/experience",
		store.Experience{Company: "Acme", Role: "Engineer", Achievements: []string{"Shipped X"}}, headers)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created store.Experience
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	created.Role = "Principal Engineer"
	rec = ts.do(t, http.MethodPut, fmt.Sprintf("/api/admin/experience/%d", created.ID), created, headers)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/experience/%d", created.ID), nil, headers)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/experience/%d", created.ID), nil, headers)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicBlogHidesDrafts(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.store.CreateBlogPost(&store.BlogPost{Slug: "draft", Title: "Draft"}))
	require.NoError(t, ts.store.CreateBlogPost(&store.BlogPost{Slug: "live", Title: "Live", Published: true}))

	rec := ts.do(t, http.MethodGet, "/api/blog/posts", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []store.BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "live", posts[0].Slug)

	rec = ts.do(t, http.MethodGet, "/api/blog/posts/draft", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/blog/posts/live", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
