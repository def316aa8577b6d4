package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/janedoe/portfolio-server/internal/auth"
	"github.com/janedoe/portfolio-server/internal/core"
	"github.com/janedoe/portfolio-server/internal/store"
)

type APIHandler struct {
	contentStore  *store.SQLiteStore
	conversations *core.ConversationService
	voice         *core.VoiceGateway
	tokens        *auth.TokenIssuer
	adminPassHash string
	logger        *zap.Logger
}

func NewAPIHandler(
	contentStore *store.SQLiteStore,
	conversations *core.ConversationService,
	voice *core.VoiceGateway,
	tokens *auth.TokenIssuer,
	adminPassHash string,
	logger *zap.Logger,
) *APIHandler {
	return &APIHandler{
		contentStore:  contentStore,
		conversations: conversations,
		voice:         voice,
		tokens:        tokens,
		adminPassHash: adminPassHash,
		logger:        logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// Chat

func (h *APIHandler) ListChatPromptsHandler(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.contentStore.ListChatPrompts()
	if err != nil {
		h.logger.Error("failed to list chat prompts", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list prompts")
		return
	}
	texts := make([]string, 0, len(prompts))
	for _, p := range prompts {
		texts = append(texts, p.Text)
	}
	writeJSON(w, http.StatusOK, texts)
}

func (h *APIHandler) CreateConversationHandler(w http.ResponseWriter, r *http.Request) {
	conv, err := h.conversations.StartConversation()
	if err != nil {
		h.logger.Error("failed to create conversation", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create conversation")
		return
	}
	writeJSON(w, http.StatusCreated, conv)
}

func (h *APIHandler) GetConversationHandler(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	conv, err := h.conversations.GetConversation(conversationID)
	if err != nil {
		if errors.Is(err, core.ErrConversationNotFound) {
			writeError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		h.logger.Error("failed to get conversation", zap.String("conversation_id", conversationID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to get conversation")
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

func (h *APIHandler) GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	messages, err := h.conversations.GetMessages(conversationID)
	if err != nil {
		if errors.Is(err, core.ErrConversationNotFound) {
			writeError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		h.logger.Error("failed to get messages", zap.String("conversation_id", conversationID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to get messages")
		return
	}
	if messages == nil {
		messages = []store.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

type PostMessageRequest struct {
	Content string `json:"content"`
}

func (h *APIHandler) PostMessageHandler(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "Message content cannot be empty")
		return
	}

	userMsg, assistantMsg, err := h.conversations.SendMessage(r.Context(), conversationID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrConversationNotFound):
			writeError(w, http.StatusNotFound, "Conversation not found")
		case errors.Is(err, core.ErrCompletionFailed):
			// The user message stays persisted; the client may retry the turn.
			writeError(w, http.StatusBadGateway, "Couldn't get a response, try again")
		default:
			h.logger.Error("failed to post message", zap.String("conversation_id", conversationID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to post message")
		}
		return
	}
	writeJSON(w, http.StatusCreated, []store.Message{*userMsg, *assistantMsg})
}

func (h *APIHandler) RetryLastTurnHandler(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	assistantMsg, err := h.conversations.RetryLastTurn(r.Context(), conversationID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrConversationNotFound):
			writeError(w, http.StatusNotFound, "Conversation not found")
		case errors.Is(err, core.ErrNothingToRetry):
			writeError(w, http.StatusConflict, "No unanswered message to retry")
		case errors.Is(err, core.ErrCompletionFailed):
			writeError(w, http.StatusBadGateway, "Couldn't get a response, try again")
		default:
			h.logger.Error("failed to retry turn", zap.String("conversation_id", conversationID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to retry")
		}
		return
	}
	writeJSON(w, http.StatusCreated, assistantMsg)
}

// Voice

type TextToSpeechRequest struct {
	Text    string   `json:"text"`
	VoiceID string   `json:"voice_id,omitempty"`
	Style   *float64 `json:"style,omitempty"`
}

func (h *APIHandler) TextToSpeechHandler(w http.ResponseWriter, r *http.Request) {
	var req TextToSpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text cannot be empty")
		return
	}

	var opts *core.SynthesisOptions
	if req.VoiceID != "" || req.Style != nil {
		opts = &core.SynthesisOptions{VoiceID: req.VoiceID, Style: req.Style}
	}

	audio, err := h.voice.Synthesize(r.Context(), req.Text, opts)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrMissingCredential):
			writeError(w, http.StatusServiceUnavailable, "Voice synthesis is not configured")
		case errors.Is(err, core.ErrSynthesisFailed):
			writeError(w, http.StatusBadGateway, "Voice synthesis failed")
		default:
			h.logger.Error("text-to-speech failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Voice synthesis failed")
		}
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}
