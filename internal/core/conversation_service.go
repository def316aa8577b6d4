package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/janedoe/portfolio-server/internal/store"
)

const (
	completionTimeout = 30 * time.Second

	// Persisted instead of an empty assistant message when the provider
	// returns no usable content.
	fallbackReply = "I'm sorry, I couldn't come up with an answer to that. Please try asking in a different way."

	personaInstruction = "You are the assistant on a personal portfolio website. " +
		"Answer questions about the site owner's background using only the reference " +
		"material below. If a question is about something the material does not cover, " +
		"say so politely and steer back to the owner's work. Do not make up information.\n\n" +
		"--- REFERENCE MATERIAL ---\n%s\n--- END REFERENCE MATERIAL ---"
)

// ChatStore is the conversation/message slice of the store.
// *store.SQLiteStore satisfies it.
type ChatStore interface {
	CreateConversation() (*store.Conversation, error)
	GetConversation(id string) (*store.Conversation, error)
	CreateMessage(msg *store.Message) error
	GetMessages(conversationID string) ([]store.Message, error)
}

// ConversationService owns the request/response cycle for a chat turn:
// validate conversation, persist the user message, assemble grounding
// context, call the completion gateway, persist the reply.
type ConversationService struct {
	chatStore ChatStore
	builder   *ContextBuilder
	completer Completer
	logger    *zap.Logger

	// Serializes SendMessage/RetryLastTurn per conversation so concurrent
	// submits cannot interleave message persistence.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewConversationService(chatStore ChatStore, builder *ContextBuilder, completer Completer, logger *zap.Logger) *ConversationService {
	return &ConversationService{
		chatStore: chatStore,
		builder:   builder,
		completer: completer,
		logger:    logger,
		locks:     make(map[string]*sync.Mutex),
	}
}

// conversationLock returns the mutex guarding one conversation's write
// sequence. Locks are never reclaimed; conversation counts stay small on
// a personal site.
func (s *ConversationService) conversationLock(conversationID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[conversationID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[conversationID] = lock
	}
	return lock
}

func (s *ConversationService) StartConversation() (*store.Conversation, error) {
	conv, err := s.chatStore.CreateConversation()
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

func (s *ConversationService) GetConversation(conversationID string) (*store.Conversation, error) {
	conv, err := s.chatStore.GetConversation(conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

func (s *ConversationService) GetMessages(conversationID string) ([]store.Message, error) {
	if _, err := s.GetConversation(conversationID); err != nil {
		return nil, err
	}
	return s.chatStore.GetMessages(conversationID)
}

// SendMessage runs one conversation turn. The user message is persisted
// before the gateway call and survives a completion failure; the
// assistant message is persisted only on success, so history reads never
// observe a reply without its question.
func (s *ConversationService) SendMessage(ctx context.Context, conversationID, userText string) (*store.Message, *store.Message, error) {
	lock := s.conversationLock(conversationID)
	lock.Lock()
	defer lock.Unlock()

	conv, err := s.chatStore.GetConversation(conversationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to verify conversation: %w", err)
	}
	if conv == nil {
		return nil, nil, ErrConversationNotFound
	}

	userMsg := store.Message{
		ConversationID: conversationID,
		Role:           store.RoleUser,
		Content:        userText,
	}
	if err := s.chatStore.CreateMessage(&userMsg); err != nil {
		return nil, nil, fmt.Errorf("failed to store user message: %w", err)
	}

	assistantMsg, err := s.completeTurn(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}
	return &userMsg, assistantMsg, nil
}

// RetryLastTurn re-runs the completion for the already-persisted trailing
// user message, so a failed turn can be retried without duplicating it.
func (s *ConversationService) RetryLastTurn(ctx context.Context, conversationID string) (*store.Message, error) {
	lock := s.conversationLock(conversationID)
	lock.Lock()
	defer lock.Unlock()

	conv, err := s.chatStore.GetConversation(conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify conversation: %w", err)
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	history, err := s.chatStore.GetMessages(conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation history: %w", err)
	}
	if len(history) == 0 || history[len(history)-1].Role != store.RoleUser {
		return nil, ErrNothingToRetry
	}

	return s.completeTurn(ctx, conversationID)
}

// completeTurn reads the history (whose last entry must be the user
// message for this turn), grounds and runs the completion, and persists
// the assistant reply. Callers hold the conversation lock.
func (s *ConversationService) completeTurn(ctx context.Context, conversationID string) (*store.Message, error) {
	history, err := s.chatStore.GetMessages(conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation history: %w", err)
	}

	grounding, err := s.builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build grounding context: %w", err)
	}

	turns := make([]ChatTurn, 0, len(history))
	for _, msg := range history {
		turns = append(turns, ChatTurn{Role: msg.Role, Content: msg.Content})
	}

	callCtx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	reply, err := s.completer.Complete(callCtx, fmt.Sprintf(personaInstruction, grounding), turns)
	if err != nil {
		s.logger.Error("completion gateway call failed",
			zap.String("conversation_id", conversationID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}
	if reply == "" {
		s.logger.Warn("completion gateway returned empty content",
			zap.String("conversation_id", conversationID))
		reply = fallbackReply
	}

	assistantMsg := store.Message{
		ConversationID: conversationID,
		Role:           store.RoleAssistant,
		Content:        reply,
	}
	if err := s.chatStore.CreateMessage(&assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to store assistant message: %w", err)
	}
	return &assistantMsg, nil
}
