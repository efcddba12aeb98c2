package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"studymate/models"
	"studymate/store"
)

const (
	chatNoteLimit    = 5
	chatHistoryLimit = 10

	chatTemperature = 0.7
	chatMaxTokens   = 1000

	// Substituted when the provider succeeds but returns no text; this string
	// is persisted as the assistant turn instead of emptiness.
	emptyReplyFallback = "Sorry, I could not generate a response."
)

const tutorPromptFormat = `You are a helpful study tutor. Your role is to help the student understand their course material better.
Be clear, concise, and encouraging. Ask follow-up questions when appropriate to deepen understanding.

Relevant Notes:
%s

Previous Conversation:
%s

Respond as a helpful tutor. Keep responses clear and educational.`

// ChatService runs one tutor exchange end to end: resolve the subject's chat,
// persist the user turn, build grounding context, request a completion, and
// persist the assistant turn.
type ChatService struct {
	store     store.Store
	generator TextGenerator
}

func NewChatService(st store.Store, gen TextGenerator) *ChatService {
	return &ChatService{store: st, generator: gen}
}

// Send appends the user's message to the subject's chat and returns the
// assistant's reply. The user turn is persisted before the completion call, so
// a provider failure still leaves it recorded; the assistant turn is persisted
// only on success.
func (s *ChatService) Send(ctx context.Context, userID, subjectID uuid.UUID, message string) (string, error) {
	chat, err := s.resolveChat(subjectID, userID)
	if err != nil {
		return "", err
	}

	userTurn := models.ChatMessage{
		ChatID:  chat.ID,
		Role:    models.RoleUser,
		Content: message,
	}
	if err := s.store.AppendMessage(&userTurn); err != nil {
		return "", fmt.Errorf("persist user message: %w", err)
	}

	notes, err := s.store.LatestNotes(subjectID, userID, chatNoteLimit)
	if err != nil {
		return "", fmt.Errorf("load notes: %w", err)
	}
	history, err := s.store.LatestMessages(chat.ID, chatHistoryLimit)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}

	reply, err := s.generator.GenerateText(ctx, CompletionRequest{
		System:      fmt.Sprintf(tutorPromptFormat, RenderNotes(notes, chatNoteSeparator), RenderHistory(history)),
		User:        message,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}
	if reply == "" {
		reply = emptyReplyFallback
	}

	assistantTurn := models.ChatMessage{
		ChatID:  chat.ID,
		Role:    models.RoleAssistant,
		Content: reply,
	}
	if err := s.store.AppendMessage(&assistantTurn); err != nil {
		return "", fmt.Errorf("persist assistant message: %w", err)
	}

	return reply, nil
}

// Transcript returns the chat's messages in chronological order, or nothing if
// the user has never chatted about the subject.
func (s *ChatService) Transcript(subjectID, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	chat, found, err := s.store.FindChat(subjectID, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return s.store.LatestMessages(chat.ID, limit)
}

// resolveChat looks up the subject's chat and creates it when absent. The
// lookup and create are not atomic: two racing first messages can each observe
// "absent" and create separate chats. That duplicate is tolerated rather than
// prevented; FindChat settles on the oldest row afterwards.
func (s *ChatService) resolveChat(subjectID, userID uuid.UUID) (models.Chat, error) {
	chat, found, err := s.store.FindChat(subjectID, userID)
	if err != nil {
		return models.Chat{}, fmt.Errorf("find chat: %w", err)
	}
	if found {
		return chat, nil
	}
	chat = models.Chat{UserID: userID, SubjectID: subjectID}
	if err := s.store.CreateChat(&chat); err != nil {
		return models.Chat{}, fmt.Errorf("create chat: %w", err)
	}
	return chat, nil
}
