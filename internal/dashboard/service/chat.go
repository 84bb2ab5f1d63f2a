package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"chartboard/internal/chart/generator"
	chart "chartboard/internal/chart/models"
	"chartboard/internal/dashboard/models"
)

// ============================================================
// Chat History
// ============================================================

const assistantReply = "Generated a visualization based on your question."

var ErrMessageNotFound = errors.New("message not found")

type ChatHistory struct {
	mu       sync.Mutex
	messages collection[models.Message]
	generate func(string) (*chart.ChartSpec, error)
}

func NewChatHistory(store Store) *ChatHistory {
	return &ChatHistory{
		messages: collection[models.Message]{store: store, key: ChatMessagesKey},
		generate: generator.Generate,
	}
}

// List возвращает переписку в порядке добавления.
func (h *ChatHistory) List(ctx context.Context) ([]models.Message, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.messages.load(ctx)
}

// Ask добавляет вопрос пользователя и ответ со сгенерированной спекой.
// Возвращает обе новые записи.
func (h *ChatHistory) Ask(ctx context.Context, question string) ([]models.Message, error) {
	q := strings.TrimSpace(question)
	spec, err := h.generate(q)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	messages, err := h.messages.load(ctx)
	if err != nil {
		return nil, err
	}

	added := []models.Message{
		{ID: newID("msg"), Role: models.RoleUser, Content: q},
		{ID: newID("msg"), Role: models.RoleAssistant, Content: assistantReply, Spec: spec},
	}
	if err := h.messages.save(ctx, append(messages, added...)); err != nil {
		return nil, fmt.Errorf("save chat: %w", err)
	}
	return added, nil
}

// Find ищет сообщение по id.
func (h *ChatHistory) Find(ctx context.Context, id string) (models.Message, error) {
	messages, err := h.List(ctx)
	if err != nil {
		return models.Message{}, err
	}
	for _, m := range messages {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Message{}, ErrMessageNotFound
}

func (h *ChatHistory) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.messages.save(ctx, []models.Message{})
}
