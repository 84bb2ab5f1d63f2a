package handlers

import (
	"encoding/json"
	"errors"
	"log"

	"chartboard/internal/chart/generator"
	chart "chartboard/internal/chart/handlers"
	chartmodels "chartboard/internal/chart/models"
	"chartboard/internal/dashboard/models"
	"chartboard/internal/dashboard/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Dashboard Handlers
// ============================================================

type Handler struct {
	chat  *service.ChatHistory
	cards *service.Cards
}

func New(chat *service.ChatHistory, cards *service.Cards) *Handler {
	return &Handler{chat: chat, cards: cards}
}

// Register вешает маршруты /chat и /cards.
func (h *Handler) Register(router fiber.Router) {
	router.Get("/chat", h.ListMessages)
	router.Post("/chat", h.Ask)
	router.Delete("/chat", h.ClearChat)

	router.Get("/cards", h.ListCards)
	router.Post("/cards", h.AddCard)
	router.Patch("/cards/:id", h.UpdateCard)
	router.Delete("/cards/:id", h.RemoveCard)
	router.Post("/cards/:id/move", h.MoveCard)
	router.Get("/cards/:id/render", h.RenderCard)
}

// ============================================================
// Chat
// ============================================================

type askRequest struct {
	Question string `json:"question"`
}

func (h *Handler) ListMessages(c fiber.Ctx) error {
	messages, err := h.chat.List(c.Context())
	if err != nil {
		return fail(c, "[CHAT]", err)
	}
	return c.JSON(messages)
}

// Ask добавляет вопрос и сгенерированный ответ, возвращает обе записи.
func (h *Handler) Ask(c fiber.Ctx) error {
	var req askRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		log.Printf("[CHAT] Decode error: %v", err)
		return c.Status(400).JSON(fiber.Map{
			"error": "invalid JSON payload",
		})
	}

	added, err := h.chat.Ask(c.Context(), req.Question)
	if err != nil {
		return fail(c, "[CHAT]", err)
	}

	log.Printf("[CHAT] %q -> %s chart", req.Question, added[len(added)-1].Spec.Type)
	return c.Status(fiber.StatusCreated).JSON(added)
}

func (h *Handler) ClearChat(c fiber.Ctx) error {
	if err := h.chat.Clear(c.Context()); err != nil {
		return fail(c, "[CHAT]", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================
// Cards
// ============================================================

// addCardRequest закрепляет либо спеку, либо ответ из чата.
type addCardRequest struct {
	Spec      *chartmodels.ChartSpec `json:"spec,omitempty"`
	MessageID string                 `json:"messageId,omitempty"`
}

type moveRequest struct {
	TargetID string `json:"targetId"`
}

func (h *Handler) ListCards(c fiber.Ctx) error {
	cards, err := h.cards.List(c.Context())
	if err != nil {
		return fail(c, "[CARDS]", err)
	}
	return c.JSON(cards)
}

func (h *Handler) AddCard(c fiber.Ctx) error {
	var req addCardRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		log.Printf("[CARDS] Decode error: %v", err)
		return c.Status(400).JSON(fiber.Map{
			"error": "invalid JSON payload",
		})
	}

	var (
		card models.Card
		err  error
	)
	switch {
	case req.MessageID != "":
		card, err = h.cards.AddFromMessage(c.Context(), h.chat, req.MessageID)
	case req.Spec != nil:
		card, err = h.cards.Add(c.Context(), *req.Spec)
	default:
		err = service.ErrNoSpec
	}
	if err != nil {
		return fail(c, "[CARDS]", err)
	}

	log.Printf("[CARDS] pinned %s (%s)", card.ID, card.Spec.Type)
	return c.Status(fiber.StatusCreated).JSON(card)
}

func (h *Handler) UpdateCard(c fiber.Ctx) error {
	var patch models.CardPatch
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		log.Printf("[CARDS] Decode error: %v", err)
		return c.Status(400).JSON(fiber.Map{
			"error": "invalid JSON payload",
		})
	}

	card, err := h.cards.Update(c.Context(), c.Params("id"), patch)
	if err != nil {
		return fail(c, "[CARDS]", err)
	}
	return c.JSON(card)
}

func (h *Handler) RemoveCard(c fiber.Ctx) error {
	if err := h.cards.Remove(c.Context(), c.Params("id")); err != nil {
		return fail(c, "[CARDS]", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MoveCard переставляет карточку на место targetId и возвращает новый порядок.
func (h *Handler) MoveCard(c fiber.Ctx) error {
	var req moveRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil || req.TargetID == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "targetId required",
		})
	}

	cards, err := h.cards.Move(c.Context(), c.Params("id"), req.TargetID)
	if err != nil {
		return fail(c, "[CARDS]", err)
	}
	return c.JSON(cards)
}

// RenderCard отрисовывает сохранённую карточку в ?format= (svg по умолчанию).
func (h *Handler) RenderCard(c fiber.Ctx) error {
	card, err := h.cards.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, "[CARDS]", err)
	}
	return chart.SendChart(c, &card.Spec, c.Query("format"))
}

// fail логирует ошибку и отвечает кодом по её типу.
func fail(c fiber.Ctx, tag string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrCardNotFound), errors.Is(err, service.ErrMessageNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrNoSpec), errors.Is(err, service.ErrNoChartType), errors.Is(err, generator.ErrEmptyQuestion):
		status = fiber.StatusBadRequest
	}

	log.Printf("%s %s %s: %v", tag, c.Method(), c.Path(), err)
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
