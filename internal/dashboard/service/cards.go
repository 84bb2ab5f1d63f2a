package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	chart "chartboard/internal/chart/models"
	"chartboard/internal/dashboard/models"
)

// ============================================================
// Dashboard Cards
// ============================================================

const (
	GridColumns    = 6
	defaultColSpan = 2
	untitled       = "Untitled"
)

var (
	ErrCardNotFound = errors.New("card not found")
	ErrNoSpec       = errors.New("message has no chart spec")
	ErrNoChartType  = errors.New("chart spec has no type")
)

type Cards struct {
	mu    sync.Mutex
	cards collection[models.Card]
	now   func() time.Time
}

func NewCards(store Store) *Cards {
	return &Cards{
		cards: collection[models.Card]{store: store, key: DashboardCardsKey},
		now:   time.Now,
	}
}

func (c *Cards) List(ctx context.Context) ([]models.Card, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cards.load(ctx)
}

func (c *Cards) Get(ctx context.Context, id string) (models.Card, error) {
	cards, err := c.List(ctx)
	if err != nil {
		return models.Card{}, err
	}
	if i := indexOf(cards, id); i >= 0 {
		return cards[i], nil
	}
	return models.Card{}, ErrCardNotFound
}

// Add закрепляет спеку на дашборде новой карточкой в конце списка.
func (c *Cards) Add(ctx context.Context, spec chart.ChartSpec) (models.Card, error) {
	if spec.Type == "" {
		return models.Card{}, ErrNoChartType
	}

	title := spec.Title
	if title == "" {
		title = untitled
	}

	card := models.Card{
		ID:        newID("vis"),
		Title:     title,
		CreatedAt: c.now().UnixMilli(),
		Spec:      spec,
		Layout:    models.Layout{ColSpan: defaultColSpan},
	}

	err := c.mutate(ctx, func(cards []models.Card) ([]models.Card, error) {
		return append(cards, card), nil
	})
	if err != nil {
		return models.Card{}, err
	}
	return card, nil
}

// AddFromMessage закрепляет спеку из ответа ассистента.
func (c *Cards) AddFromMessage(ctx context.Context, chat *ChatHistory, messageID string) (models.Card, error) {
	msg, err := chat.Find(ctx, messageID)
	if err != nil {
		return models.Card{}, err
	}
	if msg.Spec == nil {
		return models.Card{}, ErrNoSpec
	}
	return c.Add(ctx, *msg.Spec)
}

// Update меняет заголовок и/или ширину карточки в колонках.
func (c *Cards) Update(ctx context.Context, id string, patch models.CardPatch) (models.Card, error) {
	var updated models.Card

	err := c.mutate(ctx, func(cards []models.Card) ([]models.Card, error) {
		i := indexOf(cards, id)
		if i < 0 {
			return nil, ErrCardNotFound
		}
		if patch.Title != nil {
			cards[i].Title = *patch.Title
		}
		if patch.ColSpan != nil {
			cards[i].Layout.ColSpan = ClampColSpan(*patch.ColSpan)
		}
		updated = cards[i]
		return cards, nil
	})
	return updated, err
}

func (c *Cards) Remove(ctx context.Context, id string) error {
	return c.mutate(ctx, func(cards []models.Card) ([]models.Card, error) {
		i := indexOf(cards, id)
		if i < 0 {
			return nil, ErrCardNotFound
		}
		return slices.Delete(cards, i, i+1), nil
	})
}

// Move переносит карточку draggedID на позицию targetID, как при
// перетаскивании: элемент вынимается и вставляется на индекс цели.
func (c *Cards) Move(ctx context.Context, draggedID, targetID string) ([]models.Card, error) {
	var result []models.Card

	err := c.mutate(ctx, func(cards []models.Card) ([]models.Card, error) {
		from, to := indexOf(cards, draggedID), indexOf(cards, targetID)
		if from < 0 || to < 0 {
			return nil, ErrCardNotFound
		}
		if from != to {
			card := cards[from]
			cards = slices.Delete(cards, from, from+1)
			cards = slices.Insert(cards, to, card)
		}
		result = cards
		return cards, nil
	})
	return result, err
}

// ClampColSpan приводит ширину карточки к [1, GridColumns].
func ClampColSpan(span int) int {
	return min(max(span, 1), GridColumns)
}

func (c *Cards) mutate(ctx context.Context, fn func([]models.Card) ([]models.Card, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cards, err := c.cards.load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(cards)
	if err != nil {
		return err
	}
	return c.cards.save(ctx, next)
}

func indexOf(cards []models.Card, id string) int {
	return slices.IndexFunc(cards, func(card models.Card) bool {
		return card.ID == id
	})
}
