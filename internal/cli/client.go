package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	chart "chartboard/internal/chart/models"
	"chartboard/internal/dashboard/models"
)

// ============================================================
// Gateway Client
// ============================================================

const apiPrefix = "/api/v1"

// APIError ответ сервиса с кодом >= 400.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client ходит в gateway по REST.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + apiPrefix,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Ask(ctx context.Context, question string) ([]models.Message, error) {
	var added []models.Message
	err := c.do(ctx, http.MethodPost, "/chat", map[string]string{"question": question}, &added)
	return added, err
}

func (c *Client) History(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	err := c.do(ctx, http.MethodGet, "/chat", nil, &messages)
	return messages, err
}

func (c *Client) ClearChat(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/chat", nil, nil)
}

func (c *Client) Cards(ctx context.Context) ([]models.Card, error) {
	var cards []models.Card
	err := c.do(ctx, http.MethodGet, "/cards", nil, &cards)
	return cards, err
}

// Pin закрепляет ответ ассистента на дашборде.
func (c *Client) Pin(ctx context.Context, messageID string) (models.Card, error) {
	var card models.Card
	err := c.do(ctx, http.MethodPost, "/cards", map[string]string{"messageId": messageID}, &card)
	return card, err
}

func (c *Client) PinSpec(ctx context.Context, spec *chart.ChartSpec) (models.Card, error) {
	var card models.Card
	err := c.do(ctx, http.MethodPost, "/cards", map[string]any{"spec": spec}, &card)
	return card, err
}

func (c *Client) UpdateCard(ctx context.Context, id string, patch models.CardPatch) (models.Card, error) {
	var card models.Card
	err := c.do(ctx, http.MethodPatch, "/cards/"+url.PathEscape(id), patch, &card)
	return card, err
}

func (c *Client) RemoveCard(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+url.PathEscape(id), nil, nil)
}

func (c *Client) MoveCard(ctx context.Context, id, targetID string) ([]models.Card, error) {
	var cards []models.Card
	err := c.do(ctx, http.MethodPost, "/cards/"+url.PathEscape(id)+"/move", map[string]string{"targetId": targetID}, &cards)
	return cards, err
}

// RenderCard скачивает отрисованную карточку.
func (c *Client) RenderCard(ctx context.Context, id, format string) ([]byte, error) {
	path := "/cards/" + url.PathEscape(id) + "/render?format=" + url.QueryEscape(format)
	var raw []byte
	err := c.do(ctx, http.MethodGet, path, nil, &raw)
	return raw, err
}

// do отправляет запрос. Если out имеет тип *[]byte, туда кладётся
// тело как есть, иначе оно разбирается как JSON.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var e struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	switch dst := out.(type) {
	case nil:
		return nil
	case *[]byte:
		*dst = data
		return nil
	default:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
}
