package proxy

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Proxy Handler
// ============================================================

const upstreamTimeout = 30 * time.Second

var client = &http.Client{Timeout: upstreamTimeout}

// forwardHeaders заголовки запроса, которые передаются апстриму.
var forwardHeaders = []string{"Content-Type", "Accept", "Authorization"}

// ProxyTo прокси запрос к другому сервису
func ProxyTo(targetURL string) fiber.Handler {
	return func(c fiber.Ctx) error {
		return Forward(c, targetURL)
	}
}

// Mount проксирует всё под prefix в baseURL, сохраняя хвост пути
// и строку запроса: /api/v1/cards/x -> baseURL/cards/x.
func Mount(prefix, baseURL string) fiber.Handler {
	return func(c fiber.Ctx) error {
		path := strings.TrimPrefix(c.Path(), prefix)
		return Forward(c, baseURL+path)
	}
}

// Forward проксирует запрос по переданному URL (для динамических путей).
// Строка запроса исходного запроса добавляется к URL.
func Forward(c fiber.Ctx, targetURL string) error {
	if query := string(c.Request().URI().QueryString()); query != "" {
		targetURL += "?" + query
	}

	log.Printf("[PROXY] %s %s -> %s (%d bytes)", c.Method(), c.Path(), targetURL, len(c.Body()))

	req, err := http.NewRequestWithContext(c.Context(), c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		log.Printf("[PROXY] build request error: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "proxy failed"})
	}

	for _, key := range forwardHeaders {
		if value := c.Get(key); value != "" {
			req.Header.Set(key, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[PROXY] Error: %v", err)
		return c.Status(502).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}
	defer resp.Body.Close()

	return copyResponse(c, resp)
}

func copyResponse(c fiber.Ctx, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[PROXY] Read response error: %v", err)
		return c.Status(502).JSON(fiber.Map{"error": "invalid upstream response"})
	}

	for key, values := range resp.Header {
		if len(values) > 0 && !hopByHop(key) {
			c.Set(key, values[0])
		}
	}

	c.Status(resp.StatusCode)
	return c.Send(data)
}

func hopByHop(key string) bool {
	switch http.CanonicalHeaderKey(key) {
	case "Connection", "Keep-Alive", "Transfer-Encoding", "Content-Length", "Upgrade":
		return true
	}
	return false
}
