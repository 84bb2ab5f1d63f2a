package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"chartboard/internal/dashboard/models"
	"chartboard/internal/dashboard/service"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lineSpec = `{"type":"line","title":"Visits","data":[{"m":"Jan","v":1},{"m":"Feb","v":5}],"xKey":"m","yKey":"v"}`

func newTestApp() *fiber.App {
	store := service.NewMemoryStore()
	app := fiber.New()
	New(service.NewChatHistory(store), service.NewCards(store)).Register(app)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string, out any) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(data, out), string(data))
	}
	return resp.StatusCode
}

func TestChatFlow(t *testing.T) {
	app := newTestApp()

	var added []models.Message
	code := call(t, app, fiber.MethodPost, "/chat", `{"question":"show me a scatter"}`, &added)
	require.Equal(t, fiber.StatusCreated, code)
	require.Len(t, added, 2)
	assert.Equal(t, "show me a scatter", added[0].Content)
	require.NotNil(t, added[1].Spec)
	assert.Equal(t, "scatter", string(added[1].Spec.Type))

	var messages []models.Message
	require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodGet, "/chat", "", &messages))
	assert.Len(t, messages, 2)

	require.Equal(t, fiber.StatusNoContent, call(t, app, fiber.MethodDelete, "/chat", "", nil))
	require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodGet, "/chat", "", &messages))
	assert.Empty(t, messages)
}

func TestAsk_BadRequests(t *testing.T) {
	app := newTestApp()

	assert.Equal(t, fiber.StatusBadRequest, call(t, app, fiber.MethodPost, "/chat", `{"question":"  "}`, nil))
	assert.Equal(t, fiber.StatusBadRequest, call(t, app, fiber.MethodPost, "/chat", `not json`, nil))
}

func TestCards_PinSpecAndMessage(t *testing.T) {
	app := newTestApp()

	var card models.Card
	require.Equal(t, fiber.StatusCreated, call(t, app, fiber.MethodPost, "/cards", `{"spec":`+lineSpec+`}`, &card))
	assert.Equal(t, "Visits", card.Title)
	assert.Equal(t, 2, card.Layout.ColSpan)

	var added []models.Message
	require.Equal(t, fiber.StatusCreated, call(t, app, fiber.MethodPost, "/chat", `{"question":"pie"}`, &added))

	var pinned models.Card
	require.Equal(t, fiber.StatusCreated, call(t, app, fiber.MethodPost, "/cards", `{"messageId":"`+added[1].ID+`"}`, &pinned))
	assert.Equal(t, "pie", string(pinned.Spec.Type))

	var errBody map[string]string
	assert.Equal(t, fiber.StatusBadRequest, call(t, app, fiber.MethodPost, "/cards", `{"messageId":"`+added[0].ID+`"}`, &errBody))
	assert.Equal(t, service.ErrNoSpec.Error(), errBody["error"])
	assert.Equal(t, fiber.StatusNotFound, call(t, app, fiber.MethodPost, "/cards", `{"messageId":"msg_nope"}`, nil))
	assert.Equal(t, fiber.StatusBadRequest, call(t, app, fiber.MethodPost, "/cards", `{}`, nil))

	errBody = nil
	assert.Equal(t, fiber.StatusBadRequest, call(t, app, fiber.MethodPost, "/cards", `{"spec":{"title":"No type","data":[]}}`, &errBody))
	assert.Equal(t, service.ErrNoChartType.Error(), errBody["error"])

	var cards []models.Card
	require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodGet, "/cards", "", &cards))
	require.Len(t, cards, 2)
	assert.Equal(t, card.ID, cards[0].ID)
	assert.Equal(t, pinned.ID, cards[1].ID)
}

func TestCards_UpdateMoveRemove(t *testing.T) {
	app := newTestApp()

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		var card models.Card
		require.Equal(t, fiber.StatusCreated, call(t, app, fiber.MethodPost, "/cards", `{"spec":`+lineSpec+`}`, &card))
		ids = append(ids, card.ID)
	}

	var updated models.Card
	require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodPatch, "/cards/"+ids[0], `{"title":"Main","colSpan":12}`, &updated))
	assert.Equal(t, "Main", updated.Title)
	assert.Equal(t, 6, updated.Layout.ColSpan)

	var moved []models.Card
	require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodPost, "/cards/"+ids[0]+"/move", `{"targetId":"`+ids[2]+`"}`, &moved))
	require.Len(t, moved, 3)
	assert.Equal(t, []string{ids[1], ids[2], ids[0]}, []string{moved[0].ID, moved[1].ID, moved[2].ID})

	assert.Equal(t, fiber.StatusBadRequest, call(t, app, fiber.MethodPost, "/cards/"+ids[0]+"/move", `{}`, nil))
	assert.Equal(t, fiber.StatusNotFound, call(t, app, fiber.MethodPost, "/cards/"+ids[0]+"/move", `{"targetId":"vis_nope"}`, nil))

	require.Equal(t, fiber.StatusNoContent, call(t, app, fiber.MethodDelete, "/cards/"+ids[1], "", nil))
	assert.Equal(t, fiber.StatusNotFound, call(t, app, fiber.MethodDelete, "/cards/"+ids[1], "", nil))
	assert.Equal(t, fiber.StatusNotFound, call(t, app, fiber.MethodPatch, "/cards/"+ids[1], `{"title":"x"}`, nil))

	var cards []models.Card
	require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodGet, "/cards", "", &cards))
	assert.Len(t, cards, 2)
}

func TestRenderCard(t *testing.T) {
	app := newTestApp()

	var card models.Card
	require.Equal(t, fiber.StatusCreated, call(t, app, fiber.MethodPost, "/cards", `{"spec":`+lineSpec+`}`, &card))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/cards/"+card.ID+"/render", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "<polyline")
	assert.Contains(t, string(body), `aria-label="Visits"`)

	assert.Equal(t, fiber.StatusNotFound, call(t, app, fiber.MethodGet, "/cards/vis_nope/render", "", nil))
}
