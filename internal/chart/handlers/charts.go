package handlers

import (
	"encoding/json"
	"errors"
	"log"

	"chartboard/internal/chart/engine"
	"chartboard/internal/chart/models"
	"chartboard/internal/chart/render"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Chart Handlers
// ============================================================

// CompileChart компилирует спеку в план отрисовки и отдаёт его JSON.
func CompileChart(c fiber.Ctx) error {
	spec, err := DecodeSpec(c.Body())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	plan, err := engine.Compile(spec)
	if err != nil {
		log.Printf("[RENDER] Compile error: %v", err)
		return c.Status(Status(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"kind": plan.Kind(),
		"plan": plan,
	})
}

// RenderChart отрисовывает спеку в формат из ?format= (svg по умолчанию).
func RenderChart(c fiber.Ctx) error {
	spec, err := DecodeSpec(c.Body())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return SendChart(c, spec, c.Query("format"))
}

// SendChart компилирует спеку и пишет результат в ответ.
func SendChart(c fiber.Ctx, spec *models.ChartSpec, formatName string) error {
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return c.Status(Status(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	plan, err := engine.Compile(spec)
	if err != nil {
		log.Printf("[RENDER] Compile error: %v", err)
		return c.Status(Status(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	data, err := render.Encode(plan, format)
	if err != nil {
		log.Printf("[RENDER] Encode %s error: %v", format, err)
		return c.Status(Status(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	log.Printf("[RENDER] %s plan as %s, %d bytes", plan.Kind(), format, len(data))
	c.Set("Content-Type", format.ContentType())
	if format == render.FormatXLSX {
		c.Set("Content-Disposition", `attachment; filename="chart.xlsx"`)
	}
	return c.Send(data)
}

// Status переводит ошибку компиляции/отрисовки в HTTP-код.
func Status(err error) int {
	switch {
	case errors.Is(err, engine.ErrMissingSpec),
		errors.Is(err, engine.ErrMissingType),
		errors.Is(err, render.ErrUnknownFormat):
		return fiber.StatusBadRequest
	case render.IsUndrawable(err):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

var (
	errBodyRequired = errors.New("body required")
	errInvalidJSON  = errors.New("invalid JSON payload")
)

// DecodeSpec разбирает тело запроса. JSON null даёт nil-спеку,
// её отклонит компилятор.
func DecodeSpec(body []byte) (*models.ChartSpec, error) {
	if len(body) == 0 {
		return nil, errBodyRequired
	}

	var spec *models.ChartSpec
	if err := json.Unmarshal(body, &spec); err != nil {
		log.Printf("[RENDER] Decode error: %v", err)
		return nil, errInvalidJSON
	}
	return spec, nil
}

// Register вешает маршруты /charts/*.
func Register(router fiber.Router) {
	charts := router.Group("/charts")
	charts.Post("/compile", CompileChart)
	charts.Post("/render", RenderChart)
}
