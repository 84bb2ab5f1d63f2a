package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger возвращает настроенный middleware для логирования запросов.
// В строку попадают query (формат рендера) и тип ответа.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}${queryParams} | ${respHeader:Content-Type} ${bytesSent}b\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
