package models

import chart "chartboard/internal/chart/models"

// ============================================================
// Chat & Dashboard Models
// ============================================================

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	ID      string           `json:"id"`
	Role    string           `json:"role"`
	Content string           `json:"content"`
	Spec    *chart.ChartSpec `json:"spec,omitempty"`
}

type Layout struct {
	ColSpan int `json:"colSpan"`
}

// Card сохранённая на дашборде визуализация.
type Card struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	CreatedAt int64           `json:"createdAt"`
	Spec      chart.ChartSpec `json:"spec"`
	Layout    Layout          `json:"layout"`
}

// CardPatch частичное обновление карточки.
type CardPatch struct {
	Title   *string `json:"title,omitempty"`
	ColSpan *int    `json:"colSpan,omitempty"`
}
