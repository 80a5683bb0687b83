package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type sessionResponse struct {
	ID           string `json:"id"`
	Locale       string `json:"locale"`
	Mode         string `json:"mode"`
	HistoryCount int    `json:"history_count"`
}

type localeRequest struct {
	Locale string `json:"locale"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type detectionResponse struct {
	Label      string  `json:"label"`
	Confidence float32 `json:"confidence"`
}

type fieldResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type blockResponse struct {
	Label      string          `json:"label"`
	Confidence float32         `json:"confidence"`
	Title      string          `json:"title"`
	Found      bool            `json:"found"`
	Fields     []fieldResponse `json:"fields,omitempty"`
}

type recognizeResponse struct {
	Outcome      string          `json:"outcome"`
	Header       string          `json:"header"`
	Message      string          `json:"message,omitempty"`
	Caption      string          `json:"caption,omitempty"`
	HistoryIndex int             `json:"history_index,omitempty"`
	Blocks       []blockResponse `json:"blocks"`
}

type historyEntryResponse struct {
	Number     int                 `json:"number"`
	Title      string              `json:"title"`
	Caption    string              `json:"caption"`
	Labels     []string            `json:"labels"`
	Detections []detectionResponse `json:"detections"`
	ImageURL   string              `json:"image_url"`
	RecordedAt time.Time           `json:"recorded_at"`
}

type historyResponse struct {
	Title   string                 `json:"title"`
	Message string                 `json:"message,omitempty"`
	Entries []historyEntryResponse `json:"entries"`
}

func errorResponse(code int, message string) fiber.Map {
	return fiber.Map{"code": code, "message": message}
}
