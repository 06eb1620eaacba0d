package api

import "encoding/json"

// Envelope стандартная обёртка успешного ответа: {"success": true, "data": ...}
type Envelope struct {
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
}

// Page пагинированный список DRF: {"count": N, "results": [...]}
type Page struct {
	Next     *string         `json:"next,omitempty"`
	Previous *string         `json:"previous,omitempty"`
	Results  json.RawMessage `json:"results"`
	Count    int             `json:"count"`
	Success  bool            `json:"success,omitempty"`
}

// ErrorBody нормализованное тело ошибки: {"success": false, "error": "...", "errors": ...}
type ErrorBody struct {
	Error   string          `json:"error"`
	Errors  json.RawMessage `json:"errors,omitempty"`
	Success bool            `json:"success"`
}
