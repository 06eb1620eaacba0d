package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/iudanet/marmitaria/pkg/api"
)

// Schema describes how a successful body of an endpoint is normalized
type Schema int

const (
	// SchemaJSON bodies are coerced into an envelope or a page
	SchemaJSON Schema = iota
	// SchemaRaw bodies are returned byte-identical (token issuance, CSV exports)
	SchemaRaw
)

// Kind is the shape of a normalized success body
type Kind int

const (
	KindRaw Kind = iota
	KindEnvelope
	KindPage
)

func (k Kind) String() string {
	switch k {
	case KindEnvelope:
		return "envelope"
	case KindPage:
		return "page"
	default:
		return "raw"
	}
}

// RetryState tracks whether a logical request has already been resubmitted after a refresh
type RetryState int

const (
	Fresh RetryState = iota
	Retried
)

const (
	pathToken   = "/token/"
	pathRefresh = "/token/refresh/"
)

// Request describes one logical call to the backend
type Request struct {
	Body   any
	Query  url.Values
	Method string
	Path   string
	Schema Schema
	// Public requests carry no Authorization header and never trigger a refresh
	Public bool
}

// Response is a successful, normalized backend response
type Response struct {
	Header     http.Header
	RequestID  string
	Body       []byte
	StatusCode int
	Kind       Kind
	// Wrapped is true when the backend body was not enveloped and the client wrapped it
	Wrapped bool
}

// payloadBody читает только полезные поля: success может быть не bool
type payloadBody struct {
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Data     json.RawMessage `json:"data"`
	Results  json.RawMessage `json:"results"`
	Message  json.RawMessage `json:"message"`
	Count    int             `json:"count"`
}

// Decode unmarshals the payload: data for an envelope, results for a page, the body otherwise
func (r *Response) Decode(v any) error {
	payload := r.Body

	if r.Kind != KindRaw {
		var body payloadBody
		if err := json.Unmarshal(r.Body, &body); err != nil {
			return fmt.Errorf("failed to decode %s: %w", r.Kind, err)
		}
		payload = body.Data
		if r.Kind == KindPage {
			payload = body.Results
		}
	}

	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Message returns the backend message of an envelope, e.g. "Pedido criado com sucesso!"
func (r *Response) Message() string {
	if r.Kind != KindEnvelope {
		return ""
	}
	var body payloadBody
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return ""
	}
	var msg string
	if err := json.Unmarshal(body.Message, &msg); err != nil {
		return ""
	}
	return msg
}

// Page returns pagination metadata; nil unless Kind is KindPage
func (r *Response) Page() (*api.Page, error) {
	if r.Kind != KindPage {
		return nil, nil
	}
	var body payloadBody
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return nil, fmt.Errorf("failed to decode page: %w", err)
	}
	return &api.Page{
		Next:     body.Next,
		Previous: body.Previous,
		Results:  body.Results,
		Count:    body.Count,
	}, nil
}

// Do sends a logical request through the pipeline.
// A 401 on a non-public request triggers at most one refresh and one resubmission.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	// Один X-Request-ID на логический запрос, включая повтор
	return c.send(ctx, req, uuid.NewString(), Fresh)
}

func (c *Client) send(ctx context.Context, req Request, requestID string, state RetryState) (*Response, error) {
	status, header, body, err := c.roundTrip(ctx, req, requestID)
	if err != nil {
		return nil, err
	}

	if status >= 200 && status < 300 {
		return normalizeSuccess(req.Schema, status, header, body, requestID), nil
	}

	respErr := newResponseError(req.Method, req.Path, requestID, status, body)

	if status == http.StatusUnauthorized && !req.Public && state == Fresh {
		if err := c.refreshSession(ctx); err != nil {
			if errors.Is(err, ErrNoRefreshToken) {
				return nil, respErr
			}
			return nil, err
		}
		return c.send(ctx, req, requestID, Retried)
	}

	return nil, respErr
}

// roundTrip выполняет один HTTP запрос и читает тело ответа
func (c *Client) roundTrip(ctx context.Context, req Request, requestID string) (int, http.Header, []byte, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		jsonData, err := json.Marshal(req.Body)
		if err != nil {
			return 0, nil, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bodyReader)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if req.Schema == SchemaJSON {
		httpReq.Header.Set("Accept", "application/json")
	}

	if !req.Public {
		token, err := c.creds.AccessToken(ctx)
		if err != nil {
			return 0, nil, nil, fmt.Errorf("failed to read access token: %w", err)
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%s %s: request failed: %w", req.Method, req.Path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%s %s: failed to read response body: %w", req.Method, req.Path, err)
	}

	return resp.StatusCode, resp.Header, respBody, nil
}

// normalizeSuccess приводит успешный ответ к конверту или странице
func normalizeSuccess(schema Schema, status int, header http.Header, body []byte, requestID string) *Response {
	resp := &Response{
		Header:     header,
		RequestID:  requestID,
		Body:       body,
		StatusCode: status,
		Kind:       KindRaw,
	}

	// Пустое тело (204 на DELETE) не оборачиваем
	if schema == SchemaRaw || len(bytes.TrimSpace(body)) == 0 {
		return resp
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err == nil {
		// null, false, 0 и "" отдаются как есть
		if !truthy(decoded) {
			return resp
		}
		if obj, ok := decoded.(map[string]any); ok {
			// {"success": true, "results": [...]} тоже страница
			if truthy(obj["results"]) {
				resp.Kind = KindPage
				return resp
			}
			// success проверяется на истинность, не только на true
			if truthy(obj["success"]) {
				resp.Kind = KindEnvelope
				return resp
			}
		}
	}

	// Не JSON-объект (массив, строка) или объект без success/results
	data := json.RawMessage(body)
	if !json.Valid(body) {
		data, _ = json.Marshal(string(body))
	}
	wrapped, _ := json.Marshal(api.Envelope{Success: true, Data: data})

	resp.Body = wrapped
	resp.Kind = KindEnvelope
	resp.Wrapped = true
	return resp
}
