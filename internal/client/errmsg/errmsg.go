// Package errmsg turns client errors into the messages shown to the operator.
package errmsg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/iudanet/marmitaria/internal/client/api"
)

// Сообщения для пользователя
const (
	MsgUnknown      = "Ocorreu um erro desconhecido"
	MsgConnection   = "Erro de conexão. Verifique sua internet e tente novamente."
	MsgUnauthorized = "Sessão expirada. Por favor, faça login novamente."
	MsgForbidden    = "Você não tem permissão para realizar esta ação."
	MsgNotFound     = "Recurso não encontrado."
	MsgServer       = "Erro interno do servidor. Tente novamente mais tarde."
	MsgGeneric      = "Ocorreu um erro"
)

// Message returns a non-empty, human-readable message for any error, including nil
func Message(err error) string {
	if err == nil {
		return MsgUnknown
	}

	var respErr *api.ResponseError
	if !errors.As(err, &respErr) {
		// Ответа нет: сеть, таймаут, отмена
		return MsgConnection
	}

	switch status := respErr.StatusCode; {
	case status == http.StatusUnauthorized:
		return MsgUnauthorized
	case status == http.StatusForbidden:
		return MsgForbidden
	case status == http.StatusNotFound:
		return MsgNotFound
	case status >= http.StatusInternalServerError:
		return MsgServer
	}

	if msg := messageFromBody(respErr.Body); msg != "" {
		return msg
	}

	text := http.StatusText(respErr.StatusCode)
	if text == "" {
		text = MsgGeneric
	}
	return fmt.Sprintf("Erro %d: %s", respErr.StatusCode, text)
}

// messageFromBody: error, detail, первая ошибка первого поля, message
func messageFromBody(body []byte) string {
	fields, ok := decodeObject(body)
	if !ok {
		return ""
	}

	for _, key := range []string{"error", "detail"} {
		if s := asString(fields.get(key)); s != "" {
			return s
		}
	}

	if first, ok := fields.first(); ok {
		var list []json.RawMessage
		if err := json.Unmarshal(first, &list); err == nil {
			if len(list) > 0 {
				if s := asString(list[0]); s != "" {
					return s
				}
			}
		} else if s := asString(first); s != "" {
			return s
		}
	}

	return asString(fields.get("message"))
}

// ValidationErrors returns the backend field map: the body itself when it is an object
// without an error field, otherwise its errors member. Empty map when there is none.
func ValidationErrors(err error) map[string][]string {
	result := map[string][]string{}

	var respErr *api.ResponseError
	if !errors.As(err, &respErr) {
		return result
	}

	fields, ok := decodeObject(respErr.Body)
	if !ok {
		return result
	}

	source := fields
	if present(fields.get("error")) {
		nested, ok := decodeObject(fields.get("errors"))
		if !ok {
			return result
		}
		source = nested
	}

	for _, f := range source {
		if msgs := asStrings(f.value); len(msgs) > 0 {
			result[f.key] = msgs
		}
	}
	return result
}

// IsValidationError reports a 400 that carries field errors
func IsValidationError(err error) bool {
	var respErr *api.ResponseError
	if !errors.As(err, &respErr) || respErr.StatusCode != http.StatusBadRequest {
		return false
	}
	return len(ValidationErrors(err)) > 0
}

// field пара ключ/значение JSON объекта в порядке документа
type field struct {
	key   string
	value json.RawMessage
}

type object []field

func (o object) get(key string) json.RawMessage {
	for _, f := range o {
		if f.key == key {
			return f.value
		}
	}
	return nil
}

func (o object) first() (json.RawMessage, bool) {
	if len(o) == 0 {
		return nil, false
	}
	return o[0].value, true
}

// decodeObject разбирает JSON объект, сохраняя порядок ключей
func decodeObject(data []byte) (object, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}

	var obj object
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := tok.(string)
		if !ok {
			return nil, false
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		obj = append(obj, field{key: key, value: value})
	}
	return obj, true
}

func asString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// asStrings принимает ["a", "b"], "a" и вложенные объекты {"0": ["a"]}
func asStrings(raw json.RawMessage) []string {
	if s := asString(raw); s != "" {
		return []string{s}
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		var out []string
		for _, item := range list {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	if nested, ok := decodeObject(raw); ok {
		var out []string
		for _, f := range nested {
			out = append(out, asStrings(f.value)...)
		}
		return out
	}
	return nil
}

// present значение задано и не пустое: не null, не "", не false
func present(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", `""`, "false", "0":
		return false
	}
	return true
}
