package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	apperrors "ereport-admin/pkg/errors"
)

// APIError - ответ API с кодом 4xx/5xx. Unwrap отдаёт сентинел из apperrors,
// поэтому errors.Is(err, apperrors.ErrNotFound) работает для любого слоя.
type APIError struct {
	Status int
	Detail string
	Fields map[string]string
	kind   error
}

// NewAPIError собирает ошибку так же, как при разборе ответа API.
func NewAPIError(status int, detail string, fields map[string]string) *APIError {
	return &APIError{Status: status, Detail: detail, Fields: fields, kind: kindForStatus(status)}
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: статус %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: статус %d", e.Status)
}

func (e *APIError) Unwrap() error { return e.kind }

func (e *APIError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	if len(e.Fields) > 0 {
		return "Проверьте правильность заполнения полей"
	}
	return e.kind.Error()
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest, status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return apperrors.ErrBadRequest
	case status == http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case status == http.StatusForbidden:
		return apperrors.ErrForbidden
	case status == http.StatusNotFound:
		return apperrors.ErrNotFound
	case status >= 500:
		return apperrors.ErrUpstreamUnavailable
	}
	return apperrors.ErrBadRequest
}

// parseAPIError разбирает тела вида {"detail": "..."} и {"field": ["msg", ...]}.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, kind: kindForStatus(status)}
	if status >= 500 {
		return apiErr
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		msg := flattenMessage(raw[key])
		if msg == "" {
			continue
		}
		switch key {
		case "detail", "non_field_errors", "message", "error":
			if apiErr.Detail == "" {
				apiErr.Detail = msg
			}
		default:
			if apiErr.Fields == nil {
				apiErr.Fields = make(map[string]string)
			}
			apiErr.Fields[key] = msg
		}
	}
	return apiErr
}

func flattenMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, " ")
	}
	return ""
}
