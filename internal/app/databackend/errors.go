package databackend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrInvalidResponse тело успешного ответа не соответствует схеме
	ErrInvalidResponse = errors.New("data backend returned an invalid response")
	// ErrInvalidQuery запрос не прошёл проверку схемы перед отправкой
	ErrInvalidQuery = errors.New("invalid query for data backend")
)

const maxErrorMessageLen = 512

// UpstreamError любой ответ бэкенда не из диапазона 2xx, а также сбой транспорта
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("data backend request failed: %d", e.StatusCode)
	}
	return fmt.Sprintf("data backend request failed: %d: %s", e.StatusCode, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// AsUpstream извлекает UpstreamError из цепочки ошибок
func AsUpstream(err error) (*UpstreamError, bool) {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream, true
	}
	return nil, false
}

func newTransportError(err error) *UpstreamError {
	return &UpstreamError{
		StatusCode: http.StatusBadGateway,
		Message:    "data backend unreachable",
		Err:        err,
	}
}

// errorMessage достаёт сообщение из тела ответа об ошибке, если оно есть
func errorMessage(body []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "message", "error"} {
			switch v := payload[key].(type) {
			case string:
				return truncate(v)
			case nil:
				continue
			default:
				if encoded, err := json.Marshal(v); err == nil {
					return truncate(string(encoded))
				}
			}
		}
		return ""
	}
	return truncate(strings.TrimSpace(string(body)))
}

func truncate(s string) string {
	if len(s) > maxErrorMessageLen {
		return s[:maxErrorMessageLen]
	}
	return s
}
