package search

import (
	"errors"
	"net/http"

	"DBsentinel-Gateway/internal/app/databackend"
)

var ErrSessionNotFound = errors.New("search session not found")

func errorText(err error) string {
	if upstream, ok := databackend.AsUpstream(err); ok {
		return upstream.Error()
	}
	if errors.Is(err, databackend.ErrInvalidResponse) {
		return "data backend returned an unexpected response"
	}
	return "search request failed"
}

func errorCode(err error) int {
	if upstream, ok := databackend.AsUpstream(err); ok {
		return upstream.StatusCode
	}
	return http.StatusBadGateway
}
