package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"DBsentinel-Gateway/internal/app/config"
	"DBsentinel-Gateway/internal/app/query"
	"DBsentinel-Gateway/internal/app/search"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const waitParam = "wait"

type SearchHandler struct {
	cfg      *config.Config
	sessions *search.Store
}

func NewSearchHandler(cfg *config.Config, sessions *search.Store) *SearchHandler {
	return &SearchHandler{
		cfg:      cfg,
		sessions: sessions,
	}
}

type ApplyActionsRequest struct {
	Actions []query.Action `json:"actions" binding:"required,min=1,dive"`
}

// CreateSession godoc
// @Summary Open a search session
// @Description Create a server-side search session; entry_type, status, order_by and sort query parameters prefill the form
// @Tags Search
// @Produce json
// @Param entry_type query string false "anime or manga"
// @Param status query string false "approved, denied, unapproved, deleted or all"
// @Param order_by query string false "Sort field"
// @Param sort query string false "asc or desc"
// @Param wait query bool false "Wait for the first result"
// @Success 201 {object} search.View
// @Router /search/sessions [post]
func (h *SearchHandler) CreateSession(ctx *gin.Context) {
	session := h.sessions.Create(locationValues(ctx))
	h.respondView(ctx, http.StatusCreated, session)
}

// GetSession godoc
// @Summary Get search session state
// @Tags Search
// @Produce json
// @Param id path string true "Session ID"
// @Param wait query bool false "Wait for pending requests"
// @Success 200 {object} search.View
// @Failure 404 {object} map[string]string
// @Router /search/sessions/{id} [get]
func (h *SearchHandler) GetSession(ctx *gin.Context) {
	session, ok := h.session(ctx)
	if !ok {
		return
	}
	h.respondView(ctx, http.StatusOK, session)
}

// ApplyActions godoc
// @Summary Apply user actions to a search session
// @Description Title edits are debounced, every other action queries immediately
// @Tags Search
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body ApplyActionsRequest true "Actions"
// @Param wait query bool false "Wait for pending requests"
// @Success 200 {object} search.View
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /search/sessions/{id} [patch]
func (h *SearchHandler) ApplyActions(ctx *gin.Context) {
	session, ok := h.session(ctx)
	if !ok {
		return
	}

	var req ApplyActionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := session.Apply(req.Actions...); err != nil {
		switch {
		case errors.Is(err, query.ErrInvalidAction):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, search.ErrSessionNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Search session not found"})
		default:
			logrus.Error("Failed to apply search actions: ", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply actions"})
		}
		return
	}

	h.respondView(ctx, http.StatusOK, session)
}

// Navigate godoc
// @Summary Navigate a search session
// @Description Re-read the page location; the same location twice is a no-op
// @Tags Search
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} search.View
// @Failure 404 {object} map[string]string
// @Router /search/sessions/{id}/location [put]
func (h *SearchHandler) Navigate(ctx *gin.Context) {
	session, ok := h.session(ctx)
	if !ok {
		return
	}
	session.Navigate(locationValues(ctx))
	h.respondView(ctx, http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Close a search session
// @Description Cancels in-flight requests
// @Tags Search
// @Param id path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /search/sessions/{id} [delete]
func (h *SearchHandler) DeleteSession(ctx *gin.Context) {
	if err := h.sessions.Delete(ctx.Param("id")); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Search session not found"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (h *SearchHandler) session(ctx *gin.Context) (*search.Session, bool) {
	session, err := h.sessions.Get(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Search session not found"})
		return nil, false
	}
	return session, true
}

// respondView отдаёт состояние сессии; с ?wait=true сначала дожидается ответов бэкенда
func (h *SearchHandler) respondView(ctx *gin.Context, status int, session *search.Session) {
	if ctx.Query(waitParam) == "true" {
		waitCtx, cancel := context.WithTimeout(ctx.Request.Context(), h.cfg.SearchDebounce+h.cfg.DataBackendTimeout)
		defer cancel()
		if err := session.Settle(waitCtx); err != nil {
			logrus.Debugf("search session %s: returning unsettled view: %v", session.ID, err)
		}
	}
	ctx.JSON(status, session.View())
}

// locationValues параметры адреса страницы без служебных
func locationValues(ctx *gin.Context) url.Values {
	values := ctx.Request.URL.Query()
	values.Del(waitParam)
	return values
}
