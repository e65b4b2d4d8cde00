package handler

import (
	"context"
	"net/http"
	"time"

	"DBsentinel-Gateway/internal/app/config"
	"DBsentinel-Gateway/internal/app/ds"
	"DBsentinel-Gateway/internal/app/pagination"
	"DBsentinel-Gateway/internal/app/query"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SummaryCache кэш статистики; nil означает работу без кэша
type SummaryCache interface {
	GetSummary(ctx context.Context) (*ds.SummaryResponse, bool)
	SaveSummary(ctx context.Context, summary *ds.SummaryResponse, ttl time.Duration) error
}

type DataHandler struct {
	cfg     *config.Config
	cache   SummaryCache
	backend DataBackend
}

func NewDataHandler(cfg *config.Config, cache SummaryCache, backend DataBackend) *DataHandler {
	return &DataHandler{
		cfg:     cfg,
		cache:   cache,
		backend: backend,
	}
}

// GetSummary godoc
// @Summary Get database summary
// @Description Entry counts per approval status for anime and manga, with search links
// @Tags Data
// @Produce json
// @Success 200 {object} ds.SummaryView
// @Failure 502 {object} map[string]string
// @Router /data/summary [get]
func (h *DataHandler) GetSummary(ctx *gin.Context) {
	var summary *ds.SummaryResponse
	if h.cache != nil {
		if cached, ok := h.cache.GetSummary(ctx.Request.Context()); ok {
			summary = cached
		}
	}

	if summary == nil {
		var err error
		summary, err = h.backend.Summary(ctx.Request.Context())
		if err != nil {
			respondBackendError(ctx, err)
			return
		}
		if h.cache != nil && h.cfg.SummaryCacheTTL > 0 {
			if err := h.cache.SaveSummary(ctx.Request.Context(), summary, h.cfg.SummaryCacheTTL); err != nil {
				logrus.Warn("Failed to cache summary: ", err)
			}
		}
	}

	ctx.JSON(http.StatusOK, ds.SummaryView{
		Anime: summaryItems(ds.EntryTypeAnime, summary.Anime),
		Manga: summaryItems(ds.EntryTypeManga, summary.Manga),
	})
}

func summaryItems(entryType ds.EntryType, counts []ds.StatusCount) []ds.SummaryItem {
	items := make([]ds.SummaryItem, 0, len(counts))
	for _, c := range counts {
		items = append(items, ds.SummaryItem{
			Status:    c.Status,
			Count:     c.Count,
			SearchURL: query.SearchLink(entryType, c.Status),
		})
	}
	return items
}

// Query godoc
// @Summary Run a search query
// @Description Encode the filter state into a canonical query and forward it to the data backend
// @Tags Data
// @Accept json
// @Produce json
// @Param request body ds.FilterState true "Filter state"
// @Success 200 {object} ds.QueryResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /data/query [post]
func (h *DataHandler) Query(ctx *gin.Context) {
	state := ds.DefaultFilterState()
	if err := ctx.ShouldBindJSON(&state); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	q := query.Encode(state)
	result, err := h.backend.Query(ctx.Request.Context(), q)
	if err != nil {
		respondBackendError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ds.QueryResponse{
		Query:  q,
		Result: result,
		Pagination: ds.PaginationInfo{
			Page:       q.Offset / q.Limit,
			PageSize:   q.Limit,
			Total:      result.TotalCount,
			TotalPages: pagination.PageCount(result.TotalCount, q.Limit),
		},
	})
}
