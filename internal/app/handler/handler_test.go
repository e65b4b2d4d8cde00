package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"DBsentinel-Gateway/internal/app/config"
	"DBsentinel-Gateway/internal/app/databackend"
	"DBsentinel-Gateway/internal/app/ds"
	"DBsentinel-Gateway/internal/app/repository"
	"DBsentinel-Gateway/internal/app/search"
	"DBsentinel-Gateway/internal/app/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeBackend struct {
	mu      sync.Mutex
	queries []ds.CanonicalQuery
	total   int
	err     error
	summary *ds.SummaryResponse
}

func (f *fakeBackend) Query(_ context.Context, q ds.CanonicalQuery) (*ds.QueryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return &ds.QueryResult{EntryType: q.EntryType, TotalCount: f.total, Results: []ds.QueryEntry{}}, nil
}

func (f *fakeBackend) Summary(context.Context) (*ds.SummaryResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

func (f *fakeBackend) last() ds.CanonicalQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTAccessExpire:    time.Hour,
		JWTRefreshExpire:   2 * time.Hour,
		DataBackendTimeout: time.Second,
		SearchDebounce:     10 * time.Millisecond,
	}
}

func newTestRouter(t *testing.T, backend *fakeBackend, repo *repository.Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	store := search.NewStoreWithOptions(backend, 100, time.Minute, cfg.SearchDebounce, cfg.DataBackendTimeout)
	t.Cleanup(store.Close)

	router := gin.New()
	RegisterHandlers(router, cfg, repo, backend, store)
	return router
}

func perform(router *gin.Engine, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetSummary(t *testing.T) {
	backend := &fakeBackend{summary: &ds.SummaryResponse{
		Anime: []ds.StatusCount{{Status: ds.StatusApproved, Count: 10}},
		Manga: []ds.StatusCount{{Status: ds.StatusDenied, Count: 3}},
	}}
	router := newTestRouter(t, backend, nil)

	w := perform(router, http.MethodGet, "/api/data/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view ds.SummaryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Anime, 1)
	assert.Equal(t, 10, view.Anime[0].Count)
	assert.Equal(t, "/search/?entry_type=anime&status=approved", view.Anime[0].SearchURL)
	assert.Equal(t, "/search/?entry_type=manga&status=denied", view.Manga[0].SearchURL)
}

func TestGetSummary_UpstreamFailure(t *testing.T) {
	backend := &fakeBackend{err: &databackend.UpstreamError{StatusCode: http.StatusForbidden, Message: "bad secret"}}
	router := newTestRouter(t, backend, nil)

	w := perform(router, http.MethodGet, "/api/data/summary", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "bad secret")
}

func TestQuery_DefaultState(t *testing.T) {
	backend := &fakeBackend{total: 237}
	router := newTestRouter(t, backend, nil)

	w := perform(router, http.MethodPost, "/api/data/query", `{"page": 1}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ds.QueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ds.EntryTypeAnime, resp.Query.EntryType)
	assert.Equal(t, 100, resp.Query.Offset)
	assert.Equal(t, 100, resp.Query.Limit)
	require.NotNil(t, resp.Query.NSFW)
	assert.False(t, *resp.Query.NSFW)
	assert.Equal(t, ds.PaginationInfo{Page: 1, PageSize: 100, Total: 237, TotalPages: 3}, resp.Pagination)
}

func TestQuery_EmptyResultIsNotAnError(t *testing.T) {
	router := newTestRouter(t, &fakeBackend{}, nil)

	w := perform(router, http.MethodPost, "/api/data/query", `{"title": "zzz"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_count":0`)
	assert.Contains(t, w.Body.String(), `"total_pages":1`)
}

type memorySummaryCache struct {
	summary *ds.SummaryResponse
	ttl     time.Duration
	saves   int
}

func (c *memorySummaryCache) GetSummary(context.Context) (*ds.SummaryResponse, bool) {
	return c.summary, c.summary != nil
}

func (c *memorySummaryCache) SaveSummary(_ context.Context, summary *ds.SummaryResponse, ttl time.Duration) error {
	c.summary = summary
	c.ttl = ttl
	c.saves++
	return nil
}

func newSummaryRouter(backend DataBackend, cache SummaryCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.SummaryCacheTTL = time.Minute

	router := gin.New()
	router.GET("/api/data/summary", NewDataHandler(cfg, cache, backend).GetSummary)
	return router
}

func TestGetSummary_CacheHitSkipsBackend(t *testing.T) {
	cache := &memorySummaryCache{summary: &ds.SummaryResponse{
		Anime: []ds.StatusCount{{Status: ds.StatusUnapproved, Count: 7}},
		Manga: []ds.StatusCount{},
	}}
	backend := &fakeBackend{err: errors.New("backend must not be called")}
	router := newSummaryRouter(backend, cache)

	w := perform(router, http.MethodGet, "/api/data/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view ds.SummaryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Anime, 1)
	assert.Equal(t, 7, view.Anime[0].Count)
	assert.Equal(t, "/search/?entry_type=anime&status=unapproved", view.Anime[0].SearchURL)
	assert.Zero(t, cache.saves)
}

func TestGetSummary_CacheMissStoresResponse(t *testing.T) {
	cache := &memorySummaryCache{}
	backend := &fakeBackend{summary: &ds.SummaryResponse{
		Anime: []ds.StatusCount{{Status: ds.StatusApproved, Count: 10}},
		Manga: []ds.StatusCount{{Status: ds.StatusDeleted, Count: 2}},
	}}
	router := newSummaryRouter(backend, cache)

	w := perform(router, http.MethodGet, "/api/data/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, cache.saves)
	assert.Equal(t, time.Minute, cache.ttl)
	assert.Equal(t, backend.summary, cache.summary)

	// второй запрос отдаётся из кэша
	backend.err = errors.New("backend must not be called")
	w = perform(router, http.MethodGet, "/api/data/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/search/?entry_type=manga&status=deleted")
	assert.Equal(t, 1, cache.saves)
}

func TestGetSummary_FailureIsNotCached(t *testing.T) {
	cache := &memorySummaryCache{}
	backend := &fakeBackend{err: &databackend.UpstreamError{StatusCode: http.StatusBadGateway, Message: "down"}}
	router := newSummaryRouter(backend, cache)

	w := perform(router, http.MethodGet, "/api/data/summary", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Zero(t, cache.saves)
}

func TestQuery_HugePageIsStillEncoded(t *testing.T) {
	backend := &fakeBackend{total: 10}
	router := newTestRouter(t, backend, nil)

	w := perform(router, http.MethodPost, "/api/data/query", `{"page": 184467440737095516, "limit": 50}`)
	require.Equal(t, http.StatusOK, w.Code)

	q := backend.last()
	assert.GreaterOrEqual(t, q.Offset, 0)
	assert.Equal(t, 50, q.Limit)
}

func TestQuery_InvalidResponse(t *testing.T) {
	backend := &fakeBackend{err: databackend.ErrInvalidResponse}
	router := newTestRouter(t, backend, nil)

	w := perform(router, http.MethodPost, "/api/data/query", `{}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestSearchSessionLifecycle(t *testing.T) {
	backend := &fakeBackend{total: 237}
	router := newTestRouter(t, backend, nil)

	w := perform(router, http.MethodPost, "/api/search/sessions?entry_type=manga&status=denied&wait=true", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var view search.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "manga", view.Filter.EntryType)
	assert.Equal(t, "denied", view.Filter.ApprovedStatus)
	assert.Equal(t, 3, view.PageCount)
	assert.False(t, view.Loading)

	path := "/api/search/sessions/" + view.ID

	w = perform(router, http.MethodPatch, path+"?wait=true", `{"actions":[{"type":"set_page","value":2}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 2, view.PageIndex)
	assert.Equal(t, 200, backend.last().Offset)

	w = perform(router, http.MethodPatch, path, `{"actions":[{"type":"set_colour","value":"red"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = perform(router, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchSession_Navigate(t *testing.T) {
	backend := &fakeBackend{total: 5}
	router := newTestRouter(t, backend, nil)

	w := perform(router, http.MethodPost, "/api/search/sessions?wait=true", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var view search.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

	w = perform(router, http.MethodPut, "/api/search/sessions/"+view.ID+"/location?order_by=title&sort=asc&wait=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, ds.OrderByTitle, view.Query.OrderBy)
	assert.Equal(t, ds.SortAsc, view.Query.Sort)
	assert.Equal(t, ds.OrderByTitle, backend.last().OrderBy)
}

func TestSearchSession_UpstreamError(t *testing.T) {
	backend := &fakeBackend{err: &databackend.UpstreamError{StatusCode: http.StatusInternalServerError, Message: "boom"}}
	router := newTestRouter(t, backend, nil)

	w := perform(router, http.MethodPost, "/api/search/sessions?wait=true", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var view search.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Contains(t, view.Error, "boom")
	assert.Equal(t, http.StatusInternalServerError, view.ErrorCode)
}

func newUserRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return newTestRouter(t, &fakeBackend{}, repository.New(db, nil, nil)), mock
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateAccessToken(&ds.Users{ID: 3, Login: "reader"}, testConfig().JWTSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

var userColumns = []string{"id", "login", "password", "name", "username", "avatar_url", "created_at", "updated_at"}

func TestUpdateSettings_UsernameTaken(t *testing.T) {
	router, mock := newUserRouter(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(3, "reader", "hash", "", nil, "", now, now))
	mock.ExpectExec(`UPDATE "users" SET`).WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	w := perform(router, http.MethodPut, "/api/users/settings", `{"username":"taken_name"}`, "Authorization", bearer(t))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Username already taken"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSettings_GenericFailure(t *testing.T) {
	router, mock := newUserRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	w := perform(router, http.MethodPut, "/api/users/settings", `{"name":"Reader"}`, "Authorization", bearer(t))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Something went wrong updating your settings"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSettings_RequiresAuth(t *testing.T) {
	router, _ := newUserRouter(t)

	w := perform(router, http.MethodPut, "/api/users/settings", `{"name":"Reader"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetProfile(t *testing.T) {
	router, mock := newUserRouter(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(3, "reader", "hash", "Reader", "reader_01", "", now, now))

	w := perform(router, http.MethodGet, "/api/users/me", "", "Authorization", bearer(t))
	require.Equal(t, http.StatusOK, w.Code)

	var user ds.Users
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "reader", user.Login)
	assert.Empty(t, user.Password)
	require.NotNil(t, user.Username)
	assert.Equal(t, "reader_01", *user.Username)
}
