package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"DBsentinel-Gateway/internal/app/databackend"
	"DBsentinel-Gateway/internal/app/ds"
	"DBsentinel-Gateway/internal/app/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubQuerier отвечает total записей; если задан gate, ответ на запрос
// с таким заголовком ждёт закрытия канала
type stubQuerier struct {
	mu      sync.Mutex
	calls   []ds.CanonicalQuery
	totals  map[string]int
	gates   map[string]chan struct{}
	err     error
	started chan ds.CanonicalQuery
}

func newStub() *stubQuerier {
	return &stubQuerier{
		totals:  map[string]int{},
		gates:   map[string]chan struct{}{},
		started: make(chan ds.CanonicalQuery, 16),
	}
}

func (s *stubQuerier) Query(ctx context.Context, q ds.CanonicalQuery) (*ds.QueryResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, q)
	gate := s.gates[q.Title]
	total := s.totals[q.Title]
	err := s.err
	s.mu.Unlock()

	s.started <- q

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &ds.QueryResult{EntryType: q.EntryType, TotalCount: total, Results: []ds.QueryEntry{}}, nil
}

func (s *stubQuerier) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubQuerier) lastCall() ds.CanonicalQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

func settle(t *testing.T, s *Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Settle(ctx))
}

func act(t *testing.T, typ query.ActionType, value interface{}) query.Action {
	t.Helper()
	raw, err := json.Marshal(value)
	require.NoError(t, err)
	return query.Action{Type: typ, Value: raw}
}

func TestSession_FirstNavigateFetches(t *testing.T) {
	stub := newStub()
	stub.totals[""] = 237
	s := NewSession("s1", stub, 0, time.Second)
	defer s.Close()

	s.Navigate(url.Values{})
	settle(t, s)

	view := s.View()
	assert.Equal(t, 1, stub.callCount())
	assert.Equal(t, 3, view.PageCount)
	assert.Equal(t, 237, view.Result.TotalCount)
	assert.False(t, view.Loading)
	assert.Equal(t, ds.AnimeMediaTypes, view.MediaTypes)
}

func TestSession_NavigateSameURLIsNoop(t *testing.T) {
	stub := newStub()
	s := NewSession("s1", stub, 0, time.Second)
	defer s.Close()

	values := url.Values{query.ParamStatus: {"denied"}}
	s.Navigate(values)
	settle(t, s)

	// правка пользователя не перетирается повторной навигацией
	require.NoError(t, s.Apply(act(t, query.ActionSetApprovedStatus, "approved")))
	settle(t, s)

	s.Navigate(values)
	settle(t, s)

	assert.Equal(t, "approved", s.Filter().ApprovedStatus)
	assert.Equal(t, 2, stub.callCount())
}

func TestSession_NavigateNewURLOverrides(t *testing.T) {
	stub := newStub()
	s := NewSession("s1", stub, 0, time.Second)
	defer s.Close()

	s.Navigate(url.Values{query.ParamStatus: {"denied"}})
	settle(t, s)
	s.Navigate(url.Values{query.ParamStatus: {"deleted"}, query.ParamEntryType: {"manga"}})
	settle(t, s)

	assert.Equal(t, "deleted", s.Filter().ApprovedStatus)
	assert.Equal(t, ds.EntryTypeManga, stub.lastCall().EntryType)
	assert.Equal(t, 2, stub.callCount())
}

func TestSession_NewestRequestWins(t *testing.T) {
	stub := newStub()
	stub.totals["a"] = 900
	stub.totals["b"] = 40
	gateA := make(chan struct{})
	stub.gates["a"] = gateA

	s := NewSession("s1", stub, 0, time.Second)
	defer s.Close()

	require.NoError(t, s.Apply(act(t, query.ActionSetTitle, "a")))
	<-stub.started
	require.NoError(t, s.Apply(act(t, query.ActionSetTitle, "b")))
	<-stub.started

	// ждём, пока ответ B будет применён, затем отпускаем A
	require.Eventually(t, func() bool {
		v := s.View()
		return v.Result != nil && v.Result.TotalCount == 40
	}, time.Second, 5*time.Millisecond)
	close(gateA)
	settle(t, s)

	view := s.View()
	assert.Equal(t, 40, view.Result.TotalCount)
	assert.Equal(t, 1, view.PageCount)
}

func TestSession_TitleEditsAreDebounced(t *testing.T) {
	stub := newStub()
	s := NewSession("s1", stub, 30*time.Millisecond, time.Second)
	defer s.Close()

	for _, title := range []string{"f", "fr", "fri", "frieren"} {
		require.NoError(t, s.Apply(act(t, query.ActionSetTitle, title)))
	}
	assert.True(t, s.View().Loading)
	settle(t, s)

	assert.Equal(t, 1, stub.callCount())
	assert.Equal(t, "frieren", stub.lastCall().Title)
}

func TestSession_ImmediateActionCancelsDebounce(t *testing.T) {
	stub := newStub()
	s := NewSession("s1", stub, time.Hour, time.Second)
	defer s.Close()

	require.NoError(t, s.Apply(act(t, query.ActionSetTitle, "bocchi")))
	require.NoError(t, s.Apply(act(t, query.ActionSetSort, "asc")))
	settle(t, s)

	assert.Equal(t, 1, stub.callCount())
	assert.Equal(t, "bocchi", stub.lastCall().Title)
	assert.Equal(t, ds.SortAsc, stub.lastCall().Sort)
}

func TestSession_PageSelection(t *testing.T) {
	stub := newStub()
	stub.totals[""] = 237
	s := NewSession("s1", stub, 0, time.Second)
	defer s.Close()

	s.Navigate(url.Values{})
	settle(t, s)

	require.NoError(t, s.Apply(act(t, query.ActionSetPage, 9)))
	settle(t, s)
	assert.Equal(t, 2, s.View().PageIndex)
	assert.Equal(t, 200, stub.lastCall().Offset)

	// смена фильтра возвращает на первую страницу, число страниц держится до ответа
	require.NoError(t, s.Apply(act(t, query.ActionSetOrderBy, "title")))
	view := s.View()
	assert.Equal(t, 0, view.PageIndex)
	assert.Equal(t, 3, view.PageCount)
	settle(t, s)
	assert.Equal(t, 0, stub.lastCall().Offset)
}

func TestSession_BatchedActions(t *testing.T) {
	stub := newStub()
	stub.totals[""] = 237
	s := NewSession("s1", stub, 0, time.Second)
	defer s.Close()

	s.Navigate(url.Values{})
	settle(t, s)

	// выбор страницы после смены фильтра ограничивается известным числом страниц
	require.NoError(t, s.Apply(act(t, query.ActionSetOrderBy, "title"), act(t, query.ActionSetPage, 9)))
	settle(t, s)
	assert.Equal(t, 2, s.View().PageIndex)
	assert.Equal(t, 200, stub.lastCall().Offset)

	// смена фильтра после выбора страницы возвращает на первую
	require.NoError(t, s.Apply(act(t, query.ActionSetPage, 1), act(t, query.ActionSetSort, "asc")))
	settle(t, s)
	assert.Equal(t, 0, s.View().PageIndex)
	assert.Equal(t, 0, stub.lastCall().Offset)
}

func TestSession_InvalidActionLeavesStateUntouched(t *testing.T) {
	stub := newStub()
	s := NewSession("s1", stub, 0, time.Second)
	defer s.Close()

	err := s.Apply(act(t, query.ActionSetSort, "asc"), act(t, "set_colour", "red"))
	assert.ErrorIs(t, err, query.ErrInvalidAction)
	assert.Equal(t, ds.DefaultFilterState(), s.Filter())
	assert.Equal(t, 0, stub.callCount())
}

func TestSession_UpstreamErrorIsReported(t *testing.T) {
	stub := newStub()
	stub.err = &databackend.UpstreamError{StatusCode: http.StatusServiceUnavailable, Message: "maintenance"}
	s := NewSession("s1", stub, 0, time.Second)
	defer s.Close()

	s.Navigate(url.Values{})
	settle(t, s)

	view := s.View()
	assert.Nil(t, view.Result)
	assert.Equal(t, http.StatusServiceUnavailable, view.ErrorCode)
	assert.Contains(t, view.Error, "maintenance")

	// следующий успешный ответ очищает ошибку
	stub.mu.Lock()
	stub.err = nil
	stub.mu.Unlock()
	require.NoError(t, s.Apply(act(t, query.ActionSetSort, "asc")))
	settle(t, s)
	assert.Empty(t, s.View().Error)
}

func TestSession_CloseCancelsInFlight(t *testing.T) {
	stub := newStub()
	stub.gates[""] = make(chan struct{})
	s := NewSession("s1", stub, 0, time.Minute)

	s.Navigate(url.Values{})
	<-stub.started
	s.Close()
	settle(t, s)

	assert.Nil(t, s.View().Result)
	assert.ErrorIs(t, s.Apply(act(t, query.ActionSetSort, "asc")), ErrSessionNotFound)
}

func TestStore(t *testing.T) {
	stub := newStub()
	store := NewStoreWithOptions(stub, 2, time.Minute, 0, time.Second)
	defer store.Close()

	first := store.Create(url.Values{})
	settle(t, first)

	got, err := store.Get(first.ID)
	require.NoError(t, err)
	assert.Same(t, first, got)

	store.Create(url.Values{})
	store.Create(url.Values{})
	assert.Equal(t, 2, store.Len())

	// самая старая сессия вытеснена и закрыта
	_, err = store.Get(first.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, first.Apply(act(t, query.ActionSetSort, "asc")), ErrSessionNotFound)

	assert.ErrorIs(t, store.Delete("missing"), ErrSessionNotFound)
}
