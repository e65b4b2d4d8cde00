// Package search хранит состояние поисковой сессии посетителя на сервере:
// фильтры, пагинацию и последний ответ бэкенда.
package search

import (
	"context"
	"net/url"
	"sync"
	"time"

	"DBsentinel-Gateway/internal/app/ds"
	"DBsentinel-Gateway/internal/app/pagination"
	"DBsentinel-Gateway/internal/app/query"

	"github.com/sirupsen/logrus"
)

// Querier выполняет канонический запрос к бэкенду данных
type Querier interface {
	Query(ctx context.Context, q ds.CanonicalQuery) (*ds.QueryResult, error)
}

// View снимок состояния сессии для отдачи клиенту
type View struct {
	ID         string            `json:"id"`
	Filter     ds.FilterState    `json:"filter"`
	Query      ds.CanonicalQuery `json:"query"`
	PageIndex  int               `json:"page_index"`
	PageCount  int               `json:"page_count"`
	Loading    bool              `json:"loading"`
	Result     *ds.QueryResult   `json:"result,omitempty"`
	Error      string            `json:"error,omitempty"`
	ErrorCode  int               `json:"error_code,omitempty"`
	MediaTypes []string          `json:"media_types"`
}

type Session struct {
	ID string

	mu      sync.Mutex
	filter  ds.FilterState
	result  *ds.QueryResult
	err     error
	lastURL *string
	timer   *time.Timer
	closed  bool

	// pending число отложенных и выполняющихся запросов, idle закрывается при нуле
	pending int
	idle    chan struct{}

	reconciler *pagination.Reconciler
	querier    Querier
	debounce   time.Duration
	timeout    time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession создаёт сессию с начальным состоянием формы
func NewSession(id string, querier Querier, debounce, timeout time.Duration) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ID:         id,
		filter:     ds.DefaultFilterState(),
		reconciler: pagination.NewReconciler(),
		querier:    querier,
		debounce:   debounce,
		timeout:    timeout,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Navigate применяет параметры URL. Повторная навигация с тем же URL
// ничего не меняет, поэтому правки пользователя не перетираются.
func (s *Session) Navigate(values url.Values) {
	encoded := values.Encode()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	first := s.lastURL == nil
	if !first && *s.lastURL == encoded {
		return
	}
	s.lastURL = &encoded

	next := query.DecodeURL(values, s.filter)
	changed := next != s.filter
	if changed {
		next.Page = 0
		s.reconciler.FilterChanged()
	}
	s.filter = next

	if changed || first {
		s.fetchLocked()
	}
}

// Apply применяет действия пользователя по очереди.
// Если хотя бы одно действие невалидно, состояние не меняется.
func (s *Session) Apply(actions ...query.Action) error {
	if len(actions) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionNotFound
	}

	next := s.filter
	resets, debounced := false, true
	for _, a := range actions {
		var err error
		if next, err = query.Apply(next, a); err != nil {
			return err
		}
		resets = resets || a.ResetsPagination()
		debounced = debounced && a.Debounced()
	}

	s.reconciler.Interact()
	if resets {
		s.reconciler.FilterChanged()
	}
	// после сброса фильтра страница уже нулевая; иначе ограничиваем выбранную
	if !actions[len(actions)-1].ResetsPagination() {
		next.Page = s.reconciler.SetPage(next.Page)
	}
	s.filter = next

	if debounced {
		s.scheduleLocked()
	} else {
		s.fetchLocked()
	}
	return nil
}

// scheduleLocked откладывает запрос; каждое новое изменение перезапускает таймер
func (s *Session) scheduleLocked() {
	s.stopTimerLocked()
	if s.debounce <= 0 {
		s.fetchLocked()
		return
	}

	s.addPendingLocked()
	var timer *time.Timer
	timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.timer != timer {
			return
		}
		s.timer = nil
		if !s.closed {
			s.fetchLocked()
		}
		s.donePendingLocked()
	})
	s.timer = timer
}

func (s *Session) stopTimerLocked() {
	if s.timer == nil {
		return
	}
	s.timer.Stop()
	s.timer = nil
	s.donePendingLocked()
}

func (s *Session) addPendingLocked() {
	if s.pending == 0 {
		s.idle = make(chan struct{})
	}
	s.pending++
}

func (s *Session) donePendingLocked() {
	s.pending--
	if s.pending == 0 {
		close(s.idle)
	}
}

// fetchLocked отправляет запрос для текущего состояния. Ответ будет применён,
// только если к моменту получения не был отправлен более новый запрос.
func (s *Session) fetchLocked() {
	s.stopTimerLocked()

	q := query.Encode(s.filter)
	ticket := s.reconciler.Begin(q.Limit)
	s.addPendingLocked()

	go func() {
		ctx := s.ctx
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}

		result, err := s.querier.Query(ctx, q)
		s.complete(ticket, result, err)
	}()
}

func (s *Session) complete(ticket pagination.Ticket, result *ds.QueryResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.donePendingLocked()

	if s.closed {
		return
	}

	if err != nil {
		if !s.reconciler.IsCurrent(ticket) {
			logrus.Debugf("search session %s: discarding stale failure (generation %d)", s.ID, ticket.Generation)
			return
		}
		logrus.Warnf("search session %s: query failed: %v", s.ID, err)
		s.err = err
		return
	}

	if !s.reconciler.Resolve(ticket, result.TotalCount) {
		logrus.Debugf("search session %s: discarding stale response (generation %d)", s.ID, ticket.Generation)
		return
	}
	s.result = result
	s.err = nil
}

// Settle ждёт отложенные и выполняющиеся запросы
func (s *Session) Settle(ctx context.Context) error {
	s.mu.Lock()
	if s.pending == 0 {
		s.mu.Unlock()
		return nil
	}
	idle := s.idle
	s.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close отменяет выполняющиеся запросы и отложенный таймер
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.stopTimerLocked()
	s.cancel()
}

// Filter текущее состояние формы
func (s *Session) Filter() ds.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{
		ID:         s.ID,
		Filter:     s.filter,
		Query:      query.Encode(s.filter),
		PageIndex:  s.reconciler.PageIndex(),
		PageCount:  s.reconciler.PageCount(),
		Loading:    s.pending > 0,
		Result:     s.result,
		MediaTypes: ds.MediaTypesFor(ds.EntryType(s.filter.EntryType)),
	}
	if s.err != nil {
		view.Error = errorText(s.err)
		view.ErrorCode = errorCode(s.err)
	}
	return view
}
