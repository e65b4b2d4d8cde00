package search

import (
	"net/url"
	"time"

	"DBsentinel-Gateway/internal/app/config"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
)

// Store ограниченное по размеру хранилище сессий с истечением срока жизни.
// Вытесненная сессия закрывается, её запросы отменяются.
type Store struct {
	sessions *expirable.LRU[string, *Session]
	querier  Querier
	debounce time.Duration
	timeout  time.Duration
}

func NewStore(cfg *config.Config, querier Querier) *Store {
	return NewStoreWithOptions(querier, cfg.SessionLimit, cfg.SessionTTL, cfg.SearchDebounce, cfg.DataBackendTimeout)
}

func NewStoreWithOptions(querier Querier, limit int, ttl, debounce, timeout time.Duration) *Store {
	onEvict := func(id string, s *Session) {
		logrus.Debugf("search session %s evicted", id)
		s.Close()
	}
	return &Store{
		sessions: expirable.NewLRU[string, *Session](limit, onEvict, ttl),
		querier:  querier,
		debounce: debounce,
		timeout:  timeout,
	}
}

// Create создаёт сессию и применяет начальные параметры URL
func (st *Store) Create(values url.Values) *Session {
	s := NewSession(uuid.NewString(), st.querier, st.debounce, st.timeout)
	st.sessions.Add(s.ID, s)
	s.Navigate(values)
	logrus.Debugf("search session %s created", s.ID)
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	s, ok := st.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete закрывает и удаляет сессию
func (st *Store) Delete(id string) error {
	if !st.sessions.Remove(id) {
		return ErrSessionNotFound
	}
	return nil
}

func (st *Store) Len() int {
	return st.sessions.Len()
}

// Close закрывает все сессии
func (st *Store) Close() {
	st.sessions.Purge()
}
