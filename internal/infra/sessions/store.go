package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// Store хранилище живых сессий выбора оборудования.
// Данные полностью производные (пересчитываются по фильтрам), поэтому
// хранятся в памяти процесса с TTL, без персистентности.
// Все изменения сессии выполняются под блокировкой через Update,
// чтобы инварианты выбора применялись атомарно.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.SelectionSession
	ttl      time.Duration
}

// NewStore создает хранилище сессий с указанным TTL
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*domain.SelectionSession),
		ttl:      ttl,
	}
}

// TTL возвращает время жизни сессии
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create сохраняет новую сессию, выставляя CreatedAt/ExpiresAt
func (s *Store) Create(_ context.Context, sess *domain.SelectionSession) *domain.SelectionSession {
	now := time.Now()
	sess.CreatedAt = now
	sess.ExpiresAt = now.Add(s.ttl)
	if sess.Selection == nil {
		sess.Selection = domain.Selection{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess

	return cloneSession(sess)
}

// Get возвращает копию сессии. Истекшие сессии считаются отсутствующими.
func (s *Store) Get(_ context.Context, id string) (*domain.SelectionSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || sess.IsExpired(time.Now()) {
		return nil, ErrSessionNotFound
	}

	return cloneSession(sess), nil
}

// Update атомарно изменяет сессию под блокировкой.
// fn получает живой объект; при ошибке изменения не откатываются,
// поэтому fn должен валидировать до мутаций. Каждое успешное обновление
// продлевает TTL сессии.
func (s *Store) Update(_ context.Context, id string, fn func(*domain.SelectionSession) error) (*domain.SelectionSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.IsExpired(time.Now()) {
		return nil, ErrSessionNotFound
	}

	if err := fn(sess); err != nil {
		return nil, err
	}

	sess.ExpiresAt = time.Now().Add(s.ttl)

	return cloneSession(sess), nil
}

// Delete удаляет сессию; отсутствие сессии не является ошибкой
func (s *Store) Delete(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// PurgeExpired удаляет истекшие сессии и возвращает их количество
func (s *Store) PurgeExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, sess := range s.sessions {
		if sess.IsExpired(now) {
			delete(s.sessions, id)
			purged++
		}
	}

	return purged
}

// Len возвращает число живых сессий (для метрик и тестов)
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// cloneSession возвращает копию сессии, безопасную для чтения вне блокировки
func cloneSession(sess *domain.SelectionSession) *domain.SelectionSession {
	clone := *sess

	clone.Selection = make(domain.Selection, len(sess.Selection))
	for typeID, entry := range sess.Selection {
		clone.Selection[typeID] = entry
	}

	if sess.ExcludeReservationID != nil {
		id := *sess.ExcludeReservationID
		clone.ExcludeReservationID = &id
	}

	return &clone
}
