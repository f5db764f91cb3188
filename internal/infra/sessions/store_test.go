package sessions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
	"github.com/m04kA/EMS-ReservationService/internal/infra/sessions"
)

func newSession(id string) *domain.SelectionSession {
	return &domain.SelectionSession{
		ID:          id,
		RequesterID: 42,
		Selection:   domain.Selection{},
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(30 * time.Minute)

	created := store.Create(ctx, newSession("s1"))
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, created.ExpiresAt.After(created.CreatedAt))
	assert.Equal(t, 30*time.Minute, store.TTL())

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.RequesterID)
}

func TestStore_GetMissing(t *testing.T) {
	store := sessions.NewStore(30 * time.Minute)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, sessions.ErrSessionNotFound)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(30 * time.Minute)
	store.Create(ctx, newSession("s1"))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)

	// Мутация копии не должна влиять на хранимую сессию
	got.Selection[1] = domain.SelectionEntry{UnitID: 10, TypeID: 1}

	fresh, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, fresh.Selection)
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies mutation atomically", func(t *testing.T) {
		store := sessions.NewStore(30 * time.Minute)
		store.Create(ctx, newSession("s1"))

		updated, err := store.Update(ctx, "s1", func(s *domain.SelectionSession) error {
			s.Generation++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), updated.Generation)
	})

	t.Run("propagates fn error", func(t *testing.T) {
		store := sessions.NewStore(30 * time.Minute)
		store.Create(ctx, newSession("s1"))

		wantErr := errors.New("boom")
		_, err := store.Update(ctx, "s1", func(*domain.SelectionSession) error {
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("missing session", func(t *testing.T) {
		store := sessions.NewStore(30 * time.Minute)

		_, err := store.Update(ctx, "missing", func(*domain.SelectionSession) error {
			return nil
		})
		assert.ErrorIs(t, err, sessions.ErrSessionNotFound)
	})
}

func TestStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(-time.Minute) // сессии рождаются истекшими

	store.Create(ctx, newSession("s1"))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, sessions.ErrSessionNotFound)

	_, err = store.Update(ctx, "s1", func(*domain.SelectionSession) error { return nil })
	assert.ErrorIs(t, err, sessions.ErrSessionNotFound)
}

func TestStore_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(30 * time.Minute)

	store.Create(ctx, newSession("s1"))
	store.Create(ctx, newSession("s2"))
	require.Equal(t, 2, store.Len())

	// Сейчас ничего не истекло
	assert.Equal(t, 0, store.PurgeExpired(time.Now()))

	// Через час истекло всё
	assert.Equal(t, 2, store.PurgeExpired(time.Now().Add(time.Hour)))
	assert.Equal(t, 0, store.Len())
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(30 * time.Minute)
	store.Create(ctx, newSession("s1"))

	store.Delete(ctx, "s1")
	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, sessions.ErrSessionNotFound)

	// Повторное удаление не паникует
	store.Delete(ctx, "s1")
}
