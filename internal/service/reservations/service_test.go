package reservations_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
	resstorage "github.com/m04kA/EMS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/EMS-ReservationService/internal/service/reservations"
	"github.com/m04kA/EMS-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/EMS-ReservationService/pkg/ptr"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	reservations map[int64]*domain.Reservation
	lastStatus   *domain.ReservationStatus
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, resstorage.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeRepo) GetByRequesterID(_ context.Context, requesterID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.lastStatus = status
	var out []*domain.Reservation
	for _, res := range f.reservations {
		if res.RequesterID != requesterID {
			continue
		}
		if status != nil && res.Status != *status {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, status domain.ReservationStatus, reason string) error {
	res, ok := f.reservations[id]
	if !ok {
		return resstorage.ErrReservationNotFound
	}
	now := time.Now()
	res.Status = status
	res.CancellationReason = &reason
	res.CancelledAt = &now
	return nil
}

func newService(repo *fakeRepo) *reservations.Service {
	return reservations.NewService(repo, noopLogger{})
}

func confirmed(id, requesterID int64) *domain.Reservation {
	return &domain.Reservation{
		ID:          id,
		RequesterID: requesterID,
		CategoryID:  1,
		Status:      domain.StatusConfirmed,
	}
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{
		1: confirmed(1, 42),
	}}
	svc := newService(repo)

	t.Run("owner sees the reservation", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, 1, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	})

	t.Run("foreign requester is denied", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 1, 99)
		assert.ErrorIs(t, err, reservations.ErrAccessDenied)
	})

	t.Run("missing reservation", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 777, 42)
		assert.ErrorIs(t, err, reservations.ErrReservationNotFound)
	})
}

func TestGetRequesterReservations(t *testing.T) {
	ctx := context.Background()
	cancelled := confirmed(2, 42)
	cancelled.Status = domain.StatusCancelledByRequester
	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{
		1: confirmed(1, 42),
		2: cancelled,
		3: confirmed(3, 7),
	}}
	svc := newService(repo)

	t.Run("all reservations of the requester", func(t *testing.T) {
		resp, err := svc.GetRequesterReservations(ctx, &models.GetRequesterReservationsRequest{RequesterID: 42})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 2)
		assert.Nil(t, repo.lastStatus)
	})

	t.Run("status filter is passed through", func(t *testing.T) {
		resp, err := svc.GetRequesterReservations(ctx, &models.GetRequesterReservationsRequest{
			RequesterID: 42,
			Status:      ptr.Ptr("confirmed"),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 1)
		require.NotNil(t, repo.lastStatus)
		assert.Equal(t, domain.StatusConfirmed, *repo.lastStatus)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		_, err := svc.GetRequesterReservations(ctx, &models.GetRequesterReservationsRequest{
			RequesterID: 42,
			Status:      ptr.Ptr("paused"),
		})
		assert.ErrorIs(t, err, reservations.ErrInvalidStatus)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed reservation is cancelled with reason", func(t *testing.T) {
		repo := &fakeRepo{reservations: map[int64]*domain.Reservation{1: confirmed(1, 42)}}
		svc := newService(repo)

		resp, err := svc.Cancel(ctx, 1, &models.CancelReservationRequest{
			RequesterID:        42,
			CancellationReason: "планы изменились",
		})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCancelledByRequester), resp.Status)
		require.NotNil(t, resp.CancellationReason)
		assert.Equal(t, "планы изменились", *resp.CancellationReason)
		assert.NotNil(t, resp.CancelledAt)
	})

	t.Run("completed reservation cannot be cancelled", func(t *testing.T) {
		res := confirmed(1, 42)
		res.Status = domain.StatusCompleted
		repo := &fakeRepo{reservations: map[int64]*domain.Reservation{1: res}}
		svc := newService(repo)

		_, err := svc.Cancel(ctx, 1, &models.CancelReservationRequest{RequesterID: 42})
		assert.ErrorIs(t, err, reservations.ErrCannotCancel)
	})

	t.Run("foreign reservation is denied before any write", func(t *testing.T) {
		repo := &fakeRepo{reservations: map[int64]*domain.Reservation{1: confirmed(1, 42)}}
		svc := newService(repo)

		_, err := svc.Cancel(ctx, 1, &models.CancelReservationRequest{RequesterID: 99})
		assert.ErrorIs(t, err, reservations.ErrAccessDenied)
		assert.Equal(t, domain.StatusConfirmed, repo.reservations[1].Status)
	})

	t.Run("reason length is limited", func(t *testing.T) {
		repo := &fakeRepo{reservations: map[int64]*domain.Reservation{1: confirmed(1, 42)}}
		svc := newService(repo)

		_, err := svc.Cancel(ctx, 1, &models.CancelReservationRequest{
			RequesterID:        42,
			CancellationReason: strings.Repeat("о", domain.MaxCancellationReasonLength+1),
		})
		assert.ErrorIs(t, err, reservations.ErrInvalidInput)
	})
}
