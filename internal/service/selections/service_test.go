package selections_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
	"github.com/m04kA/EMS-ReservationService/internal/infra/sessions"
	resstorage "github.com/m04kA/EMS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/EMS-ReservationService/internal/service/selections"
	"github.com/m04kA/EMS-ReservationService/internal/service/selections/models"
	"github.com/m04kA/EMS-ReservationService/pkg/ptr"
	"github.com/m04kA/EMS-ReservationService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakePool struct {
	units []*domain.EquipmentUnit
}

func (f *fakePool) GetUnitsByCategory(_ context.Context, _ int64) ([]*domain.EquipmentUnit, error) {
	return f.units, nil
}

type fakeChecker struct {
	available map[int64]bool
}

func (f *fakeChecker) CheckUnit(_ context.Context, q domain.AvailabilityQuery) (*domain.AvailabilityResult, error) {
	quantity := 0
	if f.available[q.UnitID] {
		quantity = 1
	}
	return &domain.AvailabilityResult{UnitID: q.UnitID, TotalQuantity: 1, AvailableQuantity: quantity}, nil
}

// filterBumpChecker меняет фильтры сессии прямо во время проверки доступности.
type filterBumpChecker struct {
	svc       *selections.Service
	sessionID string
}

func (c *filterBumpChecker) CheckUnit(ctx context.Context, q domain.AvailabilityQuery) (*domain.AvailabilityResult, error) {
	_, err := c.svc.SetFilters(ctx, c.sessionID, &models.SetFiltersRequest{
		RequesterID: 42,
		StartTime:   ptr.Ptr("11:00"),
	})
	if err != nil {
		return nil, err
	}
	return &domain.AvailabilityResult{UnitID: q.UnitID, TotalQuantity: 1, AvailableQuantity: 1}, nil
}

type fakeReservations struct {
	reservations map[int64]*domain.Reservation
}

func (f *fakeReservations) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, resstorage.ErrReservationNotFound
	}
	return res, nil
}

func newService(pool *fakePool, checker *fakeChecker, reservations *fakeReservations) (*selections.Service, *sessions.Store) {
	store := sessions.NewStore(time.Hour)
	if pool == nil {
		pool = &fakePool{}
	}
	if checker == nil {
		checker = &fakeChecker{}
	}
	if reservations == nil {
		reservations = &fakeReservations{}
	}
	return selections.NewService(store, pool, checker, reservations, noopLogger{}), store
}

func mustTime(t *testing.T, s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func createSession(t *testing.T, svc *selections.Service, requesterID int64) string {
	t.Helper()
	resp, err := svc.Create(context.Background(), &models.CreateSessionRequest{RequesterID: requesterID})
	require.NoError(t, err)
	return resp.ID
}

func setCompleteFilters(t *testing.T, svc *selections.Service, id string, requesterID int64) {
	t.Helper()
	_, err := svc.SetFilters(context.Background(), id, &models.SetFiltersRequest{
		RequesterID: requesterID,
		CategoryID:  ptr.Ptr(int64(1)),
		Date:        ptr.Ptr("2026-09-15"),
		StartTime:   ptr.Ptr("10:00"),
		EndTime:     ptr.Ptr("12:00"),
	})
	require.NoError(t, err)
}

func TestCreate(t *testing.T) {
	t.Run("fresh session", func(t *testing.T) {
		svc, _ := newService(nil, nil, nil)

		resp, err := svc.Create(context.Background(), &models.CreateSessionRequest{RequesterID: 42})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, int64(42), resp.RequesterID)
		assert.Empty(t, resp.Selection)
		assert.Equal(t, uint64(0), resp.Generation)
	})

	t.Run("seeded from reservation for editing", func(t *testing.T) {
		date, _ := time.Parse(domain.DateFormat, "2026-09-15")
		reservations := &fakeReservations{reservations: map[int64]*domain.Reservation{
			77: {
				ID: 77, RequesterID: 42, CategoryID: 1,
				ReservationDate: date,
				StartTime:       mustTime(t, "10:00"),
				EndTime:         mustTime(t, "12:00"),
				Status:          domain.StatusConfirmed,
				Units: []domain.ReservedUnit{
					{UnitID: 10, TypeID: 1, Label: "Проектор А"},
					{UnitID: 20, TypeID: 2, Label: "Штатив"},
				},
			},
		}}
		svc, _ := newService(nil, nil, reservations)

		resp, err := svc.Create(context.Background(), &models.CreateSessionRequest{
			RequesterID:       42,
			FromReservationID: ptr.Ptr(int64(77)),
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.CategoryID)
		assert.Equal(t, "2026-09-15", resp.Date)
		assert.Equal(t, "10:00", resp.StartTime)
		assert.Equal(t, "12:00", resp.EndTime)
		require.NotNil(t, resp.EditingReservationID)
		assert.Equal(t, int64(77), *resp.EditingReservationID)
		assert.Len(t, resp.Selection, 2)
	})

	t.Run("seeding denied for foreign reservation", func(t *testing.T) {
		reservations := &fakeReservations{reservations: map[int64]*domain.Reservation{
			77: {ID: 77, RequesterID: 1, Status: domain.StatusConfirmed},
		}}
		svc, _ := newService(nil, nil, reservations)

		_, err := svc.Create(context.Background(), &models.CreateSessionRequest{
			RequesterID:       42,
			FromReservationID: ptr.Ptr(int64(77)),
		})
		assert.ErrorIs(t, err, selections.ErrAccessDenied)
	})

	t.Run("seeding rejected for completed reservation", func(t *testing.T) {
		reservations := &fakeReservations{reservations: map[int64]*domain.Reservation{
			77: {ID: 77, RequesterID: 42, Status: domain.StatusCompleted},
		}}
		svc, _ := newService(nil, nil, reservations)

		_, err := svc.Create(context.Background(), &models.CreateSessionRequest{
			RequesterID:       42,
			FromReservationID: ptr.Ptr(int64(77)),
		})
		assert.ErrorIs(t, err, selections.ErrNotEditable)
	})
}

func TestSetFilters(t *testing.T) {
	ctx := context.Background()

	t.Run("filter change resets selection and bumps generation", func(t *testing.T) {
		pool := &fakePool{units: []*domain.EquipmentUnit{{ID: 10, CategoryID: 1, TypeID: 1, Label: "Проектор А", Quantity: 1}}}
		checker := &fakeChecker{available: map[int64]bool{10: true}}
		svc, _ := newService(pool, checker, nil)
		id := createSession(t, svc, 42)
		setCompleteFilters(t, svc, id, 42)

		_, err := svc.AddUnit(ctx, id, &models.AddUnitRequest{RequesterID: 42, UnitID: 10})
		require.NoError(t, err)

		resp, err := svc.SetFilters(ctx, id, &models.SetFiltersRequest{
			RequesterID: 42,
			StartTime:   ptr.Ptr("11:00"),
		})
		require.NoError(t, err)

		assert.Empty(t, resp.Selection, "смена окна сбрасывает выбор")
		assert.Equal(t, uint64(2), resp.Generation)
	})

	t.Run("unchanged filters do not bump generation", func(t *testing.T) {
		svc, _ := newService(nil, nil, nil)
		id := createSession(t, svc, 42)
		setCompleteFilters(t, svc, id, 42)

		resp, err := svc.SetFilters(ctx, id, &models.SetFiltersRequest{
			RequesterID: 42,
			StartTime:   ptr.Ptr("10:00"), // то же значение
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), resp.Generation)
	})

	t.Run("end must be after start", func(t *testing.T) {
		svc, _ := newService(nil, nil, nil)
		id := createSession(t, svc, 42)
		setCompleteFilters(t, svc, id, 42)

		_, err := svc.SetFilters(ctx, id, &models.SetFiltersRequest{
			RequesterID: 42,
			EndTime:     ptr.Ptr("09:00"),
		})
		assert.ErrorIs(t, err, selections.ErrInvalidTimeRange)
	})

	t.Run("invalid date format", func(t *testing.T) {
		svc, _ := newService(nil, nil, nil)
		id := createSession(t, svc, 42)

		_, err := svc.SetFilters(ctx, id, &models.SetFiltersRequest{
			RequesterID: 42,
			Date:        ptr.Ptr("15.09.2026"),
		})
		assert.ErrorIs(t, err, selections.ErrInvalidInput)
	})
}

func TestAddUnit(t *testing.T) {
	ctx := context.Background()
	units := []*domain.EquipmentUnit{
		{ID: 10, CategoryID: 1, TypeID: 1, Label: "Проектор А", Quantity: 1},
		{ID: 11, CategoryID: 1, TypeID: 1, Label: "Проектор Б", Quantity: 1},
		{ID: 20, CategoryID: 1, TypeID: 2, Label: "Штатив", Quantity: 1},
	}

	t.Run("blocked until filters are complete", func(t *testing.T) {
		svc, _ := newService(&fakePool{units: units}, nil, nil)
		id := createSession(t, svc, 42)

		_, err := svc.AddUnit(ctx, id, &models.AddUnitRequest{RequesterID: 42, UnitID: 10})
		assert.ErrorIs(t, err, selections.ErrIncompleteFilters)
	})

	t.Run("adds available unit", func(t *testing.T) {
		checker := &fakeChecker{available: map[int64]bool{10: true}}
		svc, _ := newService(&fakePool{units: units}, checker, nil)
		id := createSession(t, svc, 42)
		setCompleteFilters(t, svc, id, 42)

		resp, err := svc.AddUnit(ctx, id, &models.AddUnitRequest{RequesterID: 42, UnitID: 10})
		require.NoError(t, err)

		require.Len(t, resp.Selection, 1)
		assert.Equal(t, int64(10), resp.Selection[0].UnitID)
		assert.True(t, resp.Selection[0].Available)
	})

	t.Run("same type is replaced", func(t *testing.T) {
		checker := &fakeChecker{available: map[int64]bool{10: true, 11: true}}
		svc, _ := newService(&fakePool{units: units}, checker, nil)
		id := createSession(t, svc, 42)
		setCompleteFilters(t, svc, id, 42)

		_, err := svc.AddUnit(ctx, id, &models.AddUnitRequest{RequesterID: 42, UnitID: 10})
		require.NoError(t, err)
		resp, err := svc.AddUnit(ctx, id, &models.AddUnitRequest{RequesterID: 42, UnitID: 11})
		require.NoError(t, err)

		require.Len(t, resp.Selection, 1, "один тип - одна единица")
		assert.Equal(t, int64(11), resp.Selection[0].UnitID)
	})

	t.Run("units of different types coexist", func(t *testing.T) {
		checker := &fakeChecker{available: map[int64]bool{10: true, 20: true}}
		svc, _ := newService(&fakePool{units: units}, checker, nil)
		id := createSession(t, svc, 42)
		setCompleteFilters(t, svc, id, 42)

		_, err := svc.AddUnit(ctx, id, &models.AddUnitRequest{RequesterID: 42, UnitID: 10})
		require.NoError(t, err)
		resp, err := svc.AddUnit(ctx, id, &models.AddUnitRequest{RequesterID: 42, UnitID: 20})
		require.NoError(t, err)

		// Пул категории содержит единицы разных типов: по одной каждого
		require.Len(t, resp.Selection, 2)
		assert.Equal(t, int64(10), resp.Selection[0].UnitID)
		assert.Equal(t, int64(1), resp.Selection[0].TypeID)
		assert.Equal(t, int64(20), resp.Selection[1].UnitID)
		assert.Equal(t, int64(2), resp.Selection[1].TypeID)
	})

	t.Run("filters changed during availability check", func(t *testing.T) {
		store := sessions.NewStore(time.Hour)
		checker := &filterBumpChecker{}
		svc := selections.NewService(store, &fakePool{units: units}, checker, &fakeReservations{}, noopLogger{})
		checker.svc = svc
		id := createSession(t, svc, 42)
		setCompleteFilters(t, svc, id, 42)
		checker.sessionID = id

		_, err := svc.AddUnit(ctx, id, &models.AddUnitRequest{RequesterID: 42, UnitID: 10})
		assert.ErrorIs(t, err, selections.ErrFiltersChanged)
	})

	t.Run("busy unit is rejected", func(t *testing.T) {
		checker := &fakeChecker{available: map[int64]bool{}}
		svc, _ := newService(&fakePool{units: units}, checker, nil)
		id := createSession(t, svc, 42)
		setCompleteFilters(t, svc, id, 42)

		_, err := svc.AddUnit(ctx, id, &models.AddUnitRequest{RequesterID: 42, UnitID: 10})
		assert.ErrorIs(t, err, selections.ErrUnitNotAvailable)
	})

	t.Run("unit outside the pool", func(t *testing.T) {
		svc, _ := newService(&fakePool{units: units}, nil, nil)
		id := createSession(t, svc, 42)
		setCompleteFilters(t, svc, id, 42)

		_, err := svc.AddUnit(ctx, id, &models.AddUnitRequest{RequesterID: 42, UnitID: 99})
		assert.ErrorIs(t, err, selections.ErrUnitNotFound)
	})
}

func TestRemoveUnit(t *testing.T) {
	ctx := context.Background()
	units := []*domain.EquipmentUnit{{ID: 10, CategoryID: 1, TypeID: 1, Label: "Проектор А", Quantity: 1}}
	checker := &fakeChecker{available: map[int64]bool{10: true}}

	svc, _ := newService(&fakePool{units: units}, checker, nil)
	id := createSession(t, svc, 42)
	setCompleteFilters(t, svc, id, 42)

	_, err := svc.AddUnit(ctx, id, &models.AddUnitRequest{RequesterID: 42, UnitID: 10})
	require.NoError(t, err)

	resp, err := svc.RemoveUnit(ctx, id, &models.RemoveUnitRequest{RequesterID: 42, UnitID: 10})
	require.NoError(t, err)
	assert.Empty(t, resp.Selection)

	// Удаление отсутствующей единицы - no-op
	resp, err = svc.RemoveUnit(ctx, id, &models.RemoveUnitRequest{RequesterID: 42, UnitID: 10})
	require.NoError(t, err)
	assert.Empty(t, resp.Selection)
}

func TestAccessControl(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(nil, nil, nil)
	id := createSession(t, svc, 42)

	_, err := svc.Get(ctx, id, 99)
	assert.ErrorIs(t, err, selections.ErrAccessDenied)

	err = svc.Delete(ctx, id, 99)
	assert.ErrorIs(t, err, selections.ErrAccessDenied)
}

func TestPurgeExpired(t *testing.T) {
	svc, store := newService(nil, nil, nil)
	createSession(t, svc, 42)
	createSession(t, svc, 42)

	assert.Equal(t, 0, svc.PurgeExpired(time.Now()))
	assert.Equal(t, 2, svc.PurgeExpired(time.Now().Add(2*time.Hour)))
	assert.Equal(t, 0, store.Len())
}
