package check_availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
	eqstorage "github.com/m04kA/EMS-ReservationService/internal/infra/storage/equipment"
	checkAvailability "github.com/m04kA/EMS-ReservationService/internal/usecase/check_availability"
	"github.com/m04kA/EMS-ReservationService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeEquipment struct {
	units map[int64]*domain.EquipmentUnit
	err   error
}

func (f *fakeEquipment) GetUnitByID(_ context.Context, id int64) (*domain.EquipmentUnit, error) {
	if f.err != nil {
		return nil, f.err
	}
	unit, ok := f.units[id]
	if !ok {
		return nil, eqstorage.ErrUnitNotFound
	}
	return unit, nil
}

type fakeReservations struct {
	count     int
	err       error
	lastQuery domain.AvailabilityQuery
}

func (f *fakeReservations) CountOverlappingHolds(_ context.Context, q domain.AvailabilityQuery) (int, error) {
	f.lastQuery = q
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

func mustTime(t *testing.T, s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func validRequest(t *testing.T) checkAvailability.Request {
	date, err := time.Parse(domain.DateFormat, "2026-09-15")
	require.NoError(t, err)
	return checkAvailability.Request{
		UnitID:    10,
		Date:      date,
		StartTime: mustTime(t, "10:00"),
		EndTime:   mustTime(t, "12:00"),
	}
}

func TestExecute_Availability(t *testing.T) {
	tests := []struct {
		name          string
		quantity      int
		overlapping   int
		wantAvailable int
		wantFlag      bool
	}{
		{name: "fully free", quantity: 3, overlapping: 0, wantAvailable: 3, wantFlag: true},
		{name: "partially held", quantity: 3, overlapping: 2, wantAvailable: 1, wantFlag: true},
		{name: "fully held", quantity: 3, overlapping: 3, wantAvailable: 0, wantFlag: false},
		{name: "oversubscribed clamps to zero", quantity: 1, overlapping: 2, wantAvailable: 0, wantFlag: false},
		{name: "single unit free", quantity: 1, overlapping: 0, wantAvailable: 1, wantFlag: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equipment := &fakeEquipment{units: map[int64]*domain.EquipmentUnit{
				10: {ID: 10, TypeID: 1, Label: "Проектор А", Quantity: tt.quantity},
			}}
			reservations := &fakeReservations{count: tt.overlapping}
			uc := checkAvailability.NewUseCase(equipment, reservations, noopLogger{})

			resp, err := uc.Execute(context.Background(), validRequest(t))
			require.NoError(t, err)

			assert.Equal(t, tt.quantity, resp.TotalQuantity)
			assert.Equal(t, tt.wantAvailable, resp.AvailableQuantity)
			assert.Equal(t, tt.wantFlag, resp.Available)
		})
	}
}

func TestExecute_SelfExclusionPassedThrough(t *testing.T) {
	equipment := &fakeEquipment{units: map[int64]*domain.EquipmentUnit{
		10: {ID: 10, TypeID: 1, Label: "Проектор А", Quantity: 1},
	}}
	reservations := &fakeReservations{count: 0}
	uc := checkAvailability.NewUseCase(equipment, reservations, noopLogger{})

	req := validRequest(t)
	editedID := int64(77)
	req.ExcludeReservationID = &editedID

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, reservations.lastQuery.ExcludeReservationID)
	assert.Equal(t, editedID, *reservations.lastQuery.ExcludeReservationID)
}

func TestExecute_Validation(t *testing.T) {
	uc := checkAvailability.NewUseCase(&fakeEquipment{}, &fakeReservations{}, noopLogger{})

	t.Run("end before start", func(t *testing.T) {
		req := validRequest(t)
		req.StartTime = mustTime(t, "12:00")
		req.EndTime = mustTime(t, "10:00")

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, checkAvailability.ErrInvalidWindow)
	})

	t.Run("end equals start", func(t *testing.T) {
		req := validRequest(t)
		req.EndTime = req.StartTime

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, checkAvailability.ErrInvalidWindow)
	})

	t.Run("missing date", func(t *testing.T) {
		req := validRequest(t)
		req.Date = time.Time{}

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, checkAvailability.ErrIncompleteWindow)
	})

	t.Run("non-positive unit id", func(t *testing.T) {
		req := validRequest(t)
		req.UnitID = 0

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, checkAvailability.ErrInvalidInput)
	})
}

func TestExecute_UnitNotFound(t *testing.T) {
	uc := checkAvailability.NewUseCase(
		&fakeEquipment{units: map[int64]*domain.EquipmentUnit{}},
		&fakeReservations{},
		noopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, checkAvailability.ErrUnitNotFound)
}

func TestExecute_RepositoryError(t *testing.T) {
	uc := checkAvailability.NewUseCase(
		&fakeEquipment{units: map[int64]*domain.EquipmentUnit{
			10: {ID: 10, TypeID: 1, Label: "Проектор А", Quantity: 1},
		}},
		&fakeReservations{err: errors.New("connection lost")},
		noopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, checkAvailability.ErrInternal)
}
