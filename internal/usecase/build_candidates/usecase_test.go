package build_candidates_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
	"github.com/m04kA/EMS-ReservationService/internal/infra/sessions"
	buildCandidates "github.com/m04kA/EMS-ReservationService/internal/usecase/build_candidates"
	"github.com/m04kA/EMS-ReservationService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// fakePool источник пула с фиксированным составом
type fakePool struct {
	units []*domain.EquipmentUnit
	err   error
	calls int
}

func (p *fakePool) GetUnitsByCategory(_ context.Context, _ int64) ([]*domain.EquipmentUnit, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.units, nil
}

// fakeChecker проверка доступности по таблице ответов
type fakeChecker struct {
	available map[int64]bool
	failing   map[int64]bool
	calls     int
}

func (c *fakeChecker) CheckUnit(_ context.Context, q domain.AvailabilityQuery) (*domain.AvailabilityResult, error) {
	c.calls++
	if c.failing[q.UnitID] {
		return nil, errors.New("checker: unit check failed")
	}
	quantity := 0
	if c.available[q.UnitID] {
		quantity = 1
	}
	return &domain.AvailabilityResult{UnitID: q.UnitID, TotalQuantity: 1, AvailableQuantity: quantity}, nil
}

func unit(id, typeID int64, label string) *domain.EquipmentUnit {
	return &domain.EquipmentUnit{ID: id, CategoryID: 1, TypeID: typeID, Label: label, Quantity: 1}
}

func candidateIDs(candidates []domain.Candidate) []int64 {
	ids := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.Unit.ID)
	}
	return ids
}

func mustTime(t *testing.T, s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func completeWindow(t *testing.T) domain.Window {
	date, err := time.Parse(domain.DateFormat, "2026-09-15")
	require.NoError(t, err)
	return domain.Window{Date: date, StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "12:00")}
}

func seedSession(t *testing.T, store *sessions.Store, sess *domain.SelectionSession) {
	t.Helper()
	store.Create(context.Background(), sess)
}

func TestExecute_NoCategorySelected(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(time.Hour)
	pool := &fakePool{units: []*domain.EquipmentUnit{unit(10, 1, "A")}}
	checker := &fakeChecker{}
	uc := buildCandidates.NewUseCase(pool, checker, store, nil, noopLogger{})

	seedSession(t, store, &domain.SelectionSession{ID: "s1", RequesterID: 1})

	resp, err := uc.Execute(ctx, buildCandidates.Request{SessionID: "s1", RequesterID: 1})
	require.NoError(t, err)

	assert.Empty(t, resp.Candidates)
	assert.Equal(t, 0, pool.calls, "без категории пул не запрашивается")
	assert.Equal(t, 0, checker.calls, "без категории проверки не выполняются")
}

func TestExecute_CompleteWindowDropsUnavailable(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(time.Hour)
	pool := &fakePool{units: []*domain.EquipmentUnit{
		unit(10, 1, "Проектор А"),
		unit(11, 1, "Проектор Б"),
	}}
	checker := &fakeChecker{available: map[int64]bool{10: true, 11: false}}
	uc := buildCandidates.NewUseCase(pool, checker, store, nil, noopLogger{})

	seedSession(t, store, &domain.SelectionSession{
		ID: "s1", RequesterID: 1, CategoryID: 1, Window: completeWindow(t),
	})

	resp, err := uc.Execute(ctx, buildCandidates.Request{SessionID: "s1", RequesterID: 1})
	require.NoError(t, err)

	// Занятая и не выбранная единица в набор не попадает
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, int64(10), resp.Candidates[0].Unit.ID)
	assert.True(t, resp.Candidates[0].Checked)
	assert.True(t, resp.Candidates[0].Available)
	assert.Equal(t, 2, checker.calls)
}

func TestExecute_MixedTypePool(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(time.Hour)
	// Пул одной категории с единицами двух типов
	pool := &fakePool{units: []*domain.EquipmentUnit{
		unit(1, 100, "Проектор А"),
		unit(2, 100, "Проектор Б"),
		unit(3, 200, "Экран"),
	}}
	checker := &fakeChecker{available: map[int64]bool{1: false, 2: true, 3: true}}
	uc := buildCandidates.NewUseCase(pool, checker, store, nil, noopLogger{})

	seedSession(t, store, &domain.SelectionSession{
		ID: "s1", RequesterID: 1, CategoryID: 1, Window: completeWindow(t),
	})

	resp, err := uc.Execute(ctx, buildCandidates.Request{SessionID: "s1", RequesterID: 1})
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 3}, candidateIDs(resp.Candidates))
}

func TestExecute_FailedCheckIsUnavailable(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(time.Hour)
	pool := &fakePool{units: []*domain.EquipmentUnit{
		unit(10, 1, "Проектор А"),
		unit(11, 1, "Проектор Б"),
	}}
	checker := &fakeChecker{
		available: map[int64]bool{10: true},
		failing:   map[int64]bool{11: true},
	}
	uc := buildCandidates.NewUseCase(pool, checker, store, nil, noopLogger{})

	seedSession(t, store, &domain.SelectionSession{
		ID: "s1", RequesterID: 1, CategoryID: 1, Window: completeWindow(t),
	})

	resp, err := uc.Execute(ctx, buildCandidates.Request{SessionID: "s1", RequesterID: 1})
	require.NoError(t, err, "ошибка одной проверки не роняет весь набор")

	// Сбойная проверка трактуется как занято: единица выпадает из набора
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, int64(10), resp.Candidates[0].Unit.ID)
}

func TestExecute_IncompleteWindow(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(time.Hour)
	pool := &fakePool{units: []*domain.EquipmentUnit{unit(10, 1, "Проектор А")}}
	checker := &fakeChecker{}
	uc := buildCandidates.NewUseCase(pool, checker, store, nil, noopLogger{})

	// Категория выбрана, но окно задано не полностью
	seedSession(t, store, &domain.SelectionSession{
		ID: "s1", RequesterID: 1, CategoryID: 1,
		Window: domain.Window{StartTime: "10:00"},
	})

	resp, err := uc.Execute(ctx, buildCandidates.Request{SessionID: "s1", RequesterID: 1})
	require.NoError(t, err)

	require.Len(t, resp.Candidates, 1)
	assert.False(t, resp.Candidates[0].Checked, "без полного окна проверки не выполняются")
	assert.True(t, resp.Candidates[0].Available, "показываем как условно доступную")
	assert.Equal(t, 0, checker.calls)
}

func TestExecute_PostFilterKeepsOnlySelectedUnitOfType(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(time.Hour)
	pool := &fakePool{units: []*domain.EquipmentUnit{
		unit(10, 1, "Проектор А"),
		unit(11, 1, "Проектор Б"),
		unit(12, 2, "Экран"),
	}}
	checker := &fakeChecker{available: map[int64]bool{10: true, 11: true, 12: true}}
	uc := buildCandidates.NewUseCase(pool, checker, store, nil, noopLogger{})

	sess := &domain.SelectionSession{
		ID: "s1", RequesterID: 1, CategoryID: 1, Window: completeWindow(t),
		Selection: domain.Selection{
			1: {UnitID: 11, TypeID: 1, Label: "Проектор Б", Available: true},
		},
	}
	seedSession(t, store, sess)

	resp, err := uc.Execute(ctx, buildCandidates.Request{SessionID: "s1", RequesterID: 1})
	require.NoError(t, err)

	// Тип 1 уже представлен в выборе: из него остаётся только выбранная
	// единица, единицы других типов не затрагиваются
	assert.Equal(t, []int64{11, 12}, candidateIDs(resp.Candidates))
}

func TestExecute_SelectedUnavailableStaysTagged(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(time.Hour)
	pool := &fakePool{units: []*domain.EquipmentUnit{unit(10, 1, "Проектор А")}}
	checker := &fakeChecker{available: map[int64]bool{10: false}}
	uc := buildCandidates.NewUseCase(pool, checker, store, nil, noopLogger{})

	seedSession(t, store, &domain.SelectionSession{
		ID: "s1", RequesterID: 1, CategoryID: 1, Window: completeWindow(t),
		Selection: domain.Selection{
			1: {UnitID: 10, TypeID: 1, Label: "Проектор А", Available: true},
		},
	})

	resp, err := uc.Execute(ctx, buildCandidates.Request{SessionID: "s1", RequesterID: 1})
	require.NoError(t, err)

	// Выбранная единица остаётся в наборе даже занятой, с пометкой
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, int64(10), resp.Candidates[0].Unit.ID)
	assert.False(t, resp.Candidates[0].Available)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Selection, 1, "занятая единица остаётся в выборе")
	assert.False(t, got.Selection[1].Available, "флаг доступности обновлён из свежего набора")
}

func TestExecute_PoolUnavailable(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(time.Hour)
	pool := &fakePool{err: errors.New("catalog down")}
	uc := buildCandidates.NewUseCase(pool, &fakeChecker{}, store, nil, noopLogger{})

	seedSession(t, store, &domain.SelectionSession{
		ID: "s1", RequesterID: 1, CategoryID: 1, Window: completeWindow(t),
	})

	_, err := uc.Execute(ctx, buildCandidates.Request{SessionID: "s1", RequesterID: 1})
	assert.ErrorIs(t, err, buildCandidates.ErrPoolUnavailable)
}

func TestExecute_SessionNotFound(t *testing.T) {
	store := sessions.NewStore(time.Hour)
	uc := buildCandidates.NewUseCase(&fakePool{}, &fakeChecker{}, store, nil, noopLogger{})

	_, err := uc.Execute(context.Background(), buildCandidates.Request{SessionID: "missing", RequesterID: 1})
	assert.ErrorIs(t, err, buildCandidates.ErrSessionNotFound)
}

func TestExecute_ForeignSessionDenied(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(time.Hour)
	uc := buildCandidates.NewUseCase(&fakePool{}, &fakeChecker{}, store, nil, noopLogger{})

	seedSession(t, store, &domain.SelectionSession{ID: "s1", RequesterID: 1})

	_, err := uc.Execute(ctx, buildCandidates.Request{SessionID: "s1", RequesterID: 2})
	assert.ErrorIs(t, err, buildCandidates.ErrAccessDenied)
}

// racingPool имитирует смену фильтров во время сборки: пока идёт запрос
// пула, другой запрос повышает поколение сессии.
type racingPool struct {
	units []*domain.EquipmentUnit
	bump  func()
}

func (p *racingPool) GetUnitsByCategory(_ context.Context, _ int64) ([]*domain.EquipmentUnit, error) {
	p.bump()
	return p.units, nil
}

func TestExecute_StaleGenerationDiscarded(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(time.Hour)
	checker := &fakeChecker{available: map[int64]bool{10: false}}

	seedSession(t, store, &domain.SelectionSession{
		ID: "s1", RequesterID: 1, CategoryID: 1, Window: completeWindow(t),
		Selection: domain.Selection{
			1: {UnitID: 10, TypeID: 1, Label: "Проектор А", Available: true},
		},
	})

	pool := &racingPool{
		units: []*domain.EquipmentUnit{unit(10, 1, "Проектор А")},
		bump: func() {
			_, err := store.Update(ctx, "s1", func(s *domain.SelectionSession) error {
				s.Generation++
				return nil
			})
			require.NoError(t, err)
		},
	}
	uc := buildCandidates.NewUseCase(pool, checker, store, nil, noopLogger{})

	_, err := uc.Execute(ctx, buildCandidates.Request{SessionID: "s1", RequesterID: 1})
	assert.ErrorIs(t, err, buildCandidates.ErrStaleGeneration)

	// Устаревший набор не трогает выбор
	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.Selection[1].Available)
}

// addingPool имитирует добавление единицы другим запросом, пока идёт
// запрос пула: поколение не меняется, меняется только выбор.
type addingPool struct {
	units []*domain.EquipmentUnit
	add   func()
}

func (p *addingPool) GetUnitsByCategory(_ context.Context, _ int64) ([]*domain.EquipmentUnit, error) {
	p.add()
	return p.units, nil
}

func TestExecute_ConcurrentAddFiltersAgainstFreshSelection(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(time.Hour)
	checker := &fakeChecker{available: map[int64]bool{10: true, 11: true}}

	seedSession(t, store, &domain.SelectionSession{
		ID: "s1", RequesterID: 1, CategoryID: 1, Window: completeWindow(t),
	})

	pool := &addingPool{
		units: []*domain.EquipmentUnit{
			unit(10, 1, "Проектор А"),
			unit(11, 1, "Проектор Б"),
		},
		add: func() {
			_, err := store.Update(ctx, "s1", func(s *domain.SelectionSession) error {
				s.Selection = domain.Reduce(s.Selection, domain.AddUnit{Entry: domain.SelectionEntry{
					UnitID: 10, TypeID: 1, Label: "Проектор А", Available: true,
				}})
				return nil
			})
			require.NoError(t, err)
		},
	}
	uc := buildCandidates.NewUseCase(pool, checker, store, nil, noopLogger{})

	resp, err := uc.Execute(ctx, buildCandidates.Request{SessionID: "s1", RequesterID: 1})
	require.NoError(t, err)

	// Пост-фильтрация идёт против выбора на момент коммита: тип 1 уже
	// представлен единицей 10, поэтому единица 11 отброшена
	assert.Equal(t, []int64{10}, candidateIDs(resp.Candidates))
}
