package selections

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
	"github.com/m04kA/EMS-ReservationService/internal/infra/sessions"
	resstorage "github.com/m04kA/EMS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/EMS-ReservationService/internal/service/selections/models"
	"github.com/m04kA/EMS-ReservationService/pkg/types"
)

// Service сервис сессий подбора оборудования
type Service struct {
	store        SessionStore
	pool         UnitPoolProvider
	checker      AvailabilityChecker
	reservations ReservationProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий подбора
func NewService(
	store SessionStore,
	pool UnitPoolProvider,
	checker AvailabilityChecker,
	reservations ReservationProvider,
	logger Logger,
) *Service {
	return &Service{
		store:        store,
		pool:         pool,
		checker:      checker,
		reservations: reservations,
		logger:       logger,
	}
}

// Create создает новую сессию подбора.
// При заданном FromReservationID сессия наследует фильтры и состав
// редактируемого бронирования, а его собственная занятость исключается
// из последующих проверок доступности.
func (s *Service) Create(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	if req.RequesterID <= 0 {
		return nil, fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	session := &domain.SelectionSession{
		ID:          uuid.NewString(),
		RequesterID: req.RequesterID,
		Selection:   domain.Selection{},
	}

	if req.FromReservationID != nil {
		if err := s.seedFromReservation(ctx, session, *req.FromReservationID); err != nil {
			return nil, err
		}
	}

	created := s.store.Create(ctx, session)

	s.logger.Info("Create: создана сессия подбора id=%s для пользователя=%d", created.ID, req.RequesterID)
	return models.FromDomainSession(created), nil
}

// Get возвращает текущее состояние сессии подбора
func (s *Service) Get(ctx context.Context, id string, requesterID int64) (*models.SessionResponse, error) {
	session, err := s.getOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSession(session), nil
}

// SetFilters изменяет фильтры сессии: категорию оборудования, дату, окно времени.
// Любое фактическое изменение сбрасывает текущий выбор и повышает поколение,
// делая все запущенные сборки кандидатов устаревшими.
func (s *Service) SetFilters(ctx context.Context, id string, req *models.SetFiltersRequest) (*models.SessionResponse, error) {
	if _, err := s.getOwned(ctx, id, req.RequesterID); err != nil {
		return nil, err
	}

	next, parseErr := parseFilters(req)
	if parseErr != nil {
		s.logger.Warn("SetFilters: некорректные фильтры для сессии id=%s: %v", id, parseErr)
		return nil, parseErr
	}

	updated, err := s.store.Update(ctx, id, func(sess *domain.SelectionSession) error {
		categoryID := sess.CategoryID
		window := sess.Window

		if next.categoryID != nil {
			categoryID = *next.categoryID
		}
		if next.date != nil {
			window.Date = *next.date
		}
		if next.startTime != nil {
			window.StartTime = *next.startTime
		}
		if next.endTime != nil {
			window.EndTime = *next.endTime
		}

		if window.IsComplete() && !window.EndTime.IsAfter(window.StartTime) {
			return fmt.Errorf("%w: end time must be after start time", ErrInvalidTimeRange)
		}

		changed := categoryID != sess.CategoryID ||
			!window.Date.Equal(sess.Window.Date) ||
			window.StartTime != sess.Window.StartTime ||
			window.EndTime != sess.Window.EndTime

		if !changed {
			return nil
		}

		sess.CategoryID = categoryID
		sess.Window = window
		sess.Selection = domain.Reduce(sess.Selection, domain.ResetFilters{})
		sess.Generation++
		return nil
	})
	if err != nil {
		return nil, s.mapStoreError(err, id)
	}

	s.logger.Info("SetFilters: фильтры сессии id=%s обновлены, поколение=%d", id, updated.Generation)
	return models.FromDomainSession(updated), nil
}

// AddUnit добавляет единицу оборудования в выбор сессии.
// Выбор возможен только при полностью заданных фильтрах; единица должна
// входить в пул активной категории и быть доступной в текущем окне. Если
// единица того же типа уже выбрана, она заменяется новой.
func (s *Service) AddUnit(ctx context.Context, id string, req *models.AddUnitRequest) (*models.SessionResponse, error) {
	if req.UnitID <= 0 {
		return nil, fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}

	session, err := s.getOwned(ctx, id, req.RequesterID)
	if err != nil {
		return nil, err
	}

	if !session.FiltersComplete() {
		s.logger.Warn("AddUnit: фильтры сессии id=%s заданы не полностью", id)
		return nil, fmt.Errorf("%w: AddUnit - sessionID=%s", ErrIncompleteFilters, id)
	}

	unit, err := s.findInPool(ctx, session.CategoryID, req.UnitID)
	if err != nil {
		return nil, err
	}

	result, err := s.checker.CheckUnit(ctx, domain.AvailabilityQuery{
		UnitID:               unit.ID,
		Window:               session.Window,
		ExcludeReservationID: session.ExcludeReservationID,
	})
	if err != nil {
		s.logger.Error("AddUnit: проверка доступности не удалась: unitID=%d: %v", unit.ID, err)
		return nil, fmt.Errorf("%w: AddUnit - availability check: %v", ErrInternal, err)
	}
	if !result.IsAvailable() {
		s.logger.Warn("AddUnit: единица unitID=%d занята в выбранном окне", unit.ID)
		return nil, fmt.Errorf("%w: AddUnit - unitID=%d", ErrUnitNotAvailable, unit.ID)
	}

	generation := session.Generation
	updated, err := s.store.Update(ctx, id, func(sess *domain.SelectionSession) error {
		// Фильтры могли измениться, пока шла проверка доступности
		if sess.Generation != generation {
			return fmt.Errorf("%w: AddUnit - sessionID=%s", ErrFiltersChanged, sess.ID)
		}
		sess.Selection = domain.Reduce(sess.Selection, domain.AddUnit{Entry: domain.SelectionEntry{
			UnitID:    unit.ID,
			TypeID:    unit.TypeID,
			Label:     unit.Label,
			Available: true,
		}})
		return nil
	})
	if err != nil {
		return nil, s.mapStoreError(err, id)
	}

	s.logger.Info("AddUnit: единица unitID=%d добавлена в сессию id=%s", unit.ID, id)
	return models.FromDomainSession(updated), nil
}

// RemoveUnit убирает единицу из выбора сессии. Отсутствующая единица - no-op.
func (s *Service) RemoveUnit(ctx context.Context, id string, req *models.RemoveUnitRequest) (*models.SessionResponse, error) {
	if _, err := s.getOwned(ctx, id, req.RequesterID); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, id, func(sess *domain.SelectionSession) error {
		sess.Selection = domain.Reduce(sess.Selection, domain.RemoveUnit{UnitID: req.UnitID})
		return nil
	})
	if err != nil {
		return nil, s.mapStoreError(err, id)
	}

	s.logger.Info("RemoveUnit: единица unitID=%d убрана из сессии id=%s", req.UnitID, id)
	return models.FromDomainSession(updated), nil
}

// Delete удаляет сессию подбора
func (s *Service) Delete(ctx context.Context, id string, requesterID int64) error {
	if _, err := s.getOwned(ctx, id, requesterID); err != nil {
		return err
	}
	s.store.Delete(ctx, id)
	s.logger.Info("Delete: сессия id=%s удалена", id)
	return nil
}

// PurgeExpired удаляет истекшие сессии, возвращает число удалённых
func (s *Service) PurgeExpired(now time.Time) int {
	purged := s.store.PurgeExpired(now)
	if purged > 0 {
		s.logger.Info("PurgeExpired: удалено истекших сессий: %d", purged)
	}
	return purged
}

func (s *Service) seedFromReservation(ctx context.Context, session *domain.SelectionSession, reservationID int64) error {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, resstorage.ErrReservationNotFound) {
			s.logger.Warn("Create: бронирование id=%d для редактирования не найдено", reservationID)
			return fmt.Errorf("%w: reservationID=%d", ErrReservationNotFound, reservationID)
		}
		return fmt.Errorf("%w: seedFromReservation: %v", ErrInternal, err)
	}

	if reservation.RequesterID != session.RequesterID {
		s.logger.Warn("Create: доступ запрещён пользователю=%d к бронированию id=%d", session.RequesterID, reservationID)
		return fmt.Errorf("%w: reservationID=%d", ErrAccessDenied, reservationID)
	}

	if !reservation.CanBeUpdated() {
		return fmt.Errorf("%w: reservationID=%d, status=%s", ErrNotEditable, reservationID, reservation.Status)
	}

	session.CategoryID = reservation.CategoryID
	session.Window = reservation.Window()
	session.ExcludeReservationID = &reservation.ID

	for _, u := range reservation.Units {
		session.Selection = domain.Reduce(session.Selection, domain.AddUnit{Entry: domain.SelectionEntry{
			UnitID:    u.UnitID,
			TypeID:    u.TypeID,
			Label:     u.Label,
			Available: true,
		}})
	}

	return nil
}

// findInPool ищет единицу в пуле активной категории
func (s *Service) findInPool(ctx context.Context, categoryID, unitID int64) (*domain.EquipmentUnit, error) {
	units, err := s.pool.GetUnitsByCategory(ctx, categoryID)
	if err != nil {
		s.logger.Error("findInPool: пул единиц недоступен: categoryID=%d: %v", categoryID, err)
		return nil, fmt.Errorf("%w: findInPool - categoryID=%d: %v", ErrInternal, categoryID, err)
	}

	for _, unit := range units {
		if unit.ID == unitID {
			return unit, nil
		}
	}

	s.logger.Warn("findInPool: единица unitID=%d не входит в пул категории categoryID=%d", unitID, categoryID)
	return nil, fmt.Errorf("%w: unitID=%d, categoryID=%d", ErrUnitNotFound, unitID, categoryID)
}

func (s *Service) getOwned(ctx context.Context, id string, requesterID int64) (*domain.SelectionSession, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: sessionID is empty", ErrInvalidInput)
	}
	if requesterID <= 0 {
		return nil, fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.mapStoreError(err, id)
	}

	if session.RequesterID != requesterID {
		s.logger.Warn("доступ запрещён пользователю=%d к сессии id=%s", requesterID, id)
		return nil, fmt.Errorf("%w: sessionID=%s", ErrAccessDenied, id)
	}

	return session, nil
}

func (s *Service) mapStoreError(err error, id string) error {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		s.logger.Warn("сессия id=%s не найдена", id)
		return fmt.Errorf("%w: sessionID=%s", ErrSessionNotFound, id)
	case errors.Is(err, ErrInvalidTimeRange),
		errors.Is(err, ErrFiltersChanged),
		errors.Is(err, ErrIncompleteFilters):
		return err
	default:
		s.logger.Error("ошибка хранилища сессий: id=%s: %v", id, err)
		return fmt.Errorf("%w: session store: %v", ErrInternal, err)
	}
}

// parsedFilters разобранные значения фильтров из запроса
type parsedFilters struct {
	categoryID *int64
	date       *time.Time
	startTime  *types.TimeString
	endTime    *types.TimeString
}

func parseFilters(req *models.SetFiltersRequest) (parsedFilters, error) {
	var next parsedFilters

	if req.CategoryID != nil {
		if *req.CategoryID < 0 {
			return next, fmt.Errorf("%w: categoryID must not be negative", ErrInvalidInput)
		}
		next.categoryID = req.CategoryID
	}

	if req.Date != nil {
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			return next, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
		}
		next.date = &date
	}

	if req.StartTime != nil {
		start, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return next, fmt.Errorf("%w: invalid startTime format, expected HH:MM", ErrInvalidInput)
		}
		next.startTime = &start
	}

	if req.EndTime != nil {
		end, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return next, fmt.Errorf("%w: invalid endTime format, expected HH:MM", ErrInvalidInput)
		}
		next.endTime = &end
	}

	return next, nil
}
