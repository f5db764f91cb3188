package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
	"github.com/m04kA/EMS-ReservationService/internal/infra/sessions"
	eqstorage "github.com/m04kA/EMS-ReservationService/internal/infra/storage/equipment"
	resstorage "github.com/m04kA/EMS-ReservationService/internal/infra/storage/reservation"
)

type UseCase struct {
	reservations ReservationRepository
	equipment    EquipmentRepository
	sessions     SessionStore
	txManager    TxManager
	logger       Logger
}

func NewUseCase(reservations ReservationRepository, equipment EquipmentRepository, store SessionStore, txManager TxManager, logger Logger) *UseCase {
	return &UseCase{
		reservations: reservations,
		equipment:    equipment,
		sessions:     store,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute фиксирует сессию подбора в бронирование.
//
// Вся запись идёт в сериализуемой транзакции: внутри неё доступность
// каждой выбранной единицы перепроверяется заново, поэтому флаги
// available из сессии не являются гарантией. Если сессия редактирует
// существующее бронирование (ExcludeReservationID задан), окно и состав
// единиц обновляются на месте, иначе создаётся новое бронирование.
// Сессия удаляется только после успешного коммита.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: невалидный запрос: %v", err)
		return nil, err
	}

	session, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			uc.logger.Warn("CreateReservation: сессия не найдена: sessionID=%s", req.SessionID)
			return nil, fmt.Errorf("%w: Execute - sessionID=%s", ErrSessionNotFound, req.SessionID)
		}
		return nil, fmt.Errorf("%w: Execute - get session: %v", ErrInternal, err)
	}

	if session.RequesterID != req.RequesterID {
		uc.logger.Warn("CreateReservation: доступ запрещён: sessionID=%s, requesterID=%d", req.SessionID, req.RequesterID)
		return nil, fmt.Errorf("%w: Execute - sessionID=%s", ErrAccessDenied, req.SessionID)
	}

	if err := validateSession(session); err != nil {
		return nil, err
	}

	units := reservedUnits(session.Selection)

	var saved *domain.Reservation
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.recheckAvailability(txCtx, session, units); err != nil {
			return err
		}

		if session.ExcludeReservationID != nil {
			saved, err = uc.updateExisting(txCtx, session, req, units)
			return err
		}

		saved, err = uc.createNew(txCtx, session, req, units)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	uc.sessions.Delete(ctx, req.SessionID)

	uc.logger.Info("CreateReservation: бронирование зафиксировано: reservationID=%d, requesterID=%d, units=%d",
		saved.ID, req.RequesterID, len(units))

	return &Response{Reservation: saved}, nil
}

// recheckAvailability перепроверяет каждую выбранную единицу внутри
// транзакции. Занятая единица - отказ всей фиксации.
func (uc *UseCase) recheckAvailability(ctx context.Context, session *domain.SelectionSession, units []domain.ReservedUnit) error {
	for _, u := range units {
		unit, err := uc.equipment.GetUnitByID(ctx, u.UnitID)
		if err != nil {
			if errors.Is(err, eqstorage.ErrUnitNotFound) {
				return fmt.Errorf("%w: recheckAvailability - unitID=%d", ErrUnitNotAvailable, u.UnitID)
			}
			return fmt.Errorf("%w: recheckAvailability - get unit: %v", ErrInternal, err)
		}

		count, err := uc.reservations.CountOverlappingHolds(ctx, domain.AvailabilityQuery{
			UnitID:               u.UnitID,
			Window:               session.Window,
			ExcludeReservationID: session.ExcludeReservationID,
		})
		if err != nil {
			return fmt.Errorf("%w: recheckAvailability - count overlapping holds: %v", ErrInternal, err)
		}

		if count >= unit.Quantity {
			uc.logger.Warn("CreateReservation: единица занята на момент фиксации: unitID=%d", u.UnitID)
			return fmt.Errorf("%w: recheckAvailability - unitID=%d", ErrUnitNotAvailable, u.UnitID)
		}
	}
	return nil
}

func (uc *UseCase) createNew(ctx context.Context, session *domain.SelectionSession, req Request, units []domain.ReservedUnit) (*domain.Reservation, error) {
	reservation := &domain.Reservation{
		RequesterID:     req.RequesterID,
		CategoryID:      session.CategoryID,
		ReservationDate: session.Window.Date,
		StartTime:       session.Window.StartTime,
		EndTime:         session.Window.EndTime,
		Status:          domain.StatusConfirmed,
		Units:           units,
		Notes:           req.Notes,
	}

	saved, err := uc.reservations.Create(ctx, reservation)
	if err != nil {
		uc.logger.Error("CreateReservation: ошибка создания бронирования: %v", err)
		return nil, fmt.Errorf("%w: createNew: %v", ErrInternal, err)
	}
	return saved, nil
}

func (uc *UseCase) updateExisting(ctx context.Context, session *domain.SelectionSession, req Request, units []domain.ReservedUnit) (*domain.Reservation, error) {
	existing, err := uc.reservations.GetByID(ctx, *session.ExcludeReservationID)
	if err != nil {
		if errors.Is(err, resstorage.ErrReservationNotFound) {
			return nil, fmt.Errorf("%w: updateExisting - reservationID=%d", ErrReservationNotFound, *session.ExcludeReservationID)
		}
		return nil, fmt.Errorf("%w: updateExisting - get reservation: %v", ErrInternal, err)
	}

	if existing.RequesterID != req.RequesterID {
		return nil, fmt.Errorf("%w: updateExisting - reservationID=%d", ErrAccessDenied, existing.ID)
	}

	if !existing.CanBeUpdated() {
		return nil, fmt.Errorf("%w: updateExisting - reservationID=%d, status=%s", ErrNotEditable, existing.ID, existing.Status)
	}

	existing.CategoryID = session.CategoryID
	existing.ReservationDate = session.Window.Date
	existing.StartTime = session.Window.StartTime
	existing.EndTime = session.Window.EndTime
	existing.Units = units
	if req.Notes != nil {
		existing.Notes = req.Notes
	}

	if err := uc.reservations.UpdateWindowAndUnits(ctx, existing); err != nil {
		uc.logger.Error("CreateReservation: ошибка обновления бронирования: reservationID=%d: %v", existing.ID, err)
		return nil, fmt.Errorf("%w: updateExisting: %v", ErrInternal, err)
	}

	updated, err := uc.reservations.GetByID(ctx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: updateExisting - reload reservation: %v", ErrInternal, err)
	}
	return updated, nil
}

func reservedUnits(selection domain.Selection) []domain.ReservedUnit {
	entries := selection.Entries()
	units := make([]domain.ReservedUnit, 0, len(entries))
	for _, e := range entries {
		units = append(units, domain.ReservedUnit{
			UnitID: e.UnitID,
			TypeID: e.TypeID,
			Label:  e.Label,
		})
	}
	return units
}
