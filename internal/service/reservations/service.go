package reservations

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
	resstorage "github.com/m04kA/EMS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/EMS-ReservationService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь может видеть только собственное бронирование.
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for requester=%d", id, requesterID)

	reservation, err := s.getOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainReservation(reservation), nil
}

// GetRequesterReservations получает историю бронирований пользователя.
// Опционально фильтрует по статусу.
func (s *Service) GetRequesterReservations(ctx context.Context, req *models.GetRequesterReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetRequesterReservations: fetching reservations for requester=%d, status=%v", req.RequesterID, req.Status)

	if req.RequesterID <= 0 {
		return nil, fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetRequesterReservations: invalid status=%s for requester=%d", *req.Status, req.RequesterID)
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByRequesterID(ctx, req.RequesterID, domainStatus)
	if err != nil {
		s.logger.Error("GetRequesterReservations: repository error for requester=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: GetRequesterReservations - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservations(reservations), nil
}

// Cancel отменяет бронирование по инициативе пользователя.
// Отменить можно только собственное бронирование в статусе pending или confirmed.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by requester=%d", id, req.RequesterID)

	if utf8.RuneCountInString(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason too long, max %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	reservation, err := s.getOwned(ctx, id, req.RequesterID)
	if err != nil {
		return nil, err
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d in status=%s cannot be cancelled", id, reservation.Status)
		return nil, fmt.Errorf("%w: status=%s", ErrCannotCancel, reservation.Status)
	}

	if err := s.reservationRepo.Cancel(ctx, id, domain.StatusCancelledByRequester, req.CancellationReason); err != nil {
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Cancel: failed to reload reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - reload: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: reservation id=%d cancelled", id)
	return models.FromDomainReservation(cancelled), nil
}

func (s *Service) getOwned(ctx context.Context, id int64, requesterID int64) (*domain.Reservation, error) {
	if id <= 0 || requesterID <= 0 {
		return nil, fmt.Errorf("%w: id and requesterID must be positive", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, resstorage.ErrReservationNotFound) {
			s.logger.Warn("reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if reservation.RequesterID != requesterID {
		s.logger.Warn("access denied for requester=%d to reservation id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	return reservation, nil
}
