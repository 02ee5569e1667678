package confirm_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	catalogClient "github.com/m04kA/SMC-ReservationEngine/internal/integrations/catalog"
	sessionsService "github.com/m04kA/SMC-ReservationEngine/internal/service/sessions"
)

// UseCase use case для подтверждения резерва до истечения отсчёта
type UseCase struct {
	sessions SessionService
	catalog  CatalogClient
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sessions SessionService, catalog CatalogClient, logger Logger) *UseCase {
	return &UseCase{
		sessions: sessions,
		catalog:  catalog,
		logger:   logger,
	}
}

// Execute подтверждает резерв в каталоге и завершает сессию
// При ошибке каталога сессия остаётся ACTIVE, подтверждение можно повторить
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmReservation: service=%s, reservation=%s", req.ServiceID, req.ReservationID)

	// 1. Валидация входных данных
	if req.ServiceID == "" || req.ReservationID == "" {
		return nil, fmt.Errorf("%w: service id and reservation id are required", ErrInvalidInput)
	}

	// 2. Проверяем, что сессия жива и принадлежит услуге
	hold, state, err := uc.sessions.Hold(req.ReservationID)
	if err != nil {
		if errors.Is(err, sessionsService.ErrSessionNotFound) {
			uc.logger.Warn("ConfirmReservation: reservation=%s not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("ConfirmReservation: failed to get session reservation=%s: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if hold.ServiceID != req.ServiceID {
		uc.logger.Warn("ConfirmReservation: reservation=%s belongs to service=%s, not %s",
			req.ReservationID, hold.ServiceID, req.ServiceID)
		return nil, ErrReservationNotFound
	}

	if state != domain.SessionActive {
		uc.logger.Warn("ConfirmReservation: reservation=%s is %s", req.ReservationID, state)
		return nil, fmt.Errorf("%w: state=%s", ErrNotActive, state)
	}

	// 3. Подтверждаем в каталоге, отсчёт при этом продолжается
	// Пока ждём ответ, истечение сессии не снимает резерв
	if err := uc.sessions.BeginConfirm(req.ReservationID); err != nil {
		uc.logger.Warn("ConfirmReservation: reservation=%s vanished before confirm: %v", req.ReservationID, err)
		return nil, ErrReservationNotFound
	}
	confirmed, err := uc.catalog.Confirm(ctx, req.ServiceID, req.ReservationID)
	uc.sessions.EndConfirm(req.ReservationID, err == nil)
	if err != nil {
		switch {
		case errors.Is(err, catalogClient.ErrReservationNotFound),
			errors.Is(err, catalogClient.ErrConflict),
			errors.Is(err, catalogClient.ErrRejected):
			uc.logger.Warn("ConfirmReservation: catalog refused reservation=%s: %v", req.ReservationID, err)
			return nil, fmt.Errorf("%w: %v", ErrConfirmRejected, err)
		default:
			uc.logger.Error("ConfirmReservation: failed to confirm reservation=%s: %v", req.ReservationID, err)
			return nil, fmt.Errorf("%w: failed to confirm: %v", ErrCatalogUnavailable, err)
		}
	}

	// 4. Завершаем сессию
	transitioned, err := uc.sessions.Confirm(req.ReservationID, confirmed)
	if err != nil {
		uc.logger.Error("ConfirmReservation: failed to confirm session reservation=%s: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to confirm session: %v", ErrInternal, err)
	}
	if !transitioned {
		uc.logger.Warn("ConfirmReservation: reservation=%s finished before the catalog answered, returning catalog result",
			req.ReservationID)
	}

	status, err := uc.sessions.Get(ctx, req.ReservationID)
	if err != nil {
		uc.logger.Error("ConfirmReservation: failed to read session reservation=%s: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to read session: %v", ErrInternal, err)
	}

	uc.logger.Info("ConfirmReservation: reservation=%s confirmed, state=%s", req.ReservationID, status.State)

	return &Response{
		Reservation: status,
		Hold:        *confirmed,
		LateConfirm: !transitioned,
	}, nil
}
