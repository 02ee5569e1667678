package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	engine "github.com/m04kA/SMC-ReservationEngine/internal/engine/reservation"
	journalRepo "github.com/m04kA/SMC-ReservationEngine/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationEngine/internal/integrations/catalog"
	"github.com/m04kA/SMC-ReservationEngine/internal/service/sessions/models"
	"github.com/m04kA/SMC-ReservationEngine/pkg/ptr"
)

// sideEffectTimeout ограничивает запись в журнал и снятие резерва из колбэков сессии
const sideEffectTimeout = 5 * time.Second

type entry struct {
	session *engine.Session
	hold    domain.ReservationHold

	// Подтверждения в каталоге, ещё не получившие ответ
	confirming int
	// Сессия истекла во время подтверждения, снятие резерва отложено
	releasePending bool
	// Каталог хотя бы раз подтвердил резерв
	upstreamConfirmed bool
}

// Service реестр живых сессий резервирования
// Колбэки сессий пишут итог в журнал, истечение дополнительно снимает резерв в каталоге
type Service struct {
	mu      sync.RWMutex
	entries map[string]*entry

	journal      Journal
	catalog      CatalogClient
	metrics      SessionMetrics
	ttlSeconds   int
	retention    time.Duration
	newTicker    engine.TickerFactory
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис сессий
// ttlSeconds <= 0 означает время подтверждения по умолчанию
func NewService(journal Journal, catalogClient CatalogClient, ttlSeconds int, retention time.Duration, logger Logger) *Service {
	if ttlSeconds <= 0 {
		ttlSeconds = domain.DefaultReservationTTLSeconds
	}
	return &Service{
		entries:      make(map[string]*entry),
		journal:      journal,
		catalog:      catalogClient,
		ttlSeconds:   ttlSeconds,
		retention:    retention,
		newTicker:    engine.NewRealTicker,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithMetrics включает учёт сессий
func (s *Service) WithMetrics(m SessionMetrics) *Service {
	s.metrics = m
	return s
}

// WithTickerFactory подменяет секундный тикер
func (s *Service) WithTickerFactory(f engine.TickerFactory) *Service {
	s.newTicker = f
	return s
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// TTL время на подтверждение резерва
func (s *Service) TTL() time.Duration {
	return time.Duration(s.ttlSeconds) * time.Second
}

// Start запускает отсчёт подтверждения для полученного резерва
func (s *Service) Start(ctx context.Context, hold domain.ReservationHold) (*models.Status, error) {
	s.logger.Info("Start: reservation=%s, service=%s, ttl=%ds", hold.ID, hold.ServiceID, s.ttlSeconds)

	if hold.CreatedAt.IsZero() {
		hold.CreatedAt = s.timeProvider.Now()
	}
	hold = hold.WithTTL(s.TTL())

	session, err := engine.NewSession(hold.ID,
		engine.WithInitialSeconds(s.ttlSeconds),
		engine.WithCallbacks(s.callbacks(hold)),
		engine.WithTickerFactory(s.newTicker),
		engine.WithClock(s.timeProvider.Now),
	)
	if err != nil {
		s.logger.Warn("Start: cannot create session for reservation=%s: %v", hold.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidHold, err)
	}

	e := &entry{session: session, hold: hold}

	s.mu.Lock()
	if _, exists := s.entries[hold.ID]; exists {
		s.mu.Unlock()
		s.logger.Warn("Start: session for reservation=%s already exists", hold.ID)
		return nil, ErrSessionExists
	}
	s.entries[hold.ID] = e
	s.mu.Unlock()

	// Журнал не блокирует отсчёт: без записи сессия всё равно живёт в памяти
	if err := s.journal.Create(ctx, domain.NewSessionRecord(hold, s.ttlSeconds)); err != nil {
		s.logger.Error("Start: failed to journal reservation=%s: %v", hold.ID, err)
	}

	if s.metrics != nil {
		s.metrics.SessionStarted()
	}
	session.Start()

	s.logger.Info("Start: session started for reservation=%s, expires_at=%s", hold.ID, hold.ExpiresAt.Format(time.RFC3339))
	return models.FromSession(hold, session.Snapshot()), nil
}

// Get возвращает статус сессии из реестра, иначе из журнала
func (s *Service) Get(ctx context.Context, reservationID string) (*models.Status, error) {
	if e, ok := s.lookup(reservationID); ok {
		return models.FromSession(s.holdOf(e), e.session.Snapshot()), nil
	}

	rec, err := s.journal.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, journalRepo.ErrSessionNotFound) {
			s.logger.Warn("Get: reservation=%s not found", reservationID)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("Get: journal error for reservation=%s: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Get - journal error: %v", ErrInternal, err)
	}

	return models.FromRecord(rec), nil
}

// Hold возвращает резерв и текущее состояние живой сессии
func (s *Service) Hold(reservationID string) (domain.ReservationHold, domain.SessionState, error) {
	e, ok := s.lookup(reservationID)
	if !ok {
		return domain.ReservationHold{}, "", ErrSessionNotFound
	}
	return s.holdOf(e), e.session.State(), nil
}

// Confirm переводит живую сессию в CONFIRMED после подтверждения в каталоге
// Возвращает false, если сессия успела завершиться раньше
func (s *Service) Confirm(reservationID string, confirmed *domain.ReservationHold) (bool, error) {
	e, ok := s.lookup(reservationID)
	if !ok {
		return false, ErrSessionNotFound
	}

	if confirmed != nil {
		s.mu.Lock()
		e.hold.Status = confirmed.Status
		e.hold.TotalPrice = confirmed.TotalPrice
		s.mu.Unlock()
	}

	if !e.session.Confirm() {
		s.logger.Warn("Confirm: reservation=%s already %s", reservationID, e.session.State())
		return false, nil
	}
	return true, nil
}

// BeginConfirm отмечает начало подтверждения в каталоге
// Пока отметка стоит, истечение сессии не снимает резерв
func (s *Service) BeginConfirm(reservationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[reservationID]
	if !ok {
		return ErrSessionNotFound
	}
	e.confirming++
	return nil
}

// EndConfirm снимает отметку подтверждения
// Если сессия истекла за время ожидания, а каталог не подтвердил резерв, он снимается здесь
func (s *Service) EndConfirm(reservationID string, upstreamConfirmed bool) {
	s.mu.Lock()
	e, ok := s.entries[reservationID]
	if !ok {
		s.mu.Unlock()
		return
	}
	if e.confirming > 0 {
		e.confirming--
	}
	if upstreamConfirmed {
		e.upstreamConfirmed = true
	}
	release := e.confirming == 0 && e.releasePending && !e.upstreamConfirmed
	if e.confirming == 0 {
		e.releasePending = false
	}
	s.mu.Unlock()

	if !release {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()
	s.logger.Info("EndConfirm: reservation=%s expired during refused confirm, releasing hold", reservationID)
	s.releaseHold(ctx, reservationID)
}

// Cancel отменяет живую сессию и снимает резерв в каталоге
// Ошибка каталога не отменяет перехода в CANCELLED
func (s *Service) Cancel(ctx context.Context, reservationID string) (*models.Status, error) {
	s.logger.Info("Cancel: reservation=%s", reservationID)

	e, ok := s.lookup(reservationID)
	if !ok {
		s.logger.Warn("Cancel: reservation=%s not found", reservationID)
		return nil, ErrSessionNotFound
	}

	if !e.session.Cancel() {
		s.logger.Warn("Cancel: reservation=%s already %s", reservationID, e.session.State())
		return nil, ErrSessionNotActive
	}

	s.releaseHold(ctx, reservationID)

	return models.FromSession(s.holdOf(e), e.session.Snapshot()), nil
}

// ListByService возвращает сессии услуги из журнала
// Для сессий из реестра подставляется актуальное живое состояние
func (s *Service) ListByService(ctx context.Context, serviceID string, states []domain.SessionState, limit uint64) ([]*models.Status, error) {
	records, err := s.journal.ListByService(ctx, serviceID, states, limit)
	if err != nil {
		s.logger.Error("ListByService: journal error for service=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: ListByService - journal error: %v", ErrInternal, err)
	}

	result := make([]*models.Status, 0, len(records))
	for _, rec := range records {
		if e, ok := s.lookup(rec.ReservationID); ok {
			result = append(result, models.FromSession(s.holdOf(e), e.session.Snapshot()))
			continue
		}
		result = append(result, models.FromRecord(rec))
	}

	s.logger.Info("ListByService: found %d sessions for service=%s", len(result), serviceID)
	return result, nil
}

// Sweep удаляет из реестра завершённые сессии старше периода хранения
func (s *Service) Sweep() int {
	now := s.timeProvider.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.entries {
		snap := e.session.Snapshot()
		if !snap.State.IsTerminal() || snap.FinishedAt == nil {
			continue
		}
		if now.Sub(*snap.FinishedAt) >= s.retention {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Active количество сессий в реестре
func (s *Service) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Shutdown останавливает тикеры всех сессий, состояния не меняются
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		e.session.Stop()
	}
	s.logger.Info("Shutdown: stopped %d sessions", len(s.entries))
}

// RecoverJournal помечает истёкшими сессии, оставшиеся активными после прошлого процесса
func (s *Service) RecoverJournal(ctx context.Context) (int64, error) {
	n, err := s.journal.ExpireOrphaned(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("RecoverJournal: failed to expire orphaned sessions: %v", err)
		return 0, fmt.Errorf("%w: RecoverJournal - journal error: %v", ErrInternal, err)
	}
	s.logger.Info("RecoverJournal: expired %d orphaned sessions", n)
	return n, nil
}

func (s *Service) lookup(reservationID string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[reservationID]
	return e, ok
}

func (s *Service) holdOf(e *entry) domain.ReservationHold {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return e.hold
}

func (s *Service) callbacks(hold domain.ReservationHold) engine.Callbacks {
	return engine.Callbacks{
		OnConfirm: s.finish,
		OnCancel:  s.finish,
		OnExpire: func(snap engine.Snapshot) {
			s.finish(snap)

			if s.deferRelease(snap.ID) {
				s.logger.Info("OnExpire: reservation=%s expired during confirm, hold release deferred", snap.ID)
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
			defer cancel()
			s.logger.Info("OnExpire: reservation=%s expired, releasing hold for service=%s", snap.ID, hold.ServiceID)
			s.releaseHold(ctx, snap.ID)
		},
	}
}

// deferRelease откладывает снятие резерва, если идёт подтверждение в каталоге
func (s *Service) deferRelease(reservationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[reservationID]
	if !ok || e.confirming == 0 {
		return false
	}
	e.releasePending = true
	return true
}

// finish записывает терминальное состояние в журнал
func (s *Service) finish(snap engine.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	finishedAt := ptr.Deref(snap.FinishedAt, s.timeProvider.Now())
	err := s.journal.Finish(ctx, snap.ID, snap.State, snap.Remaining, finishedAt)
	switch {
	case err == nil:
	case errors.Is(err, journalRepo.ErrAlreadyFinished):
		s.logger.Warn("Finish: reservation=%s already finished in journal", snap.ID)
	default:
		s.logger.Error("Finish: failed to journal reservation=%s, state=%s: %v", snap.ID, snap.State, err)
	}

	if s.metrics != nil {
		s.metrics.SessionFinished(string(snap.State))
	}
	s.logger.Info("Finish: reservation=%s finished with state=%s, remaining=%d", snap.ID, snap.State, snap.Remaining)
}

// releaseHold снимает резерв в каталоге, ошибки только логируются
func (s *Service) releaseHold(ctx context.Context, reservationID string) {
	err := s.catalog.Cancel(ctx, reservationID)
	switch {
	case err == nil:
		s.logger.Info("releaseHold: hold released for reservation=%s", reservationID)
	case catalog.IsNotFound(err):
		s.logger.Info("releaseHold: hold for reservation=%s already gone", reservationID)
	default:
		s.logger.Warn("releaseHold: failed to release hold for reservation=%s: %v", reservationID, err)
	}
}
