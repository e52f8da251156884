package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_response_system/internal/config"
	"github.com/shenikar/emergency_response_system/internal/events"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/notify"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=emergency.go -destination=mocks/emergency_mocks.go -package=mocks

// SubjectRepository определяет контракт хранилища подопечных
type SubjectRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Subject, error)
}

// EmergencyRepository определяет контракт хранилища тревог.
// Хронология, журнал оповещений и назначения - append-only дочерние коллекции агрегата.
type EmergencyRepository interface {
	Create(ctx context.Context, emergency *models.Emergency) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Emergency, error)
	List(ctx context.Context, page, pageSize int) ([]*models.Emergency, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.EmergencyStatus, reason string, resolvedAt time.Time) error
	AppendTimeline(ctx context.Context, id uuid.UUID, entry models.TimelineEntry) error
	AppendNotifications(ctx context.Context, id uuid.UUID, records []models.NotificationRecord) error
	AddResponders(ctx context.Context, id uuid.UUID, assignments []models.ResponderAssignment) error
	UpdateResponderStatus(ctx context.Context, emergencyID, responderID uuid.UUID, status string) error

	GetFromCache(ctx context.Context, id uuid.UUID) (*models.Emergency, error)
	SetCache(ctx context.Context, emergency *models.Emergency) error
	InvalidateCache(ctx context.Context, id uuid.UUID) error
}

// EmergencyService определяет контракт бизнес-логики жизненного цикла тревоги
type EmergencyService interface {
	Trigger(ctx context.Context, subjectID uuid.UUID, kind models.EmergencyKind, location models.Coordinate, accuracy *float64, evidence map[string]any) (*models.Emergency, error)
	Resolve(ctx context.Context, id uuid.UUID, status models.EmergencyStatus, reason string) (*models.Emergency, error)
	AcceptResponse(ctx context.Context, emergencyID, responderID uuid.UUID) (*models.Emergency, error)
	GetEmergency(ctx context.Context, id uuid.UUID) (*models.Emergency, error)
	ListEmergencies(ctx context.Context, page, pageSize int) ([]*models.Emergency, error)
	MatchResponders(ctx context.Context, location models.Coordinate, limit int) ([]models.RankedResponder, error)
	RecordAuthorityCall(ctx context.Context, emergencyID uuid.UUID, outcome notify.Outcome) error
}

type emergencyService struct {
	subjects    SubjectRepository
	emergencies EmergencyRepository
	matcher     *ResponderMatcher
	notifier    *Notifier
	emitter     events.Emitter
	authority   notify.AuthorityScheduler
	logger      *logrus.Logger
	cfg         *config.Config
	locks       *keyedMutex
}

// NewEmergencyService создает новый EmergencyService
func NewEmergencyService(
	subjects SubjectRepository,
	emergencies EmergencyRepository,
	matcher *ResponderMatcher,
	notifier *Notifier,
	emitter events.Emitter,
	authority notify.AuthorityScheduler,
	logger *logrus.Logger,
	cfg *config.Config,
) EmergencyService {
	return &emergencyService{
		subjects:    subjects,
		emergencies: emergencies,
		matcher:     matcher,
		notifier:    notifier,
		emitter:     emitter,
		authority:   authority,
		logger:      logger,
		cfg:         cfg,
		locks:       newKeyedMutex(),
	}
}

// Trigger создает тревогу, оповещает контакты и при необходимости подбирает ответчиков
// и планирует вызов экстренных служб
func (s *emergencyService) Trigger(ctx context.Context, subjectID uuid.UUID, kind models.EmergencyKind, location models.Coordinate, accuracy *float64, evidence map[string]any) (*models.Emergency, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "emergency",
		"method":     "Trigger",
		"subject_id": subjectID,
		"kind":       kind,
	})
	log.Info("Emergency trigger received")

	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		log.WithError(err).Warn("Subject lookup failed")
		return nil, fmt.Errorf("service: could not load subject: %w", err)
	}

	// Отсутствие контактов - жесткая ошибка, тревога без получателей не создается
	if len(subject.Contacts) == 0 {
		log.Warn("Subject has no contacts configured, rejecting trigger")
		return nil, fmt.Errorf("service: subject %s: %w", subjectID, ErrNoContacts)
	}

	now := time.Now()
	emergency := &models.Emergency{
		ID:             uuid.New(),
		SubjectID:      subjectID,
		Kind:           kind,
		Location:       location,
		AccuracyMeters: accuracy,
		Status:         models.StatusActive,
		TriggeredAt:    now,
	}

	unlock := s.locks.Lock(emergency.ID)
	defer unlock()

	if err := s.emergencies.Create(ctx, emergency); err != nil {
		log.WithError(err).Error("Failed to create emergency in repository")
		return nil, fmt.Errorf("service: could not create emergency: %w", err)
	}
	log = log.WithField("emergency_id", emergency.ID)

	triggeredDetail := map[string]any{"kind": string(kind)}
	if len(evidence) > 0 {
		triggeredDetail["evidence"] = evidence
	}
	s.appendTimeline(ctx, emergency, "triggered", triggeredDetail)

	// Эскалация по контактам
	records, err := s.notifier.Notify(ctx, emergency, subject, TemplateTrigger)
	if err != nil {
		log.WithError(err).Error("Notification plan failed")
		return nil, err
	}
	s.appendNotifications(ctx, emergency, records)
	s.appendTimeline(ctx, emergency, "contacts_notified", map[string]any{
		"attempts": len(records),
		"sent":     countSent(records),
	})

	// Медицинская тревога: подбор ответчиков поблизости
	if kind == models.KindHeart {
		if err := s.dispatchResponders(ctx, emergency, subject); err != nil {
			log.WithError(err).Error("Responder dispatch failed")
			return nil, err
		}
	}

	// Отложенный вызов экстренных служб, если подопечный включил авто-эскалацию
	if subject.AutoEscalate {
		call := notify.AuthorityCall{
			EmergencyID: emergency.ID,
			SubjectName: subject.Name,
			Kind:        string(kind),
			Location:    location,
			DueAt:       now.Add(s.cfg.AuthorityDelay),
		}
		if err := s.authority.Schedule(ctx, call); err != nil {
			// Неудача планирования не отменяет тревогу
			log.WithError(err).Error("Failed to schedule authority call")
		} else {
			s.appendTimeline(ctx, emergency, "authority_call_scheduled", map[string]any{
				"due_at": call.DueAt.Format(time.RFC3339),
			})
		}
	}

	s.emitEvent(ctx, "", events.EventEmergencyTriggered, emergency)
	for _, c := range subject.Contacts {
		s.emitEvent(ctx, c.ID.String(), events.EventEmergencyTriggered, emergency)
	}

	if err := s.emergencies.InvalidateCache(ctx, emergency.ID); err != nil {
		log.WithError(err).Warn("Failed to invalidate emergency cache")
	}

	log.Info("Emergency triggered successfully")
	return emergency, nil
}

// dispatchResponders подбирает ответчиков, фиксирует назначения и оповещает каждого
func (s *emergencyService) dispatchResponders(ctx context.Context, emergency *models.Emergency, subject *models.Subject) error {
	ranked, err := s.matcher.Match(ctx, emergency.Location, s.cfg.ResponderMatchLimit)
	if err != nil {
		return fmt.Errorf("service: could not match responders: %w", err)
	}
	if len(ranked) == 0 {
		s.appendTimeline(ctx, emergency, "responders_matched", map[string]any{"count": 0})
		return nil
	}

	now := time.Now()
	assignments := make([]models.ResponderAssignment, 0, len(ranked))
	for _, r := range ranked {
		assignments = append(assignments, models.ResponderAssignment{
			ResponderID:    r.Responder.ID,
			Name:           r.Responder.Name,
			Phone:          r.Responder.Phone,
			DistanceMeters: r.DistanceMeters,
			ETAMinutes:     r.ETAMinutes,
			Status:         models.ResponderNotified,
			NotifiedAt:     now,
		})
	}

	if err := s.emergencies.AddResponders(ctx, emergency.ID, assignments); err != nil {
		return fmt.Errorf("service: could not save responder assignments: %w", err)
	}
	emergency.Responders = append(emergency.Responders, assignments...)

	records := make([]models.NotificationRecord, 0, len(ranked))
	for _, r := range ranked {
		records = append(records, s.notifier.NotifyResponder(ctx, emergency, subject, r))
		s.emitEvent(ctx, r.Responder.ID.String(), events.EventCPRRequest, map[string]any{
			"emergency_id":    emergency.ID,
			"location":        emergency.Location,
			"distance_meters": r.DistanceMeters,
			"eta_minutes":     r.ETAMinutes,
		})
	}
	s.appendNotifications(ctx, emergency, records)
	s.appendTimeline(ctx, emergency, "responders_matched", map[string]any{"count": len(ranked)})

	return nil
}

// Resolve переводит тревогу в терминальный статус и рассылает сообщение-успокоение
func (s *emergencyService) Resolve(ctx context.Context, id uuid.UUID, status models.EmergencyStatus, reason string) (*models.Emergency, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "emergency",
		"method":       "Resolve",
		"emergency_id": id,
		"status":       status,
	})
	log.Info("Emergency resolve received")

	if !status.IsTerminal() {
		return nil, fmt.Errorf("service: status %q is not terminal: %w", status, ErrInvalidInput)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	emergency, err := s.emergencies.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Emergency lookup failed")
		return nil, fmt.Errorf("service: could not load emergency: %w", err)
	}
	if emergency.Status.IsTerminal() {
		log.Warn("Emergency is already in a terminal status")
		return nil, fmt.Errorf("service: emergency %s is already %s: %w", id, emergency.Status, ErrInvalidTransition)
	}

	now := time.Now()
	if err := s.emergencies.UpdateStatus(ctx, id, status, reason, now); err != nil {
		log.WithError(err).Error("Failed to update emergency status")
		return nil, fmt.Errorf("service: could not update emergency status: %w", err)
	}
	emergency.Status = status
	emergency.Reason = reason
	emergency.ResolvedAt = &now

	s.appendTimeline(ctx, emergency, "status_changed", map[string]any{
		"status": string(status),
		"reason": reason,
	})

	// Отмена отложенного вызова экстренных служб, если он еще не сработал
	cancelled, err := s.authority.Cancel(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to cancel scheduled authority call")
	} else if cancelled {
		s.appendTimeline(ctx, emergency, "authority_call_cancelled", nil)
	}

	// Сообщение-успокоение: SMS + email всем контактам, без звонков
	if subject, err := s.subjects.GetByID(ctx, emergency.SubjectID); err != nil {
		log.WithError(err).Warn("Failed to load subject for relief notification")
	} else if records, err := s.notifier.Notify(ctx, emergency, subject, TemplateRelief); err != nil {
		log.WithError(err).Warn("Relief notification failed")
	} else {
		s.appendNotifications(ctx, emergency, records)
	}

	s.emitEvent(ctx, "", events.EventEmergencyResolved, emergency)

	if err := s.emergencies.InvalidateCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate emergency cache")
	}

	log.Info("Emergency resolved successfully")
	return emergency, nil
}

// AcceptResponse переводит назначение ответчика из notified в accepted
func (s *emergencyService) AcceptResponse(ctx context.Context, emergencyID, responderID uuid.UUID) (*models.Emergency, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "emergency",
		"method":       "AcceptResponse",
		"emergency_id": emergencyID,
		"responder_id": responderID,
	})
	log.Info("Responder acceptance received")

	unlock := s.locks.Lock(emergencyID)
	defer unlock()

	emergency, err := s.emergencies.GetByID(ctx, emergencyID)
	if err != nil {
		log.WithError(err).Warn("Emergency lookup failed")
		return nil, fmt.Errorf("service: could not load emergency: %w", err)
	}
	if emergency.Status.IsTerminal() {
		log.Warn("Emergency is already terminal")
		return nil, fmt.Errorf("service: emergency %s is already %s: %w", emergencyID, emergency.Status, ErrInvalidTransition)
	}

	var assignment *models.ResponderAssignment
	for i := range emergency.Responders {
		if emergency.Responders[i].ResponderID == responderID {
			assignment = &emergency.Responders[i]
			break
		}
	}
	if assignment == nil {
		log.Warn("Responder assignment not found")
		return nil, fmt.Errorf("service: responder %s is not assigned to emergency %s: %w", responderID, emergencyID, ErrNotFound)
	}
	// Переход назначения однонаправленный: только notified -> accepted
	if assignment.Status != models.ResponderNotified {
		log.WithField("status", assignment.Status).Warn("Responder assignment is not in notified state")
		return nil, fmt.Errorf("service: responder %s is already %s for emergency %s: %w", responderID, assignment.Status, emergencyID, ErrInvalidTransition)
	}

	if err := s.emergencies.UpdateResponderStatus(ctx, emergencyID, responderID, models.ResponderAccepted); err != nil {
		log.WithError(err).Error("Failed to update responder assignment status")
		return nil, fmt.Errorf("service: could not update responder status: %w", err)
	}
	assignment.Status = models.ResponderAccepted

	s.appendTimeline(ctx, emergency, "responder_accepted", map[string]any{
		"responder_id": responderID.String(),
		"eta_minutes":  assignment.ETAMinutes,
	})

	s.emitEvent(ctx, emergency.SubjectID.String(), events.EventCPRResponderAccepted, map[string]any{
		"emergency_id": emergencyID,
		"responder_id": responderID,
		"name":         assignment.Name,
		"eta_minutes":  assignment.ETAMinutes,
	})

	if err := s.emergencies.InvalidateCache(ctx, emergencyID); err != nil {
		log.WithError(err).Warn("Failed to invalidate emergency cache")
	}

	log.Info("Responder acceptance recorded")
	return emergency, nil
}

// GetEmergency получает тревогу по ID (сначала из кеша, затем из БД)
func (s *emergencyService) GetEmergency(ctx context.Context, id uuid.UUID) (*models.Emergency, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "emergency",
		"method":       "GetEmergency",
		"emergency_id": id,
	})

	cached, err := s.emergencies.GetFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read emergency from cache")
	}
	if cached != nil {
		return cached, nil
	}

	emergency, err := s.emergencies.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get emergency from repository")
		return nil, fmt.Errorf("service: could not get emergency: %w", err)
	}

	if err := s.emergencies.SetCache(ctx, emergency); err != nil {
		log.WithError(err).Warn("Failed to cache emergency")
	}
	return emergency, nil
}

// ListEmergencies возвращает список тревог с пагинацией
func (s *emergencyService) ListEmergencies(ctx context.Context, page, pageSize int) ([]*models.Emergency, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "emergency",
		"method":    "ListEmergencies",
		"page":      page,
		"page_size": pageSize,
	})

	emergencies, err := s.emergencies.List(ctx, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list emergencies from repository")
		return nil, fmt.Errorf("service: could not list emergencies: %w", err)
	}
	return emergencies, nil
}

// MatchResponders выполняет подбор ответчиков без привязки к тревоге
func (s *emergencyService) MatchResponders(ctx context.Context, location models.Coordinate, limit int) ([]models.RankedResponder, error) {
	return s.matcher.Match(ctx, location, limit)
}

// RecordAuthorityCall фиксирует итог вызова экстренных служб; вызывается фоновым
// воркером и может прийти уже после завершения исходного запроса
func (s *emergencyService) RecordAuthorityCall(ctx context.Context, emergencyID uuid.UUID, outcome notify.Outcome) error {
	unlock := s.locks.Lock(emergencyID)
	defer unlock()

	event := "authority_notified"
	detail := map[string]any{"ok": outcome.OK}
	if outcome.OK {
		if outcome.ProviderRef != "" {
			detail["provider_ref"] = outcome.ProviderRef
		}
	} else {
		event = "authority_call_failed"
		detail["error"] = outcome.ErrorDetail
	}

	entry := models.TimelineEntry{At: time.Now(), Event: event, Detail: detail}
	if err := s.emergencies.AppendTimeline(ctx, emergencyID, entry); err != nil {
		return fmt.Errorf("service: could not record authority call: %w", err)
	}
	if err := s.emergencies.InvalidateCache(ctx, emergencyID); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate emergency cache")
	}
	return nil
}

// appendTimeline добавляет запись хронологии в хранилище и в агрегат в памяти
func (s *emergencyService) appendTimeline(ctx context.Context, emergency *models.Emergency, event string, detail map[string]any) {
	entry := models.TimelineEntry{At: time.Now(), Event: event, Detail: detail}
	if err := s.emergencies.AppendTimeline(ctx, emergency.ID, entry); err != nil {
		s.logger.WithError(err).WithField("event", event).Error("Failed to append timeline entry")
		return
	}
	emergency.Timeline = append(emergency.Timeline, entry)
}

func (s *emergencyService) appendNotifications(ctx context.Context, emergency *models.Emergency, records []models.NotificationRecord) {
	if len(records) == 0 {
		return
	}
	if err := s.emergencies.AppendNotifications(ctx, emergency.ID, records); err != nil {
		s.logger.WithError(err).Error("Failed to append notification records")
		return
	}
	emergency.Notifications = append(emergency.Notifications, records...)
}

// emitEvent публикует событие; пустая room означает broadcast. Ошибки только логируются.
func (s *emergencyService) emitEvent(ctx context.Context, room, event string, payload any) {
	var err error
	if room == "" {
		err = s.emitter.Broadcast(ctx, event, payload)
	} else {
		err = s.emitter.EmitTo(ctx, room, event, payload)
	}
	if err != nil {
		s.logger.WithError(err).WithField("event", event).Warn("Failed to emit event")
	}
}

func countSent(records []models.NotificationRecord) int {
	n := 0
	for _, r := range records {
		if r.Outcome == models.OutcomeSent {
			n++
		}
	}
	return n
}
