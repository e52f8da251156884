package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_response_system/internal/events"
	"github.com/shenikar/emergency_response_system/internal/geo"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=tracking.go -destination=mocks/tracking_mocks.go -package=mocks

// TrackingRepository определяет контракт хранилища отслеживаемых маршрутов
type TrackingRepository interface {
	Create(ctx context.Context, tracking *models.JourneyTracking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.JourneyTracking, error)
	FindActiveBySubject(ctx context.Context, subjectID uuid.UUID) (*models.JourneyTracking, error)
	AppendPoint(ctx context.Context, id uuid.UUID, point models.TrackPoint) error
	UpdateDeviation(ctx context.Context, id uuid.UUID, state models.DeviationState, status models.TrackingStatus) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.TrackingStatus) error
}

// TrackingService определяет контракт мониторинга отклонения от маршрута
type TrackingService interface {
	StartTracking(ctx context.Context, subjectID uuid.UUID, origin, destination models.Coordinate, expectedPath []models.Coordinate) (*models.JourneyTracking, error)
	UpdatePosition(ctx context.Context, trackingID uuid.UUID, point models.Coordinate) (*models.JourneyTracking, models.DeviationResult, error)
	CompleteTracking(ctx context.Context, trackingID uuid.UUID) (*models.JourneyTracking, error)
}

type trackingService struct {
	trackings   TrackingRepository
	emergencies EmergencyService
	emitter     events.Emitter
	logger      *logrus.Logger
	threshold   float64
	locks       *keyedMutex
}

// NewTrackingService создает новый TrackingService.
// thresholdMeters - порог отклонения, после которого взводится защелка (по умолчанию 500 м).
func NewTrackingService(trackings TrackingRepository, emergencies EmergencyService, emitter events.Emitter, logger *logrus.Logger, thresholdMeters float64) TrackingService {
	if thresholdMeters <= 0 {
		thresholdMeters = 500
	}
	return &trackingService{
		trackings:   trackings,
		emergencies: emergencies,
		emitter:     emitter,
		logger:      logger,
		threshold:   thresholdMeters,
		locks:       newKeyedMutex(),
	}
}

// StartTracking начинает отслеживание пути подопечного
func (s *trackingService) StartTracking(ctx context.Context, subjectID uuid.UUID, origin, destination models.Coordinate, expectedPath []models.Coordinate) (*models.JourneyTracking, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "tracking",
		"method":     "StartTracking",
		"subject_id": subjectID,
	})
	log.Info("Starting journey tracking")

	// У подопечного может быть только один незавершенный маршрут
	if existing, err := s.trackings.FindActiveBySubject(ctx, subjectID); err == nil {
		log.WithField("tracking_id", existing.ID).Warn("Subject already has an active tracking")
		return nil, fmt.Errorf("service: subject %s already has active tracking %s: %w", subjectID, existing.ID, ErrInvalidTransition)
	} else if !errors.Is(err, ErrNotFound) {
		log.WithError(err).Error("Failed to check for active tracking")
		return nil, fmt.Errorf("service: could not check active tracking: %w", err)
	}

	tracking := &models.JourneyTracking{
		ID:           uuid.New(),
		SubjectID:    subjectID,
		Origin:       origin,
		Destination:  destination,
		ExpectedPath: expectedPath,
		Status:       models.TrackingActive,
	}
	if err := s.trackings.Create(ctx, tracking); err != nil {
		log.WithError(err).Error("Failed to create tracking in repository")
		return nil, fmt.Errorf("service: could not create tracking: %w", err)
	}

	log.WithField("tracking_id", tracking.ID).Info("Journey tracking started")
	return tracking, nil
}

// UpdatePosition применяет наблюдаемую позицию и выполняет проверку защелки отклонения.
// Позиции одного трекинга применяются строго последовательно (мьютекс по id), поэтому
// "защелка срабатывает не более одного раза" выполняется и при конкурентной отправке.
func (s *trackingService) UpdatePosition(ctx context.Context, trackingID uuid.UUID, point models.Coordinate) (*models.JourneyTracking, models.DeviationResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "tracking",
		"method":      "UpdatePosition",
		"tracking_id": trackingID,
	})

	unlock := s.locks.Lock(trackingID)
	defer unlock()

	tracking, err := s.trackings.GetByID(ctx, trackingID)
	if err != nil {
		log.WithError(err).Warn("Tracking lookup failed")
		return nil, models.DeviationNoChange, fmt.Errorf("service: could not load tracking: %w", err)
	}
	if tracking.Status == models.TrackingCompleted {
		return nil, models.DeviationNoChange, fmt.Errorf("service: tracking %s is already completed: %w", trackingID, ErrInvalidTransition)
	}

	observed := models.TrackPoint{Coordinate: point, At: time.Now()}
	if err := s.trackings.AppendPoint(ctx, trackingID, observed); err != nil {
		log.WithError(err).Error("Failed to append observed point")
		return nil, models.DeviationNoChange, fmt.Errorf("service: could not append observed point: %w", err)
	}
	tracking.ObservedPath = append(tracking.ObservedPath, observed)

	if err := s.emitter.EmitTo(ctx, tracking.SubjectID.String(), events.EventLocationUpdated, map[string]any{
		"tracking_id": trackingID,
		"location":    point,
		"at":          observed.At,
	}); err != nil {
		log.WithError(err).Warn("Failed to emit location event")
	}

	result := s.checkDeviation(ctx, tracking, point, log)
	return tracking, result, nil
}

// checkDeviation - compare-and-set защелки отклонения; вызывается под мьютексом трекинга
func (s *trackingService) checkDeviation(ctx context.Context, tracking *models.JourneyTracking, point models.Coordinate, log *logrus.Entry) models.DeviationResult {
	distance, ok := geo.PointToPathMinDistance(point, tracking.ExpectedPath)
	if !ok {
		// Нет опорного маршрута - мониторинг не применим
		return models.DeviationNotApplicable
	}

	maxChanged := false
	if distance > tracking.Deviation.MaxDeviationMeters {
		tracking.Deviation.MaxDeviationMeters = distance
		maxChanged = true
	}

	if distance > s.threshold && !tracking.Deviation.Detected {
		// Первое пересечение порога: взводим защелку и один раз запускаем тревогу
		now := time.Now()
		tracking.Deviation.Detected = true
		tracking.Deviation.DetectedAt = &now
		tracking.Deviation.Reason = fmt.Sprintf("deviated %.0f m from expected path (threshold %.0f m)", distance, s.threshold)
		tracking.Status = models.TrackingDeviationAlert

		if err := s.trackings.UpdateDeviation(ctx, tracking.ID, tracking.Deviation, tracking.Status); err != nil {
			log.WithError(err).Error("Failed to persist deviation latch")
		}

		s.fireDeviationAlert(ctx, tracking, point, distance, log)
		return models.DeviationNewlyDetected
	}

	if maxChanged {
		if err := s.trackings.UpdateDeviation(ctx, tracking.ID, tracking.Deviation, tracking.Status); err != nil {
			log.WithError(err).Error("Failed to persist max deviation")
		}
	}
	return models.DeviationNoChange
}

// fireDeviationAlert - побочный эффект первого пересечения порога: тревога route-deviation
// через машину жизненного цикла и широковещательное событие
func (s *trackingService) fireDeviationAlert(ctx context.Context, tracking *models.JourneyTracking, point models.Coordinate, distance float64, log *logrus.Entry) {
	log.WithField("deviation_meters", distance).Warn("Route deviation detected")

	evidence := map[string]any{
		"tracking_id":      tracking.ID.String(),
		"deviation_meters": distance,
	}
	emergency, err := s.emergencies.Trigger(ctx, tracking.SubjectID, models.KindRouteDeviation, point, nil, evidence)
	if err != nil {
		// Защелка уже взведена и сохранена; неудача оповещения не снимает ее
		log.WithError(err).Error("Failed to trigger route deviation emergency")
	}

	payload := map[string]any{
		"tracking_id":      tracking.ID,
		"subject_id":       tracking.SubjectID,
		"location":         point,
		"deviation_meters": distance,
	}
	if emergency != nil {
		payload["emergency_id"] = emergency.ID
	}
	if err := s.emitter.Broadcast(ctx, events.EventRouteDeviation, payload); err != nil {
		log.WithError(err).Warn("Failed to broadcast route deviation event")
	}
}

// CompleteTracking завершает отслеживание пути
func (s *trackingService) CompleteTracking(ctx context.Context, trackingID uuid.UUID) (*models.JourneyTracking, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "tracking",
		"method":      "CompleteTracking",
		"tracking_id": trackingID,
	})

	unlock := s.locks.Lock(trackingID)
	defer unlock()

	tracking, err := s.trackings.GetByID(ctx, trackingID)
	if err != nil {
		log.WithError(err).Warn("Tracking lookup failed")
		return nil, fmt.Errorf("service: could not load tracking: %w", err)
	}
	if tracking.Status == models.TrackingCompleted {
		return nil, fmt.Errorf("service: tracking %s is already completed: %w", trackingID, ErrInvalidTransition)
	}

	if err := s.trackings.UpdateStatus(ctx, trackingID, models.TrackingCompleted); err != nil {
		log.WithError(err).Error("Failed to complete tracking")
		return nil, fmt.Errorf("service: could not complete tracking: %w", err)
	}
	tracking.Status = models.TrackingCompleted

	log.Info("Journey tracking completed")
	return tracking, nil
}
