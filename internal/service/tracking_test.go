package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_response_system/internal/events"
	events_mocks "github.com/shenikar/emergency_response_system/internal/events/mocks"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type trackingServiceMocks struct {
	trackings   *mocks.MockTrackingRepository
	emergencies *mocks.MockEmergencyService
	emitter     *events_mocks.MockEmitter
}

// newTestTrackingService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestTrackingService(t *testing.T) (*trackingService, *trackingServiceMocks) {
	ctrl := gomock.NewController(t)
	m := &trackingServiceMocks{
		trackings:   mocks.NewMockTrackingRepository(ctrl),
		emergencies: mocks.NewMockEmergencyService(ctrl),
		emitter:     events_mocks.NewMockEmitter(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	service := NewTrackingService(m.trackings, m.emergencies, m.emitter, logger, 500)
	return service.(*trackingService), m
}

// activeTracking - трекинг вдоль меридиана: маршрут (0,0) -> (0.01, 0), ~1.1 км
func activeTracking() *models.JourneyTracking {
	return &models.JourneyTracking{
		ID:          uuid.New(),
		SubjectID:   uuid.New(),
		Origin:      models.Coordinate{Latitude: 0, Longitude: 0},
		Destination: models.Coordinate{Latitude: 0.01, Longitude: 0},
		ExpectedPath: []models.Coordinate{
			{Latitude: 0, Longitude: 0},
			{Latitude: 0.005, Longitude: 0},
			{Latitude: 0.01, Longitude: 0},
		},
		Status: models.TrackingActive,
	}
}

func TestStartTracking_Success(t *testing.T) {
	// Подготовка
	service, m := newTestTrackingService(t)
	ctx := context.Background()
	subjectID := uuid.New()
	origin := models.Coordinate{Latitude: 0, Longitude: 0}
	destination := models.Coordinate{Latitude: 0.01, Longitude: 0}

	// Ожидания
	m.trackings.EXPECT().FindActiveBySubject(ctx, subjectID).Return(nil, ErrNotFound)
	m.trackings.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	// Действие
	tracking, err := service.StartTracking(ctx, subjectID, origin, destination, []models.Coordinate{origin, destination})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.TrackingActive, tracking.Status)
	assert.Equal(t, subjectID, tracking.SubjectID)
	assert.NotEqual(t, uuid.Nil, tracking.ID)
	assert.False(t, tracking.Deviation.Detected)
}

func TestStartTracking_RepoError(t *testing.T) {
	// Подготовка
	service, m := newTestTrackingService(t)
	ctx := context.Background()
	subjectID := uuid.New()

	// Ожидания
	m.trackings.EXPECT().FindActiveBySubject(ctx, subjectID).Return(nil, ErrNotFound)
	m.trackings.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("insert failed"))

	// Действие
	tracking, err := service.StartTracking(ctx, subjectID, models.Coordinate{}, models.Coordinate{}, nil)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, tracking)
}

func TestStartTracking_ActiveTrackingExists(t *testing.T) {
	// Подготовка
	service, m := newTestTrackingService(t)
	ctx := context.Background()
	existing := activeTracking()

	// Ожидания: второй маршрут не создается, пока первый не завершен
	m.trackings.EXPECT().FindActiveBySubject(ctx, existing.SubjectID).Return(existing, nil)
	m.trackings.EXPECT().Create(ctx, gomock.Any()).Times(0)

	// Действие
	tracking, err := service.StartTracking(ctx, existing.SubjectID, models.Coordinate{}, models.Coordinate{}, nil)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, tracking)
}

func TestUpdatePosition_WithinThreshold(t *testing.T) {
	// Подготовка
	service, m := newTestTrackingService(t)
	ctx := context.Background()
	tracking := activeTracking()

	// ~111 м восточнее маршрута: меньше порога 500 м
	point := models.Coordinate{Latitude: 0, Longitude: 0.001}

	// Ожидания
	m.trackings.EXPECT().GetByID(ctx, tracking.ID).Return(tracking, nil)
	m.trackings.EXPECT().AppendPoint(ctx, tracking.ID, gomock.Any()).Return(nil)
	m.emitter.EXPECT().EmitTo(ctx, tracking.SubjectID.String(), events.EventLocationUpdated, gomock.Any()).Return(nil)
	// Максимум отклонения вырос - состояние сохраняется, но защелка не взводится
	m.trackings.EXPECT().
		UpdateDeviation(ctx, tracking.ID, gomock.Any(), models.TrackingActive).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, state models.DeviationState, _ models.TrackingStatus) error {
			assert.False(t, state.Detected)
			assert.InDelta(t, 111, state.MaxDeviationMeters, 5)
			return nil
		})

	// Действие
	updated, result, err := service.UpdatePosition(ctx, tracking.ID, point)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.DeviationNoChange, result)
	assert.False(t, updated.Deviation.Detected)
	assert.Len(t, updated.ObservedPath, 1)
}

func TestUpdatePosition_FirstCrossingLatches(t *testing.T) {
	// Подготовка
	service, m := newTestTrackingService(t)
	ctx := context.Background()
	tracking := activeTracking()

	// ~1.1 км восточнее маршрута: выше порога 500 м
	point := models.Coordinate{Latitude: 0, Longitude: 0.01}

	// Ожидания
	m.trackings.EXPECT().GetByID(ctx, tracking.ID).Return(tracking, nil)
	m.trackings.EXPECT().AppendPoint(ctx, tracking.ID, gomock.Any()).Return(nil)
	m.emitter.EXPECT().EmitTo(ctx, tracking.SubjectID.String(), events.EventLocationUpdated, gomock.Any()).Return(nil)
	m.trackings.EXPECT().
		UpdateDeviation(ctx, tracking.ID, gomock.Any(), models.TrackingDeviationAlert).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, state models.DeviationState, _ models.TrackingStatus) error {
			assert.True(t, state.Detected)
			assert.NotNil(t, state.DetectedAt)
			assert.NotEmpty(t, state.Reason)
			return nil
		})
	m.emergencies.EXPECT().
		Trigger(ctx, tracking.SubjectID, models.KindRouteDeviation, point, gomock.Nil(), gomock.Any()).
		Return(&models.Emergency{ID: uuid.New()}, nil)
	m.emitter.EXPECT().Broadcast(ctx, events.EventRouteDeviation, gomock.Any()).Return(nil)

	// Действие
	updated, result, err := service.UpdatePosition(ctx, tracking.ID, point)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.DeviationNewlyDetected, result)
	assert.True(t, updated.Deviation.Detected)
	assert.Equal(t, models.TrackingDeviationAlert, updated.Status)
}

func TestUpdatePosition_LatchedOnlyOnce(t *testing.T) {
	// Подготовка
	service, m := newTestTrackingService(t)
	ctx := context.Background()
	tracking := activeTracking()

	// Защелка уже взведена предыдущим пересечением порога
	tracking.Deviation.Detected = true
	tracking.Deviation.MaxDeviationMeters = 2000
	tracking.Status = models.TrackingDeviationAlert

	point := models.Coordinate{Latitude: 0, Longitude: 0.01}

	// Ожидания: ни повторной тревоги, ни записи состояния (максимум не вырос)
	m.trackings.EXPECT().GetByID(ctx, tracking.ID).Return(tracking, nil)
	m.trackings.EXPECT().AppendPoint(ctx, tracking.ID, gomock.Any()).Return(nil)
	m.emitter.EXPECT().EmitTo(ctx, tracking.SubjectID.String(), events.EventLocationUpdated, gomock.Any()).Return(nil)

	// Действие
	_, result, err := service.UpdatePosition(ctx, tracking.ID, point)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.DeviationNoChange, result)
}

func TestUpdatePosition_EmptyPathNotApplicable(t *testing.T) {
	// Подготовка
	service, m := newTestTrackingService(t)
	ctx := context.Background()
	tracking := activeTracking()
	tracking.ExpectedPath = nil

	point := models.Coordinate{Latitude: 1, Longitude: 1}

	// Ожидания
	m.trackings.EXPECT().GetByID(ctx, tracking.ID).Return(tracking, nil)
	m.trackings.EXPECT().AppendPoint(ctx, tracking.ID, gomock.Any()).Return(nil)
	m.emitter.EXPECT().EmitTo(ctx, tracking.SubjectID.String(), events.EventLocationUpdated, gomock.Any()).Return(nil)

	// Действие
	_, result, err := service.UpdatePosition(ctx, tracking.ID, point)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.DeviationNotApplicable, result)
}

func TestUpdatePosition_LatchSurvivesAlertFailure(t *testing.T) {
	// Подготовка
	service, m := newTestTrackingService(t)
	ctx := context.Background()
	tracking := activeTracking()
	point := models.Coordinate{Latitude: 0, Longitude: 0.01}

	// Ожидания: тревога падает, но защелка остается взведенной
	m.trackings.EXPECT().GetByID(ctx, tracking.ID).Return(tracking, nil)
	m.trackings.EXPECT().AppendPoint(ctx, tracking.ID, gomock.Any()).Return(nil)
	m.emitter.EXPECT().EmitTo(ctx, tracking.SubjectID.String(), events.EventLocationUpdated, gomock.Any()).Return(nil)
	m.trackings.EXPECT().UpdateDeviation(ctx, tracking.ID, gomock.Any(), models.TrackingDeviationAlert).Return(nil)
	m.emergencies.EXPECT().
		Trigger(ctx, tracking.SubjectID, models.KindRouteDeviation, point, gomock.Nil(), gomock.Any()).
		Return(nil, ErrNoContacts)
	m.emitter.EXPECT().Broadcast(ctx, events.EventRouteDeviation, gomock.Any()).Return(nil)

	// Действие
	updated, result, err := service.UpdatePosition(ctx, tracking.ID, point)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.DeviationNewlyDetected, result)
	assert.True(t, updated.Deviation.Detected)
}

func TestUpdatePosition_CompletedTracking(t *testing.T) {
	// Подготовка
	service, m := newTestTrackingService(t)
	ctx := context.Background()
	tracking := activeTracking()
	tracking.Status = models.TrackingCompleted

	// Ожидания
	m.trackings.EXPECT().GetByID(ctx, tracking.ID).Return(tracking, nil)

	// Действие
	_, _, err := service.UpdatePosition(ctx, tracking.ID, models.Coordinate{})

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdatePosition_NotFound(t *testing.T) {
	// Подготовка
	service, m := newTestTrackingService(t)
	ctx := context.Background()
	trackingID := uuid.New()

	// Ожидания
	m.trackings.EXPECT().GetByID(ctx, trackingID).Return(nil, ErrNotFound)

	// Действие
	_, _, err := service.UpdatePosition(ctx, trackingID, models.Coordinate{})

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteTracking_Success(t *testing.T) {
	// Подготовка
	service, m := newTestTrackingService(t)
	ctx := context.Background()
	tracking := activeTracking()

	// Ожидания
	m.trackings.EXPECT().GetByID(ctx, tracking.ID).Return(tracking, nil)
	m.trackings.EXPECT().UpdateStatus(ctx, tracking.ID, models.TrackingCompleted).Return(nil)

	// Действие
	completed, err := service.CompleteTracking(ctx, tracking.ID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.TrackingCompleted, completed.Status)
}

func TestCompleteTracking_AlreadyCompleted(t *testing.T) {
	// Подготовка
	service, m := newTestTrackingService(t)
	ctx := context.Background()
	tracking := activeTracking()
	tracking.Status = models.TrackingCompleted

	// Ожидания
	m.trackings.EXPECT().GetByID(ctx, tracking.ID).Return(tracking, nil)

	// Действие
	completed, err := service.CompleteTracking(ctx, tracking.ID)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, completed)
}
