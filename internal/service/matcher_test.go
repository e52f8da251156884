package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestMatcher — вспомогательная функция для создания подборщика с мок-пулом.
func newTestMatcher(t *testing.T) (*ResponderMatcher, *mocks.MockResponderRepository) {
	ctrl := gomock.NewController(t)
	poolMock := mocks.NewMockResponderRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	return NewResponderMatcher(poolMock, logger), poolMock
}

// makeResponder создает доступного сертифицированного ответчика в заданной точке
func makeResponder(name string, lat, lon float64) *models.Responder {
	return &models.Responder{
		ID:                  uuid.New(),
		Name:                name,
		Phone:               "+79000000010",
		Location:            &models.Coordinate{Latitude: lat, Longitude: lon},
		Available:           true,
		Certified:           true,
		ServiceRadiusMeters: 5000,
	}
}

func TestMatch_OrdersByDistanceAndPrefersDistinctSectors(t *testing.T) {
	// Подготовка
	matcher, poolMock := newTestMatcher(t)
	ctx := context.Background()
	incident := models.Coordinate{Latitude: 0, Longitude: 0}

	// Два ответчика на севере (один сектор), один на востоке, один на юге.
	// Расстояния возрастают: ~100, ~200, ~300, ~400 метров.
	north1 := makeResponder("north1", 0.0009, 0)
	north2 := makeResponder("north2", 0.0018, 0)
	east1 := makeResponder("east1", 0, 0.0027)
	south1 := makeResponder("south1", -0.0036, 0)

	// Ожидания
	poolMock.EXPECT().
		ListAvailableCertified(ctx).
		Return([]*models.Responder{north1, north2, east1, south1}, nil)

	// Действие
	ranked, err := matcher.Match(ctx, incident, 3)

	// Проверки: второй северный пропущен в пользу востока и юга,
	// итог упорядочен "ближайшие первыми"
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "north1", ranked[0].Responder.Name)
	assert.Equal(t, "east1", ranked[1].Responder.Name)
	assert.Equal(t, "south1", ranked[2].Responder.Name)

	// Сектора компаса: север 0, восток 2, юг 4
	assert.Equal(t, 0, ranked[0].Sector)
	assert.Equal(t, 2, ranked[1].Sector)
	assert.Equal(t, 4, ranked[2].Sector)

	// ETA пешего хода: ~100 м при 83.33 м/мин => 2 минуты с округлением вверх
	assert.Equal(t, 2, ranked[0].ETAMinutes)
	assert.InDelta(t, 100, ranked[0].DistanceMeters, 5)
}

func TestMatch_FillsFromTakenSectorsWhenDiversityExhausted(t *testing.T) {
	// Подготовка
	matcher, poolMock := newTestMatcher(t)
	ctx := context.Background()
	incident := models.Coordinate{Latitude: 0, Longitude: 0}

	north1 := makeResponder("north1", 0.0009, 0)
	north2 := makeResponder("north2", 0.0018, 0)

	// Ожидания
	poolMock.EXPECT().
		ListAvailableCertified(ctx).
		Return([]*models.Responder{north2, north1}, nil)

	// Действие
	ranked, err := matcher.Match(ctx, incident, 2)

	// Проверки: разнесение по секторам - предпочтение, а не жесткое ограничение
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "north1", ranked[0].Responder.Name)
	assert.Equal(t, "north2", ranked[1].Responder.Name)
}

func TestMatch_FiltersPool(t *testing.T) {
	// Подготовка
	matcher, poolMock := newTestMatcher(t)
	ctx := context.Background()
	incident := models.Coordinate{Latitude: 0, Longitude: 0}

	valid := makeResponder("valid", 0.0009, 0)

	unavailable := makeResponder("unavailable", 0.0009, 0)
	unavailable.Available = false

	uncertified := makeResponder("uncertified", 0.0009, 0)
	uncertified.Certified = false

	noLocation := makeResponder("no-location", 0, 0)
	noLocation.Location = nil

	// Ответчик в ~100 м, но его собственный радиус обслуживания всего 50 м
	outOfRadius := makeResponder("out-of-radius", 0.0009, 0)
	outOfRadius.ServiceRadiusMeters = 50

	// Ожидания
	poolMock.EXPECT().
		ListAvailableCertified(ctx).
		Return([]*models.Responder{unavailable, uncertified, noLocation, outOfRadius, valid}, nil)

	// Действие
	ranked, err := matcher.Match(ctx, incident, 3)

	// Проверки
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "valid", ranked[0].Responder.Name)
}

func TestMatch_EmptyPoolIsNotAnError(t *testing.T) {
	// Подготовка
	matcher, poolMock := newTestMatcher(t)
	ctx := context.Background()

	// Ожидания
	poolMock.EXPECT().
		ListAvailableCertified(ctx).
		Return([]*models.Responder{}, nil)

	// Действие
	ranked, err := matcher.Match(ctx, models.Coordinate{}, 3)

	// Проверки
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestMatch_RepositoryError(t *testing.T) {
	// Подготовка
	matcher, poolMock := newTestMatcher(t)
	ctx := context.Background()

	// Ожидания
	poolMock.EXPECT().
		ListAvailableCertified(ctx).
		Return(nil, fmt.Errorf("connection refused"))

	// Действие
	ranked, err := matcher.Match(ctx, models.Coordinate{}, 3)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, ranked)
}

func TestMatch_DefaultLimit(t *testing.T) {
	// Подготовка
	matcher, poolMock := newTestMatcher(t)
	ctx := context.Background()
	incident := models.Coordinate{Latitude: 0, Longitude: 0}

	pool := make([]*models.Responder, 0, 5)
	for i := 1; i <= 5; i++ {
		pool = append(pool, makeResponder(fmt.Sprintf("r%d", i), 0.0009*float64(i), 0))
	}

	// Ожидания
	poolMock.EXPECT().ListAvailableCertified(ctx).Return(pool, nil)

	// Действие: limit <= 0 заменяется значением по умолчанию
	ranked, err := matcher.Match(ctx, incident, 0)

	// Проверки
	require.NoError(t, err)
	assert.Len(t, ranked, DefaultMatchLimit)
}
