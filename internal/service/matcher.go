package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/shenikar/emergency_response_system/internal/geo"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=matcher.go -destination=mocks/matcher_mocks.go -package=mocks

// Скорость пешего ответчика: 5 км/ч = ~83.33 м/мин, грубая верхняя оценка без маршрутизации
const responderSpeedMetersPerMinute = 83.33

// Количество секторов компаса по 45 градусов
const compassSectors = 8

// DefaultMatchLimit - размер шорт-листа по умолчанию
const DefaultMatchLimit = 3

// ResponderRepository определяет контракт пула сертифицированных ответчиков
type ResponderRepository interface {
	ListAvailableCertified(ctx context.Context) ([]*models.Responder, error)
}

// ResponderMatcher подбирает упорядоченный, пространственно разнесенный шорт-лист
// ответчиков рядом с местом инцидента
type ResponderMatcher struct {
	pool   ResponderRepository
	logger *logrus.Logger
}

// NewResponderMatcher создает новый ResponderMatcher
func NewResponderMatcher(pool ResponderRepository, logger *logrus.Logger) *ResponderMatcher {
	return &ResponderMatcher{
		pool:   pool,
		logger: logger,
	}
}

// Match возвращает до limit ответчиков: ближайшие первыми, по возможности из разных
// секторов компаса. Пустой результат - валидный исход, а не ошибка.
func (m *ResponderMatcher) Match(ctx context.Context, location models.Coordinate, limit int) ([]models.RankedResponder, error) {
	if limit < 1 {
		limit = DefaultMatchLimit
	}

	log := m.logger.WithFields(logrus.Fields{
		"service": "matcher",
		"method":  "Match",
		"limit":   limit,
	})

	candidates, err := m.pool.ListAvailableCertified(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list responder pool")
		return nil, fmt.Errorf("service: could not list responder pool: %w", err)
	}

	ranked := rankCandidates(location, candidates)
	shortlist := pickDiverse(ranked, limit)

	log.WithFields(logrus.Fields{
		"pool_size": len(candidates),
		"matched":   len(shortlist),
	}).Info("Responder matching completed")

	return shortlist, nil
}

// rankCandidates фильтрует пул и сортирует выживших по возрастанию дистанции.
// Сортировка стабильная: при равных дистанциях сохраняется исходный порядок пула.
func rankCandidates(location models.Coordinate, candidates []*models.Responder) []models.RankedResponder {
	ranked := make([]models.RankedResponder, 0, len(candidates))
	for _, c := range candidates {
		if c == nil || !c.Available || !c.Certified || c.Location == nil {
			continue
		}

		distance := geo.Distance(location, *c.Location)
		// Радиус обслуживания у каждого ответчика свой, не глобальная константа
		if distance > c.ServiceRadiusMeters {
			continue
		}

		bearing := geo.Bearing(location, *c.Location)
		ranked = append(ranked, models.RankedResponder{
			Responder:      *c,
			DistanceMeters: distance,
			ETAMinutes:     int(math.Ceil(distance / responderSpeedMetersPerMinute)),
			BearingDegrees: bearing,
			Sector:         sectorIndex(bearing),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceMeters < ranked[j].DistanceMeters
	})
	return ranked
}

// pickDiverse жадно идет по отсортированному списку, предпочитая еще не занятые сектора.
// Если разных секторов не хватает, оставшиеся места заполняются ближайшими из уже
// занятых секторов: разнесение - предпочтение, а не жесткое ограничение.
func pickDiverse(ranked []models.RankedResponder, limit int) []models.RankedResponder {
	taken := make([]bool, len(ranked))
	usedSectors := make(map[int]bool)
	count := 0

	for i, r := range ranked {
		if count == limit {
			break
		}
		if usedSectors[r.Sector] {
			continue
		}
		usedSectors[r.Sector] = true
		taken[i] = true
		count++
	}

	// Второй проход: если разных секторов не хватило, добираем по чистой близости
	for i := range ranked {
		if count == limit {
			break
		}
		if taken[i] {
			continue
		}
		taken[i] = true
		count++
	}

	// Итог в исходном порядке "ближайшие первыми"
	accepted := make([]models.RankedResponder, 0, count)
	for i, r := range ranked {
		if taken[i] {
			accepted = append(accepted, r)
		}
	}
	return accepted
}

// sectorIndex вычисляет индекс сектора компаса 0-7 для азимута
func sectorIndex(bearing float64) int {
	return int(math.Floor((bearing+22.5)/45)) % compassSectors
}
