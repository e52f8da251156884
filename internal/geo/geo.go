package geo

import (
	"math"

	"github.com/shenikar/emergency_response_system/internal/models"
)

// Радиус Земли в метрах
const earthRadiusMeters = 6371000

// Distance вычисляет расстояние по дуге большого круга между двумя точками (haversine), в метрах.
// Результат неотрицательный и симметричный.
func Distance(a, b models.Coordinate) float64 {
	if a.Latitude == b.Latitude && a.Longitude == b.Longitude {
		return 0
	}

	lat1 := a.Latitude * math.Pi / 180
	lon1 := a.Longitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	lon2 := b.Longitude * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Bearing вычисляет начальный азимут от from к to в градусах [0, 360).
// Для совпадающих точек направление не определено - по соглашению возвращаем 0.
func Bearing(from, to models.Coordinate) float64 {
	if from.Latitude == to.Latitude && from.Longitude == to.Longitude {
		return 0
	}

	lat1 := from.Latitude * math.Pi / 180
	lon1 := from.Longitude * math.Pi / 180
	lat2 := to.Latitude * math.Pi / 180
	lon2 := to.Longitude * math.Pi / 180

	y := math.Sin(lon2-lon1) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(lon2-lon1)

	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// PointToPathMinDistance возвращает минимальное расстояние от точки до вершин маршрута.
// Второе значение false означает "нет опорного маршрута" (пустой path) - вызывающий код
// обязан проверять его прежде чем трактовать нулевое расстояние как осмысленное.
func PointToPathMinDistance(point models.Coordinate, path []models.Coordinate) (float64, bool) {
	if len(path) == 0 {
		return 0, false
	}

	minDistance := math.Inf(1)
	for _, p := range path {
		if d := Distance(point, p); d < minDistance {
			minDistance = d
		}
	}
	return minDistance, true
}
