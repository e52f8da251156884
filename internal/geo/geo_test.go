package geo

import (
	"testing"

	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePoint(t *testing.T) {
	p := models.Coordinate{Latitude: 55.7558, Longitude: 37.6173}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_Symmetric(t *testing.T) {
	a := models.Coordinate{Latitude: 55.7558, Longitude: 37.6173}  // Москва
	b := models.Coordinate{Latitude: 59.9343, Longitude: 30.3351} // Санкт-Петербург

	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestDistance_KnownValue(t *testing.T) {
	// Москва - Санкт-Петербург, около 634 км
	a := models.Coordinate{Latitude: 55.7558, Longitude: 37.6173}
	b := models.Coordinate{Latitude: 59.9343, Longitude: 30.3351}

	d := Distance(a, b)
	assert.InDelta(t, 634000, d, 5000)
}

func TestDistance_NonNegative(t *testing.T) {
	a := models.Coordinate{Latitude: -33.8688, Longitude: 151.2093}
	b := models.Coordinate{Latitude: 40.7128, Longitude: -74.0060}

	assert.GreaterOrEqual(t, Distance(a, b), 0.0)
}

func TestBearing_SamePoint(t *testing.T) {
	p := models.Coordinate{Latitude: 10, Longitude: 20}
	assert.Equal(t, 0.0, Bearing(p, p))
}

func TestBearing_CardinalDirections(t *testing.T) {
	origin := models.Coordinate{Latitude: 0, Longitude: 0}

	tests := []struct {
		name     string
		to       models.Coordinate
		expected float64
	}{
		{"север", models.Coordinate{Latitude: 1, Longitude: 0}, 0},
		{"восток", models.Coordinate{Latitude: 0, Longitude: 1}, 90},
		{"юг", models.Coordinate{Latitude: -1, Longitude: 0}, 180},
		{"запад", models.Coordinate{Latitude: 0, Longitude: -1}, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Bearing(origin, tt.to), 0.01)
		})
	}
}

func TestBearing_Range(t *testing.T) {
	origin := models.Coordinate{Latitude: 50, Longitude: 10}
	points := []models.Coordinate{
		{Latitude: 51, Longitude: 11},
		{Latitude: 49, Longitude: 9},
		{Latitude: 50, Longitude: -170},
		{Latitude: -50, Longitude: 10.0001},
	}

	for _, p := range points {
		b := Bearing(origin, p)
		assert.GreaterOrEqual(t, b, 0.0)
		assert.Less(t, b, 360.0)
	}
}

func TestPointToPathMinDistance_EmptyPath(t *testing.T) {
	p := models.Coordinate{Latitude: 1, Longitude: 1}

	d, ok := PointToPathMinDistance(p, nil)
	assert.False(t, ok)
	assert.Equal(t, 0.0, d)
}

func TestPointToPathMinDistance_PicksNearestVertex(t *testing.T) {
	path := []models.Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 1},
		{Latitude: 0, Longitude: 2},
	}
	// Точка рядом со второй вершиной
	p := models.Coordinate{Latitude: 0.001, Longitude: 1}

	d, ok := PointToPathMinDistance(p, path)
	assert.True(t, ok)
	assert.InDelta(t, Distance(p, path[1]), d, 1e-9)
	assert.Less(t, d, Distance(p, path[0]))
}

func TestPointToPathMinDistance_OnVertex(t *testing.T) {
	path := []models.Coordinate{
		{Latitude: 10, Longitude: 10},
		{Latitude: 11, Longitude: 11},
	}

	d, ok := PointToPathMinDistance(path[0], path)
	assert.True(t, ok)
	assert.Equal(t, 0.0, d)
}
