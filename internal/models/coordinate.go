package models

// Coordinate - географическая точка в градусах (WGS84)
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
