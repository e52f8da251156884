package models

import (
	"time"

	"github.com/google/uuid"
)

// Responder - сертифицированный ответчик из пула. Ядро читает снимки и никогда их не меняет.
type Responder struct {
	ID                  uuid.UUID   `json:"id"`
	Name                string      `json:"name"`
	Phone               string      `json:"phone"`
	Location            *Coordinate `json:"location,omitempty"`
	Available           bool        `json:"available"`
	Certified           bool        `json:"certified"`
	ServiceRadiusMeters float64     `json:"service_radius_meters"`
	Rating              float64     `json:"rating"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// RankedResponder - результат подбора для одного инцидента, живет только в рамках вызова
type RankedResponder struct {
	Responder      Responder `json:"responder"`
	DistanceMeters float64   `json:"distance_meters"`
	ETAMinutes     int       `json:"eta_minutes"`
	BearingDegrees float64   `json:"bearing_degrees"`
	Sector         int       `json:"sector"` // индекс сектора компаса 0-7
}
