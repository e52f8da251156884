package models

import (
	"time"

	"github.com/google/uuid"
)

// TrackingStatus - статус отслеживаемого маршрута
type TrackingStatus string

const (
	TrackingActive         TrackingStatus = "active"
	TrackingCompleted      TrackingStatus = "completed"
	TrackingDeviationAlert TrackingStatus = "deviation_alert"
	TrackingEmergency      TrackingStatus = "emergency"
)

// DeviationResult - исход проверки одной наблюдаемой позиции
type DeviationResult string

const (
	// DeviationNotApplicable - ожидаемый маршрут пуст, проверять нечего
	DeviationNotApplicable DeviationResult = "not_applicable"
	// DeviationNewlyDetected - первый выход за порог; единственный момент срабатывания тревоги
	DeviationNewlyDetected DeviationResult = "newly_detected"
	// DeviationNoChange - порог не превышен либо защелка уже взведена
	DeviationNoChange DeviationResult = "no_change"
)

// TrackPoint - наблюдаемая позиция с отметкой времени
type TrackPoint struct {
	Coordinate
	At time.Time `json:"at"`
}

// DeviationState - защелка отклонения от маршрута.
// Detected переходит из false в true не более одного раза на трекинг.
type DeviationState struct {
	Detected           bool       `json:"detected"`
	DetectedAt         *time.Time `json:"detected_at,omitempty"`
	MaxDeviationMeters float64    `json:"max_deviation_meters"`
	Reason             string     `json:"reason,omitempty"`
}

// JourneyTracking - отслеживание пути подопечного
type JourneyTracking struct {
	ID           uuid.UUID      `json:"id"`
	SubjectID    uuid.UUID      `json:"subject_id"`
	Origin       Coordinate     `json:"origin"`
	Destination  Coordinate     `json:"destination"`
	ExpectedPath []Coordinate   `json:"expected_path"` // может быть пустым
	ObservedPath []TrackPoint   `json:"observed_path"`
	Deviation    DeviationState `json:"deviation"`
	Status       TrackingStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
