package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_response_system/internal/models"
)

// CoordinateDTO - координаты в запросе.
// Указатели позволяют отличить отсутствующее поле от валидного нуля (экватор/меридиан).
type CoordinateDTO struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// TriggerEmergencyRequest DTO для запуска тревоги
// @Description DTO для запуска тревоги
type TriggerEmergencyRequest struct {
	SubjectID      string         `json:"subject_id" validate:"required,uuid"`
	Kind           string         `json:"kind" validate:"required,oneof=voice-trigger shake fall manual heart route-deviation"`
	Latitude       *float64       `json:"latitude" validate:"required,latitude"`
	Longitude      *float64       `json:"longitude" validate:"required,longitude"`
	AccuracyMeters *float64       `json:"accuracy_meters,omitempty" validate:"omitempty,gt=0"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// ResolveEmergencyRequest DTO для завершения тревоги
// @Description DTO для завершения тревоги
type ResolveEmergencyRequest struct {
	Status string `json:"status" validate:"required,oneof=resolved cancelled false_alarm"`
	Reason string `json:"reason" validate:"required,min=2,max=500"`
}

// AcceptResponseRequest DTO для принятия вызова ответчиком
// @Description DTO для принятия вызова ответчиком
type AcceptResponseRequest struct {
	ResponderID string `json:"responder_id" validate:"required,uuid"`
}

// MatchRespondersRequest DTO для подбора ответчиков
// @Description DTO для подбора ответчиков
type MatchRespondersRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	Limit     int      `json:"limit,omitempty" validate:"omitempty,gte=1,lte=10"`
}

// StartTrackingRequest DTO для начала отслеживания пути
// @Description DTO для начала отслеживания пути
type StartTrackingRequest struct {
	SubjectID    string          `json:"subject_id" validate:"required,uuid"`
	Origin       CoordinateDTO   `json:"origin"`
	Destination  CoordinateDTO   `json:"destination"`
	ExpectedPath []CoordinateDTO `json:"expected_path" validate:"omitempty,dive"`
}

// UpdatePositionRequest DTO для наблюдаемой позиции
// @Description DTO для наблюдаемой позиции
type UpdatePositionRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// EmergencyResponse DTO для ответа с информацией о тревоге
// @Description DTO для ответа с информацией о тревоге
type EmergencyResponse struct {
	ID             uuid.UUID                    `json:"id"`
	SubjectID      uuid.UUID                    `json:"subject_id"`
	Kind           string                       `json:"kind"`
	Location       models.Coordinate            `json:"location"`
	AccuracyMeters *float64                     `json:"accuracy_meters,omitempty"`
	Status         string                       `json:"status"`
	Reason         string                       `json:"reason,omitempty"`
	TriggeredAt    time.Time                    `json:"triggered_at"`
	ResolvedAt     *time.Time                   `json:"resolved_at,omitempty"`
	Timeline       []models.TimelineEntry       `json:"timeline"`
	Notifications  []models.NotificationRecord  `json:"notifications"`
	Responders     []models.ResponderAssignment `json:"responders"`
	CreatedAt      time.Time                    `json:"created_at"`
	UpdatedAt      time.Time                    `json:"updated_at"`
}

// RankedResponderResponse DTO для элемента шорт-листа ответчиков
// @Description DTO для элемента шорт-листа ответчиков
type RankedResponderResponse struct {
	ResponderID    uuid.UUID `json:"responder_id"`
	Name           string    `json:"name"`
	DistanceMeters float64   `json:"distance_meters"`
	ETAMinutes     int       `json:"eta_minutes"`
	BearingDegrees float64   `json:"bearing_degrees"`
	Sector         int       `json:"sector"`
	Rating         float64   `json:"rating"`
}

// TrackingResponse DTO для ответа с информацией об отслеживании
// @Description DTO для ответа с информацией об отслеживании
type TrackingResponse struct {
	ID           uuid.UUID             `json:"id"`
	SubjectID    uuid.UUID             `json:"subject_id"`
	Origin       models.Coordinate     `json:"origin"`
	Destination  models.Coordinate     `json:"destination"`
	ExpectedPath []models.Coordinate   `json:"expected_path"`
	ObservedPath []models.TrackPoint   `json:"observed_path"`
	Deviation    models.DeviationState `json:"deviation"`
	Status       string                `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// UpdatePositionResponse DTO для результата проверки позиции
// @Description DTO для результата проверки позиции
type UpdatePositionResponse struct {
	Result    string                `json:"result"`
	Deviation models.DeviationState `json:"deviation"`
	Status    string                `json:"status"`
}
