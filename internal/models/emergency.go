package models

import (
	"time"

	"github.com/google/uuid"
)

// EmergencyKind - тип сработавшей тревоги (закрытый набор значений)
type EmergencyKind string

const (
	KindVoiceTrigger   EmergencyKind = "voice-trigger"
	KindShake          EmergencyKind = "shake"
	KindFall           EmergencyKind = "fall"
	KindManual         EmergencyKind = "manual"
	KindHeart          EmergencyKind = "heart"
	KindRouteDeviation EmergencyKind = "route-deviation"
)

// EmergencyStatus - статус тревоги. Переходы только из active в терминальный статус.
type EmergencyStatus string

const (
	StatusActive     EmergencyStatus = "active"
	StatusResolved   EmergencyStatus = "resolved"
	StatusCancelled  EmergencyStatus = "cancelled"
	StatusFalseAlarm EmergencyStatus = "false_alarm"
)

// IsTerminal возвращает true для статусов, из которых нет переходов
func (s EmergencyStatus) IsTerminal() bool {
	return s == StatusResolved || s == StatusCancelled || s == StatusFalseAlarm
}

// NotificationChannel - канал доставки оповещения
type NotificationChannel string

const (
	ChannelSMS   NotificationChannel = "sms"
	ChannelEmail NotificationChannel = "email"
	ChannelCall  NotificationChannel = "call"
)

// Итог одной попытки отправки
const (
	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

// TimelineEntry - запись хронологии тревоги (только добавление, без перезаписи)
type TimelineEntry struct {
	At     time.Time      `json:"at"`
	Event  string         `json:"event"`
	Detail map[string]any `json:"detail,omitempty"`
}

// NotificationRecord - запись об одной попытке отправки по паре (контакт, канал)
type NotificationRecord struct {
	ContactID   uuid.UUID           `json:"contact_id"`
	ContactName string              `json:"contact_name"`
	Channel     NotificationChannel `json:"channel"`
	At          time.Time           `json:"at"`
	Outcome     string              `json:"outcome"`
	Detail      string              `json:"detail,omitempty"` // provider reference либо текст ошибки
}

// Статусы назначения ответчика
const (
	ResponderNotified = "notified"
	ResponderAccepted = "accepted"
)

// ResponderAssignment - назначенный на тревогу ответчик; мутабелен только статус
type ResponderAssignment struct {
	ResponderID    uuid.UUID `json:"responder_id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	DistanceMeters float64   `json:"distance_meters"`
	ETAMinutes     int       `json:"eta_minutes"`
	Status         string    `json:"status"`
	NotifiedAt     time.Time `json:"notified_at"`
}

// Emergency - агрегат тревоги с дочерними append-only коллекциями
type Emergency struct {
	ID             uuid.UUID             `json:"id"`
	SubjectID      uuid.UUID             `json:"subject_id"`
	Kind           EmergencyKind         `json:"kind"`
	Location       Coordinate            `json:"location"`
	AccuracyMeters *float64              `json:"accuracy_meters,omitempty"`
	Status         EmergencyStatus       `json:"status"`
	Reason         string                `json:"reason,omitempty"`
	TriggeredAt    time.Time             `json:"triggered_at"`
	ResolvedAt     *time.Time            `json:"resolved_at,omitempty"`
	Timeline       []TimelineEntry       `json:"timeline"`
	Notifications  []NotificationRecord  `json:"notifications"`
	Responders     []ResponderAssignment `json:"responders"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}
