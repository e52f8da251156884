package events

import "context"

//go:generate mockgen -source=emitter.go -destination=mocks/emitter_mocks.go -package=mocks

// Имена событий реального времени (совместимы с существующими клиентами)
const (
	EventEmergencyTriggered   = "emergency_triggered"
	EventEmergencyResolved    = "emergency_resolved"
	EventRouteDeviation       = "route_deviation"
	EventCPRRequest           = "cpr_request"
	EventCPRResponderAccepted = "cpr_responder_accepted"
	EventLocationUpdated      = "location_updated"
)

// Emitter - контракт для публикации событий реального времени.
// Fire-and-forget: ядро не требует гарантий доставки.
type Emitter interface {
	Broadcast(ctx context.Context, event string, payload any) error
	EmitTo(ctx context.Context, room string, event string, payload any) error
}
