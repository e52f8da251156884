package notify

import "context"

//go:generate mockgen -source=sender.go -destination=mocks/sender_mocks.go -package=mocks

// Outcome - результат одной попытки отправки через внешний шлюз
type Outcome struct {
	OK          bool   `json:"ok"`
	ProviderRef string `json:"provider_ref,omitempty"`
	ErrorDetail string `json:"error_detail,omitempty"`
}

// MessageSender - контракт внешнего шлюза доставки сообщений.
// Ядро решает что, кому и в каком порядке отправлять; сама доставка - внешняя забота.
// Отказ доставки возвращается в Outcome и никогда не прерывает вызывающую операцию.
type MessageSender interface {
	SendSMS(ctx context.Context, phone, text string) Outcome
	SendCall(ctx context.Context, phone, text string) Outcome
	SendEmail(ctx context.Context, address, subject, body string) Outcome
}
