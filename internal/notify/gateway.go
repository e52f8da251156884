package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shenikar/emergency_response_system/internal/config"
	"github.com/sirupsen/logrus"
)

// HTTPGatewaySender - реализация MessageSender поверх HTTP-шлюза доставки.
// Каждый канал - отдельный endpoint; тело подписывается HMAC-SHA256, при неуспехе
// повторяем с экспоненциальной задержкой.
type HTTPGatewaySender struct {
	logger     *logrus.Logger
	cfg        *config.Config
	httpClient *http.Client
}

// NewHTTPGatewaySender создает новый HTTPGatewaySender
func NewHTTPGatewaySender(logger *logrus.Logger, cfg *config.Config) *HTTPGatewaySender {
	return &HTTPGatewaySender{
		logger: logger,
		cfg:    cfg,
		httpClient: &http.Client{
			Timeout: cfg.GatewayTimeout,
		},
	}
}

// SendSMS отправляет SMS через шлюз
func (s *HTTPGatewaySender) SendSMS(ctx context.Context, phone, text string) Outcome {
	return s.deliver(ctx, "/sms", map[string]string{"to": phone, "text": text})
}

// SendCall запускает голосовой вызов с озвучиванием текста
func (s *HTTPGatewaySender) SendCall(ctx context.Context, phone, text string) Outcome {
	return s.deliver(ctx, "/call", map[string]string{"to": phone, "text": text})
}

// SendEmail отправляет письмо через шлюз
func (s *HTTPGatewaySender) SendEmail(ctx context.Context, address, subject, body string) Outcome {
	return s.deliver(ctx, "/email", map[string]string{"to": address, "subject": subject, "body": body})
}

func (s *HTTPGatewaySender) deliver(ctx context.Context, path string, payload map[string]string) Outcome {
	log := s.logger.WithField("gateway_path", path)

	if s.cfg.GatewayURL == "" {
		log.Warn("Gateway URL is not configured. Rejecting send.")
		return Outcome{OK: false, ErrorDetail: "gateway not configured"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Outcome{OK: false, ErrorDetail: fmt.Sprintf("failed to marshal payload: %v", err)}
	}
	rawPayload := string(body)

	maxRetries := s.cfg.GatewayMaxRetries
	baseDelay := s.cfg.GatewayBaseDelay

	var lastDetail string
	for i := 0; i < maxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, "POST", s.cfg.GatewayURL+path, bytes.NewBufferString(rawPayload))
		if err != nil {
			lastDetail = fmt.Sprintf("failed to create request: %v", err)
			log.WithError(err).Errorf("Failed to create gateway request. Retries left: %d", maxRetries-1-i)
			continue
		}

		req.Header.Set("Content-Type", "application/json")

		// Добавляем HMAC подпись, если GATEWAY_SECRET задан
		if s.cfg.GatewaySecret != "" {
			signature := generateHMACSHA256(rawPayload, s.cfg.GatewaySecret)
			req.Header.Set("X-Gateway-Signature", signature)
		}

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastDetail = err.Error()
			log.WithError(err).Warnf("Failed to reach gateway. Retrying in %v. Retries left: %d", baseDelay, maxRetries-1-i)
			time.Sleep(baseDelay)
			baseDelay *= 2 // Экспоненциальная задержка
			continue
		}

		providerRef := resp.Header.Get("X-Provider-Ref")
		statusCode := resp.StatusCode
		resp.Body.Close()

		if statusCode >= 200 && statusCode < 300 {
			log.Debug("Gateway delivery accepted.")
			return Outcome{OK: true, ProviderRef: providerRef}
		}

		lastDetail = fmt.Sprintf("gateway responded with status %d", statusCode)
		log.Warnf("Gateway delivery failed with status code %d. Retrying in %v. Retries left: %d", statusCode, baseDelay, maxRetries-1-i)
		time.Sleep(baseDelay)
		baseDelay *= 2 // Экспоненциальная задержка
	}

	log.Errorf("Failed to deliver via gateway after %d retries.", maxRetries)
	return Outcome{OK: false, ErrorDetail: lastDetail}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
