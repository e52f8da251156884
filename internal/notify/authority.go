package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_response_system/internal/config"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	authorityQueueKey      = "authority_calls"
	authorityCallKeyPrefix = "authority_call:"
)

// AuthorityCall - отложенный вызов экстренных служб по конкретной тревоге
type AuthorityCall struct {
	EmergencyID uuid.UUID         `json:"emergency_id"`
	SubjectName string            `json:"subject_name"`
	Kind        string            `json:"kind"`
	Location    models.Coordinate `json:"location"`
	DueAt       time.Time         `json:"due_at"`
}

//go:generate mockgen -source=authority.go -destination=mocks/authority_mocks.go -package=mocks

// AuthorityScheduler - планировщик отложенных вызовов экстренных служб.
// Вызов можно отменить до наступления DueAt, если тревога завершилась раньше.
type AuthorityScheduler interface {
	Schedule(ctx context.Context, call AuthorityCall) error
	Cancel(ctx context.Context, emergencyID uuid.UUID) (bool, error)
}

// CallResultRecorder фиксирует итог вызова экстренных служб в хронологии тревоги
type CallResultRecorder interface {
	RecordAuthorityCall(ctx context.Context, emergencyID uuid.UUID, outcome Outcome) error
}

// RedisAuthorityScheduler - реализация AuthorityScheduler на Redis.
// Очередность хранится в sorted set (score = unix-время срабатывания),
// полезная нагрузка - в отдельном ключе по id тревоги.
type RedisAuthorityScheduler struct {
	redisClient *redis.Client
}

// NewRedisAuthorityScheduler создает новый RedisAuthorityScheduler
func NewRedisAuthorityScheduler(client *redis.Client) *RedisAuthorityScheduler {
	return &RedisAuthorityScheduler{redisClient: client}
}

// Schedule ставит вызов в очередь
func (s *RedisAuthorityScheduler) Schedule(ctx context.Context, call AuthorityCall) error {
	payload, err := json.Marshal(call)
	if err != nil {
		return fmt.Errorf("failed to marshal authority call: %w", err)
	}

	key := authorityCallKeyPrefix + call.EmergencyID.String()
	if err := s.redisClient.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to store authority call payload: %w", err)
	}

	member := redis.Z{Score: float64(call.DueAt.Unix()), Member: call.EmergencyID.String()}
	if err := s.redisClient.ZAdd(ctx, authorityQueueKey, member).Err(); err != nil {
		return fmt.Errorf("failed to enqueue authority call: %w", err)
	}
	return nil
}

// Cancel снимает вызов с очереди; true - если вызов еще не был обработан
func (s *RedisAuthorityScheduler) Cancel(ctx context.Context, emergencyID uuid.UUID) (bool, error) {
	removed, err := s.redisClient.ZRem(ctx, authorityQueueKey, emergencyID.String()).Result()
	if err != nil {
		return false, fmt.Errorf("failed to remove authority call from queue: %w", err)
	}

	if err := s.redisClient.Del(ctx, authorityCallKeyPrefix+emergencyID.String()).Err(); err != nil {
		return false, fmt.Errorf("failed to delete authority call payload: %w", err)
	}
	return removed > 0, nil
}

// AuthorityWorker - фоновый воркер, обзванивающий экстренные службы по наступившим вызовам
type AuthorityWorker struct {
	redisClient *redis.Client
	sender      MessageSender
	recorder    CallResultRecorder
	logger      *logrus.Logger
	cfg         *config.Config
}

// NewAuthorityWorker создает новый AuthorityWorker
func NewAuthorityWorker(client *redis.Client, sender MessageSender, recorder CallResultRecorder, logger *logrus.Logger, cfg *config.Config) *AuthorityWorker {
	return &AuthorityWorker{
		redisClient: client,
		sender:      sender,
		recorder:    recorder,
		logger:      logger,
		cfg:         cfg,
	}
}

// Start запускает горутину, опрашивающую очередь отложенных вызовов
func (w *AuthorityWorker) Start(ctx context.Context) {
	w.logger.Info("Starting authority call worker...")
	go func() {
		ticker := time.NewTicker(w.cfg.AuthorityPollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping authority call worker.")
				return
			case <-ticker.C:
				w.drainDueCalls(ctx)
			}
		}
	}()
}

func (w *AuthorityWorker) drainDueCalls(ctx context.Context) {
	now := fmt.Sprintf("%d", time.Now().Unix())
	ids, err := w.redisClient.ZRangeByScore(ctx, authorityQueueKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   now,
		Count: 10,
	}).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		w.logger.WithError(err).Error("Failed to read due authority calls from Redis")
		return
	}

	for _, id := range ids {
		w.processCall(ctx, id)
	}
}

func (w *AuthorityWorker) processCall(ctx context.Context, id string) {
	log := w.logger.WithField("emergency_id", id)

	// ZREM как claim: если запись уже снята (отмена или другой воркер) - пропускаем
	removed, err := w.redisClient.ZRem(ctx, authorityQueueKey, id).Result()
	if err != nil {
		log.WithError(err).Error("Failed to claim authority call")
		return
	}
	if removed == 0 {
		return
	}

	key := authorityCallKeyPrefix + id
	payload, err := w.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			log.Info("Authority call was cancelled before due time. Skipping.")
			return
		}
		log.WithError(err).Error("Failed to load authority call payload")
		return
	}
	if err := w.redisClient.Del(ctx, key).Err(); err != nil {
		log.WithError(err).Warn("Failed to delete authority call payload")
	}

	var call AuthorityCall
	if err := json.Unmarshal(payload, &call); err != nil {
		log.WithError(err).Error("Failed to unmarshal authority call payload")
		return
	}

	text := fmt.Sprintf(
		"Emergency alert: %s triggered for %s. Location: %.5f, %.5f. Emergency ID: %s.",
		call.Kind, call.SubjectName, call.Location.Latitude, call.Location.Longitude, call.EmergencyID,
	)

	outcome := w.sender.SendCall(ctx, w.cfg.AuthorityPhone, text)
	if outcome.OK {
		log.Info("Authority call placed successfully.")
	} else {
		log.Warnf("Authority call failed: %s", outcome.ErrorDetail)
	}

	if err := w.recorder.RecordAuthorityCall(ctx, call.EmergencyID, outcome); err != nil {
		log.WithError(err).Error("Failed to record authority call outcome")
	}
}
