package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/service"
)

type EmergencyRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewEmergencyRepository(db *pgxpool.Pool, redisClient *redis.Client) service.EmergencyRepository {
	return &EmergencyRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create создает новую запись о тревоге в бд
func (r *EmergencyRepository) Create(ctx context.Context, emergency *models.Emergency) error {
	query := `
		INSERT INTO emergencies (id, subject_id, kind, location, accuracy_meters, status, triggered_at)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326), $6, $7, $8) RETURNING created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		emergency.ID,
		emergency.SubjectID,
		emergency.Kind,
		emergency.Location.Longitude,
		emergency.Location.Latitude,
		emergency.AccuracyMeters,
		emergency.Status,
		emergency.TriggeredAt,
	).Scan(&emergency.CreatedAt, &emergency.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create emergency: %w", err)
	}
	return nil
}

// GetByID возвращает агрегат тревоги вместе с дочерними коллекциями
func (r *EmergencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Emergency, error) {
	emergency := &models.Emergency{}
	query := `
		SELECT
			id,
			subject_id,
			kind,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			accuracy_meters,
			status,
			reason,
			triggered_at,
			resolved_at,
			created_at,
			updated_at
		FROM emergencies
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&emergency.ID,
		&emergency.SubjectID,
		&emergency.Kind,
		&emergency.Location.Latitude,
		&emergency.Location.Longitude,
		&emergency.AccuracyMeters,
		&emergency.Status,
		&emergency.Reason,
		&emergency.TriggeredAt,
		&emergency.ResolvedAt,
		&emergency.CreatedAt,
		&emergency.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("emergency with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get emergency by id: %w", err)
	}

	if err := r.loadTimeline(ctx, emergency); err != nil {
		return nil, err
	}
	if err := r.loadNotifications(ctx, emergency); err != nil {
		return nil, err
	}
	if err := r.loadResponders(ctx, emergency); err != nil {
		return nil, err
	}
	return emergency, nil
}

func (r *EmergencyRepository) loadTimeline(ctx context.Context, emergency *models.Emergency) error {
	query := `
		SELECT at, event, detail
		FROM emergency_timeline
		WHERE emergency_id = $1
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query, emergency.ID)
	if err != nil {
		return fmt.Errorf("failed to load emergency timeline: %w", err)
	}
	defer rows.Close()

	emergency.Timeline = make([]models.TimelineEntry, 0)
	for rows.Next() {
		var entry models.TimelineEntry
		var detail []byte
		if err := rows.Scan(&entry.At, &entry.Event, &detail); err != nil {
			return fmt.Errorf("failed to scan timeline row: %w", err)
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &entry.Detail); err != nil {
				return fmt.Errorf("failed to unmarshal timeline detail: %w", err)
			}
		}
		emergency.Timeline = append(emergency.Timeline, entry)
	}
	return rows.Err()
}

func (r *EmergencyRepository) loadNotifications(ctx context.Context, emergency *models.Emergency) error {
	query := `
		SELECT contact_id, contact_name, channel, at, outcome, detail
		FROM emergency_notifications
		WHERE emergency_id = $1
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query, emergency.ID)
	if err != nil {
		return fmt.Errorf("failed to load emergency notifications: %w", err)
	}
	defer rows.Close()

	emergency.Notifications = make([]models.NotificationRecord, 0)
	for rows.Next() {
		var record models.NotificationRecord
		if err := rows.Scan(&record.ContactID, &record.ContactName, &record.Channel, &record.At, &record.Outcome, &record.Detail); err != nil {
			return fmt.Errorf("failed to scan notification row: %w", err)
		}
		emergency.Notifications = append(emergency.Notifications, record)
	}
	return rows.Err()
}

func (r *EmergencyRepository) loadResponders(ctx context.Context, emergency *models.Emergency) error {
	query := `
		SELECT responder_id, name, phone, distance_meters, eta_minutes, status, notified_at
		FROM emergency_responders
		WHERE emergency_id = $1
		ORDER BY notified_at, responder_id;
	`
	rows, err := r.db.Query(ctx, query, emergency.ID)
	if err != nil {
		return fmt.Errorf("failed to load responder assignments: %w", err)
	}
	defer rows.Close()

	emergency.Responders = make([]models.ResponderAssignment, 0)
	for rows.Next() {
		var a models.ResponderAssignment
		if err := rows.Scan(&a.ResponderID, &a.Name, &a.Phone, &a.DistanceMeters, &a.ETAMinutes, &a.Status, &a.NotifiedAt); err != nil {
			return fmt.Errorf("failed to scan responder assignment row: %w", err)
		}
		emergency.Responders = append(emergency.Responders, a)
	}
	return rows.Err()
}

// List возвращает список тревог с пагинацией (без дочерних коллекций)
func (r *EmergencyRepository) List(ctx context.Context, page, pageSize int) ([]*models.Emergency, error) {
	offset := (page - 1) * pageSize

	query := `
		SELECT
			id,
			subject_id,
			kind,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			accuracy_meters,
			status,
			reason,
			triggered_at,
			resolved_at,
			created_at,
			updated_at
		FROM emergencies
		ORDER BY triggered_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list emergencies: %w", err)
	}
	defer rows.Close()

	emergencies := make([]*models.Emergency, 0)
	for rows.Next() {
		emergency := &models.Emergency{}
		err := rows.Scan(
			&emergency.ID,
			&emergency.SubjectID,
			&emergency.Kind,
			&emergency.Location.Latitude,
			&emergency.Location.Longitude,
			&emergency.AccuracyMeters,
			&emergency.Status,
			&emergency.Reason,
			&emergency.TriggeredAt,
			&emergency.ResolvedAt,
			&emergency.CreatedAt,
			&emergency.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan emergency row: %w", err)
		}
		emergencies = append(emergencies, emergency)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return emergencies, nil
}

// UpdateStatus переводит тревогу в терминальный статус
func (r *EmergencyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.EmergencyStatus, reason string, resolvedAt time.Time) error {
	query := `
		UPDATE emergencies SET
			status = $1,
			reason = $2,
			resolved_at = $3,
			updated_at = NOW()
		WHERE id = $4;
	`
	cmdTag, err := r.db.Exec(ctx, query, status, reason, resolvedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update emergency status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("emergency with id %s: %w", id, service.ErrNotFound)
	}
	return nil
}

// AppendTimeline добавляет запись хронологии (только добавление, без перезаписи)
func (r *EmergencyRepository) AppendTimeline(ctx context.Context, id uuid.UUID, entry models.TimelineEntry) error {
	var detail []byte
	if entry.Detail != nil {
		var err error
		detail, err = json.Marshal(entry.Detail)
		if err != nil {
			return fmt.Errorf("failed to marshal timeline detail: %w", err)
		}
	}

	query := `
		INSERT INTO emergency_timeline (emergency_id, at, event, detail)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := r.db.Exec(ctx, query, id, entry.At, entry.Event, detail); err != nil {
		return fmt.Errorf("failed to append timeline entry: %w", err)
	}
	return nil
}

// AppendNotifications добавляет пачку записей журнала оповещений
func (r *EmergencyRepository) AppendNotifications(ctx context.Context, id uuid.UUID, records []models.NotificationRecord) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO emergency_notifications (emergency_id, contact_id, contact_name, channel, at, outcome, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, record := range records {
		batch.Queue(query, id, record.ContactID, record.ContactName, record.Channel, record.At, record.Outcome, record.Detail)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to append notification record: %w", err)
		}
	}
	return nil
}

// AddResponders сохраняет назначения ответчиков на тревогу
func (r *EmergencyRepository) AddResponders(ctx context.Context, id uuid.UUID, assignments []models.ResponderAssignment) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO emergency_responders (emergency_id, responder_id, name, phone, distance_meters, eta_minutes, status, notified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, a := range assignments {
		batch.Queue(query, id, a.ResponderID, a.Name, a.Phone, a.DistanceMeters, a.ETAMinutes, a.Status, a.NotifiedAt)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range assignments {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to add responder assignment: %w", err)
		}
	}
	return nil
}

// UpdateResponderStatus меняет статус назначения; единственное мутабельное поле
func (r *EmergencyRepository) UpdateResponderStatus(ctx context.Context, emergencyID, responderID uuid.UUID, status string) error {
	query := `
		UPDATE emergency_responders SET
			status = $1
		WHERE emergency_id = $2 AND responder_id = $3;
	`
	cmdTag, err := r.db.Exec(ctx, query, status, emergencyID, responderID)
	if err != nil {
		return fmt.Errorf("failed to update responder status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("responder %s on emergency %s: %w", responderID, emergencyID, service.ErrNotFound)
	}
	return nil
}

// GetFromCache пытается получить тревогу из Redis
func (r *EmergencyRepository) GetFromCache(ctx context.Context, id uuid.UUID) (*models.Emergency, error) {
	key := fmt.Sprintf("emergency:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get emergency from cache: %w", err)
	}

	emergency := &models.Emergency{}
	if err := json.Unmarshal(val, emergency); err != nil {
		return nil, fmt.Errorf("failed to unmarshal emergency from cache: %w", err)
	}
	return emergency, nil
}

// SetCache сохраняет тревогу в Redis
func (r *EmergencyRepository) SetCache(ctx context.Context, emergency *models.Emergency) error {
	key := fmt.Sprintf("emergency:%s", emergency.ID.String())
	val, err := json.Marshal(emergency)
	if err != nil {
		return fmt.Errorf("failed to marshal emergency for cache: %w", err)
	}
	// Срок жизни кэша 5 минут
	if err := r.redisClient.Set(ctx, key, val, 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set emergency in cache: %w", err)
	}
	return nil
}

// InvalidateCache удаляет тревогу из Redis кэша
func (r *EmergencyRepository) InvalidateCache(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("emergency:%s", id.String())
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate emergency cache: %w", err)
	}
	return nil
}
