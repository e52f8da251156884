package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/service"
)

type TrackingRepository struct {
	db *pgxpool.Pool
}

func NewTrackingRepository(db *pgxpool.Pool) service.TrackingRepository {
	return &TrackingRepository{db: db}
}

// Create создает новую запись отслеживания маршрута
func (r *TrackingRepository) Create(ctx context.Context, tracking *models.JourneyTracking) error {
	expectedPath, err := json.Marshal(tracking.ExpectedPath)
	if err != nil {
		return fmt.Errorf("failed to marshal expected path: %w", err)
	}

	query := `
		INSERT INTO journey_trackings (id, subject_id, origin, destination, expected_path, status)
		VALUES (
			$1, $2,
			ST_SetSRID(ST_MakePoint($3, $4), 4326),
			ST_SetSRID(ST_MakePoint($5, $6), 4326),
			$7, $8
		) RETURNING created_at, updated_at;
	`
	err = r.db.QueryRow(ctx, query,
		tracking.ID,
		tracking.SubjectID,
		tracking.Origin.Longitude,
		tracking.Origin.Latitude,
		tracking.Destination.Longitude,
		tracking.Destination.Latitude,
		expectedPath,
		tracking.Status,
	).Scan(&tracking.CreatedAt, &tracking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tracking: %w", err)
	}
	return nil
}

// GetByID возвращает отслеживание вместе с наблюдаемыми точками
func (r *TrackingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.JourneyTracking, error) {
	tracking := &models.JourneyTracking{}
	var expectedPath []byte
	query := `
		SELECT
			id,
			subject_id,
			ST_Y(origin::geometry) as origin_lat,
			ST_X(origin::geometry) as origin_lon,
			ST_Y(destination::geometry) as dest_lat,
			ST_X(destination::geometry) as dest_lon,
			expected_path,
			deviation_detected,
			deviation_detected_at,
			max_deviation_meters,
			deviation_reason,
			status,
			created_at,
			updated_at
		FROM journey_trackings
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tracking.ID,
		&tracking.SubjectID,
		&tracking.Origin.Latitude,
		&tracking.Origin.Longitude,
		&tracking.Destination.Latitude,
		&tracking.Destination.Longitude,
		&expectedPath,
		&tracking.Deviation.Detected,
		&tracking.Deviation.DetectedAt,
		&tracking.Deviation.MaxDeviationMeters,
		&tracking.Deviation.Reason,
		&tracking.Status,
		&tracking.CreatedAt,
		&tracking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tracking with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tracking by id: %w", err)
	}

	if len(expectedPath) > 0 {
		if err := json.Unmarshal(expectedPath, &tracking.ExpectedPath); err != nil {
			return nil, fmt.Errorf("failed to unmarshal expected path: %w", err)
		}
	}

	if err := r.loadPoints(ctx, tracking); err != nil {
		return nil, err
	}
	return tracking, nil
}

func (r *TrackingRepository) loadPoints(ctx context.Context, tracking *models.JourneyTracking) error {
	query := `
		SELECT
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			at
		FROM tracking_points
		WHERE tracking_id = $1
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query, tracking.ID)
	if err != nil {
		return fmt.Errorf("failed to load tracking points: %w", err)
	}
	defer rows.Close()

	tracking.ObservedPath = make([]models.TrackPoint, 0)
	for rows.Next() {
		var point models.TrackPoint
		if err := rows.Scan(&point.Latitude, &point.Longitude, &point.At); err != nil {
			return fmt.Errorf("failed to scan tracking point row: %w", err)
		}
		tracking.ObservedPath = append(tracking.ObservedPath, point)
	}
	return rows.Err()
}

// FindActiveBySubject возвращает активное отслеживание подопечного, если оно есть
func (r *TrackingRepository) FindActiveBySubject(ctx context.Context, subjectID uuid.UUID) (*models.JourneyTracking, error) {
	var id uuid.UUID
	query := `
		SELECT id
		FROM journey_trackings
		WHERE subject_id = $1 AND status IN ('active', 'deviation_alert')
		ORDER BY created_at DESC
		LIMIT 1;
	`
	err := r.db.QueryRow(ctx, query, subjectID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("active tracking for subject %s: %w", subjectID, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find active tracking: %w", err)
	}
	return r.GetByID(ctx, id)
}

// AppendPoint добавляет наблюдаемую позицию (только добавление)
func (r *TrackingRepository) AppendPoint(ctx context.Context, id uuid.UUID, point models.TrackPoint) error {
	query := `
		INSERT INTO tracking_points (tracking_id, location, at)
		VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326), $4);
	`
	if _, err := r.db.Exec(ctx, query, id, point.Longitude, point.Latitude, point.At); err != nil {
		return fmt.Errorf("failed to append tracking point: %w", err)
	}
	return nil
}

// UpdateDeviation сохраняет состояние защелки отклонения и статус отслеживания
func (r *TrackingRepository) UpdateDeviation(ctx context.Context, id uuid.UUID, state models.DeviationState, status models.TrackingStatus) error {
	query := `
		UPDATE journey_trackings SET
			deviation_detected = $1,
			deviation_detected_at = $2,
			max_deviation_meters = $3,
			deviation_reason = $4,
			status = $5,
			updated_at = NOW()
		WHERE id = $6;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		state.Detected,
		state.DetectedAt,
		state.MaxDeviationMeters,
		state.Reason,
		status,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update deviation state: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("tracking with id %s: %w", id, service.ErrNotFound)
	}
	return nil
}

// UpdateStatus меняет статус отслеживания
func (r *TrackingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TrackingStatus) error {
	query := `
		UPDATE journey_trackings SET
			status = $1,
			updated_at = NOW()
		WHERE id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update tracking status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("tracking with id %s: %w", id, service.ErrNotFound)
	}
	return nil
}
