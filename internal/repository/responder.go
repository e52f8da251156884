package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/service"
)

type ResponderRepository struct {
	db *pgxpool.Pool
}

func NewResponderRepository(db *pgxpool.Pool) service.ResponderRepository {
	return &ResponderRepository{db: db}
}

// ListAvailableCertified возвращает снимок пула доступных сертифицированных ответчиков
func (r *ResponderRepository) ListAvailableCertified(ctx context.Context) ([]*models.Responder, error) {
	query := `
		SELECT
			id,
			name,
			phone,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			available,
			certified,
			service_radius_meters,
			rating,
			updated_at
		FROM responders
		WHERE available = true AND certified = true
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list responders: %w", err)
	}
	defer rows.Close()

	responders := make([]*models.Responder, 0)
	for rows.Next() {
		responder := &models.Responder{}
		var lat, lon *float64
		err := rows.Scan(
			&responder.ID,
			&responder.Name,
			&responder.Phone,
			&lat,
			&lon,
			&responder.Available,
			&responder.Certified,
			&responder.ServiceRadiusMeters,
			&responder.Rating,
			&responder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan responder row: %w", err)
		}
		if lat != nil && lon != nil {
			responder.Location = &models.Coordinate{Latitude: *lat, Longitude: *lon}
		}
		responders = append(responders, responder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error responders iteration: %w", err)
	}
	return responders, nil
}
