package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/service"
)

type SubjectRepository struct {
	db *pgxpool.Pool
}

func NewSubjectRepository(db *pgxpool.Pool) service.SubjectRepository {
	return &SubjectRepository{db: db}
}

// GetByID возвращает подопечного вместе с контактами.
// Контакты отдаются в порядке добавления: стабильный порядок при равных приоритетах
// обеспечивает движок оповещений, а не БД.
func (r *SubjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Subject, error) {
	subject := &models.Subject{}
	query := `
		SELECT id, name, phone, auto_escalate, created_at, updated_at
		FROM subjects
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&subject.ID,
		&subject.Name,
		&subject.Phone,
		&subject.AutoEscalate,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("subject with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get subject by id: %w", err)
	}

	contactsQuery := `
		SELECT id, subject_id, name, phone, email, priority, created_at
		FROM contacts
		WHERE subject_id = $1
		ORDER BY created_at, id;
	`
	rows, err := r.db.Query(ctx, contactsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list subject contacts: %w", err)
	}
	defer rows.Close()

	subject.Contacts = make([]models.Contact, 0)
	for rows.Next() {
		var contact models.Contact
		var email *string // email опционален, в БД хранится как NULL
		err := rows.Scan(
			&contact.ID,
			&contact.SubjectID,
			&contact.Name,
			&contact.Phone,
			&email,
			&contact.Priority,
			&contact.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contact.Email = nullableString(email)
		subject.Contacts = append(subject.Contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error contacts iteration: %w", err)
	}
	return subject, nil
}

// nullableString разворачивает NULL-колонку в пустую строку модели
func nullableString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
