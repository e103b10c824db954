package postgresql

import (
	"context"
	"errors"

	"github.com/corehr/hr-backend-go/internal/domain/document"
	"github.com/corehr/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type documentTypeRepositoryImpl struct {
	db *database.DB
}

func NewDocumentTypeRepository(db *database.DB) document.DocumentTypeRepository {
	return &documentTypeRepositoryImpl{db: db}
}

func (r *documentTypeRepositoryImpl) Create(ctx context.Context, dt document.DocumentType) (document.DocumentType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO document_types (
			id, name, description, is_personal, requires_acknowledgment, expiry_tracking_days,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		dt.Name, dt.Description, dt.IsPersonal, dt.RequiresAcknowledgment, dt.ExpiryTrackingDays,
	).Scan(&dt.ID, &dt.CreatedAt, &dt.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return document.DocumentType{}, document.ErrDocumentTypeNameExists
		}
		return document.DocumentType{}, err
	}

	return dt, nil
}

func (r *documentTypeRepositoryImpl) GetByID(ctx context.Context, id string) (document.DocumentType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, is_personal, requires_acknowledgment, expiry_tracking_days,
			   created_at, updated_at
		FROM document_types
		WHERE id = $1
	`

	var dt document.DocumentType
	err := q.QueryRow(ctx, query, id).Scan(
		&dt.ID,
		&dt.Name,
		&dt.Description,
		&dt.IsPersonal,
		&dt.RequiresAcknowledgment,
		&dt.ExpiryTrackingDays,
		&dt.CreatedAt,
		&dt.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return document.DocumentType{}, document.ErrDocumentTypeNotFound
		}
		return document.DocumentType{}, err
	}
	return dt, nil
}

func (r *documentTypeRepositoryImpl) List(ctx context.Context, personalOnly *bool) ([]document.DocumentType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, is_personal, requires_acknowledgment, expiry_tracking_days,
			   created_at, updated_at
		FROM document_types
		WHERE ($1::boolean IS NULL OR is_personal = $1)
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, personalOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []document.DocumentType
	for rows.Next() {
		var dt document.DocumentType
		err := rows.Scan(
			&dt.ID,
			&dt.Name,
			&dt.Description,
			&dt.IsPersonal,
			&dt.RequiresAcknowledgment,
			&dt.ExpiryTrackingDays,
			&dt.CreatedAt,
			&dt.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		types = append(types, dt)
	}
	return types, rows.Err()
}

func (r *documentTypeRepositoryImpl) Update(ctx context.Context, dt document.DocumentType) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE document_types
		SET name = $1, description = $2, requires_acknowledgment = $3, expiry_tracking_days = $4,
			updated_at = NOW()
		WHERE id = $5
	`
	commandTag, err := q.Exec(ctx, query,
		dt.Name, dt.Description, dt.RequiresAcknowledgment, dt.ExpiryTrackingDays, dt.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return document.ErrDocumentTypeNameExists
		}
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return document.ErrDocumentTypeNotFound
	}
	return nil
}

func (r *documentTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM document_types
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return document.ErrDocumentTypeInUse
		}
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return document.ErrDocumentTypeNotFound
	}
	return nil
}
