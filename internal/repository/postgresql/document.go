package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/document"
	"github.com/corehr/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type documentRepositoryImpl struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) document.DocumentRepository {
	return &documentRepositoryImpl{db: db}
}

func (r *documentRepositoryImpl) Create(ctx context.Context, doc document.Document) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO documents (
			id, document_type_id, title, file_url, created_by_id, acknowledgment_deadline,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		doc.DocumentTypeID, doc.Title, doc.FileURL, doc.CreatedByID, doc.AcknowledgmentDeadline,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return document.Document{}, err
	}

	return doc, nil
}

func (r *documentRepositoryImpl) GetByID(ctx context.Context, id string) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.document_type_id, d.title, d.file_url, d.created_by_id, d.acknowledgment_deadline,
			   d.created_at, d.updated_at,
			   dt.name AS document_type_name,
			   (u.last_name || ' ' || u.first_name) AS created_by_name
		FROM documents d
		JOIN document_types dt ON d.document_type_id = dt.id
		LEFT JOIN users u ON d.created_by_id = u.id
		WHERE d.id = $1
	`

	var doc document.Document
	err := q.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.DocumentTypeID,
		&doc.Title,
		&doc.FileURL,
		&doc.CreatedByID,
		&doc.AcknowledgmentDeadline,
		&doc.CreatedAt,
		&doc.UpdatedAt,
		&doc.DocumentTypeName,
		&doc.CreatedByName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return document.Document{}, document.ErrDocumentNotFound
		}
		return document.Document{}, err
	}
	return doc, nil
}

func (r *documentRepositoryImpl) List(ctx context.Context, filter document.DocumentFilter) ([]document.Document, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1 = 1"}
	args := []any{}
	argPos := 1

	if filter.DocumentTypeID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("d.document_type_id = $%d", argPos))
		args = append(args, *filter.DocumentTypeID)
		argPos++
	}
	if filter.CreatedByID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("d.created_by_id = $%d", argPos))
		args = append(args, *filter.CreatedByID)
		argPos++
	}
	if filter.AssignedToID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM document_assignments da WHERE da.document_id = d.id AND da.user_id = $%d)", argPos))
		args = append(args, *filter.AssignedToID)
		argPos++
	}
	if filter.Acknowledged != nil && filter.AssignedToID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM document_assignments da WHERE da.document_id = d.id AND da.user_id = $%d AND da.is_acknowledged = $%d)",
			argPos, argPos+1))
		args = append(args, *filter.AssignedToID, *filter.Acknowledged)
		argPos += 2
	}
	if filter.Search != nil && *filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("d.title ILIKE $%d", argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}

	where := strings.Join(whereClauses, " AND ")

	sortBy := "d.created_at"
	if filter.SortBy == "title" {
		sortBy = "d.title"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT d.id, d.document_type_id, d.title, d.file_url, d.created_by_id, d.acknowledgment_deadline,
			   d.created_at, d.updated_at,
			   dt.name AS document_type_name,
			   (u.last_name || ' ' || u.first_name) AS created_by_name
		FROM documents d
		JOIN document_types dt ON d.document_type_id = dt.id
		LEFT JOIN users u ON d.created_by_id = u.id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, sortBy, sortOrder, argPos, argPos+1)

	rows, err := q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		var doc document.Document
		err := rows.Scan(
			&doc.ID,
			&doc.DocumentTypeID,
			&doc.Title,
			&doc.FileURL,
			&doc.CreatedByID,
			&doc.AcknowledgmentDeadline,
			&doc.CreatedAt,
			&doc.UpdatedAt,
			&doc.DocumentTypeName,
			&doc.CreatedByName,
		)
		if err != nil {
			return nil, 0, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM documents d
		WHERE %s
	`, where)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

func (r *documentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM documents
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return document.ErrDocumentNotFound
	}
	return nil
}

type assignmentRepositoryImpl struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) document.AssignmentRepository {
	return &assignmentRepositoryImpl{db: db}
}

func (r *assignmentRepositoryImpl) CreateBatch(ctx context.Context, documentID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO document_assignments (id, document_id, user_id, assigned_at, is_acknowledged)
		SELECT uuidv7(), $1, uid, NOW(), FALSE
		FROM unnest($2::uuid[]) AS uid
		ON CONFLICT (document_id, user_id) DO NOTHING
	`
	_, err := q.Exec(ctx, query, documentID, userIDs)
	return err
}

func (r *assignmentRepositoryImpl) Get(ctx context.Context, documentID, userID string) (document.DocumentAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, document_id, user_id, assigned_at, is_acknowledged, acknowledged_at
		FROM document_assignments
		WHERE document_id = $1 AND user_id = $2
	`

	var a document.DocumentAssignment
	err := q.QueryRow(ctx, query, documentID, userID).Scan(
		&a.ID,
		&a.DocumentID,
		&a.UserID,
		&a.AssignedAt,
		&a.IsAcknowledged,
		&a.AcknowledgedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return document.DocumentAssignment{}, document.ErrAssignmentNotFound
		}
		return document.DocumentAssignment{}, err
	}
	return a, nil
}

func (r *assignmentRepositoryImpl) ListByDocument(ctx context.Context, documentID string) ([]document.DocumentAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT da.id, da.document_id, da.user_id, da.assigned_at, da.is_acknowledged, da.acknowledged_at,
			   (u.last_name || ' ' || u.first_name) AS user_name
		FROM document_assignments da
		JOIN users u ON da.user_id = u.id
		WHERE da.document_id = $1
		ORDER BY da.assigned_at ASC
	`

	rows, err := q.Query(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []document.DocumentAssignment
	for rows.Next() {
		var a document.DocumentAssignment
		err := rows.Scan(
			&a.ID,
			&a.DocumentID,
			&a.UserID,
			&a.AssignedAt,
			&a.IsAcknowledged,
			&a.AcknowledgedAt,
			&a.UserName,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *assignmentRepositoryImpl) ListPendingWithDeadline(ctx context.Context, now time.Time) ([]document.DocumentAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT da.id, da.document_id, da.user_id, da.assigned_at, da.is_acknowledged, da.acknowledged_at,
			   d.title AS document_title,
			   d.acknowledgment_deadline
		FROM document_assignments da
		JOIN documents d ON da.document_id = d.id
		WHERE da.is_acknowledged = FALSE
		  AND d.acknowledgment_deadline IS NOT NULL
		  AND d.acknowledgment_deadline > $1
		ORDER BY d.acknowledgment_deadline ASC
	`

	rows, err := q.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []document.DocumentAssignment
	for rows.Next() {
		var a document.DocumentAssignment
		err := rows.Scan(
			&a.ID,
			&a.DocumentID,
			&a.UserID,
			&a.AssignedAt,
			&a.IsAcknowledged,
			&a.AcknowledgedAt,
			&a.DocumentTitle,
			&a.Deadline,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *assignmentRepositoryImpl) Acknowledge(ctx context.Context, documentID, userID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE document_assignments
		SET is_acknowledged = TRUE, acknowledged_at = $3
		WHERE document_id = $1 AND user_id = $2 AND is_acknowledged = FALSE
	`
	commandTag, err := q.Exec(ctx, query, documentID, userID, at)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		// Either no assignment exists or it was already acknowledged.
		var acknowledged bool
		checkQuery := `
			SELECT is_acknowledged
			FROM document_assignments
			WHERE document_id = $1 AND user_id = $2
		`
		err := q.QueryRow(ctx, checkQuery, documentID, userID).Scan(&acknowledged)
		if err != nil {
			if err == pgx.ErrNoRows {
				return document.ErrAssignmentNotFound
			}
			return err
		}
		return document.ErrAlreadyAcknowledged
	}
	return nil
}
