package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/corehr/hr-backend-go/internal/domain/document"
	"github.com/corehr/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type personalDocumentRepositoryImpl struct {
	db *database.DB
}

func NewPersonalDocumentRepository(db *database.DB) document.PersonalDocumentRepository {
	return &personalDocumentRepositoryImpl{db: db}
}

const personalDocumentColumns = `
	pd.id, pd.user_id, pd.document_type_id, pd.document_number,
	pd.issue_date, pd.expiry_date, pd.file_url, pd.notes,
	pd.uploaded_by_id, pd.uploaded_at, pd.is_expiry_notified,
	dt.name AS document_type_name,
	(u.last_name || ' ' || u.first_name) AS user_name
`

func scanPersonalDocument(row pgx.Row) (document.PersonalDocument, error) {
	var d document.PersonalDocument
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.DocumentTypeID,
		&d.DocumentNumber,
		&d.IssueDate,
		&d.ExpiryDate,
		&d.FileURL,
		&d.Notes,
		&d.UploadedByID,
		&d.UploadedAt,
		&d.IsExpiryNotified,
		&d.DocumentTypeName,
		&d.UserName,
	)
	return d, err
}

func (r *personalDocumentRepositoryImpl) Create(ctx context.Context, doc document.PersonalDocument) (document.PersonalDocument, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO personal_documents (
			id, user_id, document_type_id, document_number,
			issue_date, expiry_date, file_url, notes,
			uploaded_by_id, uploaded_at, is_expiry_notified
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6, $7,
			$8, NOW(), FALSE
		) RETURNING id, uploaded_at
	`

	err := q.QueryRow(ctx, query,
		doc.UserID, doc.DocumentTypeID, doc.DocumentNumber,
		doc.IssueDate, doc.ExpiryDate, doc.FileURL, doc.Notes,
		doc.UploadedByID,
	).Scan(&doc.ID, &doc.UploadedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return document.PersonalDocument{}, document.ErrPersonalDocumentExists
		}
		return document.PersonalDocument{}, err
	}

	return doc, nil
}

func (r *personalDocumentRepositoryImpl) GetByID(ctx context.Context, id string) (document.PersonalDocument, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + personalDocumentColumns + `
		FROM personal_documents pd
		JOIN document_types dt ON pd.document_type_id = dt.id
		JOIN users u ON pd.user_id = u.id
		WHERE pd.id = $1
	`

	d, err := scanPersonalDocument(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return document.PersonalDocument{}, document.ErrPersonalDocumentNotFound
		}
		return document.PersonalDocument{}, err
	}
	return d, nil
}

func (r *personalDocumentRepositoryImpl) List(ctx context.Context, filter document.PersonalDocumentFilter) ([]document.PersonalDocument, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1 = 1"}
	args := []any{}
	argPos := 1

	if filter.UserID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("pd.user_id = $%d", argPos))
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.DocumentTypeID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("pd.document_type_id = $%d", argPos))
		args = append(args, *filter.DocumentTypeID)
		argPos++
	}
	if filter.ExpiryBefore != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("pd.expiry_date < $%d", argPos))
		args = append(args, *filter.ExpiryBefore)
		argPos++
	}

	where := strings.Join(whereClauses, " AND ")

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
		SELECT %s
		FROM personal_documents pd
		JOIN document_types dt ON pd.document_type_id = dt.id
		JOIN users u ON pd.user_id = u.id
		WHERE %s
		ORDER BY pd.expiry_date ASC
		LIMIT $%d OFFSET $%d
	`, personalDocumentColumns, where, argPos, argPos+1)

	rows, err := q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var docs []document.PersonalDocument
	for rows.Next() {
		d, err := scanPersonalDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM personal_documents pd
		WHERE %s
	`, where)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

func (r *personalDocumentRepositoryImpl) Update(ctx context.Context, req document.UpdatePersonalDocumentRequest) error {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{}
	args := []any{}
	argPos := 1

	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.DocumentNumber != nil {
		set("document_number", *req.DocumentNumber)
	}
	if req.IssueDate != nil {
		set("issue_date", *req.IssueDate)
	}
	if req.ExpiryDate != nil {
		set("expiry_date", *req.ExpiryDate)
	}
	if req.Notes != nil {
		set("notes", *req.Notes)
	}
	if req.FileURL != nil {
		set("file_url", *req.FileURL)
	}
	if req.ResetExpiryNotified {
		setClauses = append(setClauses, "is_expiry_notified = FALSE")
	}

	if len(setClauses) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE personal_documents
		SET %s
		WHERE id = $%d
	`, strings.Join(setClauses, ", "), argPos)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return document.ErrPersonalDocumentNotFound
	}
	return nil
}

func (r *personalDocumentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM personal_documents
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return document.ErrPersonalDocumentNotFound
	}
	return nil
}

func (r *personalDocumentRepositoryImpl) ListUnnotified(ctx context.Context) ([]document.ExpiryCandidate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + personalDocumentColumns + `,
			   dt.expiry_tracking_days
		FROM personal_documents pd
		JOIN document_types dt ON pd.document_type_id = dt.id
		JOIN users u ON pd.user_id = u.id
		WHERE pd.is_expiry_notified = FALSE
		ORDER BY pd.expiry_date ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []document.ExpiryCandidate
	for rows.Next() {
		var c document.ExpiryCandidate
		err := rows.Scan(
			&c.Document.ID,
			&c.Document.UserID,
			&c.Document.DocumentTypeID,
			&c.Document.DocumentNumber,
			&c.Document.IssueDate,
			&c.Document.ExpiryDate,
			&c.Document.FileURL,
			&c.Document.Notes,
			&c.Document.UploadedByID,
			&c.Document.UploadedAt,
			&c.Document.IsExpiryNotified,
			&c.Document.DocumentTypeName,
			&c.Document.UserName,
			&c.ExpiryTrackingDays,
		)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *personalDocumentRepositoryImpl) MarkExpiryNotified(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE personal_documents
		SET is_expiry_notified = TRUE
		WHERE id = $1
	`
	_, err := q.Exec(ctx, query, id)
	return err
}
