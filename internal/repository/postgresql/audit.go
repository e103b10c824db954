package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/audit"
	"github.com/corehr/hr-backend-go/internal/domain/entity"
	"github.com/corehr/hr-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepositoryImpl{db: db}
}

func (r *auditRepositoryImpl) Create(ctx context.Context, e audit.Entry) error {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	var relatedKind, relatedID *string
	if e.Related != nil {
		kind := string(e.Related.Kind)
		relatedKind = &kind
		relatedID = &e.Related.ID
	}

	query := `
		INSERT INTO audit_log (id, user_id, action, occurred_at, ip_address, user_agent, description, related_kind, related_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.Exec(ctx, query,
		e.ID,
		e.UserID,
		e.Action,
		e.OccurredAt,
		e.IPAddress,
		e.UserAgent,
		e.Description,
		relatedKind,
		relatedID,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	return nil
}

func (r *auditRepositoryImpl) List(ctx context.Context, filter audit.Filter) ([]audit.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1 = 1"}
	args := []any{}
	argPos := 1

	if filter.UserID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.user_id = $%d", argPos))
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.Action != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.action = $%d", argPos))
		args = append(args, *filter.Action)
		argPos++
	}

	where := strings.Join(whereClauses, " AND ")

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT a.id, a.user_id, a.action, a.occurred_at, a.ip_address, a.user_agent, a.description,
			   a.related_kind, a.related_id,
			   u.email AS user_email
		FROM audit_log a
		LEFT JOIN users u ON a.user_id = u.id
		WHERE %s
		ORDER BY a.occurred_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)

	rows, err := q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var relatedKind, relatedID *string
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Action,
			&e.OccurredAt,
			&e.IPAddress,
			&e.UserAgent,
			&e.Description,
			&relatedKind,
			&relatedID,
			&e.UserEmail,
		)
		if err != nil {
			return nil, 0, err
		}
		if relatedKind != nil && relatedID != nil {
			e.Related = &entity.Ref{Kind: entity.Kind(*relatedKind), ID: *relatedID}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM audit_log a
		WHERE %s
	`, where)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
