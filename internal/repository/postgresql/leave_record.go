package postgresql

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/leave"
	"github.com/corehr/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRecordRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRecordRepository(db *database.DB) leave.LeaveRecordRepository {
	return &leaveRecordRepositoryImpl{db: db}
}

func (r *leaveRecordRepositoryImpl) Create(ctx context.Context, record leave.LeaveRecord) (leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_records (
			id, employee_id, leave_type_id,
			start_date, end_date, status, reason,
			requested_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5, $6,
			NOW()
		) RETURNING id, requested_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.LeaveTypeID,
		record.StartDate, record.EndDate, record.Status, record.Reason,
	).Scan(&record.ID, &record.RequestedAt)
	if err != nil {
		return leave.LeaveRecord{}, err
	}

	return record, nil
}

func (r *leaveRecordRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.status, lr.reason,
			   lr.requested_at, lr.approved_by_id, lr.processed_at,
			   lt.name AS leave_type_name,
			   (u.last_name || ' ' || u.first_name) AS employee_name
		FROM leave_records lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN users u ON lr.employee_id = u.id
		WHERE lr.id = $1
	`

	var rec leave.LeaveRecord
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.LeaveTypeID,
		&rec.StartDate,
		&rec.EndDate,
		&rec.Status,
		&rec.Reason,
		&rec.RequestedAt,
		&rec.ApprovedByID,
		&rec.ProcessedAt,
		&rec.LeaveTypeName,
		&rec.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRecord{}, leave.ErrLeaveRecordNotFound
		}
		return leave.LeaveRecord{}, err
	}
	return rec, nil
}

func (r *leaveRecordRepositoryImpl) List(ctx context.Context, filter leave.LeaveRecordFilter) ([]leave.LeaveRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1 = 1"}
	args := []any{}
	argPos := 1

	if filter.EmployeeID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.LeaveTypeID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.leave_type_id = $%d", argPos))
		args = append(args, *filter.LeaveTypeID)
		argPos++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.StartDateGTE != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.start_date >= $%d", argPos))
		args = append(args, *filter.StartDateGTE)
		argPos++
	}
	if filter.EndDateLTE != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.end_date <= $%d", argPos))
		args = append(args, *filter.EndDateLTE)
		argPos++
	}

	where := strings.Join(whereClauses, " AND ")

	sortBy := "lr.requested_at"
	switch filter.SortBy {
	case "start_date":
		sortBy = "lr.start_date"
	case "end_date":
		sortBy = "lr.end_date"
	case "status":
		sortBy = "lr.status"
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
		SELECT lr.id, lr.employee_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.status, lr.reason,
			   lr.requested_at, lr.approved_by_id, lr.processed_at,
			   lt.name AS leave_type_name,
			   (u.last_name || ' ' || u.first_name) AS employee_name
		FROM leave_records lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN users u ON lr.employee_id = u.id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, sortBy, sortOrder, argPos, argPos+1)

	rows, err := q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []leave.LeaveRecord
	for rows.Next() {
		var rec leave.LeaveRecord
		err := rows.Scan(
			&rec.ID,
			&rec.EmployeeID,
			&rec.LeaveTypeID,
			&rec.StartDate,
			&rec.EndDate,
			&rec.Status,
			&rec.Reason,
			&rec.RequestedAt,
			&rec.ApprovedByID,
			&rec.ProcessedAt,
			&rec.LeaveTypeName,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM leave_records lr
		WHERE %s
	`, where)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *leaveRecordRepositoryImpl) Update(ctx context.Context, req leave.UpdateLeaveRecordRequest) error {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{}
	args := []any{}
	argPos := 1

	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.LeaveTypeID != nil {
		set("leave_type_id", *req.LeaveTypeID)
	}
	if req.StartDate != nil {
		set("start_date", *req.StartDate)
	}
	if req.EndDate != nil {
		set("end_date", *req.EndDate)
	}
	if req.Status != nil {
		set("status", *req.Status)
	}
	if req.Reason != nil {
		set("reason", *req.Reason)
	}
	if req.ApprovedByID != nil {
		set("approved_by_id", *req.ApprovedByID)
	}
	if req.ProcessedAt != nil {
		set("processed_at", *req.ProcessedAt)
	}

	if len(setClauses) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE leave_records
		SET %s
		WHERE id = $%d
	`, strings.Join(setClauses, ", "), argPos)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveRecordNotFound
	}
	return nil
}

func (r *leaveRecordRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM leave_records
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveRecordNotFound
	}
	return nil
}

func (r *leaveRecordRepositoryImpl) HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_records
			WHERE employee_id = $1
			  AND status IN ('REQUESTED', 'APPROVED')
			  AND start_date <= $3
			  AND $2 <= end_date
			  AND ($4::uuid IS NULL OR id <> $4)
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, startDate, endDate, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *leaveRecordRepositoryImpl) LockEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	// Advisory xact lock keyed by employee id; released on commit/rollback.
	h := fnv.New64a()
	h.Write([]byte(employeeID))

	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(h.Sum64()))
	return err
}

func (r *leaveRecordRepositoryImpl) ListApprovedIntersecting(ctx context.Context, windowStart, windowEnd time.Time, employeeID *string) ([]leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.status, lr.reason,
			   lr.requested_at, lr.approved_by_id, lr.processed_at,
			   lt.name AS leave_type_name,
			   (u.last_name || ' ' || u.first_name) AS employee_name
		FROM leave_records lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN users u ON lr.employee_id = u.id
		WHERE lr.status = 'APPROVED'
		  AND lr.start_date <= $2
		  AND $1 <= lr.end_date
		  AND ($3::uuid IS NULL OR lr.employee_id = $3)
		ORDER BY lr.start_date ASC
	`

	rows, err := q.Query(ctx, query, windowStart, windowEnd, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []leave.LeaveRecord
	for rows.Next() {
		var rec leave.LeaveRecord
		err := rows.Scan(
			&rec.ID,
			&rec.EmployeeID,
			&rec.LeaveTypeID,
			&rec.StartDate,
			&rec.EndDate,
			&rec.Status,
			&rec.Reason,
			&rec.RequestedAt,
			&rec.ApprovedByID,
			&rec.ProcessedAt,
			&rec.LeaveTypeName,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
