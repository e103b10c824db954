package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/corehr/hr-backend-go/internal/domain/user"
	"github.com/corehr/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	u.id, u.email, u.password_hash, u.first_name, u.last_name, u.patronymic,
	u.is_admin, u.is_active, u.role_id, u.employee_code, u.position, u.department,
	u.phone_number, u.hire_date, u.created_at, u.updated_at,
	r.name AS role_name
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Patronymic,
		&u.IsAdmin,
		&u.IsActive,
		&u.RoleID,
		&u.EmployeeCode,
		&u.Position,
		&u.Department,
		&u.PhoneNumber,
		&u.HireDate,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.RoleName,
	)
	return u, err
}

func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name, patronymic,
			is_admin, is_active, role_id, employee_code, position, department,
			phone_number, hire_date, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10, $11,
			$12, $13, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Patronymic,
		u.IsAdmin, u.IsActive, u.RoleID, u.EmployeeCode, u.Position, u.Department,
		u.PhoneNumber, u.HireDate,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "employee_code") {
				return user.User{}, user.ErrEmployeeCodeExists
			}
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN roles r ON u.role_id = r.id
		WHERE u.id = $1
	`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN roles r ON u.role_id = r.id
		WHERE u.email = $1
	`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListUsersFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1 = 1"}
	args := []any{}
	argPos := 1

	if filter.Search != nil && *filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(u.email ILIKE $%d OR u.first_name ILIKE $%d OR u.last_name ILIKE $%d)", argPos, argPos, argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}
	if filter.RoleID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("u.role_id = $%d", argPos))
		args = append(args, *filter.RoleID)
		argPos++
	}
	if filter.IsActive != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("u.is_active = $%d", argPos))
		args = append(args, *filter.IsActive)
		argPos++
	}

	where := strings.Join(whereClauses, " AND ")

	sortBy := "u.created_at"
	switch filter.SortBy {
	case "email":
		sortBy = "u.email"
	case "last_name":
		sortBy = "u.last_name"
	case "hire_date":
		sortBy = "u.hire_date"
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
		SELECT %s
		FROM users u
		LEFT JOIN roles r ON u.role_id = r.id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, userColumns, where, sortBy, sortOrder, argPos, argPos+1)

	rows, err := q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM users u WHERE %s`, where)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepositoryImpl) ListIDsByRole(ctx context.Context, roleID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id
		FROM users
		WHERE role_id = $1 AND is_active = TRUE
	`

	rows, err := q.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *userRepositoryImpl) ListAdminIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id
		FROM users
		WHERE is_admin = TRUE AND is_active = TRUE
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	argPos := 1

	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.Email != nil {
		set("email", *req.Email)
	}
	if req.PasswordHash != nil {
		set("password_hash", *req.PasswordHash)
	}
	if req.FirstName != nil {
		set("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		set("last_name", *req.LastName)
	}
	if req.Patronymic != nil {
		set("patronymic", *req.Patronymic)
	}
	if req.IsAdmin != nil {
		set("is_admin", *req.IsAdmin)
	}
	if req.IsActive != nil {
		set("is_active", *req.IsActive)
	}
	if req.RoleID != nil {
		set("role_id", *req.RoleID)
	}
	if req.EmployeeCode != nil {
		set("employee_code", *req.EmployeeCode)
	}
	if req.Position != nil {
		set("position", *req.Position)
	}
	if req.Department != nil {
		set("department", *req.Department)
	}
	if req.PhoneNumber != nil {
		set("phone_number", *req.PhoneNumber)
	}
	if req.HireDate != nil {
		set("hire_date", *req.HireDate)
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
	`, strings.Join(setClauses, ", "), argPos)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "employee_code") {
				return user.ErrEmployeeCodeExists
			}
			return user.ErrUserEmailExists
		}
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM users
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
