package postgresql

import (
	"context"
	"errors"

	"github.com/corehr/hr-backend-go/internal/domain/user"
	"github.com/corehr/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) user.RoleRepository {
	return &roleRepositoryImpl{db: db}
}

func (r *roleRepositoryImpl) Create(ctx context.Context, role user.Role) (user.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO roles (id, name, description)
		VALUES (uuidv7(), $1, $2)
		RETURNING id
	`

	err := q.QueryRow(ctx, query, role.Name, role.Description).Scan(&role.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.Role{}, user.ErrRoleNameExists
		}
		return user.Role{}, err
	}

	return role, nil
}

func (r *roleRepositoryImpl) GetByID(ctx context.Context, id string) (user.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description
		FROM roles
		WHERE id = $1
	`

	var role user.Role
	err := q.QueryRow(ctx, query, id).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.Role{}, user.ErrRoleNotFound
		}
		return user.Role{}, err
	}
	return role, nil
}

func (r *roleRepositoryImpl) List(ctx context.Context) ([]user.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description
		FROM roles
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []user.Role
	for rows.Next() {
		var role user.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *roleRepositoryImpl) Update(ctx context.Context, role user.Role) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE roles
		SET name = $1, description = $2
		WHERE id = $3
	`
	commandTag, err := q.Exec(ctx, query, role.Name, role.Description, role.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrRoleNameExists
		}
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrRoleNotFound
	}
	return nil
}

func (r *roleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM roles
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrRoleNotFound
	}
	return nil
}
