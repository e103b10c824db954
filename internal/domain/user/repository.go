package user

import "context"

// UserRepository - interface for users table
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]User, int64, error)
	ListIDsByRole(ctx context.Context, roleID string) ([]string, error)
	ListAdminIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	Delete(ctx context.Context, id string) error
}

// RoleRepository - interface for roles table
type RoleRepository interface {
	Create(ctx context.Context, role Role) (Role, error)
	GetByID(ctx context.Context, id string) (Role, error)
	List(ctx context.Context) ([]Role, error)
	Update(ctx context.Context, role Role) error
	Delete(ctx context.Context, id string) error
}
