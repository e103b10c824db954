package user

import "context"

type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetUser(ctx context.Context, principal Principal, id string) (UserResponse, error)
	ListUsers(ctx context.Context, filter ListUsersFilter) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, principal Principal, req UpdateUserRequest) (UserResponse, error)
	DeactivateUser(ctx context.Context, id string) error

	CreateRole(ctx context.Context, req CreateRoleRequest) (Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
	UpdateRole(ctx context.Context, role Role) error
	DeleteRole(ctx context.Context, id string) error
}
