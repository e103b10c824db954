package user

import (
	"context"
	"fmt"
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	user.RoleRepository
}

func NewUserService(userRepository user.UserRepository, roleRepository user.RoleRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		RoleRepository: roleRepository,
	}
}

// CreateUser implements user.UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if req.RoleID != nil {
		if _, err := s.RoleRepository.GetByID(ctx, *req.RoleID); err != nil {
			return user.UserResponse{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	var hireDate *time.Time
	if req.HireDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.HireDate)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to parse hire_date: %w", err)
		}
		hireDate = &parsed
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: &hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Patronymic:   req.Patronymic,
		IsAdmin:      req.IsAdmin,
		IsActive:     true,
		RoleID:       req.RoleID,
		EmployeeCode: req.EmployeeCode,
		Position:     req.Position,
		Department:   req.Department,
		PhoneNumber:  req.PhoneNumber,
		HireDate:     hireDate,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(created), nil
}

// GetUser implements user.UserService. Employees may only read their own
// profile.
func (s *UserServiceImpl) GetUser(ctx context.Context, principal user.Principal, id string) (user.UserResponse, error) {
	if !principal.IsAdmin && principal.UserID != id {
		return user.UserResponse{}, user.ErrForbidden
	}

	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, filter user.ListUsersFilter) ([]user.UserResponse, int64, error) {
	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, total, nil
}

// UpdateUser implements user.UserService. Employees may update their own
// contact fields; privilege and activity flags require an administrator.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, principal user.Principal, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if !principal.IsAdmin {
		if principal.UserID != req.ID {
			return user.UserResponse{}, user.ErrForbidden
		}
		if req.IsAdmin != nil || req.IsActive != nil || req.RoleID != nil || req.EmployeeCode != nil {
			return user.UserResponse{}, user.ErrAdminPrivilegeRequired
		}
	}

	if req.RoleID != nil {
		if _, err := s.RoleRepository.GetByID(ctx, *req.RoleID); err != nil {
			return user.UserResponse{}, err
		}
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		req.PasswordHash = &hashed
	}

	if err := s.UserRepository.Update(ctx, req); err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(updated), nil
}

// DeactivateUser implements user.UserService. Accounts are never deleted;
// deactivation keeps the history referenced by leave and audit records.
func (s *UserServiceImpl) DeactivateUser(ctx context.Context, id string) error {
	inactive := false
	return s.UserRepository.Update(ctx, user.UpdateUserRequest{
		ID:       id,
		IsActive: &inactive,
	})
}

// CreateRole implements user.UserService.
func (s *UserServiceImpl) CreateRole(ctx context.Context, req user.CreateRoleRequest) (user.Role, error) {
	if err := req.Validate(); err != nil {
		return user.Role{}, err
	}

	return s.RoleRepository.Create(ctx, user.Role{
		Name:        req.Name,
		Description: req.Description,
	})
}

// ListRoles implements user.UserService.
func (s *UserServiceImpl) ListRoles(ctx context.Context) ([]user.Role, error) {
	return s.RoleRepository.List(ctx)
}

// UpdateRole implements user.UserService.
func (s *UserServiceImpl) UpdateRole(ctx context.Context, role user.Role) error {
	return s.RoleRepository.Update(ctx, role)
}

// DeleteRole implements user.UserService.
func (s *UserServiceImpl) DeleteRole(ctx context.Context, id string) error {
	return s.RoleRepository.Delete(ctx, id)
}
