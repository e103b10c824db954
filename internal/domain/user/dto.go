package user

import (
	"time"

	"github.com/corehr/hr-backend-go/internal/pkg/validator"
)

type CreateUserRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Patronymic   *string `json:"patronymic,omitempty"`
	IsAdmin      bool    `json:"is_admin"`
	RoleID       *string `json:"role_id,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	Position     *string `json:"position,omitempty"`
	Department   *string `json:"department,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	HireDate     *string `json:"hire_date,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email format is invalid"})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name is required"})
	}

	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateUserRequest struct {
	ID           string  `json:"-"`
	Email        *string `json:"email,omitempty"`
	Password     *string `json:"password,omitempty"`
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Patronymic   *string `json:"patronymic,omitempty"`
	IsAdmin      *bool   `json:"is_admin,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	RoleID       *string `json:"role_id,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	Position     *string `json:"position,omitempty"`
	Department   *string `json:"department,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	HireDate     *string `json:"hire_date,omitempty"`

	// Set by the service, never from the request body.
	PasswordHash *string `json:"-"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email format is invalid"})
	}
	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListUsersFilter struct {
	Search    *string
	RoleID    *string
	IsActive  *bool
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type CreateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *CreateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 100 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Patronymic   *string    `json:"patronymic,omitempty"`
	FullName     string     `json:"full_name"`
	IsAdmin      bool       `json:"is_admin"`
	IsActive     bool       `json:"is_active"`
	RoleID       *string    `json:"role_id,omitempty"`
	RoleName     *string    `json:"role_name,omitempty"`
	EmployeeCode *string    `json:"employee_code,omitempty"`
	Position     *string    `json:"position,omitempty"`
	Department   *string    `json:"department,omitempty"`
	PhoneNumber  *string    `json:"phone_number,omitempty"`
	HireDate     *time.Time `json:"hire_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Patronymic:   u.Patronymic,
		FullName:     u.FullName(),
		IsAdmin:      u.IsAdmin,
		IsActive:     u.IsActive,
		RoleID:       u.RoleID,
		RoleName:     u.RoleName,
		EmployeeCode: u.EmployeeCode,
		Position:     u.Position,
		Department:   u.Department,
		PhoneNumber:  u.PhoneNumber,
		HireDate:     u.HireDate,
		CreatedAt:    u.CreatedAt,
	}
}
