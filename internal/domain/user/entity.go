package user

import "time"

// Role is an assignable position label used to scope document assignments.
// Administrative rights live on the user itself, not the role.
type Role struct {
	ID          string
	Name        string
	Description string
}

type User struct {
	ID           string
	Email        string
	PasswordHash *string
	FirstName    string
	LastName     string
	Patronymic   *string
	IsAdmin      bool
	IsActive     bool
	RoleID       *string
	EmployeeCode *string
	Position     *string
	Department   *string
	PhoneNumber  *string
	HireDate     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	RoleName *string
}

// FullName returns "Last First Patronymic", falling back to the email.
func (u *User) FullName() string {
	parts := make([]string, 0, 3)
	if u.LastName != "" {
		parts = append(parts, u.LastName)
	}
	if u.FirstName != "" {
		parts = append(parts, u.FirstName)
	}
	if u.Patronymic != nil && *u.Patronymic != "" {
		parts = append(parts, *u.Patronymic)
	}
	if len(parts) == 0 {
		return u.Email
	}
	full := parts[0]
	for _, p := range parts[1:] {
		full += " " + p
	}
	return full
}

// Principal is the authenticated actor performing an operation.
type Principal struct {
	UserID  string
	IsAdmin bool
}
