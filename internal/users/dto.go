package users

import (
	"strings"

	"github.com/vds-erp/vds-erp/internal/rbac"
	"github.com/vds-erp/vds-erp/internal/validate"
)

var fieldMessages = map[string]string{
	"email.email":  "Invalid email format",
	"password.min": "Password must be at least 8 characters",
}

// CreateUserRequest is the admin create payload.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// Validate collects every field error.
func (r CreateUserRequest) Validate() validate.Errors {
	errs := validate.Struct(r, fieldMessages)
	if strings.TrimSpace(r.Username) == "" {
		errs.Add("username", "Username is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs.Add("email", "Email is required")
	}
	if r.Password == "" {
		errs.Add("password", "Password is required")
	}
	if strings.TrimSpace(r.FullName) == "" {
		errs.Add("fullName", "Full name is required")
	}
	if r.Role != "" && !validate.OneOf(r.Role, rbac.RoleAccountant, rbac.RoleAdmin) {
		errs.Add("role", "Role must be one of accountant, admin")
	}
	return errs
}

// UpdateUserRequest is the admin partial update payload. Accounts are never
// hard-deleted; deactivation goes through the status field.
type UpdateUserRequest struct {
	Email    validate.NullString `json:"email" validate:"omitempty,email"`
	Password validate.NullString `json:"password"`
	FullName validate.NullString `json:"fullName"`
	Role     validate.NullString `json:"role"`
	Status   validate.NullString `json:"status"`
}

// Validate collects every field error.
func (r UpdateUserRequest) Validate() validate.Errors {
	errs := validate.Struct(r, fieldMessages)
	if r.Email.Present && (r.Email.Null || strings.TrimSpace(r.Email.String) == "") {
		errs.Add("email", "Email is required")
	}
	if r.Password.Present {
		if r.Password.Null || r.Password.String == "" {
			errs.Add("password", "Password is required")
		} else if len(r.Password.String) < 8 {
			errs.Add("password", "Password must be at least 8 characters")
		}
	}
	if r.FullName.Present && (r.FullName.Null || strings.TrimSpace(r.FullName.String) == "") {
		errs.Add("fullName", "Full name is required")
	}
	if r.Role.Present && !validate.OneOf(r.Role.String, rbac.RoleAccountant, rbac.RoleAdmin) {
		errs.Add("role", "Role must be one of accountant, admin")
	}
	if r.Status.Present && !validate.OneOf(r.Status.String, Statuses...) {
		errs.Add("status", "Status must be one of active, inactive")
	}
	return errs
}
