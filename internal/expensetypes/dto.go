package expensetypes

import (
	"strings"

	"github.com/vds-erp/vds-erp/internal/validate"
)

// CreateExpenseTypeRequest is the create payload.
type CreateExpenseTypeRequest struct {
	Name        string              `json:"name"`
	Description validate.NullString `json:"description"`
}

// Validate collects every field error.
func (r CreateExpenseTypeRequest) Validate() validate.Errors {
	var errs validate.Errors
	if strings.TrimSpace(r.Name) == "" {
		errs.Add("name", "Name is required")
	}
	return errs
}

// UpdateExpenseTypeRequest is the partial update payload.
type UpdateExpenseTypeRequest struct {
	Name        validate.NullString `json:"name"`
	Description validate.NullString `json:"description"`
}

// Validate collects every field error.
func (r UpdateExpenseTypeRequest) Validate() validate.Errors {
	var errs validate.Errors
	if r.Name.Present && (r.Name.Null || strings.TrimSpace(r.Name.String) == "") {
		errs.Add("name", "Name is required")
	}
	return errs
}
