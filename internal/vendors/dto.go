package vendors

import (
	"strings"

	"github.com/vds-erp/vds-erp/internal/validate"
)

var fieldMessages = map[string]string{
	"email.email": "Invalid email format",
}

// gstNumberTooLong reports whether value exceeds the 15-character GST format
// after trimming, matching how the stored value is trimmed.
func gstNumberTooLong(v validate.NullString) bool {
	return v.Present && !v.Null && len(strings.TrimSpace(v.String)) > 15
}

// CreateVendorRequest is the create payload. Optional fields are trimmed and
// empty-after-trim maps to null; an empty email string is accepted as absent.
type CreateVendorRequest struct {
	Name          string              `json:"name"`
	ContactPerson validate.NullString `json:"contactPerson"`
	Phone         validate.NullString `json:"phone"`
	Email         validate.NullString `json:"email" validate:"omitempty,email"`
	Address       validate.NullString `json:"address"`
	GSTNumber     validate.NullString `json:"gstNumber"`
	Notes         validate.NullString `json:"notes"`
}

// Validate collects every field error.
func (r CreateVendorRequest) Validate() validate.Errors {
	errs := validate.Struct(r, fieldMessages)
	if strings.TrimSpace(r.Name) == "" {
		errs.Add("name", "Vendor name is required")
	}
	if gstNumberTooLong(r.GSTNumber) {
		errs.Add("gstNumber", "GST number too long")
	}
	return errs
}

// UpdateVendorRequest is the partial update payload. Absent fields are left
// unchanged; explicit nulls clear the field.
type UpdateVendorRequest struct {
	Name          validate.NullString `json:"name"`
	ContactPerson validate.NullString `json:"contactPerson"`
	Phone         validate.NullString `json:"phone"`
	Email         validate.NullString `json:"email" validate:"omitempty,email"`
	Address       validate.NullString `json:"address"`
	GSTNumber     validate.NullString `json:"gstNumber"`
	Notes         validate.NullString `json:"notes"`
}

// Validate collects every field error.
func (r UpdateVendorRequest) Validate() validate.Errors {
	errs := validate.Struct(r, fieldMessages)
	if r.Name.Present && (r.Name.Null || strings.TrimSpace(r.Name.String) == "") {
		errs.Add("name", "Vendor name is required")
	}
	if gstNumberTooLong(r.GSTNumber) {
		errs.Add("gstNumber", "GST number too long")
	}
	return errs
}
