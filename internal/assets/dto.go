package assets

import (
	"strings"

	"github.com/vds-erp/vds-erp/internal/validate"
)

// CreateAssetRequest is the create payload. Purchase and current values
// accept a number or a numeric string; the purchase date accepts ISO
// datetime or date strings. Status defaults to active when absent.
type CreateAssetRequest struct {
	AssetName     string              `json:"assetName"`
	Description   validate.NullString `json:"description"`
	Location      string              `json:"location"`
	PurchaseDate  validate.Date       `json:"purchaseDate"`
	PurchaseValue validate.Decimal    `json:"purchaseValue"`
	CurrentValue  validate.Decimal    `json:"currentValue"`
	Status        validate.NullString `json:"status"`
	Notes         validate.NullString `json:"notes"`
}

// Validate collects every field error.
func (r CreateAssetRequest) Validate() validate.Errors {
	var errs validate.Errors
	if strings.TrimSpace(r.AssetName) == "" {
		errs.Add("assetName", "Asset name is required")
	}
	if strings.TrimSpace(r.Location) == "" {
		errs.Add("location", "Location is required")
	}
	checkPurchaseDate(&errs, r.PurchaseDate, true)
	checkPurchaseValue(&errs, r.PurchaseValue, true)
	if r.CurrentValue.Present {
		checkCurrentValue(&errs, r.CurrentValue)
	}
	if r.Status.Present && !r.Status.Null {
		checkStatus(&errs, r.Status.String)
	}
	return errs
}

// UpdateAssetRequest is the partial update payload. Absent fields are left
// unchanged; required fields reject an explicit null.
type UpdateAssetRequest struct {
	AssetName     validate.NullString `json:"assetName"`
	Description   validate.NullString `json:"description"`
	Location      validate.NullString `json:"location"`
	PurchaseDate  validate.Date       `json:"purchaseDate"`
	PurchaseValue validate.Decimal    `json:"purchaseValue"`
	CurrentValue  validate.Decimal    `json:"currentValue"`
	Status        validate.NullString `json:"status"`
	Notes         validate.NullString `json:"notes"`
}

// Validate collects every field error.
func (r UpdateAssetRequest) Validate() validate.Errors {
	var errs validate.Errors
	if r.AssetName.Present && (r.AssetName.Null || strings.TrimSpace(r.AssetName.String) == "") {
		errs.Add("assetName", "Asset name is required")
	}
	if r.Location.Present && (r.Location.Null || strings.TrimSpace(r.Location.String) == "") {
		errs.Add("location", "Location is required")
	}
	if r.PurchaseDate.Present {
		checkPurchaseDate(&errs, r.PurchaseDate, false)
	}
	if r.PurchaseValue.Present {
		checkPurchaseValue(&errs, r.PurchaseValue, false)
	}
	if r.CurrentValue.Present {
		checkCurrentValue(&errs, r.CurrentValue)
	}
	if r.Status.Present && !r.Status.Null {
		checkStatus(&errs, r.Status.String)
	}
	return errs
}

func checkPurchaseDate(errs *validate.Errors, date validate.Date, required bool) {
	switch {
	case !date.Present:
		if required {
			errs.Add("purchaseDate", "Purchase date is required")
		}
	case date.Null, !date.Valid:
		errs.Add("purchaseDate", "Invalid purchase date")
	}
}

func checkPurchaseValue(errs *validate.Errors, value validate.Decimal, required bool) {
	switch {
	case !value.Present:
		if required {
			errs.Add("purchaseValue", "Purchase value is required")
		}
	case value.Null, !value.Valid:
		errs.Add("purchaseValue", "Purchase value must be a positive number")
	case value.Float64 <= 0:
		errs.Add("purchaseValue", "Purchase value must be positive")
	}
}

func checkCurrentValue(errs *validate.Errors, value validate.Decimal) {
	switch {
	case value.Null:
		// explicit null clears the value
	case !value.Valid:
		errs.Add("currentValue", "Current value must be a non-negative number")
	case value.Float64 < 0:
		errs.Add("currentValue", "Current value cannot be negative")
	}
}

func checkStatus(errs *validate.Errors, status string) {
	if !validate.OneOf(NormalizeStatus(status), Statuses...) {
		errs.Add("status", "Status must be one of active, maintenance, disposed")
	}
}
