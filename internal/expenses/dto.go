package expenses

import (
	"strings"

	"github.com/vds-erp/vds-erp/internal/validate"
)

// CreateExpenseRequest is the create payload. Amount accepts a number or a
// numeric string; the expense date accepts ISO datetime or date strings.
type CreateExpenseRequest struct {
	ExpenseType   string              `json:"expenseType"`
	Amount        validate.Decimal    `json:"amount"`
	ExpenseDate   validate.Date       `json:"expenseDate"`
	VendorName    string              `json:"vendorName"`
	PaymentMethod string              `json:"paymentMethod"`
	BillNumber    validate.NullString `json:"billNumber"`
	Description   validate.NullString `json:"description"`
	ReceiptPath   validate.NullString `json:"receiptPath"`
	VendorID      validate.NullString `json:"vendorId"`
}

// Validate collects every field error.
func (r CreateExpenseRequest) Validate() validate.Errors {
	var errs validate.Errors
	if strings.TrimSpace(r.ExpenseType) == "" {
		errs.Add("expenseType", "Expense type is required")
	}
	checkAmount(&errs, r.Amount, true)
	checkDate(&errs, r.ExpenseDate, true)
	if strings.TrimSpace(r.VendorName) == "" {
		errs.Add("vendorName", "Vendor name is required")
	}
	checkPaymentMethod(&errs, r.PaymentMethod, true)
	return errs
}

// UpdateExpenseRequest is the partial update payload. Absent fields are left
// unchanged; required fields reject an explicit null.
type UpdateExpenseRequest struct {
	ExpenseType   validate.NullString `json:"expenseType"`
	Amount        validate.Decimal    `json:"amount"`
	ExpenseDate   validate.Date       `json:"expenseDate"`
	VendorName    validate.NullString `json:"vendorName"`
	PaymentMethod validate.NullString `json:"paymentMethod"`
	BillNumber    validate.NullString `json:"billNumber"`
	Description   validate.NullString `json:"description"`
	ReceiptPath   validate.NullString `json:"receiptPath"`
	VendorID      validate.NullString `json:"vendorId"`
}

// Validate collects every field error.
func (r UpdateExpenseRequest) Validate() validate.Errors {
	var errs validate.Errors
	if r.ExpenseType.Present && (r.ExpenseType.Null || strings.TrimSpace(r.ExpenseType.String) == "") {
		errs.Add("expenseType", "Expense type is required")
	}
	if r.Amount.Present {
		checkAmount(&errs, r.Amount, false)
	}
	if r.ExpenseDate.Present {
		checkDate(&errs, r.ExpenseDate, false)
	}
	if r.VendorName.Present && (r.VendorName.Null || strings.TrimSpace(r.VendorName.String) == "") {
		errs.Add("vendorName", "Vendor name is required")
	}
	if r.PaymentMethod.Present {
		checkPaymentMethod(&errs, r.PaymentMethod.String, false)
	}
	return errs
}

func checkAmount(errs *validate.Errors, amount validate.Decimal, required bool) {
	switch {
	case !amount.Present:
		if required {
			errs.Add("amount", "Amount is required")
		}
	case amount.Null, !amount.Valid:
		errs.Add("amount", "Amount must be a positive number")
	case amount.Float64 <= 0:
		errs.Add("amount", "Amount must be positive")
	}
}

func checkDate(errs *validate.Errors, date validate.Date, required bool) {
	switch {
	case !date.Present:
		if required {
			errs.Add("expenseDate", "Expense date is required")
		}
	case date.Null, !date.Valid:
		errs.Add("expenseDate", "Invalid expense date")
	}
}

func checkPaymentMethod(errs *validate.Errors, method string, required bool) {
	if method == "" {
		if required {
			errs.Add("paymentMethod", "Payment method is required")
		} else {
			errs.Add("paymentMethod", "Payment method must be one of Cash, UPI, Bank Transfer, Cheque")
		}
		return
	}
	if !validate.OneOf(method, PaymentMethods...) {
		errs.Add("paymentMethod", "Payment method must be one of Cash, UPI, Bank Transfer, Cheque")
	}
}
