// Package expenses implements expense booking. Expense.expenseType is a free
// category label, deliberately not a foreign key into expense_types.
package expenses

import "time"

// Payment methods form a closed set.
var PaymentMethods = []string{"Cash", "UPI", "Bank Transfer", "Cheque"}

// Creator carries the joined display fields of the booking user.
type Creator struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Expense represents a booked expense.
type Expense struct {
	ID            string    `json:"id"`
	ExpenseType   string    `json:"expenseType"`
	Amount        float64   `json:"amount"`
	ExpenseDate   time.Time `json:"expenseDate"`
	VendorName    string    `json:"vendorName"`
	VendorID      *string   `json:"vendorId"`
	PaymentMethod string    `json:"paymentMethod"`
	BillNumber    *string   `json:"billNumber"`
	Description   *string   `json:"description"`
	ReceiptPath   *string   `json:"receiptPath"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	User          *Creator  `json:"user,omitempty"`
}

// ListFilter narrows the expense listing. StartDate and EndDate form an
// inclusive range on the expense date and only apply together.
type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
}
