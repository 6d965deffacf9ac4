// Package vendors implements vendor management: CRUD plus the linked-expense
// delete guard, the one hard business invariant in the system.
package vendors

import "time"

// Vendor represents a supplier the organization pays.
type Vendor struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	ContactPerson *string       `json:"contactPerson"`
	Phone         *string       `json:"phone"`
	Email         *string       `json:"email"`
	Address       *string       `json:"address"`
	GSTNumber     *string       `json:"gstNumber"`
	Notes         *string       `json:"notes"`
	CreatedBy     string        `json:"createdBy"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Count         *ExpenseCount `json:"_count,omitempty"`
}

// ExpenseCount carries the number of expenses referencing a vendor.
type ExpenseCount struct {
	Expenses int `json:"expenses"`
}
