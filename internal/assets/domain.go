package assets

import "time"

// Asset status values. Input also accepts "under maintenance" as a legacy
// alias for StatusMaintenance; stored records always use the canonical form.
const (
	StatusActive      = "active"
	StatusMaintenance = "maintenance"
	StatusDisposed    = "disposed"

	statusMaintenanceAlias = "under maintenance"
)

// Statuses is the closed set of canonical asset statuses.
var Statuses = []string{StatusActive, StatusMaintenance, StatusDisposed}

// Creator is the embedded summary of the user who recorded the asset.
type Creator struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// FixedAsset is a tracked physical asset.
type FixedAsset struct {
	ID            string    `json:"id"`
	AssetName     string    `json:"assetName"`
	Description   *string   `json:"description"`
	Location      string    `json:"location"`
	PurchaseDate  time.Time `json:"purchaseDate"`
	PurchaseValue float64   `json:"purchaseValue"`
	CurrentValue  *float64  `json:"currentValue"`
	Status        string    `json:"status"`
	Notes         *string   `json:"notes"`
	CreatedBy     string    `json:"createdBy"`
	User          *Creator  `json:"user,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ListFilter narrows asset listings. Status matches exactly against the
// canonical set; Location is a case-insensitive substring match.
type ListFilter struct {
	Status   string
	Location string
}

// NormalizeStatus maps the legacy alias onto the canonical value. Unknown
// inputs pass through unchanged for validation to reject.
func NormalizeStatus(status string) string {
	if status == statusMaintenanceAlias {
		return StatusMaintenance
	}
	return status
}
