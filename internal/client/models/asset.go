package models

import "time"

// Category classifies an asset. The set is fixed by the server.
type Category string

const (
	CategoryLaptop   Category = "laptop"
	CategoryMonitor  Category = "monitor"
	CategoryKeyboard Category = "keyboard"
	CategoryMouse    Category = "mouse"
	CategoryHeadset  Category = "headset"
	CategoryPhone    Category = "phone"
	CategoryKey      Category = "key"
	CategoryLicense  Category = "license"
	CategoryOther    Category = "other"
)

// Categories lists all valid categories in display order.
var Categories = []Category{
	CategoryLaptop, CategoryMonitor, CategoryKeyboard, CategoryMouse,
	CategoryHeadset, CategoryPhone, CategoryKey, CategoryLicense,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status is the lifecycle state of an asset. Assets move between these
// states server-side; the client only triggers check-out and check-in.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusCheckedOut  Status = "checked_out"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusCheckedOut, StatusMaintenance, StatusRetired:
		return true
	}
	return false
}

// Assignee is the server-owned projection of the user an asset is checked
// out to. The client never mutates it directly.
type Assignee struct {
	FullName   string `json:"full_name"`
	Department string `json:"department"`
}

// Asset is a single inventory record. Records are created and destroyed
// server-side only; Status and Assignee change as a side effect of a
// successful check-out or check-in.
type Asset struct {
	ID           int64     `json:"id"`
	AssetTag     string    `json:"asset_tag"`
	Name         string    `json:"name"`
	Category     Category  `json:"category"`
	Status       Status    `json:"status"`
	Description  *string   `json:"description,omitempty"`
	SerialNumber *string   `json:"serial_number,omitempty"`
	Manufacturer *string   `json:"manufacturer,omitempty"`
	Model        *string   `json:"model,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	Assignee     *Assignee `json:"assignee,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanCheckOut reports whether the check-out affordance may be offered.
func (a *Asset) CanCheckOut() bool {
	return a.Status == StatusAvailable
}

// CanCheckIn reports whether the check-in affordance may be offered.
func (a *Asset) CanCheckIn() bool {
	return a.Status == StatusCheckedOut
}
