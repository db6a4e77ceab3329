package models

// Role is derived from a staff member's permissions.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleStaff Role = "Staff"
)

// Permissions lists the dashboard sections a staff member may open.
type Permissions struct {
	Dashboard bool `json:"dashboard"`
	Projects  bool `json:"projects"`
	Emergency bool `json:"emergency"`
	Payments  bool `json:"payments"`
	Donors    bool `json:"donors"`
	Staff     bool `json:"staff"`
}

// All reports whether every section is granted.
func (p Permissions) All() bool {
	return p.Dashboard && p.Projects && p.Emergency && p.Payments && p.Donors && p.Staff
}

// WorkingHours is a daily shift in "15:04" form.
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// StaffMember is a person with access to the dashboard.
type StaffMember struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Role         Role         `json:"role"`
	Avatar       string       `json:"avatar,omitempty"`
	Permissions  Permissions  `json:"permissions"`
	WorkingHours WorkingHours `json:"workingHours"`
}

// RoleFor returns Admin when every permission is granted, Staff otherwise.
func RoleFor(p Permissions) Role {
	if p.All() {
		return RoleAdmin
	}
	return RoleStaff
}
