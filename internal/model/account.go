package model

// ConnectedAccount is a calendar account linked to a family group. Accounts
// arrive wholesale from each planner refresh; the application never mutates
// them, it only filters events by their derived identifier.
type ConnectedAccount struct {
	UserName    string   `json:"userName" db:"user_name"`
	Email       string   `json:"email" db:"email"`
	Provider    Provider `json:"provider" db:"provider"`
	DisplayName string   `json:"displayName" db:"display_name"`
	Color       string   `json:"color" db:"color"`

	// FamilyGroupID is the group this account is visible in.
	FamilyGroupID string `json:"family_group_id" db:"family_group_id"`
}

// FilterID is the identifier used by the account visibility filter.
func (a ConnectedAccount) FilterID() string {
	return a.Email + "-" + string(a.Provider)
}

// PersonColor is the display color entry derived for one account,
// keyed by user name in the planner's color map.
type PersonColor struct {
	Color string `json:"color"`
	Email string `json:"email"`
}
