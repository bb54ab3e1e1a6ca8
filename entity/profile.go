package entity

// UserType is the account category stored on a profile record.
type UserType string

const (
	UserTypeUser   UserType = "user"
	UserTypeDriver UserType = "driver"
	UserTypeAdmin  UserType = "admin"
)

// DriverStatus tracks driver onboarding. Only set on driver records.
type DriverStatus string

const (
	DriverPending  DriverStatus = "pending"  // registered, awaiting admin review
	DriverApproved DriverStatus = "approved" // cleared to take deliveries
)

// Collection names one of the top-level keyed collections in the record store.
type Collection string

const (
	Admins  Collection = "admins"
	Drivers Collection = "drivers"
	Users   Collection = "users"
)

// ProfileRecord is the stored profile document for one principal.
// The id always equals the identity provider's principal id.
type ProfileRecord struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	UserType     UserType     `json:"userType"`
	ProfileImage string       `json:"profileImage,omitempty"`
	Status       DriverStatus `json:"status,omitempty"`
}
