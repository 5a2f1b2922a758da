package models

import "time"

// PrincipalOrganizer is the principal type carried by organizer tokens.
const PrincipalOrganizer = "Organizer"

// Organizer is an account that owns locations.
type Organizer struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrganizerPublic is Organizer without the credential, for API responses.
type OrganizerPublic struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPublic converts Organizer to OrganizerPublic.
func (o *Organizer) ToPublic() OrganizerPublic {
	return OrganizerPublic{
		ID:        o.ID,
		Email:     o.Email,
		Firstname: o.Firstname,
		Lastname:  o.Lastname,
		Phone:     o.Phone,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
