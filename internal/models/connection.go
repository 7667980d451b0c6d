package models

// ConnectionDirection records who supplied a contact.
type ConnectionDirection string

const (
	// DirectionSVToUser marks a contact curated by the platform.
	DirectionSVToUser ConnectionDirection = "SV_TO_USER"
	// DirectionUserToSV marks a contact the user imported.
	DirectionUserToSV ConnectionDirection = "USER_TO_SV"
)

// Valid reports whether d is one of the known directions.
func (d ConnectionDirection) Valid() bool {
	return d == DirectionSVToUser || d == DirectionUserToSV
}

// Connection is a directed edge between a user and a contact user.
type Connection struct {
	BaseModel
	UserID    uint                `gorm:"index" json:"user_id"`
	ContactID uint                `gorm:"index" json:"contact_id"`
	Direction ConnectionDirection `gorm:"type:varchar(16);index" json:"direction"`
	User      *User               `json:"-"`
	Contact   *User               `json:"contact,omitempty"`
}
