package models

// Startup owns its founders (users whose StartupID points here) and the
// connect requests it has raised.
type Startup struct {
	BaseModel
	Name            string           `json:"name"`
	Slug            string           `gorm:"uniqueIndex" json:"slug"`
	About           string           `json:"about"`
	Founders        []User           `gorm:"foreignKey:StartupID" json:"founders,omitempty"`
	ConnectRequests []ConnectRequest `json:"connect_requests,omitempty"`
}
