package models

// Faculty is a mentor, identified on feedback links by Token.
type Faculty struct {
	BaseModel
	Name            string           `json:"name"`
	Title           string           `json:"title"`
	Company         string           `json:"company"`
	Category        string           `json:"category"`
	ImageURL        string           `json:"image_url"`
	Token           string           `gorm:"uniqueIndex" json:"-"`
	ConnectRequests []ConnectRequest `json:"connect_requests,omitempty"`
}

// TableName overrides the default "faculties".
func (Faculty) TableName() string {
	return "faculty"
}
