package models

import (
	"errors"
)

// Rating bounds for connect session feedback.
const (
	MinRating = 1
	MaxRating = 5
)

// ErrRatingOutOfRange is returned when a rating falls outside MinRating..MaxRating.
var ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

// ConnectRequest is a mentoring session between a startup team and a faculty
// member. Each side rates the other independently.
type ConnectRequest struct {
	BaseModel
	StartupID       uint       `gorm:"index" json:"startup_id"`
	FacultyID       uint       `gorm:"index" json:"faculty_id"`
	Questions       string     `json:"questions"`
	Status          string     `json:"status"`
	RatingOfFaculty *int       `json:"rating_of_faculty"`
	RatingOfTeam    *int       `json:"rating_of_team"`
	Startup         *Startup   `json:"-"`
	Faculty         *Faculty   `json:"faculty,omitempty"`
}

// ConnectRequestRequested is the status of a newly booked session.
const ConnectRequestRequested = "requested"

// Validate checks the ratings currently set on the request.
func (r *ConnectRequest) Validate() error {
	for _, rating := range []*int{r.RatingOfFaculty, r.RatingOfTeam} {
		if rating != nil && (*rating < MinRating || *rating > MaxRating) {
			return ErrRatingOutOfRange
		}
	}
	return nil
}
