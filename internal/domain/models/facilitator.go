// internal/domain/models/facilitator.go
package models

// Facilitator is a course facilitator as returned by
// GET /api/facilitators.
type Facilitator struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Title       string `json:"title,omitempty"`
	Bio         string `json:"bio,omitempty"`

	// Courses the facilitator is assigned to (ids).
	Courses []string `json:"courses,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
}

// ProgramLead is a CRM lead captured for a programme, from
// GET /api/program-leads.
type ProgramLead struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Program     string `json:"program"`
	Source      string `json:"source,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}
