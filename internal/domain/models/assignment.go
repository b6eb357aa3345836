// internal/domain/models/assignment.go
package models

// Assignment is classroom coursework as returned by
// GET /api/admin/assignments, with its submissions inlined.
type Assignment struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	DueDate string `json:"dueDate,omitempty"`
	Points  int    `json:"points,omitempty"`

	CohortCourse AssignmentCourse `json:"cohortCourse"`

	Count       AssignmentCount `json:"_count"`
	Submissions []Submission    `json:"submissions,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
}

// AssignmentCourse names the course and cohort an assignment belongs to.
type AssignmentCourse struct {
	Title  string           `json:"title"`
	Cohort AssignmentCohort `json:"cohort"`
}

type AssignmentCohort struct {
	Name string `json:"name"`
}

type AssignmentCount struct {
	Submissions int `json:"submissions"`
}

// Submission is a learner's answer to an assignment. Grade is nil
// until an admin grades it.
type Submission struct {
	ID          string            `json:"id"`
	SubmittedAt string            `json:"submittedAt,omitempty"`
	Grade       *int              `json:"grade,omitempty"`
	Student     SubmissionStudent `json:"student"`
}

type SubmissionStudent struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
