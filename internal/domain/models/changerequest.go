// internal/domain/models/changerequest.go
package models

// Change request kinds and statuses. The approval state machine is
// enforced by the backend; the dashboard only submits decisions.
const (
	ChangeCourse    = "COURSE_CHANGE"
	ChangeDeferment = "DEFERMENT"

	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

// ChangeRequest is a learner's course-change or deferment request,
// from GET /api/change-requests.
type ChangeRequest struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"` // COURSE_CHANGE | DEFERMENT
	UserID string  `json:"userId"`
	User   UserRef `json:"user"`

	CurrentCourseID string    `json:"currentCourseId"`
	CurrentCourse   CourseRef `json:"currentCourse"`
	DesiredCourseID string    `json:"desiredCourseId,omitempty"`
	DesiredCourse   CourseRef `json:"desiredCourse,omitempty"`

	CurrentCohortID string    `json:"currentCohortId"`
	CurrentCohort   CohortInf `json:"currentCohort"`
	DesiredCohortID string    `json:"desiredCohortId,omitempty"`
	DesiredCohort   CohortInf `json:"desiredCohort,omitempty"`

	Reason      string `json:"reason"`
	Status      string `json:"status"`
	AdminReason string `json:"adminReason,omitempty"`

	CreatedAt   string   `json:"createdAt"`
	ProcessedAt string   `json:"processedAt,omitempty"`
	ProcessedBy *UserRef `json:"processedBy,omitempty"`
}

// CourseRef is the slim course reference embedded on change requests.
type CourseRef struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// CohortInf is the slim cohort reference embedded on change requests.
type CohortInf struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate,omitempty"`
}

// SalesSummary backs the dashboard cards, from GET /api/sales/summary.
type SalesSummary struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	MonthRevenue     float64 `json:"monthRevenue"`
	TotalEnrollments int     `json:"totalEnrollments"`
	ActiveLearners   int     `json:"activeLearners"`
	OpenRequests     int     `json:"openRequests"`
}
