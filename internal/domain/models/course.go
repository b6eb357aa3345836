// internal/domain/models/course.go
package models

// Course is a programme as returned by GET /api/courses.
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
	Discount    string `json:"discount,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Duration    string `json:"course_duration,omitempty"`

	InstructorName  string `json:"course_instructor_name,omitempty"`
	InstructorTitle string `json:"course_instructor_title,omitempty"`

	BrochureURL  string `json:"brochureUrl,omitempty"`
	PreviewVideo string `json:"course_preview_video,omitempty"`

	IsPublished bool `json:"isPublished"`

	Cohorts []CohortRef `json:"cohorts,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// CohortRef is the slim cohort reference embedded on a course.
type CohortRef struct {
	ID string `json:"id"`
}

// CourseWeek is one curriculum week of a course, from
// GET /api/courses/{id}/weeks.
type CourseWeek struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IconURL     string `json:"iconUrl,omitempty"`
	CourseID    string `json:"courseId"`
	IsPublished bool   `json:"isPublished"`

	Modules []CourseModule `json:"courseModules,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// CourseModule is a lesson block inside a week.
type CourseModule struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	IconURL      string `json:"iconUrl,omitempty"`
	CourseWeekID string `json:"courseWeekId,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
}

// Cohort is a dated run of a course.
type Cohort struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CourseID    string `json:"courseId"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Status      string `json:"status,omitempty"` // UPCOMING | ONGOING | COMPLETED
	BrochureURL string `json:"brochureUrl,omitempty"`
	Enrolled    int    `json:"enrolled,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
