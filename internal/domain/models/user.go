// internal/domain/models/user.go
package models

// Roles a platform account can hold. The backend owns the full role
// model; the dashboard only distinguishes admins from learners.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User is a platform account as returned by GET /api/users.
//
// Field names mirror the backend's JSON exactly; the backend is the
// source of truth and this struct is a read model only.
type User struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	PhoneNumber   string   `json:"phone_number,omitempty"`
	Role          string   `json:"role"` // ADMIN | USER
	Image         string   `json:"image,omitempty"`
	Inactive      bool     `json:"inactive,omitempty"`
	PaymentStatus string   `json:"paymentStatus,omitempty"`
	AccessToken   string   `json:"access_token,omitempty"`

	OngoingCourses   []string     `json:"ongoing_courses,omitempty"`
	CompletedCourses []string     `json:"completed_courses,omitempty"`
	Cohorts          []UserCohort `json:"cohorts,omitempty"`

	VideosCompleted int `json:"videosCompleted,omitempty"`
	TotalVideos     int `json:"totalVideos,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// UserCohort links a user to a cohort they are enrolled in.
type UserCohort struct {
	CohortID string `json:"cohortId"`
	CourseID string `json:"courseId,omitempty"`
	Name     string `json:"name,omitempty"`
}

// IsAdmin reports whether the account has the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
