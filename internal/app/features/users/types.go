// internal/app/features/users/types.go
package users

import (
	"html/template"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/paging"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/viewdata"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
)

// option is one entry in a filter dropdown.
type option struct {
	Value    string
	Label    string
	Selected bool
}

// sortHeader is one sortable column header.
type sortHeader struct {
	Column string
	Label  string
	URL    string
	Active bool
	Desc   bool
}

// listData is the view model for the users list page and its table
// snippet.
type listData struct {
	viewdata.BaseVM

	Users []models.User
	Pager paging.VM

	Search      string
	Roles       []string
	RoleOptions []option
	Courses     []option
	Cohorts     []option
	Headers     []sortHeader
	HasFilters  bool
	DebounceMS  int

	// FetchError is set when the platform API call failed; the table
	// keeps whatever rows it has and shows a banner with a retry link.
	FetchError string
	RetryURL   string

	Flash        string
	ImportErrors template.HTML
}
