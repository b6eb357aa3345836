// internal/app/features/users/import.go
package users

import (
	"fmt"
	"net/http"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/csvutil"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// maxImportUpload caps the CSV upload size.
const maxImportUpload = 5 << 20 // 5 MB

// bulkImportResult mirrors the platform's bulk-create response.
type bulkImportResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// HandleImport handles POST /users/import - bulk-creates accounts
// from an uploaded CSV. The file is pre-scanned locally so problems
// are reported per row before anything reaches the platform.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportUpload); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid import upload", err, "The upload could not be read.", basePath)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "import upload missing file", err, "Choose a CSV file to import.", basePath)
		return
	}
	defer file.Close()

	rows, htmlErr, err := csvutil.PreScanUsersCSV(file)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "unreadable import csv", err, "The file is not a readable CSV.", basePath)
		return
	}
	if htmlErr != "" {
		data := h.buildList(w, r)
		data.ImportErrors = htmlErr
		templates.Render(w, r, "users_list", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "user bulk import")
	defer cancel()

	result, err := backend.PostJSON[bulkImportResult](ctx, h.API, "/api/users/bulk", auth.Token(r), map[string]any{
		"users": rows,
	})
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("users imported",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))

	msg := fmt.Sprintf("Imported %d users.", result.Created)
	if result.Skipped > 0 {
		msg = fmt.Sprintf("Imported %d users, skipped %d duplicates.", result.Created, result.Skipped)
	}
	h.redirectBack(w, r, msg)
}
