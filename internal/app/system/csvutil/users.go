// Package csvutil handles the CSV surfaces of the dashboard: the bulk
// user import upload and the list exports.
package csvutil

import (
	"encoding/csv"
	"html/template"
	"io"
	"strings"
)

// UserCSVRow is the normalized row produced by PreScanUsersCSV.
type UserCSVRow struct {
	FullName    string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Role        string `json:"role"` // canonical upper-case, ADMIN or USER
}

// PreScanUsersCSV reads all rows from r, skips a header if present,
// validates each row, and either returns normalized rows OR a
// formatted HTML error message describing the first few bad lines.
// Nothing is sent to the API until the whole file passes, so a bad
// upload never half-creates users.
func PreScanUsersCSV(r io.Reader) (rows []UserCSVRow, htmlErr template.HTML, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Pull first row to check header
	first, ferr := reader.Read()
	if ferr == io.EOF {
		first = nil
	} else if ferr != nil {
		return nil, template.HTML(template.HTMLEscapeString(ferr.Error())), nil
	}
	if len(first) > 0 {
		first[0] = strings.TrimPrefix(first[0], "\uFEFF")
	}
	var raw [][]string
	if len(first) >= 2 &&
		(strings.EqualFold(strings.TrimSpace(first[0]), "full name") ||
			strings.EqualFold(strings.TrimSpace(first[0]), "name")) &&
		strings.EqualFold(strings.TrimSpace(first[1]), "email") {
		// header detected, skip
	} else if first != nil {
		raw = append(raw, first)
	}
	for {
		rec, e := reader.Read()
		if e == io.EOF {
			break
		}
		if e != nil || len(rec) == 0 {
			continue
		}
		raw = append(raw, rec)
		if len(raw) > MaxRows {
			return nil, template.HTML("Upload rejected: too many rows (limit 20,000)."), nil
		}
	}

	type rowErr struct{ Email, Name, Role, Reason string }
	var errs []rowErr
	allowed := map[string]bool{"ADMIN": true, "USER": true}
	normalize := func(rec []string) UserCSVRow {
		var n, e, p, role string
		if len(rec) > 0 {
			n = strings.TrimSpace(rec[0])
		}
		if len(rec) > 1 {
			e = strings.TrimSpace(rec[1])
		}
		if len(rec) > 2 {
			p = strings.TrimSpace(rec[2])
		}
		if len(rec) > 3 {
			role = strings.TrimSpace(rec[3])
		}
		return UserCSVRow{FullName: n, Email: e, PhoneNumber: p, Role: role}
	}

	for _, rec := range raw {
		row := normalize(rec)
		if row.FullName == "" && row.Email == "" && row.Role == "" {
			continue
		}
		if row.FullName == "" {
			errs = append(errs, rowErr{
				Email: strings.ToLower(row.Email), Name: row.FullName, Role: row.Role, Reason: "missing full name",
			})
		}
		if row.Email == "" {
			errs = append(errs, rowErr{
				Email: row.Email, Name: row.FullName, Role: row.Role, Reason: "missing email",
			})
		} else if !strings.Contains(row.Email, "@") {
			errs = append(errs, rowErr{
				Email: row.Email, Name: row.FullName, Role: row.Role, Reason: "invalid email",
			})
		}
		role := strings.ToUpper(row.Role)
		if role == "" {
			role = "USER"
		}
		if !allowed[role] {
			errs = append(errs, rowErr{
				Email: strings.ToLower(row.Email), Name: row.FullName, Role: row.Role, Reason: "invalid role",
			})
		} else {
			row.Role = role
		}
		row.Email = strings.ToLower(row.Email)
		rows = append(rows, row)
	}

	if len(errs) > 0 {
		var b strings.Builder
		b.WriteString("Upload rejected: one or more rows are invalid.<br>")
		b.WriteString("Each row must have a Full Name and an Email; Role, when given, must be ADMIN or USER.<br>")

		max := 5
		if len(errs) < max {
			max = len(errs)
		}
		if max > 0 {
			b.WriteString("Examples:<br>")
			for i := 0; i < max; i++ {
				e := errs[i]
				email := e.Email
				if email == "" {
					email = "(no email on row)"
				}
				name := e.Name
				if name == "" {
					name = "(missing)"
				}
				role := e.Role
				if role == "" {
					role = "(missing)"
				}
				b.WriteString("• ")
				b.WriteString(template.HTMLEscapeString(email))
				b.WriteString(" | ")
				b.WriteString(template.HTMLEscapeString(name))
				b.WriteString(" | ")
				b.WriteString(template.HTMLEscapeString(role))
				b.WriteString(" → ")
				b.WriteString(template.HTMLEscapeString(e.Reason))
				b.WriteString("<br>")
			}
		}
		return nil, template.HTML(b.String()), nil
	}

	return rows, "", nil
}
