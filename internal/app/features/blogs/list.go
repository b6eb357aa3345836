// internal/app/features/blogs/list.go
package blogs

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/authz"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/htmlsanitize"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/paging"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/viewdata"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// previewLength is how much sanitized text a row preview shows.
const previewLength = 180

// blogRow is one list row: the post plus its sanitized preview.
type blogRow struct {
	models.Blog
	Preview template.HTML
}

type listData struct {
	viewdata.BaseVM

	Blogs []blogRow
	Pager paging.VM

	Search     string
	HasFilters bool
	DebounceMS int

	FetchError string
	RetryURL   string
	Flash      string
}

// ServeList handles GET /blogs.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	data := h.buildList(w, r)
	templates.Render(w, r, "blogs_list", data)
}

// ServeTable handles GET /blogs/table.
func (h *Handler) ServeTable(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	data := h.buildList(w, r)
	templates.RenderSnippet(w, "blogs_table", data)
}

func (h *Handler) buildList(w http.ResponseWriter, r *http.Request) listData {
	q := table.ParseQuery(r, tableSpec())

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "blogs list")
	defer cancel()

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Blog", "/dashboard"),
		Search:     q.Text("search"),
		HasFilters: q.HasFilters(),
		DebounceMS: int(table.DefaultDebounce / time.Millisecond),
		Flash:      query.Get(r, "msg"),
	}

	if err := h.loader.Load(ctx, allEnvelope()); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			h.ErrLog.HandleAPIError(w, r, err, basePath)
			return data
		}
		h.Log.Error("failed to fetch blog posts", zap.Error(err))
	}

	rows, _, state, _ := h.loader.Snapshot()
	if state == table.Failed {
		data.FetchError = "Could not refresh blog posts from the platform."
		data.RetryURL = basePath + "?" + q.EncodeString()
	}

	cp := make([]models.Blog, len(rows))
	copy(cp, rows)
	visible := engine().Apply(cp, q)

	data.Blogs = make([]blogRow, 0, len(visible))
	for _, b := range visible {
		data.Blogs = append(data.Blogs, blogRow{Blog: b, Preview: preview(b.Content)})
	}
	data.Pager = paging.Build(basePath, q)
	return data
}

// preview strips the post content down to safe markup and truncates
// the plain-text form for the row.
func preview(content string) template.HTML {
	text := htmlsanitize.Sanitize(content)
	// Row previews want text, not layout: drop the tags the policy
	// kept and collapse whitespace.
	text = strings.Join(strings.Fields(stripTags(text)), " ")
	if runes := []rune(text); len(runes) > previewLength {
		text = string(runes[:previewLength]) + "…"
	}
	return htmlsanitize.PrepareForDisplay(text)
}

// stripTags removes markup from already-sanitized HTML.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HandleDelete handles POST /blogs/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid delete form", err, "The submitted form could not be read.", basePath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "blog delete")
	defer cancel()

	if err := h.API.Delete(ctx, "/api/blogs/"+id, auth.Token(r)); err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("blog post deleted", zap.String("blog_id", id))

	env, err := url.ParseQuery(r.FormValue("return"))
	if err != nil {
		env = url.Values{}
	}
	env.Set("msg", "Post deleted.")
	http.Redirect(w, r, basePath+"?"+env.Encode(), http.StatusSeeOther)
}
