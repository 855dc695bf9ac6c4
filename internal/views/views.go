// internal/views/views.go
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/javajoker/certview/internal/i18n"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Page templates. Each has a "<name>_body" counterpart used when streaming.
const (
	TemplateHome    = "home"
	TemplateProduct = "product"
	TemplateError   = "error"
)

type Site struct {
	Name    string
	HomeURL string
}

// Page is the data every page template is executed with. Exactly one of
// Home, Error and Product is set.
type Page struct {
	Lang  string
	Title string
	Site  Site
	Year  int

	Home    *HomeView
	Error   *ErrorView
	Product *ProductView
}

func NewPage(lang string, site Site) *Page {
	return &Page{
		Lang:  lang,
		Title: i18n.T(lang, i18n.KeySiteTagline),
		Site:  site,
		Year:  time.Now().Year(),
	}
}

type HomeView struct {
	PublicID string
}

// ErrorView is the body of an error page. Reason is a stable machine-readable tag.
type ErrorView struct {
	Reason  string
	Heading string
	Detail  string
}

func NotFoundError(lang string) *ErrorView {
	return &ErrorView{
		Reason:  "not_found",
		Heading: i18n.T(lang, i18n.KeyProductNotFound),
		Detail:  i18n.T(lang, i18n.KeyProductNotFoundDetail),
	}
}

func LoadFailedError(lang string) *ErrorView {
	return &ErrorView{
		Reason:  "load_failed",
		Heading: i18n.T(lang, i18n.KeyProductLoadFailed),
		Detail:  i18n.T(lang, i18n.KeyProductLoadFailedDetail),
	}
}

func DocumentNotFoundError(lang string) *ErrorView {
	return &ErrorView{
		Reason:  "document_not_found",
		Heading: i18n.T(lang, i18n.KeyDocumentNotFound),
		Detail:  i18n.T(lang, i18n.KeyDocumentUnavailableHint),
	}
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"t":        i18n.T,
		"htmlLang": func(lang string) string { return strings.ReplaceAll(lang, "_", "-") },
	}
}

// Parse loads the embedded templates.
func Parse() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := Parse()
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Template exposes the parsed set for gin's HTML renderer.
func (r *Renderer) Template() *template.Template {
	return r.tmpl
}

func (r *Renderer) Render(w io.Writer, name string, page *Page) error {
	return r.tmpl.ExecuteTemplate(w, name, page)
}

// RenderLoading writes the document head and the loading indicator. The page
// must be completed with RenderRemainder.
func (r *Renderer) RenderLoading(w io.Writer, page *Page) error {
	for _, name := range []string{"head", "loading"} {
		if err := r.tmpl.ExecuteTemplate(w, name, page); err != nil {
			return err
		}
	}
	return nil
}

// RenderRemainder hides the loading indicator and writes the body of the
// named page followed by the footer.
func (r *Renderer) RenderRemainder(w io.Writer, name string, page *Page) error {
	for _, part := range []string{"loaded", name + "_body", "foot"} {
		if err := r.tmpl.ExecuteTemplate(w, part, page); err != nil {
			return err
		}
	}
	return nil
}
