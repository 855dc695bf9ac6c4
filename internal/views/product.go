// internal/views/product.go
package views

import (
	"net/url"

	"github.com/javajoker/certview/internal/i18n"
	"github.com/javajoker/certview/internal/models"
)

func ProductPath(publicID string) string {
	return "/products/" + url.PathEscape(publicID)
}

// DocumentPath is the endpoint performing action ("download" or "open") on a document.
func DocumentPath(publicID string, kind models.DocumentKind, action string) string {
	return ProductPath(publicID) + "/documents/" + kind.String() + "/" + action
}

func QRPath(publicID string) string {
	return ProductPath(publicID) + "/qr"
}

// DocumentCard is one entry of the documents section.
type DocumentCard struct {
	Kind         models.DocumentKind
	Label        string
	Description  string
	Accent       string
	Available    bool
	ViewHref     string
	DownloadHref string
	Filename     string
}

// DocumentViewer is the page-local state of the document modal. At most one
// document is targeted at a time.
type DocumentViewer struct {
	IsOpen bool
	Kind   models.DocumentKind
	URL    string
	Title  string
}

// Open replaces the current target as a whole.
func (v *DocumentViewer) Open(kind models.DocumentKind, documentURL, title string) {
	*v = DocumentViewer{
		IsOpen: true,
		Kind:   kind,
		URL:    documentURL,
		Title:  title,
	}
}

func (v *DocumentViewer) Close() {
	*v = DocumentViewer{}
}

// ModalView is what the document modal renders.
type ModalView struct {
	Kind         models.DocumentKind
	Title        string
	ProductName  string
	DocumentURL  string
	Accent       string
	Filename     string
	DownloadHref string
	OpenHref     string
	CloseHref    string
}

// ProductView is the found-state model of the product page.
type ProductView struct {
	Record            *models.PublicProduct
	Lang              string
	Href              string
	CertificationDate string
	VerifiedOn        string
	QRCodeURL         string
	QRHref            string
	Cards             []DocumentCard
	Viewer            DocumentViewer
}

func NewProductView(record *models.PublicProduct, lang string) *ProductView {
	v := &ProductView{
		Record:            record,
		Lang:              lang,
		Href:              ProductPath(record.PublicID),
		CertificationDate: FormatDate(record.CertificationDate, lang),
		VerifiedOn:        i18n.T(lang, i18n.KeyProductVerifiedOn, FormatDate(record.VerifiedAt, lang)),
	}

	if record.HasQRCode() {
		v.QRCodeURL = *record.QRCodeURL
		v.QRHref = QRPath(record.PublicID)
	}

	for _, kind := range models.DocumentKinds {
		v.Cards = append(v.Cards, v.card(kind))
	}

	return v
}

func (v *ProductView) card(kind models.DocumentKind) DocumentCard {
	label := DocumentLabel(v.Lang, kind)
	card := DocumentCard{
		Kind:        kind,
		Label:       label,
		Description: i18n.T(v.Lang, descriptionKey(kind)),
		Accent:      Accent(kind),
	}

	if v.Record.DocumentURL(kind) == nil {
		return card
	}

	card.Available = true
	card.ViewHref = v.Href + "?document=" + kind.String()
	card.DownloadHref = DocumentPath(v.Record.PublicID, kind, "download")
	card.Filename = DownloadFilename(label, v.Record.Name)
	return card
}

// AvailableCount is the number of documents that have been issued.
func (v *ProductView) AvailableCount() int {
	n := 0
	for _, card := range v.Cards {
		if card.Available {
			n++
		}
	}
	return n
}

// OpenDocument targets the modal at the document of the given kind. It reports
// false and leaves the viewer untouched when that document was not issued.
func (v *ProductView) OpenDocument(kind models.DocumentKind) bool {
	documentURL := v.Record.DocumentURL(kind)
	if documentURL == nil {
		return false
	}

	v.Viewer.Open(kind, *documentURL, DocumentLabel(v.Lang, kind))
	return true
}

func (v *ProductView) CloseDocument() {
	v.Viewer.Close()
}

// Modal returns nil while the viewer is closed.
func (v *ProductView) Modal() *ModalView {
	if !v.Viewer.IsOpen {
		return nil
	}

	kind := v.Viewer.Kind
	return &ModalView{
		Kind:         kind,
		Title:        v.Viewer.Title,
		ProductName:  v.Record.Name,
		DocumentURL:  v.Viewer.URL,
		Accent:       Accent(kind),
		Filename:     DownloadFilename(v.Viewer.Title, v.Record.Name),
		DownloadHref: DocumentPath(v.Record.PublicID, kind, "download"),
		OpenHref:     DocumentPath(v.Record.PublicID, kind, "open"),
		CloseHref:    v.Href,
	}
}
