package views

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/certview/internal/i18n"
	"github.com/javajoker/certview/internal/models"
)

func TestMain(m *testing.M) {
	if err := i18n.Initialize(i18n.DefaultLanguage); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var testSite = Site{Name: "Certified Product Registry", HomeURL: "/"}

func record(declaration, certificate, qr *string) *models.PublicProduct {
	return &models.PublicProduct{
		PublicID:               "PRD-1",
		Name:                   "Widget",
		Manufacturer:           "Acme Industries",
		CertificationDate:      time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		QRCodeURL:              qr,
		DeclarationDocumentURL: declaration,
		CertificateDocumentURL: certificate,
		VerifiedAt:             time.Date(2024, 3, 20, 9, 30, 0, 0, time.UTC),
	}
}

var (
	declarationURL = models.StringPtr("https://docs.example.com/PRD-1/declaration.pdf")
	certificateURL = models.StringPtr("https://docs.example.com/PRD-1/certificate.pdf")
	qrURL          = models.StringPtr("https://docs.example.com/PRD-1/qr.png")
)

func render(t *testing.T, name string, page *Page) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, page))
	return buf.String()
}

func productPage(view *ProductView) *Page {
	page := NewPage(view.Lang, testSite)
	page.Title = view.Record.Name
	page.Product = view
	return page
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "March 14, 2024", FormatDate(date, "en"))
	assert.Equal(t, "2024年3月14日", FormatDate(date, "zh_TW"))
	assert.Equal(t, "March 14, 2024", FormatDate(date, "fr"))
}

func TestDownloadFilename(t *testing.T) {
	assert.Equal(t, "Product Certificate_Widget.pdf", DownloadFilename("Product Certificate", "Widget"))
	assert.Equal(t, "Declaration of Conformity_Solar Panel X2.pdf",
		DownloadFilename("Declaration of Conformity", "Solar Panel X2"))
}

func TestKindLookupsPanicOnUnknownKind(t *testing.T) {
	assert.Equal(t, "emerald", Accent(models.DocumentKindDeclaration))
	assert.Equal(t, "indigo", Accent(models.DocumentKindCertificate))
	assert.Panics(t, func() { Accent(models.DocumentKind(9)) })
	assert.Panics(t, func() { LabelKey(models.DocumentKind(0)) })
}

func TestProductViewCards(t *testing.T) {
	tests := []struct {
		name      string
		product   *models.PublicProduct
		available int
	}{
		{"no documents", record(nil, nil, nil), 0},
		{"declaration only", record(declarationURL, nil, nil), 1},
		{"certificate only", record(nil, certificateURL, nil), 1},
		{"both documents", record(declarationURL, certificateURL, nil), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewProductView(tt.product, "en")
			require.Len(t, view.Cards, 2)
			assert.Equal(t, tt.available, view.AvailableCount())
			for _, card := range view.Cards {
				if card.Available {
					assert.NotEmpty(t, card.ViewHref)
					assert.Equal(t, DownloadFilename(card.Label, "Widget"), card.Filename)
				} else {
					assert.Empty(t, card.ViewHref)
					assert.Empty(t, card.DownloadHref)
				}
			}
		})
	}
}

func TestProductViewCardOrderAndLabels(t *testing.T) {
	view := NewProductView(record(declarationURL, certificateURL, nil), "en")

	assert.Equal(t, models.DocumentKindDeclaration, view.Cards[0].Kind)
	assert.Equal(t, "Declaration of Conformity", view.Cards[0].Label)
	assert.Equal(t, "/products/PRD-1?document=declaration", view.Cards[0].ViewHref)
	assert.Equal(t, "/products/PRD-1/documents/declaration/download", view.Cards[0].DownloadHref)

	assert.Equal(t, models.DocumentKindCertificate, view.Cards[1].Kind)
	assert.Equal(t, "Product Certificate_Widget.pdf", view.Cards[1].Filename)
}

func TestOpenDocumentReplacesTarget(t *testing.T) {
	view := NewProductView(record(declarationURL, certificateURL, nil), "en")
	assert.Nil(t, view.Modal())

	require.True(t, view.OpenDocument(models.DocumentKindDeclaration))
	modal := view.Modal()
	require.NotNil(t, modal)
	assert.Equal(t, models.DocumentKindDeclaration, modal.Kind)
	assert.Equal(t, "Declaration of Conformity", modal.Title)
	assert.Equal(t, *declarationURL, modal.DocumentURL)

	require.True(t, view.OpenDocument(models.DocumentKindCertificate))
	modal = view.Modal()
	require.NotNil(t, modal)
	assert.Equal(t, models.DocumentKindCertificate, modal.Kind)
	assert.Equal(t, "Product Certificate", modal.Title)
	assert.Equal(t, *certificateURL, modal.DocumentURL)
	assert.Equal(t, "indigo", modal.Accent)

	// Reopening the declaration after the certificate gives the same target as opening it first.
	require.True(t, view.OpenDocument(models.DocumentKindDeclaration))
	assert.Equal(t, DocumentViewer{
		IsOpen: true,
		Kind:   models.DocumentKindDeclaration,
		URL:    *declarationURL,
		Title:  "Declaration of Conformity",
	}, view.Viewer)
}

func TestOpenUnavailableDocumentLeavesViewer(t *testing.T) {
	view := NewProductView(record(declarationURL, nil, nil), "en")
	require.True(t, view.OpenDocument(models.DocumentKindDeclaration))

	assert.False(t, view.OpenDocument(models.DocumentKindCertificate))
	assert.Equal(t, models.DocumentKindDeclaration, view.Modal().Kind)
}

func TestCloseDocument(t *testing.T) {
	for _, kind := range models.DocumentKinds {
		view := NewProductView(record(declarationURL, certificateURL, nil), "en")
		require.True(t, view.OpenDocument(kind))
		view.CloseDocument()

		assert.Nil(t, view.Modal())
		assert.Equal(t, DocumentViewer{}, view.Viewer)
	}
}

func TestModalFilenameUsesTitle(t *testing.T) {
	view := NewProductView(record(declarationURL, certificateURL, nil), "zh_TW")
	require.True(t, view.OpenDocument(models.DocumentKindCertificate))

	modal := view.Modal()
	assert.Equal(t, "產品證書_Widget.pdf", modal.Filename)
	assert.Equal(t, view.Cards[1].Filename, modal.Filename)
	assert.Equal(t, "/products/PRD-1/documents/certificate/open", modal.OpenHref)
	assert.Equal(t, "/products/PRD-1", modal.CloseHref)
}

func TestProductPathEscapesIdentifier(t *testing.T) {
	assert.Equal(t, "/products/a%2Fb", ProductPath("a/b"))
	assert.Equal(t, "/products/PRD-1/qr", QRPath("PRD-1"))
}

func TestRenderProductPage(t *testing.T) {
	view := NewProductView(record(declarationURL, nil, nil), "en")
	html := render(t, TemplateProduct, productPage(view))

	assert.Contains(t, html, "<h1>Widget</h1>")
	assert.Contains(t, html, "Acme Industries")
	assert.Contains(t, html, "March 14, 2024")
	assert.Contains(t, html, "Verified on March 20, 2024")
	assert.Equal(t, 1, strings.Count(html, `class="badge">Available<`))
	assert.Contains(t, html, `download="Declaration of Conformity_Widget.pdf"`)
	assert.Contains(t, html, "This document has not been issued for this product.")
	assert.NotContains(t, html, `role="dialog"`)
	assert.NotContains(t, html, "<object")
	assert.NotContains(t, html, `id="product-qr"`)
	assert.Contains(t, html, fmt.Sprintf("© %d Certified Product Registry", time.Now().Year()))
}

func TestRenderQRCode(t *testing.T) {
	view := NewProductView(record(nil, nil, qrURL), "en")
	html := render(t, TemplateProduct, productPage(view))

	assert.Contains(t, html, `id="product-qr"`)
	assert.Contains(t, html, `src="https://docs.example.com/PRD-1/qr.png"`)
	assert.Contains(t, html, `href="/products/PRD-1/qr" target="_blank" rel="noopener noreferrer"`)
	assert.Contains(t, html, "onerror=")
}

func TestRenderOpenModal(t *testing.T) {
	view := NewProductView(record(declarationURL, certificateURL, nil), "en")
	require.True(t, view.OpenDocument(models.DocumentKindCertificate))
	html := render(t, TemplateProduct, productPage(view))

	assert.Contains(t, html, `role="dialog"`)
	assert.Contains(t, html, `<h2 id="document-modal-title">Product Certificate</h2>`)
	assert.Contains(t, html, `<p class="modal-product">Widget</p>`)
	assert.Contains(t, html, `data="https://docs.example.com/PRD-1/certificate.pdf" type="application/pdf"`)
	assert.Contains(t, html, `href="/products/PRD-1/documents/certificate/open" target="_blank"`)
	assert.Contains(t, html, `href="/products/PRD-1">Close</a>`)
	assert.Contains(t, html, "Your browser cannot display this PDF inline.")
}

func TestRenderErrorPages(t *testing.T) {
	notFound := NewPage("en", testSite)
	notFound.Error = NotFoundError("en")
	failed := NewPage("en", testSite)
	failed.Error = LoadFailedError("en")

	notFoundHTML := render(t, TemplateError, notFound)
	failedHTML := render(t, TemplateError, failed)

	assert.Contains(t, notFoundHTML, "Product not found")
	assert.Contains(t, failedHTML, "Could not load product")
	assert.NotEqual(t, notFound.Error.Heading, failed.Error.Heading)

	for _, html := range []string{notFoundHTML, failedHTML} {
		assert.Equal(t, 1, strings.Count(html, `class="button`))
		assert.Contains(t, html, `href="/">Go to home page</a>`)
		assert.NotContains(t, html, `class="document-card`)
	}
}

func TestRenderHomeKeepsIdentifier(t *testing.T) {
	page := NewPage("zh_TW", testSite)
	page.Home = &HomeView{PublicID: `x"><script>`}
	html := render(t, TemplateHome, page)

	assert.Contains(t, html, `<html lang="zh-TW">`)
	assert.Contains(t, html, "驗證認證產品")
	assert.NotContains(t, html, "<script>")
}

func TestStreamedRender(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	page := NewPage("en", testSite)
	var buf bytes.Buffer
	require.NoError(t, r.RenderLoading(&buf, page))
	head := buf.String()
	assert.Contains(t, head, `id="page-loading"`)
	assert.Contains(t, head, "Loading product information")
	assert.NotContains(t, head, "</html>")

	page.Title = "Widget"
	page.Product = NewProductView(record(declarationURL, certificateURL, nil), "en")
	require.NoError(t, r.RenderRemainder(&buf, TemplateProduct, page))
	html := buf.String()
	assert.Contains(t, html, "#page-loading{display:none}")
	assert.Contains(t, html, `document.title = "Widget | Certified Product Registry";`)
	assert.Contains(t, html, "<h1>Widget</h1>")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(html), "</html>"))
}
