// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Site
	KeySiteTagline      = "site.tagline"
	KeyFooterVerified   = "footer.verified_notice"
	KeyFooterCopyright  = "footer.copyright"
	KeyHomeTitle        = "home.title"
	KeyHomeIntro        = "home.intro"
	KeyHomeInputLabel   = "home.input_label"
	KeyHomeSubmit       = "home.submit"
	KeyActionGoHome     = "action.go_home"
	KeyActionView       = "action.view"
	KeyActionDownload   = "action.download"
	KeyActionOpenNewTab = "action.open_new_tab"
	KeyActionClose      = "action.close"
	KeyLoading          = "page.loading"

	// Products
	KeyProductNotFound          = "product.not_found"
	KeyProductNotFoundDetail    = "product.not_found_detail"
	KeyProductLoadFailed        = "product.load_failed"
	KeyProductLoadFailedDetail  = "product.load_failed_detail"
	KeyProductManufacturer      = "product.manufacturer"
	KeyProductCertificationDate = "product.certification_date"
	KeyProductVerifiedOn        = "product.verified_on"
	KeyProductPublicID          = "product.public_id"
	KeyProductQRCode            = "product.qr_code"
	KeyProductQRCodeHint        = "product.qr_code_hint"

	// Documents
	KeyDocumentsHeading         = "document.heading"
	KeyDocumentDeclarationLabel = "document.declaration.label"
	KeyDocumentCertificateLabel = "document.certificate.label"
	KeyDocumentDeclarationHint  = "document.declaration.description"
	KeyDocumentCertificateHint  = "document.certificate.description"
	KeyDocumentAvailable        = "document.available"
	KeyDocumentUnavailable      = "document.unavailable"
	KeyDocumentUnavailableHint  = "document.unavailable_hint"
	KeyDocumentNotFound         = "document.not_found"
	KeyDocumentRenderFallback   = "document.render_fallback"

	// Errors
	KeyRateLimited = "error.rate_limited"
)
