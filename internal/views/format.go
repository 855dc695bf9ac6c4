// internal/views/format.go
package views

import (
	"fmt"
	"time"

	"github.com/javajoker/certview/internal/i18n"
	"github.com/javajoker/certview/internal/models"
)

var dateLayouts = map[string]string{
	"en":    "January 2, 2006",
	"zh_TW": "2006年1月2日",
}

// FormatDate renders a calendar date in the reader's language. Dates are
// formatted in UTC so a DATE column never shifts by a day.
func FormatDate(t time.Time, lang string) string {
	layout, ok := dateLayouts[lang]
	if !ok {
		layout = dateLayouts[i18n.DefaultLanguage]
	}
	return t.UTC().Format(layout)
}

// DownloadFilename is the name a downloaded document is saved under.
func DownloadFilename(label, productName string) string {
	return fmt.Sprintf("%s_%s.pdf", label, productName)
}

// Accent is the colour group used for a document kind.
func Accent(kind models.DocumentKind) string {
	switch kind {
	case models.DocumentKindDeclaration:
		return "emerald"
	case models.DocumentKindCertificate:
		return "indigo"
	default:
		panic(fmt.Sprintf("views: no accent for document kind %d", uint8(kind)))
	}
}

func LabelKey(kind models.DocumentKind) string {
	switch kind {
	case models.DocumentKindDeclaration:
		return i18n.KeyDocumentDeclarationLabel
	case models.DocumentKindCertificate:
		return i18n.KeyDocumentCertificateLabel
	default:
		panic(fmt.Sprintf("views: no label for document kind %d", uint8(kind)))
	}
}

func descriptionKey(kind models.DocumentKind) string {
	switch kind {
	case models.DocumentKindDeclaration:
		return i18n.KeyDocumentDeclarationHint
	case models.DocumentKindCertificate:
		return i18n.KeyDocumentCertificateHint
	default:
		panic(fmt.Sprintf("views: no description for document kind %d", uint8(kind)))
	}
}

// DocumentLabel is the translated display label of a document kind.
func DocumentLabel(lang string, kind models.DocumentKind) string {
	return i18n.T(lang, LabelKey(kind))
}
