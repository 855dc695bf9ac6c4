// internal/models/document.go
package models

import (
	"errors"
	"fmt"
)

// DocumentKind identifies one of the two documents attached to a product.
type DocumentKind uint8

const (
	DocumentKindDeclaration DocumentKind = iota + 1
	DocumentKindCertificate
)

// DocumentKinds is the display order of document cards.
var DocumentKinds = []DocumentKind{DocumentKindDeclaration, DocumentKindCertificate}

var ErrUnknownDocumentKind = errors.New("unknown document kind")

func ParseDocumentKind(s string) (DocumentKind, error) {
	switch s {
	case "declaration":
		return DocumentKindDeclaration, nil
	case "certificate":
		return DocumentKindCertificate, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDocumentKind, s)
	}
}

func (k DocumentKind) String() string {
	switch k {
	case DocumentKindDeclaration:
		return "declaration"
	case DocumentKindCertificate:
		return "certificate"
	default:
		panic(unknownKind(k))
	}
}

func unknownKind(k DocumentKind) string {
	return fmt.Sprintf("models: unknown document kind %d", uint8(k))
}
