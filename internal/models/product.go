// internal/models/product.go
package models

import (
	"time"
)

// CertifiedProduct is the full registry row. Only the columns mirrored by
// PublicProduct are ever readable by anonymous visitors.
type CertifiedProduct struct {
	BaseModel
	PublicID               string        `json:"public_id" gorm:"size:64;not null;uniqueIndex"`
	Name                   string        `json:"name" gorm:"size:255;not null"`
	Manufacturer           string        `json:"manufacturer" gorm:"size:255;not null"`
	CertificationDate      time.Time     `json:"certification_date" gorm:"type:date;not null"`
	QRCodeURL              *string       `json:"qr_code_url" gorm:"type:text"`
	DeclarationDocumentURL *string       `json:"declaration_document_url" gorm:"type:text"`
	CertificateDocumentURL *string       `json:"certificate_document_url" gorm:"type:text"`
	VerifiedAt             time.Time     `json:"verified_at" gorm:"not null"`
	Status                 ProductStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`

	// Administrative fields, never projected into the public view
	InternalNotes    string `json:"internal_notes,omitempty" gorm:"type:text"`
	ReviewerEmail    string `json:"reviewer_email,omitempty" gorm:"size:255"`
	InternalMetadata JSONB  `json:"internal_metadata,omitempty" gorm:"type:jsonb"`
}

// PublicProduct is the read-only projection served by the public view.
type PublicProduct struct {
	PublicID               string    `json:"public_id" gorm:"column:public_id" validate:"required,public_id"`
	Name                   string    `json:"name" gorm:"column:name" validate:"required"`
	Manufacturer           string    `json:"manufacturer" gorm:"column:manufacturer" validate:"required"`
	CertificationDate      time.Time `json:"certification_date" gorm:"column:certification_date" validate:"required"`
	QRCodeURL              *string   `json:"qr_code_url" gorm:"column:qr_code_url" validate:"omitnil,url"`
	DeclarationDocumentURL *string   `json:"declaration_document_url" gorm:"column:declaration_document_url" validate:"omitnil,url"`
	CertificateDocumentURL *string   `json:"certificate_document_url" gorm:"column:certificate_document_url" validate:"omitnil,url"`
	VerifiedAt             time.Time `json:"verified_at" gorm:"column:verified_at" validate:"required"`
}

// PublicColumns lists the columns copied from CertifiedProduct into the public view.
var PublicColumns = []string{
	"public_id",
	"name",
	"manufacturer",
	"certification_date",
	"qr_code_url",
	"declaration_document_url",
	"certificate_document_url",
	"verified_at",
}

// DocumentURL returns the URL of the document of the given kind, or nil when
// that document has not been issued.
func (p *PublicProduct) DocumentURL(kind DocumentKind) *string {
	switch kind {
	case DocumentKindDeclaration:
		return p.DeclarationDocumentURL
	case DocumentKindCertificate:
		return p.CertificateDocumentURL
	default:
		panic(unknownKind(kind))
	}
}

func (p *PublicProduct) HasQRCode() bool {
	return p.QRCodeURL != nil
}
