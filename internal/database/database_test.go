package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/certview/internal/models"
	"github.com/javajoker/certview/internal/utils"
)

func TestPublicViewSQL(t *testing.T) {
	ddl := PublicViewSQL("public_products")

	assert.True(t, strings.HasPrefix(ddl, `CREATE OR REPLACE VIEW "public_products" AS SELECT public_id, name,`))
	assert.Contains(t, ddl, "FROM certified_products WHERE status = 'active' AND deleted_at IS NULL")
	for _, column := range models.PublicColumns {
		assert.Contains(t, ddl, column)
	}
	for _, internal := range []string{"internal_notes", "reviewer_email", "internal_metadata", "created_at"} {
		assert.NotContains(t, ddl, internal)
	}
}

func TestPublicViewSQLQuotesName(t *testing.T) {
	ddl := PublicViewSQL(`odd"view`)
	assert.Contains(t, ddl, `VIEW "odd""view" AS`)
}

func TestDemoProducts(t *testing.T) {
	objectURL := func(key string) string { return "https://cdn.example.com/" + key }

	products, err := DemoProducts(objectURL)
	require.NoError(t, err)
	require.Len(t, products, 3)

	seen := map[string]bool{}
	for _, p := range products {
		assert.True(t, utils.IsValidPublicID(p.PublicID))
		assert.False(t, seen[p.PublicID])
		seen[p.PublicID] = true
		assert.Equal(t, models.ProductStatusActive, p.Status)
	}

	full := products[0]
	require.NotNil(t, full.DeclarationDocumentURL)
	require.NotNil(t, full.CertificateDocumentURL)
	require.NotNil(t, full.QRCodeURL)
	assert.Equal(t, "https://cdn.example.com/products/"+full.PublicID+"/certificate.pdf", *full.CertificateDocumentURL)

	assert.NotNil(t, products[1].DeclarationDocumentURL)
	assert.Nil(t, products[1].CertificateDocumentURL)

	assert.Nil(t, products[2].DeclarationDocumentURL)
	assert.Nil(t, products[2].CertificateDocumentURL)
	assert.Nil(t, products[2].QRCodeURL)
}
