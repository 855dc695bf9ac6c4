// internal/handlers/verification.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/certview/internal/i18n"
	"github.com/javajoker/certview/internal/models"
	"github.com/javajoker/certview/internal/services"
	"github.com/javajoker/certview/internal/utils"
	"github.com/javajoker/certview/internal/views"
)

type VerificationHandler struct {
	resolver services.Resolver
}

func NewVerificationHandler(resolver services.Resolver) *VerificationHandler {
	return &VerificationHandler{
		resolver: resolver,
	}
}

type DocumentLinks struct {
	Label    string `json:"label"`
	Filename string `json:"filename"`
	Download string `json:"download"`
	Open     string `json:"open"`
}

type ProductLinks struct {
	Page      string                   `json:"page"`
	QRCode    string                   `json:"qr_code,omitempty"`
	Documents map[string]DocumentLinks `json:"documents"`
}

type PublicProductResponse struct {
	*models.PublicProduct
	Links ProductLinks `json:"links"`
}

func newPublicProductResponse(product *models.PublicProduct, lang string) PublicProductResponse {
	links := ProductLinks{
		Page:      views.ProductPath(product.PublicID),
		Documents: make(map[string]DocumentLinks),
	}
	if product.HasQRCode() {
		links.QRCode = views.QRPath(product.PublicID)
	}

	for _, kind := range models.DocumentKinds {
		if product.DocumentURL(kind) == nil {
			continue
		}
		label := views.DocumentLabel(lang, kind)
		links.Documents[kind.String()] = DocumentLinks{
			Label:    label,
			Filename: views.DownloadFilename(label, product.Name),
			Download: views.DocumentPath(product.PublicID, kind, "download"),
			Open:     views.DocumentPath(product.PublicID, kind, "open"),
		}
	}

	return PublicProductResponse{PublicProduct: product, Links: links}
}

// GET /v1/public/products/:publicId
func (h *VerificationHandler) GetPublicProduct(c *gin.Context) {
	res := h.resolver.Resolve(c.Request.Context(), c.Param("publicId"))

	switch {
	case res.State == services.StateFound:
		utils.SuccessResponse(c, newPublicProductResponse(res.Product, utils.GetLangFromContext(c)))
	case res.State == services.StateNotFound, errors.Is(res.Err, services.ErrMissingIdentifier):
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
	default:
		utils.ServiceUnavailableResponse(c, i18n.KeyProductLoadFailed)
	}
}
