// internal/handlers/home.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/certview/internal/utils"
	"github.com/javajoker/certview/internal/views"
)

type HomeHandler struct {
	site views.Site
}

func NewHomeHandler(site views.Site) *HomeHandler {
	return &HomeHandler{site: site}
}

// GET /
func (h *HomeHandler) Home(c *gin.Context) {
	page := views.NewPage(utils.GetLangFromContext(c), h.site)
	page.Home = &views.HomeView{}
	c.HTML(http.StatusOK, views.TemplateHome, page)
}

// GET /lookup?public_id=
func (h *HomeHandler) Lookup(c *gin.Context) {
	publicID := strings.TrimSpace(c.Query("public_id"))
	if publicID == "" {
		c.Redirect(http.StatusSeeOther, h.site.HomeURL)
		return
	}

	// Anything outside the identifier alphabet could be decoded into another
	// route, so it never leaves this handler.
	if !utils.IsValidPublicID(publicID) {
		page := views.NewPage(utils.GetLangFromContext(c), h.site)
		page.Error = views.NotFoundError(page.Lang)
		page.Title = page.Error.Heading
		c.HTML(http.StatusNotFound, views.TemplateError, page)
		return
	}

	c.Redirect(http.StatusSeeOther, views.ProductPath(publicID))
}
