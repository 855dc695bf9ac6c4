// internal/handlers/product.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/certview/internal/models"
	"github.com/javajoker/certview/internal/services"
	"github.com/javajoker/certview/internal/utils"
	"github.com/javajoker/certview/internal/views"
)

type ProductHandler struct {
	resolver     services.Resolver
	delivery     services.DocumentDelivery
	renderer     *views.Renderer
	site         views.Site
	loadingDelay time.Duration
	logger       *logrus.Logger
}

func NewProductHandler(
	resolver services.Resolver,
	delivery services.DocumentDelivery,
	renderer *views.Renderer,
	site views.Site,
	loadingDelay time.Duration,
	logger *logrus.Logger,
) *ProductHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ProductHandler{
		resolver:     resolver,
		delivery:     delivery,
		renderer:     renderer,
		site:         site,
		loadingDelay: loadingDelay,
		logger:       logger,
	}
}

// GET /products/:publicId
func (h *ProductHandler) ShowProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	page := views.NewPage(lang, h.site)

	tracker := services.NewResolutionTracker(h.resolver)
	defer tracker.Close()
	tracker.Track(c.Request.Context(), c.Param("publicId"))

	res, streamed, err := h.await(c, tracker, page)
	if err != nil {
		// The visitor went away before the lookup settled.
		h.logger.WithError(err).WithField("request_id", utils.GetRequestIDFromContext(c)).Debug("Product page abandoned")
		return
	}

	name, status := h.fillPage(page, res, c.Query("document"))

	if streamed {
		if err := h.renderer.RenderRemainder(c.Writer, name, page); err != nil {
			h.logger.WithError(err).Error("Failed to render product page")
		}
		return
	}

	c.HTML(status, name, page)
}

// await waits for the tracker to settle. When the lookup outlasts the loading
// delay the page head and loading indicator are flushed first and streamed
// is true; the status is then fixed at 200.
func (h *ProductHandler) await(c *gin.Context, tracker *services.ResolutionTracker, page *views.Page) (services.Resolution, bool, error) {
	ctx := c.Request.Context()

	if h.loadingDelay <= 0 {
		res, err := tracker.Wait(ctx)
		return res, false, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, h.loadingDelay)
	res, err := tracker.Wait(waitCtx)
	cancel()
	if err == nil || ctx.Err() != nil || !errors.Is(err, context.DeadlineExceeded) {
		return res, false, err
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.renderer.RenderLoading(c.Writer, page); err != nil {
		return res, true, err
	}
	c.Writer.Flush()

	res, err = tracker.Wait(ctx)
	return res, true, err
}

// fillPage maps a settled resolution onto the page and returns the template
// name and HTTP status to render it with.
func (h *ProductHandler) fillPage(page *views.Page, res services.Resolution, document string) (string, int) {
	switch res.State {
	case services.StateFound:
		view := views.NewProductView(res.Product, page.Lang)
		if document != "" {
			if kind, err := models.ParseDocumentKind(document); err == nil {
				view.OpenDocument(kind)
			}
		}
		page.Title = res.Product.Name
		page.Product = view
		return views.TemplateProduct, http.StatusOK

	case services.StateNotFound:
		return h.errorPage(page, views.NotFoundError(page.Lang), http.StatusNotFound)

	default:
		if errors.Is(res.Err, services.ErrMissingIdentifier) {
			return h.errorPage(page, views.NotFoundError(page.Lang), http.StatusNotFound)
		}
		return h.errorPage(page, views.LoadFailedError(page.Lang), http.StatusServiceUnavailable)
	}
}

func (h *ProductHandler) errorPage(page *views.Page, view *views.ErrorView, status int) (string, int) {
	page.Title = view.Heading
	page.Error = view
	return views.TemplateError, status
}

func (h *ProductHandler) renderError(c *gin.Context, view *views.ErrorView, status int) {
	page := views.NewPage(utils.GetLangFromContext(c), h.site)
	name, status := h.errorPage(page, view, status)
	c.HTML(status, name, page)
}

// NotFound renders the not-found page for paths no route matches.
func (h *ProductHandler) NotFound(c *gin.Context) {
	h.renderError(c, views.NotFoundError(utils.GetLangFromContext(c)), http.StatusNotFound)
}

// resolveDocument loads the product and the URL of the requested document. On
// failure the matching error page has already been written.
func (h *ProductHandler) resolveDocument(c *gin.Context) (*models.PublicProduct, models.DocumentKind, string, bool) {
	lang := utils.GetLangFromContext(c)

	kind, err := models.ParseDocumentKind(c.Param("kind"))
	if err != nil {
		h.renderError(c, views.DocumentNotFoundError(lang), http.StatusNotFound)
		return nil, 0, "", false
	}

	product, ok := h.resolveProduct(c)
	if !ok {
		return nil, 0, "", false
	}

	documentURL, err := issuedDocumentURL(product, kind)
	if err != nil {
		h.renderError(c, views.DocumentNotFoundError(lang), http.StatusNotFound)
		return nil, 0, "", false
	}

	return product, kind, documentURL, true
}

func (h *ProductHandler) resolveProduct(c *gin.Context) (*models.PublicProduct, bool) {
	page := views.NewPage(utils.GetLangFromContext(c), h.site)
	res := h.resolver.Resolve(c.Request.Context(), c.Param("publicId"))
	if res.State == services.StateFound {
		return res.Product, true
	}

	name, status := h.fillPage(page, res, "")
	c.HTML(status, name, page)
	return nil, false
}

func issuedDocumentURL(product *models.PublicProduct, kind models.DocumentKind) (string, error) {
	u := product.DocumentURL(kind)
	if u == nil {
		return "", services.ErrDocumentUnavailable
	}
	return *u, nil
}

// GET /products/:publicId/documents/:kind/download
func (h *ProductHandler) DownloadDocument(c *gin.Context) {
	product, kind, documentURL, ok := h.resolveDocument(c)
	if !ok {
		return
	}

	lang := utils.GetLangFromContext(c)
	filename := views.DownloadFilename(views.DocumentLabel(lang, kind), product.Name)

	err := h.delivery.Download(c.Request.Context(), c.Writer, c.Request, documentURL, filename)
	if err == nil {
		return
	}

	entry := h.logger.WithError(err).WithFields(logrus.Fields{
		"public_id":  product.PublicID,
		"kind":       kind.String(),
		"request_id": utils.GetRequestIDFromContext(c),
	})

	if errors.Is(err, services.ErrDocumentFetchFailed) && !c.Writer.Written() {
		// Let the browser fetch the document itself.
		entry.Warn("Document download degraded to redirect")
		h.delivery.OpenExternal(c.Writer, c.Request, documentURL)
		return
	}

	entry.Error("Document download failed")
}

// GET /products/:publicId/documents/:kind/open
func (h *ProductHandler) OpenDocument(c *gin.Context) {
	_, _, documentURL, ok := h.resolveDocument(c)
	if !ok {
		return
	}

	h.delivery.OpenExternal(c.Writer, c.Request, documentURL)
}

// GET /products/:publicId/qr
func (h *ProductHandler) OpenQRCode(c *gin.Context) {
	product, ok := h.resolveProduct(c)
	if !ok {
		return
	}

	if !product.HasQRCode() {
		h.renderError(c, views.NotFoundError(utils.GetLangFromContext(c)), http.StatusNotFound)
		return
	}

	h.delivery.OpenExternal(c.Writer, c.Request, *product.QRCodeURL)
}
