// internal/middleware/i18n.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/certview/internal/i18n"
)

const (
	langQueryParam = "lang"
	langCookieName = "lang"
	langCookieTTL  = 365 * 24 * 60 * 60
)

// I18nMiddleware picks the response language: an explicit ?lang= wins and is
// remembered in a cookie, then the cookie, then Accept-Language.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string

		if requested := c.Query(langQueryParam); requested != "" {
			lang = i18n.MatchLanguage(requested)
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(langCookieName, lang, langCookieTTL, "/", "", false, true)
		} else if cookie, err := c.Cookie(langCookieName); err == nil && cookie != "" {
			lang = i18n.MatchLanguage(cookie)
		} else {
			lang = i18n.MatchLanguage(c.GetHeader("Accept-Language"))
		}

		// Set language in context
		c.Set("lang", lang)
		c.Header("Content-Language", langTag(lang))
		c.Next()
	}
}

func langTag(lang string) string {
	if lang == "zh_TW" {
		return "zh-TW"
	}
	return lang
}
