package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieManager sets and clears the session cookie. The cookie only ever
// carries the opaque session token; session content lives server-side.
type CookieManager struct {
	Name   string
	Domain string
	Secure bool
}

func NewCookie(name, domain string, secure bool) *CookieManager {
	return &CookieManager{Name: name, Domain: domain, Secure: secure}
}

// Set writes the session cookie with the inactivity window as its max age.
// HttpOnly always; SameSite=Lax to keep cross-site POSTs out.
func (m *CookieManager) Set(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.Name, token, int(ttl.Seconds()), "/", m.Domain, m.Secure, true)
}

// Clear expires the session cookie on the client.
func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.Name, "", -1, "/", m.Domain, m.Secure, true)
}
