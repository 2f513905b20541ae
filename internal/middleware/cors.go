package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// wildcardOrigin matches a single subdomain label, e.g. https://*.example.com
type wildcardOrigin struct {
	scheme string // "https://"
	suffix string // ".example.com"
}

// parseWildcardOrigin returns nil unless pattern is scheme://*.domain.tld
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	idx := strings.Index(pattern, "://")
	if idx < 0 {
		return nil
	}
	scheme := pattern[:idx+3]
	host := pattern[idx+3:]

	if !strings.HasPrefix(host, "*.") || strings.Count(host, "*") != 1 {
		return nil
	}
	suffix := host[1:]
	// Reject *.com and similar
	if !strings.Contains(suffix[1:], ".") {
		return nil
	}

	return &wildcardOrigin{scheme: scheme, suffix: suffix}
}

func (w *wildcardOrigin) matches(origin string) bool {
	if !strings.HasPrefix(origin, w.scheme) {
		return false
	}
	host := origin[len(w.scheme):]
	if !strings.HasSuffix(host, w.suffix) {
		return false
	}
	label := host[:len(host)-len(w.suffix)]
	return label != "" && !strings.Contains(label, ".")
}

// CORS middleware to handle cross-origin requests.
// An empty allowedOrigins list allows every origin with "*".
// Entries may be exact origins or single-label wildcards like https://*.example.com.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0

	exact := make(map[string]bool)
	var wildcards []*wildcardOrigin
	for _, origin := range allowedOrigins {
		if w := parseWildcardOrigin(origin); w != nil {
			wildcards = append(wildcards, w)
			continue
		}
		exact[origin] = true
	}

	isAllowed := func(origin string) bool {
		if exact[origin] {
			return true
		}
		for _, w := range wildcards {
			if w.matches(origin) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin != "" && isAllowed(origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		} else if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, Cache-Control, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
