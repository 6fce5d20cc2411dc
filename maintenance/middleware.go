package maintenance

import (
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf16"
)

// Query parameters handled by the middleware.
const (
	paramVerification  = "verification"
	paramReset         = "reset"
	paramResetComplete = "reset-completed"
)

// defaultAllowedPaths are always served, so the page can load its assets.
var defaultAllowedPaths = []string{"/assets", "/favicon", "/logo"}

// Gate decides per request whether a visitor sees the site or the
// maintenance page. Options may be swapped at runtime with SetOptions.
type Gate struct {
	logger   *slog.Logger
	renderer *Renderer
	now      func() time.Time

	mu   sync.RWMutex
	opts Options
}

// NewGate creates a Gate. A nil renderer gets a fresh one; a nil logger
// uses slog.Default().
func NewGate(opts Options, renderer *Renderer, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	if renderer == nil {
		renderer = NewRenderer(logger)
	}
	return &Gate{
		logger:   logger,
		renderer: renderer,
		now:      time.Now,
		opts:     opts,
	}
}

// Options returns the options currently in effect.
func (g *Gate) Options() Options {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.opts
}

// SetOptions replaces the options and drops compiled templates.
func (g *Gate) SetOptions(opts Options) {
	g.mu.Lock()
	g.opts = opts
	g.mu.Unlock()
	g.renderer.Reset()
	g.logger.Info("maintenance options updated",
		slog.Bool("enabled", opts.Enabled))
}

// Middleware wraps next. Its signature matches mux.MiddlewareFunc.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		opts := g.Options()
		if !opts.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		redirectPath := ""
		if IsRedirectPath(opts.Template) {
			redirectPath = opts.Template
		}

		if allowed(r.URL.Path, opts.AllowedPaths, redirectPath) {
			next.ServeHTTP(w, r)
			return
		}

		query := r.URL.Query()

		if query.Has(paramReset) {
			query.Del(paramReset)
			query.Set(paramResetComplete, "true")
			clearCookieAndRedirect(w, r, withQuery(r.URL.Path, query), opts.CookieName)
			return
		}

		if query.Has(paramResetComplete) {
			query.Del(paramResetComplete)
			w.Header().Set("Refresh", "5; url="+withQuery(r.URL.Path, query))
			g.writePage(w, opts)
			return
		}

		if opts.Override != "" && query.Has(opts.Override) {
			query.Del(opts.Override)
			query.Set(paramVerification, VerificationHash(opts.Override, hostname(r)))
			setCookieAndRedirect(w, r, withQuery(r.URL.Path, query), opts)
			return
		}

		if c, err := r.Cookie(opts.CookieName); err == nil && c.Value == "true" {
			next.ServeHTTP(w, r)
			return
		}
		if token := query.Get(paramVerification); token != "" && token == VerificationHash(opts.Override, hostname(r)) {
			next.ServeHTTP(w, r)
			return
		}

		if opts.Countdown != "" {
			if until, ok := parseCountdown(opts.Countdown); ok && !until.After(g.now()) {
				next.ServeHTTP(w, r)
				return
			}
		}

		if redirectPath != "" {
			http.Redirect(w, r, redirectPath, http.StatusFound)
			return
		}

		g.writePage(w, opts)
	})
}

func (g *Gate) writePage(w http.ResponseWriter, opts Options) {
	html := g.renderer.Render(opts)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		g.logger.Debug("failed to write maintenance page", slog.Any("error", err))
	}
}

// allowed reports whether path starts with any always-served prefix.
func allowed(path string, extra []string, redirectPath string) bool {
	for _, p := range defaultAllowedPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	for _, p := range extra {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return redirectPath != "" && strings.HasPrefix(path, redirectPath)
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

func hostname(r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// setCookieAndRedirect grants the bypass cookie and redirects to location.
func setCookieAndRedirect(w http.ResponseWriter, r *http.Request, location string, opts Options) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.CookieName,
		Value:    "true",
		Path:     "/",
		MaxAge:   opts.CookieMaxAge,
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, location, http.StatusFound)
}

// clearCookieAndRedirect expires the named cookies and redirects to location.
func clearCookieAndRedirect(w http.ResponseWriter, r *http.Request, location string, names ...string) {
	for _, name := range names {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
	}
	http.Redirect(w, r, location, http.StatusFound)
}

// VerificationHash derives the bypass token placed in the verification query
// parameter after an override. It is a 32-bit string hash (h*31 + c over
// UTF-16 code units) of key, host and a fixed suffix, rendered in base 36.
// Not cryptographic.
func VerificationHash(key, host string) string {
	s := key + "-" + host + "-maintenance-verification"
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return strconv.FormatInt(n, 36)
}
