package app

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/angelofallars/sharebill/app/component"
	"github.com/angelofallars/sharebill/app/header"
	"github.com/angelofallars/sharebill/app/route/invoice"
	"github.com/angelofallars/sharebill/internal/keymap"
)

//go:embed static
var static embed.FS

// contentSecurityPolicy allows own-origin resources plus the htmx build,
// and data: images for inline logos.
var contentSecurityPolicy = strings.Join([]string{
	"default-src 'none'",
	"script-src 'self' " + component.HTMXOrigin,
	"style-src 'self'",
	"img-src 'self' data:",
	"font-src 'self'",
	"frame-src blob:",
	"object-src blob:",
	"connect-src 'self'",
	"base-uri 'self'",
	"form-action 'self'",
}, "; ")

func (a *App) RegisterRoutes() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(securityHeaders)

	invoice.NewHandlerGroup(a.svcInvoice, a.loader, a.slog).Mount(a.router)

	a.router.Get("/keymap.json", a.handleKeymap)

	staticFiles, _ := fs.Sub(static, "static")
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFiles))))
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set(header.ContentSecurityPolicy, contentSecurityPolicy)
		h.Set(header.ContentTypeOptions, "nosniff")
		h.Set(header.FrameOptions, "DENY")
		h.Set(header.ReferrerPolicy, "strict-origin-when-cross-origin")
		h.Set(header.PermissionsPolicy, "camera=(), microphone=(), geolocation=()")
		next.ServeHTTP(w, r)
	})
}

// handleKeymap publishes the share link key table so that other clients
// can build and read links.
func (a *App) handleKeymap(w http.ResponseWriter, r *http.Request) {
	body, err := keymap.MarshalArtifact()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(header.CacheControl, "public, max-age=3600")
	_, _ = w.Write(body)
}
