// Package header names the HTTP headers the app reads and writes.
package header

// Sent by htmx on every request it makes.
const (
	HXRequest    = "HX-Request"
	HXCurrentURL = "HX-Current-URL"
)

const (
	ContentSecurityPolicy = "Content-Security-Policy"
	ContentTypeOptions    = "X-Content-Type-Options"
	FrameOptions          = "X-Frame-Options"
	ReferrerPolicy        = "Referrer-Policy"
	PermissionsPolicy     = "Permissions-Policy"
	ContentDisposition    = "Content-Disposition"
	CacheControl          = "Cache-Control"
	ForwardedProto        = "X-Forwarded-Proto"
)
