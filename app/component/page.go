// Package component holds the page shell shared by the route views.
package component

// HTMXOrigin serves the htmx build FullPage loads. The CSP allows it.
const HTMXOrigin = "https://unpkg.com"
