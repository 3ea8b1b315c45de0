// Package httpapi serves chapter search over HTTP with gin.
//
// Routes live under /api/v1. Every request passes the access log and a
// token-bucket limiter before reaching a handler. Errors are rendered as
// an ErrorEnvelope whose status follows domain.Classify.
package httpapi
