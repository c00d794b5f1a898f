// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as bearer
// token authentication, the authorization gate, request logging, metrics,
// CORS, sign-in throttling, and panic recovery.
package middleware
