// Package handler is the HTTP layer.
//
// Handlers bind and validate requests through the validation package, call
// the service layer, and hand results or errors back to echo.
package handler
