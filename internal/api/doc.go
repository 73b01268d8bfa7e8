// Package api adapts HTTP requests to the user and exercise services.
//
// Handlers accept url-encoded forms (the format of the bundled front page)
// as well as JSON bodies, validate them with go-playground/validator and
// translate service errors into status codes with MapErrorToStatusCode.
package api
