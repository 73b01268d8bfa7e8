// Package middleware provides the HTTP middleware specific to the tracker:
// request tracing with a context logger and Prometheus request metrics.
package middleware
