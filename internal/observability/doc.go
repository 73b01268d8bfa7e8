// Package observability exposes the tracker's Prometheus metrics.
package observability
