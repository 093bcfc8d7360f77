// Package handlers implements the watch-mode HTTP handlers: health probes,
// the latest auction summary, and a manual run trigger.
//
// Probes are plain Echo handlers so they stay out of the OpenAPI document.
// The summary and run endpoints are registered through Huma.
package handlers
