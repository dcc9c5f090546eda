// Package docuflow provides the HTTP client for the DocuFlow backend.
//
// Every request is paced by a token bucket, tagged with an X-Request-ID
// and bounded by a single client timeout. Failures are returned to the
// caller and also pushed to the configured notifier.
package docuflow
