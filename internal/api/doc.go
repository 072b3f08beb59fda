// Package api implements the HTTP handlers, wire models, and error mapping
// for the task management service. Handlers decode and validate requests,
// call into the stores and services, and translate internal errors into
// sanitized HTTP responses.
package api
