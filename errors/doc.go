// Package errors provides unified error handling for credential and token
// workflows. It implements structured error types with error codes, HTTP
// status mapping, and retryable detection following RFC 7807.
package errors
