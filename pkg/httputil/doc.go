// Package httputil provides the JSON response helpers shared by chartgrid's
// HTTP handlers.
//
// Errors are written as
//
//	{"error": {"code": "INVALID_SIZE", "message": "size must be positive, got 0x600"}}
//
// with the HTTP status derived from the error's [errors.Code] by
// [StatusFor]. Errors without a code are reported as INTERNAL_ERROR and
// their message is not exposed.
package httputil
