// Package httputil provides shared HTTP response/request helpers for the
// journal API handlers: a single JSON envelope for success and error
// bodies, and strict JSON request decoding.
package httputil
