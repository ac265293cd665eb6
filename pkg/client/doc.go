// Package client posts recommendation queries to the backend and decodes the
// response envelope.
//
// Application failures reported by the backend come back as a Response with
// Success set to false. Anything that prevents the envelope from being read
// (network errors, non-JSON bodies, contract violations) is returned as an
// error wrapping ErrTransport.
package client
