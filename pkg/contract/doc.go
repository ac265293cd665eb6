// Package contract embeds the OpenAPI description of the recommendation
// endpoint (POST /recommend) and validates request and response bodies against
// it using kin-openapi. Validation failures are reported as *ValidationError
// values whose Payload can be mapped onto form fields by render.MapErrorPayload.
package contract
