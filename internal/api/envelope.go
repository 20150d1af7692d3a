package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire version of the response envelope. Clients check
// it before parsing the rest of the payload.
const envelopeVersion = 1

// envelope is the uniform JSON shape for every API response.
type envelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned envelope.
// Registered as a huma transformer so handlers return plain DTOs.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		env := envelope{
			V:       envelopeVersion,
			Success: false,
		}
		if apiErr.Code != "" {
			env.Code = apiErr.Code
			env.Message = apiErr.Message
			env.Details = apiErr.Details
		} else {
			env.Error = apiErr.Message
		}
		return env, nil
	}

	return envelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
