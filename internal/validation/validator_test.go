package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wayfarerapp/wayfarer-server/internal/errors"
	"github.com/wayfarerapp/wayfarer-server/internal/validation"
)

type createPlanRequest struct {
	Destination string `json:"destination" validate:"required,max=200"`
	TravelType  string `json:"travel_type" validate:"required,max=50"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := createPlanRequest{
		Destination: "Lisbon",
		TravelType:  "leisure",
		StartDate:   "2026-09-01",
		EndDate:     "2026-09-10",
	}

	assert.NoError(t, v.Validate(req))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       createPlanRequest
		wantField string
	}{
		{
			name: "missing destination",
			req: createPlanRequest{
				TravelType: "leisure",
				StartDate:  "2026-09-01",
				EndDate:    "2026-09-10",
			},
			wantField: "destination",
		},
		{
			name: "malformed start date",
			req: createPlanRequest{
				Destination: "Lisbon",
				TravelType:  "leisure",
				StartDate:   "09/01/2026",
				EndDate:     "2026-09-10",
			},
			wantField: "start_date",
		},
		{
			name: "non-date junk",
			req: createPlanRequest{
				Destination: "Lisbon",
				TravelType:  "leisure",
				StartDate:   "2026-09-01",
				EndDate:     "soon",
			},
			wantField: "end_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			assert.Error(t, err)

			var domainErr *errors.Error
			if assert.True(t, errors.As(err, &domainErr)) {
				assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())
				details, ok := domainErr.Details.(map[string]string)
				if assert.True(t, ok, "details should carry per-field messages") {
					assert.Contains(t, details, tt.wantField)
				}
			}
		})
	}
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	req := createPlanRequest{
		TravelType: "leisure",
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-10",
	}

	err := v.Validate(req)
	assert.Error(t, err)

	var domainErr *errors.Error
	if assert.True(t, errors.As(err, &domainErr)) {
		details, ok := domainErr.Details.(map[string]string)
		if assert.True(t, ok) {
			// JSON tag name, not the Go field name.
			assert.Contains(t, details, "destination")
			assert.NotContains(t, details, "Destination")
		}
	}
}
