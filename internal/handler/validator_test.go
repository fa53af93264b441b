package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePlanRequest(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		req     PlanRequest
		wantErr bool
		field   string
	}{
		{
			name: "valid merged",
			req:  PlanRequest{ItemID: "plate", Rate: 1, Mode: "merged"},
		},
		{
			name: "valid per-branch",
			req:  PlanRequest{ItemID: "plate", Rate: 0.5, Mode: "per-branch"},
		},
		{
			name: "empty mode defaults later",
			req:  PlanRequest{ItemID: "plate", Rate: 1},
		},
		{
			name:    "missing item",
			req:     PlanRequest{Rate: 1},
			wantErr: true,
			field:   "itemid",
		},
		{
			name:    "zero rate",
			req:     PlanRequest{ItemID: "plate"},
			wantErr: true,
			field:   "rate",
		},
		{
			name:    "negative rate",
			req:     PlanRequest{ItemID: "plate", Rate: -1},
			wantErr: true,
			field:   "rate",
		},
		{
			name:    "unknown mode",
			req:     PlanRequest{ItemID: "plate", Rate: 1, Mode: "flat"},
			wantErr: true,
			field:   "mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			fields := FormatValidationError(err)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestFormatValidationErrorNonValidator(t *testing.T) {
	fields := FormatValidationError(assert.AnError)
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, fields)
}

func TestFormatValidationErrorNil(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
}
