package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hoursRequest struct {
	Name  string           `json:"name" validate:"required,notblank"`
	Hours *decimal.Decimal `json:"base_time_hours" validate:"required,decimal_scale=2,decimal_gte=0,decimal_lte=999.99"`
	Rate  *decimal.Decimal `json:"coefficient" validate:"omitempty,decimal_gt=0"`
	Start *string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	Items []itemRequest    `json:"items" validate:"dive"`
}

type itemRequest struct {
	TaskID uint64 `json:"task_id" validate:"required,gt=0"`
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func TestValidateStruct(t *testing.T) {
	testCases := []struct {
		name             string
		input            hoursRequest
		expectError      bool
		expectedErrorMsg string
	}{
		{
			name:  "Success: all fields valid",
			input: hoursRequest{Name: "Backend", Hours: decPtr("8.50"), Rate: decPtr("1.75"), Start: strPtr("2025-01-31")},
		},
		{
			name:  "Success: zero hours",
			input: hoursRequest{Name: "Kickoff", Hours: decPtr("0")},
		},
		{
			name:  "Success: upper bound",
			input: hoursRequest{Name: "Epic", Hours: decPtr("999.99")},
		},
		{
			name:             "Failure: blank name",
			input:            hoursRequest{Name: "   ", Hours: decPtr("1")},
			expectError:      true,
			expectedErrorMsg: "field 'name' is required",
		},
		{
			name:             "Failure: missing hours",
			input:            hoursRequest{Name: "x"},
			expectError:      true,
			expectedErrorMsg: "field 'base_time_hours' is required",
		},
		{
			name:             "Failure: three decimal places",
			input:            hoursRequest{Name: "x", Hours: decPtr("1.755")},
			expectError:      true,
			expectedErrorMsg: "field 'base_time_hours' must have at most 2 decimal places",
		},
		{
			name:             "Failure: negative hours",
			input:            hoursRequest{Name: "x", Hours: decPtr("-1")},
			expectError:      true,
			expectedErrorMsg: "field 'base_time_hours' must be greater than or equal to 0",
		},
		{
			name:             "Failure: hours above column precision",
			input:            hoursRequest{Name: "x", Hours: decPtr("1000")},
			expectError:      true,
			expectedErrorMsg: "field 'base_time_hours' must be less than or equal to 999.99",
		},
		{
			name:             "Failure: zero coefficient",
			input:            hoursRequest{Name: "x", Hours: decPtr("1"), Rate: decPtr("0")},
			expectError:      true,
			expectedErrorMsg: "field 'coefficient' must be greater than 0",
		},
		{
			name:             "Failure: bad date",
			input:            hoursRequest{Name: "x", Hours: decPtr("1"), Start: strPtr("31/01/2025")},
			expectError:      true,
			expectedErrorMsg: "field 'start_date' must be a date in YYYY-MM-DD format",
		},
		{
			name:             "Failure: nested item",
			input:            hoursRequest{Name: "x", Hours: decPtr("1"), Items: []itemRequest{{TaskID: 1}, {}}},
			expectError:      true,
			expectedErrorMsg: "field 'items[1].task_id' is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.input)

			if tc.expectError {
				require.Error(t, err)
				require.IsType(t, &ValidationError{}, err)
				assert.Contains(t, err.Error(), tc.expectedErrorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStruct_ReportsEveryField(t *testing.T) {
	err := ValidateStruct(hoursRequest{Name: "", Hours: decPtr("1.234"), Rate: decPtr("-1")})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 3)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []string{"error 1", "error 2"},
	}
	assert.Equal(t, "error 1, error 2", err.Error())
}
