package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"ptotracker/internal/domain/pto"
)

func TestRespondDomainError(t *testing.T) {
	validation := &pto.ValidationError{}
	validation.Add("hours", "hours must be greater than zero")

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: validation, wantStatus: 400, wantCode: "validation_error"},
		{name: "wrapped validation", err: fmt.Errorf("log entry: %w", validation), wantStatus: 400, wantCode: "validation_error"},
		{name: "insufficient hours", err: pto.ErrInsufficientHours, wantStatus: 400, wantCode: "insufficient_hours"},
		{name: "not found", err: pto.ErrNotFound, wantStatus: 404, wantCode: "not_found"},
		{name: "duplicate code", err: pto.ErrDuplicateCode, wantStatus: 409, wantCode: "duplicate_code"},
		{name: "type in use", err: pto.ErrTypeInUse, wantStatus: 409, wantCode: "type_in_use"},
		{name: "forbidden", err: pto.ErrForbidden, wantStatus: 403, wantCode: "forbidden"},
		{name: "unknown", err: errors.New("boom"), wantStatus: 500, wantCode: "internal_error"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondDomainError(rec, tc.err, "req-1", "internal_error", "something went wrong")

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}

			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if body.Success {
				t.Fatal("expected success=false")
			}
			if body.Error.Code != tc.wantCode {
				t.Fatalf("error code = %q, want %q", body.Error.Code, tc.wantCode)
			}
		})
	}
}
