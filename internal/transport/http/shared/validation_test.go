package shared

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestValidatorCollectsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("firstName", "  ", "first name is required")
	v.Required("lastName", "Hopper", "last name is required")
	v.Enum("employmentType", "contractor", []string{"hourly", "salaried"}, "employment type must be hourly or salaried")
	v.PositiveNumber("hours", 0, "hours must be greater than zero")

	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	got := v.Issues()
	if len(got) != 3 {
		t.Fatalf("expected 3 issues, got %d: %+v", len(got), got)
	}
	// Issues() sorts by field
	if got[0].Field != "employmentType" || got[1].Field != "firstName" || got[2].Field != "hours" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestValidatorEnumSkipsEmpty(t *testing.T) {
	v := NewValidator()
	v.Enum("employmentType", "", []string{"hourly", "salaried"}, "bad type")
	if v.HasIssues() {
		t.Fatalf("expected empty value to be skipped, got %+v", v.Issues())
	}

	v.Enum("employmentType", "  Salaried ", []string{"hourly", "salaried"}, "bad type")
	if v.HasIssues() {
		t.Fatalf("expected case-insensitive match, got %+v", v.Issues())
	}
}

func TestValidatorDate(t *testing.T) {
	v := NewValidator()

	parsed, ok := v.Date("startDate", "2024-03-05")
	if !ok || parsed.IsZero() {
		t.Fatalf("expected valid date, ok=%v parsed=%v", ok, parsed)
	}
	if v.HasIssues() {
		t.Fatalf("unexpected issues: %+v", v.Issues())
	}

	if _, ok := v.Date("endDate", "not-a-date"); ok {
		t.Fatal("expected malformed date to fail")
	}
	got := v.Issues()
	if len(got) != 1 || got[0].Field != "endDate" {
		t.Fatalf("expected one endDate issue, got %+v", got)
	}
}

func TestValidatorReject(t *testing.T) {
	v := NewValidator()
	rec := httptest.NewRecorder()
	if v.Reject(rec, "req-1") {
		t.Fatal("expected Reject to be a no-op with no issues")
	}

	v.Add("code", "code is required")
	rec = httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected Reject to write a response")
	}
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Details struct {
				Fields []ValidationIssue `json:"fields"`
			} `json:"details"`
		} `json:"error"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.Success {
		t.Fatal("expected success=false")
	}
	if body.Error.Code != "validation_error" {
		t.Fatalf("error code = %q", body.Error.Code)
	}
	if len(body.Error.Details.Fields) != 1 || body.Error.Details.Fields[0].Field != "code" {
		t.Fatalf("unexpected fields: %+v", body.Error.Details.Fields)
	}
	if body.RequestID != "req-1" {
		t.Fatalf("requestId = %q", body.RequestID)
	}
}
