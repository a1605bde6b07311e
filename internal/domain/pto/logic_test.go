package pto

import (
	"errors"
	"testing"
)

func issues(t *testing.T, err error) []Issue {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	return verr.Issues
}

func hasIssue(list []Issue, field, reason string) bool {
	for _, issue := range list {
		if issue.Field == field && issue.Reason == reason {
			return true
		}
	}
	return false
}

func TestValidateAddEmployee(t *testing.T) {
	valid := AddEmployeeCommand{FirstName: "Ada", LastName: "Lovelace", EmploymentType: "salaried"}
	if err := ValidateAddEmployee(valid); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}

	got := issues(t, ValidateAddEmployee(AddEmployeeCommand{EmploymentType: "contractor"}))
	if len(got) != 3 {
		t.Fatalf("expected 3 issues, got %d: %+v", len(got), got)
	}
	if !hasIssue(got, "firstName", "first name is required") {
		t.Fatalf("missing firstName issue: %+v", got)
	}
	if !hasIssue(got, "lastName", "last name is required") {
		t.Fatalf("missing lastName issue: %+v", got)
	}
	if !hasIssue(got, "employmentType", "employment type must be hourly or salaried") {
		t.Fatalf("missing employmentType issue: %+v", got)
	}
}

func TestValidateTypeFields(t *testing.T) {
	cases := []struct {
		name        string
		code        string
		displayName string
		hours       float64
		requireCode bool
		wantFields  []string
	}{
		{name: "valid create", code: "SICK", displayName: "Sick", hours: 40, requireCode: true},
		{name: "valid zero hours", code: "UNPAID", displayName: "Unpaid", hours: 0, requireCode: true},
		{name: "missing code on create", code: "", displayName: "Sick", hours: 8, requireCode: true, wantFields: []string{"code"}},
		{name: "missing code allowed on update", code: "", displayName: "Sick", hours: 8, requireCode: false},
		{name: "blank display name", code: "SICK", displayName: "   ", hours: 8, requireCode: true, wantFields: []string{"displayName"}},
		{name: "negative hours", code: "SICK", displayName: "Sick", hours: -1, requireCode: true, wantFields: []string{"defaultHours"}},
		{name: "everything wrong", code: "", displayName: "", hours: -5, requireCode: true, wantFields: []string{"code", "displayName", "defaultHours"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTypeFields(tc.code, tc.displayName, tc.hours, tc.requireCode)
			if len(tc.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			got := issues(t, err)
			if len(got) != len(tc.wantFields) {
				t.Fatalf("expected %d issues, got %d: %+v", len(tc.wantFields), len(got), got)
			}
			for i, field := range tc.wantFields {
				if got[i].Field != field {
					t.Fatalf("issue %d: expected field %q, got %q", i, field, got[i].Field)
				}
			}
		})
	}
}

func TestValidateLogEntry(t *testing.T) {
	start := mustDate(t, "2024-03-04")
	end := mustDate(t, "2024-03-05")
	balance := &Balance{EmployeeID: 1, PTOTypeID: 2, HoursAllotted: 40, HoursUsed: 8}

	valid := LogEntryCommand{EmployeeID: 1, PTOTypeID: 2, StartDate: start, EndDate: end, Hours: 16}
	if err := ValidateLogEntry(valid, true, balance); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}

	t.Run("unselectable type", func(t *testing.T) {
		cmd := valid
		got := issues(t, ValidateLogEntry(cmd, false, balance))
		if !hasIssue(got, "ptoTypeId", "please select a valid PTO type") {
			t.Fatalf("missing type issue: %+v", got)
		}
	})

	t.Run("missing dates", func(t *testing.T) {
		cmd := LogEntryCommand{EmployeeID: 1, PTOTypeID: 2, Hours: 8}
		got := issues(t, ValidateLogEntry(cmd, true, balance))
		if !hasIssue(got, "startDate", "start date is required") {
			t.Fatalf("missing startDate issue: %+v", got)
		}
		if !hasIssue(got, "endDate", "end date is required") {
			t.Fatalf("missing endDate issue: %+v", got)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		cmd := valid
		cmd.StartDate, cmd.EndDate = end, start
		got := issues(t, ValidateLogEntry(cmd, true, balance))
		if !hasIssue(got, "endDate", "end date must be on or after start date") {
			t.Fatalf("missing ordering issue: %+v", got)
		}
	})

	t.Run("zero hours", func(t *testing.T) {
		cmd := valid
		cmd.Hours = 0
		got := issues(t, ValidateLogEntry(cmd, true, balance))
		if !hasIssue(got, "hours", "hours must be greater than zero") {
			t.Fatalf("missing hours issue: %+v", got)
		}
	})

	t.Run("no balance row", func(t *testing.T) {
		got := issues(t, ValidateLogEntry(valid, true, nil))
		if !hasIssue(got, "ptoTypeId", "no PTO balance found for this PTO type") {
			t.Fatalf("missing balance issue: %+v", got)
		}
	})

	t.Run("not enough remaining", func(t *testing.T) {
		cmd := valid
		cmd.Hours = 33
		got := issues(t, ValidateLogEntry(cmd, true, balance))
		if !hasIssue(got, "hours", "not enough PTO remaining: 32.00 hours left") {
			t.Fatalf("missing remaining issue: %+v", got)
		}
	})

	t.Run("exactly remaining is allowed", func(t *testing.T) {
		cmd := valid
		cmd.Hours = 32
		if err := ValidateLogEntry(cmd, true, balance); err != nil {
			t.Fatalf("expected exact remainder to pass, got %v", err)
		}
	})

	t.Run("multiple problems reported together", func(t *testing.T) {
		cmd := LogEntryCommand{EmployeeID: 1}
		got := issues(t, ValidateLogEntry(cmd, false, nil))
		if len(got) != 4 {
			t.Fatalf("expected 4 issues, got %d: %+v", len(got), got)
		}
	})
}

func TestValidateAllotments(t *testing.T) {
	current := map[int64]Balance{
		1: {EmployeeID: 7, PTOTypeID: 1, HoursAllotted: 40, HoursUsed: 24},
		2: {EmployeeID: 7, PTOTypeID: 2, HoursAllotted: 40, HoursUsed: 0},
	}
	names := map[int64]string{1: "Vacation", 2: "Sick"}

	ok := []AllotmentChange{
		{PTOTypeID: 1, HoursAllotted: 24},
		{PTOTypeID: 2, HoursAllotted: 80},
	}
	if err := ValidateAllotments(ok, current, names); err != nil {
		t.Fatalf("expected valid batch, got %v", err)
	}

	t.Run("below usage fails the whole batch", func(t *testing.T) {
		changes := []AllotmentChange{
			{PTOTypeID: 1, HoursAllotted: 16},
			{PTOTypeID: 2, HoursAllotted: 80},
		}
		got := issues(t, ValidateAllotments(changes, current, names))
		if !hasIssue(got, "Vacation", "hours allotted cannot be less than hours already used (24)") {
			t.Fatalf("missing usage issue: %+v", got)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		changes := []AllotmentChange{{PTOTypeID: 99, HoursAllotted: 8}}
		got := issues(t, ValidateAllotments(changes, current, names))
		if !hasIssue(got, "ptoTypeId", "unknown PTO type 99") {
			t.Fatalf("missing unknown type issue: %+v", got)
		}
	})

	t.Run("negative allotment", func(t *testing.T) {
		changes := []AllotmentChange{{PTOTypeID: 2, HoursAllotted: -1}}
		got := issues(t, ValidateAllotments(changes, current, names))
		if !hasIssue(got, "Sick", "hours allotted must be zero or more") {
			t.Fatalf("missing negative issue: %+v", got)
		}
	})

	t.Run("no existing balance row passes", func(t *testing.T) {
		changes := []AllotmentChange{{PTOTypeID: 1, HoursAllotted: 0}}
		err := ValidateAllotments(changes, map[int64]Balance{}, names)
		if err != nil {
			t.Fatalf("expected missing balance to pass, got %v", err)
		}
	})
}

func TestPropagateConflicts(t *testing.T) {
	balances := []TypeBalance{
		{EmployeeID: 1, FirstName: "Ada", LastName: "Lovelace", HoursAllotted: 40, HoursUsed: 0},
		{EmployeeID: 2, FirstName: "Grace", LastName: "Hopper", HoursAllotted: 40, HoursUsed: 32},
		{EmployeeID: 3, FirstName: "Alan", LastName: "Turing", HoursAllotted: 40, HoursUsed: 16},
	}

	if got := PropagateConflicts(40, balances); len(got) != 0 {
		t.Fatalf("expected no conflicts at 40, got %+v", got)
	}

	got := PropagateConflicts(24, balances)
	if len(got) != 1 || got[0].EmployeeID != 2 {
		t.Fatalf("expected only employee 2 to conflict, got %+v", got)
	}

	got = PropagateConflicts(8, balances)
	if len(got) != 2 {
		t.Fatalf("expected two conflicts at 8, got %+v", got)
	}

	// usage exactly equal to the new allotment is fine
	if got := PropagateConflicts(32, balances); len(got) != 0 {
		t.Fatalf("expected exact usage to pass, got %+v", got)
	}
}

func mustDate(t *testing.T, value string) Date {
	t.Helper()
	d, err := ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return d
}
