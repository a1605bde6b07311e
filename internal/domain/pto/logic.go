package pto

import "strings"

// ValidateAddEmployee checks an add-employee command and returns every issue
// found, or nil when the command is acceptable.
func ValidateAddEmployee(cmd AddEmployeeCommand) error {
	v := &ValidationError{}
	if strings.TrimSpace(cmd.FirstName) == "" {
		v.Add("firstName", "first name is required")
	}
	if strings.TrimSpace(cmd.LastName) == "" {
		v.Add("lastName", "last name is required")
	}
	if cmd.EmploymentType != "hourly" && cmd.EmploymentType != "salaried" {
		v.Add("employmentType", "employment type must be hourly or salaried")
	}
	return v.OrNil()
}

// ValidateTypeFields checks the shared PTO type fields. The normalized code
// is validated only when requireCode is set (creation).
func ValidateTypeFields(normalizedCode, displayName string, defaultHours float64, requireCode bool) error {
	v := &ValidationError{}
	if requireCode && normalizedCode == "" {
		v.Add("code", "code is required and must contain letters or numbers")
	}
	if strings.TrimSpace(displayName) == "" {
		v.Add("displayName", "display name is required")
	}
	if defaultHours < 0 {
		v.Add("defaultHours", "default hours must be zero or more")
	}
	return v.OrNil()
}

// ValidateLogEntry collects every problem with a log-entry command before any
// of them is reported: type selectability, date presence and ordering, hours
// positivity, and only then the balance checks. typeSelectable means the PTO
// type resolved to a real, active type; balance is nil when no balance row
// exists for the (employee, type) pair.
func ValidateLogEntry(cmd LogEntryCommand, typeSelectable bool, balance *Balance) error {
	v := &ValidationError{}
	if cmd.PTOTypeID <= 0 || !typeSelectable {
		v.Add("ptoTypeId", "please select a valid PTO type")
	}
	if cmd.StartDate.IsZero() {
		v.Add("startDate", "start date is required")
	}
	if cmd.EndDate.IsZero() {
		v.Add("endDate", "end date is required")
	}
	if !cmd.StartDate.IsZero() && !cmd.EndDate.IsZero() && cmd.EndDate.Before(cmd.StartDate.Time) {
		v.Add("endDate", "end date must be on or after start date")
	}
	if cmd.Hours <= 0 {
		v.Add("hours", "hours must be greater than zero")
	}

	if cmd.PTOTypeID > 0 && typeSelectable && cmd.Hours > 0 {
		if balance == nil {
			v.Add("ptoTypeId", "no PTO balance found for this PTO type")
		} else if cmd.Hours > balance.Remaining() {
			v.Addf("hours", "not enough PTO remaining: %.2f hours left", balance.Remaining())
		}
	}
	return v.OrNil()
}

// ValidateAllotments checks a batch of allotment changes against the current
// balances. current maps PTO type id to the existing balance; a missing key
// means no balance row exists yet (usage 0). typeNames supplies display names
// for error messages. Either every change passes or the whole batch fails.
func ValidateAllotments(changes []AllotmentChange, current map[int64]Balance, typeNames map[int64]string) error {
	v := &ValidationError{}
	for _, change := range changes {
		name := typeNames[change.PTOTypeID]
		if name == "" {
			v.Addf("ptoTypeId", "unknown PTO type %d", change.PTOTypeID)
			continue
		}
		if change.HoursAllotted < 0 {
			v.Addf(name, "hours allotted must be zero or more")
			continue
		}
		if balance, ok := current[change.PTOTypeID]; ok && change.HoursAllotted < balance.HoursUsed {
			v.Addf(name, "hours allotted cannot be less than hours already used (%g)", balance.HoursUsed)
		}
	}
	return v.OrNil()
}

// PropagateConflicts returns the balances whose recorded usage exceeds the
// proposed allotment. A non-empty result means the propagate must be refused.
func PropagateConflicts(newAllotted float64, balances []TypeBalance) []TypeBalance {
	var conflicts []TypeBalance
	for _, b := range balances {
		if b.HoursUsed > newAllotted {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}
