package pto

import (
	"context"
	"errors"
	"strings"

	"ptotracker/internal/domain/auth"
)

// Service is the PTO ledger: it owns the consistency rules between
// allotments, usage and logged entries. All writes go through here.
type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func requireAdmin(actor Actor) error {
	if actor.Role != auth.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

func (s *Service) AddEmployee(ctx context.Context, actor Actor, cmd AddEmployeeCommand) (Employee, error) {
	cmd.FirstName = strings.TrimSpace(cmd.FirstName)
	cmd.LastName = strings.TrimSpace(cmd.LastName)
	cmd.EmploymentType = strings.TrimSpace(cmd.EmploymentType)
	cmd.Phone = strings.TrimSpace(cmd.Phone)
	cmd.Email = strings.TrimSpace(cmd.Email)

	if err := ValidateAddEmployee(cmd); err != nil {
		return Employee{}, err
	}
	return s.Store.InsertEmployeeWithBalances(ctx, cmd)
}

func (s *Service) GetEmployee(ctx context.Context, employeeID int64) (Employee, error) {
	return s.Store.GetEmployee(ctx, employeeID)
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.Store.ListActiveEmployees(ctx)
}

func (s *Service) CreateType(ctx context.Context, actor Actor, cmd CreateTypeCommand) (PTOType, error) {
	if err := requireAdmin(actor); err != nil {
		return PTOType{}, err
	}

	code := NormalizeCode(cmd.Code)
	displayName := strings.TrimSpace(cmd.DisplayName)
	if err := ValidateTypeFields(code, displayName, cmd.DefaultHours, true); err != nil {
		return PTOType{}, err
	}
	return s.Store.InsertTypeWithBalances(ctx, code, displayName, cmd.DefaultHours)
}

func (s *Service) UpdateType(ctx context.Context, actor Actor, cmd UpdateTypeCommand) (PTOType, error) {
	if err := requireAdmin(actor); err != nil {
		return PTOType{}, err
	}

	cmd.DisplayName = strings.TrimSpace(cmd.DisplayName)
	defaultHours := 0.0
	if cmd.DefaultHours != nil {
		defaultHours = *cmd.DefaultHours
	}
	if err := ValidateTypeFields("", cmd.DisplayName, defaultHours, false); err != nil {
		return PTOType{}, err
	}

	updated, conflicts, err := s.Store.UpdateType(ctx, cmd)
	if err != nil {
		return PTOType{}, err
	}
	if len(conflicts) > 0 {
		v := &ValidationError{}
		for _, c := range conflicts {
			v.Addf("defaultHours", "%s %s has already used %g hours, more than the new allotment",
				c.FirstName, c.LastName, c.HoursUsed)
		}
		return PTOType{}, v
	}
	return updated, nil
}

func (s *Service) SetTypeActive(ctx context.Context, actor Actor, ptoTypeID int64, active bool) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.Store.SetTypeActive(ctx, ptoTypeID, active)
}

func (s *Service) DeleteType(ctx context.Context, actor Actor, ptoTypeID int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.Store.DeleteType(ctx, ptoTypeID)
}

func (s *Service) GetType(ctx context.Context, ptoTypeID int64) (PTOType, error) {
	return s.Store.GetType(ctx, ptoTypeID)
}

func (s *Service) ListTypes(ctx context.Context, includeInactive bool) ([]PTOType, error) {
	return s.Store.ListTypes(ctx, includeInactive)
}

// SetAllotments applies a batch of allotment edits for one employee.
// The batch is all-or-nothing: one invalid row commits zero writes.
func (s *Service) SetAllotments(ctx context.Context, actor Actor, employeeID int64, changes []AllotmentChange) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if len(changes) == 0 {
		v := &ValidationError{}
		v.Add("changes", "at least one allotment change is required")
		return v
	}
	return s.Store.ApplyAllotments(ctx, employeeID, changes)
}

// LogEntry records a leave event against the employee's balance. Every
// validation problem is collected before any is reported; on success the
// entry insert and the usage increment commit together or not at all.
func (s *Service) LogEntry(ctx context.Context, actor Actor, cmd LogEntryCommand) (Entry, error) {
	if _, err := s.Store.GetEmployee(ctx, cmd.EmployeeID); err != nil {
		return Entry{}, err
	}

	typeSelectable := false
	if cmd.PTOTypeID > 0 {
		typ, err := s.Store.GetType(ctx, cmd.PTOTypeID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return Entry{}, err
		}
		typeSelectable = err == nil && typ.IsActive
	}

	var balance *Balance
	if typeSelectable {
		found, ok, err := s.Store.GetBalance(ctx, cmd.EmployeeID, cmd.PTOTypeID)
		if err != nil {
			return Entry{}, err
		}
		if ok {
			balance = &found
		}
	}

	cmd.Notes = strings.TrimSpace(cmd.Notes)
	if err := ValidateLogEntry(cmd, typeSelectable, balance); err != nil {
		return Entry{}, err
	}

	return s.Store.InsertEntry(ctx, cmd, actor.ManagerID)
}

func (s *Service) EmployeeEntries(ctx context.Context, employeeID int64) ([]Entry, error) {
	if _, err := s.Store.GetEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.Store.EmployeeEntries(ctx, employeeID)
}

func (s *Service) BalanceSummary(ctx context.Context, employeeID int64) ([]BalanceRow, error) {
	if _, err := s.Store.GetEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.Store.BalanceSummary(ctx, employeeID)
}

func (s *Service) CalendarEntries(ctx context.Context, q CalendarQuery) ([]CalendarEntry, error) {
	return s.Store.CalendarEntries(ctx, q)
}
