package pto

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ptotracker/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

// InsertEmployeeWithBalances creates the employee and seeds one balance per
// active PTO type at that type's default hours. Both writes are one
// transaction; a failure leaves neither behind.
func (s *Store) InsertEmployeeWithBalances(ctx context.Context, cmd AddEmployeeCommand) (Employee, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Employee{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := Employee{
		FirstName:      cmd.FirstName,
		LastName:       cmd.LastName,
		EmploymentType: cmd.EmploymentType,
		Phone:          cmd.Phone,
		Email:          cmd.Email,
		Status:         "active",
	}
	if err := tx.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, employment_type, phone, email, status)
    VALUES ($1, $2, $3, $4, $5, 'active')
    RETURNING id, created_at
  `, cmd.FirstName, cmd.LastName, cmd.EmploymentType, cmd.Phone, cmd.Email).Scan(&out.ID, &out.CreatedAt); err != nil {
		return Employee{}, err
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO pto_balances (employee_id, pto_type_id, hours_allotted, hours_used)
    SELECT $1, id, default_hours, 0
    FROM pto_types
    WHERE is_active
    ON CONFLICT (employee_id, pto_type_id) DO NOTHING
  `, out.ID); err != nil {
		return Employee{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Employee{}, err
	}
	return out, nil
}

func (s *Store) GetEmployee(ctx context.Context, employeeID int64) (Employee, error) {
	var out Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, employment_type, phone, email, status, created_at
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&out.ID, &out.FirstName, &out.LastName, &out.EmploymentType, &out.Phone, &out.Email, &out.Status, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return out, err
}

func (s *Store) ListActiveEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name, employment_type, phone, email, status, created_at
    FROM employees
    WHERE status = 'active'
    ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.EmploymentType, &e.Phone, &e.Email, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) GetBalance(ctx context.Context, employeeID, ptoTypeID int64) (Balance, bool, error) {
	var out Balance
	err := s.DB.QueryRow(ctx, `
    SELECT employee_id, pto_type_id, hours_allotted, hours_used
    FROM pto_balances
    WHERE employee_id = $1 AND pto_type_id = $2
  `, employeeID, ptoTypeID).Scan(&out.EmployeeID, &out.PTOTypeID, &out.HoursAllotted, &out.HoursUsed)
	if errors.Is(err, pgx.ErrNoRows) {
		return Balance{}, false, nil
	}
	if err != nil {
		return Balance{}, false, err
	}
	return out, true, nil
}

// BalanceSummary lists the employee's balances across all active PTO types.
// Types with no balance row yet report zero usage and no allotment.
func (s *Store) BalanceSummary(ctx context.Context, employeeID int64) ([]BalanceRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT pt.id, pt.code, pt.display_name,
           COALESCE(b.hours_allotted, 0), COALESCE(b.hours_used, 0)
    FROM pto_types pt
    LEFT JOIN pto_balances b ON b.pto_type_id = pt.id AND b.employee_id = $1
    WHERE pt.is_active
    ORDER BY pt.display_name
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BalanceRow
	for rows.Next() {
		var row BalanceRow
		if err := rows.Scan(&row.PTOTypeID, &row.Code, &row.DisplayName, &row.Allotted, &row.Used); err != nil {
			return nil, err
		}
		row.Remaining = row.Allotted - row.Used
		out = append(out, row)
	}
	return out, rows.Err()
}

// ApplyAllotments validates and applies a batch of allotment changes for one
// employee. Every row is validated against locked current balances before any
// write; one invalid row fails the whole batch.
func (s *Store) ApplyAllotments(ctx context.Context, employeeID int64, changes []AllotmentChange) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)", employeeID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	typeNames := map[int64]string{}
	nameRows, err := tx.Query(ctx, "SELECT id, display_name FROM pto_types WHERE is_active")
	if err != nil {
		return err
	}
	for nameRows.Next() {
		var id int64
		var name string
		if err := nameRows.Scan(&id, &name); err != nil {
			nameRows.Close()
			return err
		}
		typeNames[id] = name
	}
	nameRows.Close()
	if err := nameRows.Err(); err != nil {
		return err
	}

	current := map[int64]Balance{}
	balanceRows, err := tx.Query(ctx, `
    SELECT employee_id, pto_type_id, hours_allotted, hours_used
    FROM pto_balances
    WHERE employee_id = $1
    FOR UPDATE
  `, employeeID)
	if err != nil {
		return err
	}
	for balanceRows.Next() {
		var b Balance
		if err := balanceRows.Scan(&b.EmployeeID, &b.PTOTypeID, &b.HoursAllotted, &b.HoursUsed); err != nil {
			balanceRows.Close()
			return err
		}
		current[b.PTOTypeID] = b
	}
	balanceRows.Close()
	if err := balanceRows.Err(); err != nil {
		return err
	}

	if err := ValidateAllotments(changes, current, typeNames); err != nil {
		return err
	}

	for _, change := range changes {
		if _, err := tx.Exec(ctx, `
      INSERT INTO pto_balances (employee_id, pto_type_id, hours_allotted, hours_used)
      VALUES ($1, $2, $3, 0)
      ON CONFLICT (employee_id, pto_type_id) DO UPDATE SET hours_allotted = EXCLUDED.hours_allotted
    `, employeeID, change.PTOTypeID, change.HoursAllotted); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
