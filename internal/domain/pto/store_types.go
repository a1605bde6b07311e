package pto

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

func (s *Store) GetType(ctx context.Context, ptoTypeID int64) (PTOType, error) {
	var out PTOType
	err := s.DB.QueryRow(ctx, `
    SELECT id, code, display_name, is_active, default_hours, created_at
    FROM pto_types
    WHERE id = $1
  `, ptoTypeID).Scan(&out.ID, &out.Code, &out.DisplayName, &out.IsActive, &out.DefaultHours, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return PTOType{}, ErrNotFound
	}
	return out, err
}

func (s *Store) ListTypes(ctx context.Context, includeInactive bool) ([]PTOType, error) {
	query := `
    SELECT id, code, display_name, is_active, default_hours, created_at
    FROM pto_types
    WHERE is_active
    ORDER BY display_name
  `
	if includeInactive {
		query = `
      SELECT id, code, display_name, is_active, default_hours, created_at
      FROM pto_types
      ORDER BY is_active DESC, display_name
    `
	}

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []PTOType
	for rows.Next() {
		var t PTOType
		if err := rows.Scan(&t.ID, &t.Code, &t.DisplayName, &t.IsActive, &t.DefaultHours, &t.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// InsertTypeWithBalances creates the PTO type and seeds a balance for every
// active employee at the new default hours, atomically. The seed tolerates
// racing writers via ON CONFLICT DO NOTHING.
func (s *Store) InsertTypeWithBalances(ctx context.Context, code, displayName string, defaultHours float64) (PTOType, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return PTOType{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := PTOType{Code: code, DisplayName: displayName, IsActive: true, DefaultHours: defaultHours}
	err = tx.QueryRow(ctx, `
    INSERT INTO pto_types (code, display_name, is_active, default_hours)
    VALUES ($1, $2, TRUE, $3)
    RETURNING id, created_at
  `, code, displayName, defaultHours).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return PTOType{}, ErrDuplicateCode
		}
		return PTOType{}, err
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO pto_balances (employee_id, pto_type_id, hours_allotted, hours_used)
    SELECT id, $1, $2, 0
    FROM employees
    WHERE status = 'active'
    ON CONFLICT (employee_id, pto_type_id) DO NOTHING
  `, out.ID, defaultHours); err != nil {
		return PTOType{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return PTOType{}, err
	}
	return out, nil
}

// UpdateType rewrites the type's display name and default hours and, when
// propagate is set, overwrites every existing balance's allotment with the
// new default. The propagate is refused in full when any balance's usage
// exceeds the new value; the offending balances are returned so the caller
// can report them.
func (s *Store) UpdateType(ctx context.Context, cmd UpdateTypeCommand) (PTOType, []TypeBalance, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return PTOType{}, nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var out PTOType
	err = tx.QueryRow(ctx, `
    SELECT id, code, is_active, default_hours, created_at
    FROM pto_types
    WHERE id = $1
    FOR UPDATE
  `, cmd.ID).Scan(&out.ID, &out.Code, &out.IsActive, &out.DefaultHours, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return PTOType{}, nil, ErrNotFound
	}
	if err != nil {
		return PTOType{}, nil, err
	}

	out.DisplayName = cmd.DisplayName
	if cmd.DefaultHours != nil {
		out.DefaultHours = *cmd.DefaultHours
	}

	if _, err := tx.Exec(ctx, `
    UPDATE pto_types SET display_name = $2, default_hours = $3 WHERE id = $1
  `, cmd.ID, out.DisplayName, out.DefaultHours); err != nil {
		return PTOType{}, nil, err
	}

	if cmd.Propagate {
		balances, err := typeBalancesForUpdate(ctx, tx, cmd.ID)
		if err != nil {
			return PTOType{}, nil, err
		}
		if conflicts := PropagateConflicts(out.DefaultHours, balances); len(conflicts) > 0 {
			return PTOType{}, conflicts, nil
		}
		if _, err := tx.Exec(ctx, `
      UPDATE pto_balances SET hours_allotted = $2 WHERE pto_type_id = $1
    `, cmd.ID, out.DefaultHours); err != nil {
			return PTOType{}, nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return PTOType{}, nil, err
	}
	return out, nil, nil
}

func typeBalancesForUpdate(ctx context.Context, tx pgx.Tx, ptoTypeID int64) ([]TypeBalance, error) {
	rows, err := tx.Query(ctx, `
    SELECT b.employee_id, e.first_name, e.last_name, b.hours_allotted, b.hours_used
    FROM pto_balances b
    JOIN employees e ON e.id = b.employee_id
    WHERE b.pto_type_id = $1
    FOR UPDATE OF b
  `, ptoTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []TypeBalance
	for rows.Next() {
		var b TypeBalance
		if err := rows.Scan(&b.EmployeeID, &b.FirstName, &b.LastName, &b.HoursAllotted, &b.HoursUsed); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

func (s *Store) SetTypeActive(ctx context.Context, ptoTypeID int64, active bool) error {
	tag, err := s.DB.Exec(ctx, "UPDATE pto_types SET is_active = $2 WHERE id = $1", ptoTypeID, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteType removes the type and its balances, but only when no balance has
// recorded usage and no entry references the type. Entries are never
// cascade-deleted; history outlives its category.
func (s *Store) DeleteType(ctx context.Context, ptoTypeID int64) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM pto_types WHERE id = $1)", ptoTypeID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	var usedBalances, entries int
	if err := tx.QueryRow(ctx, `
    SELECT (SELECT COUNT(1) FROM pto_balances WHERE pto_type_id = $1 AND hours_used > 0),
           (SELECT COUNT(1) FROM pto_entries WHERE pto_type_id = $1)
  `, ptoTypeID).Scan(&usedBalances, &entries); err != nil {
		return err
	}
	if usedBalances > 0 || entries > 0 {
		return ErrTypeInUse
	}

	if _, err := tx.Exec(ctx, "DELETE FROM pto_balances WHERE pto_type_id = $1", ptoTypeID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM pto_types WHERE id = $1", ptoTypeID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
