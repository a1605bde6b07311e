package pto

import (
	"context"
	"time"
)

// InsertEntry records the PTO entry and increments the balance's usage in one
// transaction. The increment is conditional on the balance still covering the
// hours, which closes the check-then-act race between concurrent entries; a
// zero-row update rolls the entry back and reports ErrInsufficientHours.
func (s *Store) InsertEntry(ctx context.Context, cmd LogEntryCommand, managerID int64) (Entry, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Entry{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := Entry{
		EmployeeID:         cmd.EmployeeID,
		PTOTypeID:          cmd.PTOTypeID,
		StartDate:          cmd.StartDate,
		EndDate:            cmd.EndDate,
		Hours:              cmd.Hours,
		Notes:              cmd.Notes,
		CreatedByManagerID: &managerID,
	}
	if err := tx.QueryRow(ctx, `
    INSERT INTO pto_entries (employee_id, pto_type_id, start_date, end_date, hours, notes, created_by_manager_id)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id, created_at
  `, cmd.EmployeeID, cmd.PTOTypeID, cmd.StartDate.Time, cmd.EndDate.Time, cmd.Hours, cmd.Notes, managerID).Scan(&out.ID, &out.CreatedAt); err != nil {
		return Entry{}, err
	}

	tag, err := tx.Exec(ctx, `
    UPDATE pto_balances
    SET hours_used = hours_used + $3
    WHERE employee_id = $1 AND pto_type_id = $2 AND hours_used + $3 <= hours_allotted
  `, cmd.EmployeeID, cmd.PTOTypeID, cmd.Hours)
	if err != nil {
		return Entry{}, err
	}
	if tag.RowsAffected() == 0 {
		return Entry{}, ErrInsufficientHours
	}

	if err := tx.Commit(ctx); err != nil {
		return Entry{}, err
	}
	return out, nil
}

// EmployeeEntries lists the employee's PTO history, newest first, with the
// type name and the recording manager's name joined in.
func (s *Store) EmployeeEntries(ctx context.Context, employeeID int64) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.employee_id, e.pto_type_id, pt.display_name,
           e.start_date, e.end_date, e.hours, e.notes,
           e.created_by_manager_id, COALESCE(m.full_name, ''), e.created_at
    FROM pto_entries e
    JOIN pto_types pt ON pt.id = e.pto_type_id
    LEFT JOIN managers m ON m.id = e.created_by_manager_id
    WHERE e.employee_id = $1
    ORDER BY e.start_date DESC, e.id DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var start, end time.Time
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.PTOTypeID, &entry.PTOTypeName,
			&start, &end, &entry.Hours, &entry.Notes,
			&entry.CreatedByManagerID, &entry.ManagerName, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.StartDate = NewDate(start)
		entry.EndDate = NewDate(end)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// CalendarEntries lists entries overlapping the month window, ordered by
// start date, then employee last and first name. The optional employee filter
// selects a fixed statement variant; identifiers are never interpolated.
func (s *Store) CalendarEntries(ctx context.Context, q CalendarQuery) ([]CalendarEntry, error) {
	const baseQuery = `
    SELECT e.id, e.employee_id, emp.first_name, emp.last_name,
           pt.display_name, e.start_date, e.end_date, e.hours, e.notes
    FROM pto_entries e
    JOIN pto_types pt ON pt.id = e.pto_type_id
    JOIN employees emp ON emp.id = e.employee_id
    WHERE e.start_date <= $1 AND e.end_date >= $2
    ORDER BY e.start_date ASC, emp.last_name ASC, emp.first_name ASC
  `
	const filteredQuery = `
    SELECT e.id, e.employee_id, emp.first_name, emp.last_name,
           pt.display_name, e.start_date, e.end_date, e.hours, e.notes
    FROM pto_entries e
    JOIN pto_types pt ON pt.id = e.pto_type_id
    JOIN employees emp ON emp.id = e.employee_id
    WHERE e.start_date <= $1 AND e.end_date >= $2 AND e.employee_id = $3
    ORDER BY e.start_date ASC, emp.last_name ASC, emp.first_name ASC
  `

	query := baseQuery
	args := []any{q.MonthEnd.Time, q.MonthStart.Time}
	if q.EmployeeID > 0 {
		query = filteredQuery
		args = append(args, q.EmployeeID)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []CalendarEntry
	for rows.Next() {
		var entry CalendarEntry
		var start, end time.Time
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.EmployeeFirst, &entry.EmployeeLast,
			&entry.PTOTypeName, &start, &end, &entry.Hours, &entry.Notes); err != nil {
			return nil, err
		}
		entry.StartDate = NewDate(start)
		entry.EndDate = NewDate(end)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
