package pto

import "time"

// Actor carries the acting manager's identity into every write operation.
type Actor struct {
	ManagerID int64
	Role      string
}

type Employee struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	EmploymentType string    `json:"employmentType"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

type PTOType struct {
	ID           int64     `json:"id"`
	Code         string    `json:"code"`
	DisplayName  string    `json:"displayName"`
	IsActive     bool      `json:"isActive"`
	DefaultHours float64   `json:"defaultHours"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Balance struct {
	EmployeeID    int64   `json:"employeeId"`
	PTOTypeID     int64   `json:"ptoTypeId"`
	HoursAllotted float64 `json:"hoursAllotted"`
	HoursUsed     float64 `json:"hoursUsed"`
}

// Remaining is the number of hours still available on the balance.
func (b Balance) Remaining() float64 {
	return b.HoursAllotted - b.HoursUsed
}

type Entry struct {
	ID                 int64     `json:"id"`
	EmployeeID         int64     `json:"employeeId"`
	PTOTypeID          int64     `json:"ptoTypeId"`
	PTOTypeName        string    `json:"ptoTypeName,omitempty"`
	StartDate          Date      `json:"startDate"`
	EndDate            Date      `json:"endDate"`
	Hours              float64   `json:"hours"`
	Notes              string    `json:"notes"`
	CreatedByManagerID *int64    `json:"createdByManagerId,omitempty"`
	ManagerName        string    `json:"managerName,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// TypeBalance is one balance row of a PTO type joined with the owning
// employee's name, used when vetting a propagated allotment change.
type TypeBalance struct {
	EmployeeID    int64
	FirstName     string
	LastName      string
	HoursAllotted float64
	HoursUsed     float64
}

// BalanceRow is one line of the per-employee balance summary.
type BalanceRow struct {
	PTOTypeID   int64   `json:"ptoTypeId"`
	Code        string  `json:"code"`
	DisplayName string  `json:"displayName"`
	Allotted    float64 `json:"allotted"`
	Used        float64 `json:"used"`
	Remaining   float64 `json:"remaining"`
}

type CalendarEntry struct {
	ID            int64     `json:"id"`
	EmployeeID    int64     `json:"employeeId"`
	EmployeeFirst string    `json:"employeeFirst"`
	EmployeeLast  string    `json:"employeeLast"`
	PTOTypeName   string    `json:"ptoTypeName"`
	StartDate     Date      `json:"startDate"`
	EndDate       Date      `json:"endDate"`
	Hours         float64   `json:"hours"`
	Notes         string    `json:"notes"`
}

type CalendarQuery struct {
	MonthStart Date
	MonthEnd   Date
	EmployeeID int64 // 0 means all employees
}

type AddEmployeeCommand struct {
	FirstName      string
	LastName       string
	EmploymentType string
	Phone          string
	Email          string
}

type CreateTypeCommand struct {
	Code         string
	DisplayName  string
	DefaultHours float64
}

type UpdateTypeCommand struct {
	ID           int64
	DisplayName  string
	DefaultHours *float64
	Propagate    bool
}

type AllotmentChange struct {
	PTOTypeID     int64
	HoursAllotted float64
}

type LogEntryCommand struct {
	EmployeeID int64
	PTOTypeID  int64
	StartDate  Date
	EndDate    Date
	Hours      float64
	Notes      string
}
