package core

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Checking AccountType = "checking"
	Savings  AccountType = "savings"
	Credit   AccountType = "credit"
	Mobile   AccountType = "mobile"
)

const (
	Income  CategoryKind = "income"
	Expense CategoryKind = "expense"
)

const (
	Weekly  PeriodKind = "weekly"
	Monthly PeriodKind = "monthly"
	Yearly  PeriodKind = "yearly"
)

type (
	AccountType  string
	CategoryKind string
	PeriodKind   string

	// Date is a calendar date without a time component. Transactions and
	// budget windows are bucketed by calendar date, never by timestamp.
	Date struct {
		time.Time
	}

	Account struct {
		ID        int64       `json:"id"`
		UserID    int64       `json:"-"`
		Name      string      `json:"name"`
		Bank      string      `json:"bank"`
		Type      AccountType `json:"type"`
		Balance   int64       `json:"balance"`
		CreatedAt time.Time   `json:"createdAt"`
	}

	Category struct {
		ID    int64        `json:"id"`
		Name  string       `json:"name"`
		Kind  CategoryKind `json:"type"`
		Color string       `json:"color"`
	}

	Transaction struct {
		ID          int64     `json:"id"`
		UserID      int64     `json:"-"`
		AccountID   int64     `json:"accountId"`
		CategoryID  int64     `json:"categoryId"`
		Description string    `json:"description"`
		Amount      int64     `json:"amount"`
		Date        Date      `json:"date"`
		Notes       string    `json:"notes,omitempty"`
		CreatedAt   time.Time `json:"createdAt"`

		// Display names resolved by list queries; empty elsewhere.
		Category string `json:"category,omitempty"`
		Account  string `json:"account,omitempty"`
	}

	Budget struct {
		ID         int64      `json:"id"`
		UserID     int64      `json:"-"`
		CategoryID int64      `json:"categoryId"`
		Amount     int64      `json:"amount"`
		Period     PeriodKind `json:"period"`
		StartDate  Date       `json:"startDate"`
		EndDate    Date       `json:"endDate"`
	}

	// BudgetStatus is a budget with its derived utilization. Spent is never
	// stored; it is recomputed from the transaction log on every read.
	BudgetStatus struct {
		Budget
		Category string `json:"category"`
		Color    string `json:"color"`
		Spent    int64  `json:"spent"`
	}

	Overrun struct {
		Category  string `json:"category"`
		Allocated int64  `json:"allocated"`
		Spent     int64  `json:"spent"`
		Overage   int64  `json:"overage"`
	}

	Goal struct {
		ID            int64     `json:"id"`
		UserID        int64     `json:"-"`
		Title         string    `json:"title"`
		Description   string    `json:"description"`
		TargetAmount  int64     `json:"targetAmount"`
		CurrentAmount int64     `json:"currentAmount"`
		Deadline      Date      `json:"deadline"`
		Category      string    `json:"category"`
		CreatedAt     time.Time `json:"createdAt"`
	}

	Insight struct {
		Kind     string `json:"kind"`
		Title    string `json:"title"`
		Message  string `json:"message"`
		Severity string `json:"severity"`
		Icon     string `json:"icon"`
		Color    string `json:"color"`
	}

	// TransactionFilter narrows ListTransactions. Zero values mean "no
	// constraint"; CategoryName "all" is treated the same as empty.
	TransactionFilter struct {
		CategoryName string
		Search       string
		From         Date
		To           Date
	}
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidRange  = errors.New("invalid date range")
	ErrStorage       = errors.New("storage failure")

	ErrEmptyName        = errors.New("empty name")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyTitle       = errors.New("empty title")
	ErrInvalidType      = errors.New("invalid account type")
	ErrInvalidPeriod    = errors.New("invalid budget period")
	ErrMissingUser      = errors.New("missing user identifier")
)

func (t AccountType) Valid() bool {
	switch t {
	case Checking, Savings, Credit, Mobile:
		return true
	}
	return false
}

func (k CategoryKind) Valid() bool {
	return k == Income || k == Expense
}

func (p PeriodKind) Valid() bool {
	switch p {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// CheckAmountSign enforces the category-direction invariant: a transaction
// amount must be non-zero, positive for income categories and negative for
// expense categories.
func CheckAmountSign(kind CategoryKind, amount int64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	if kind == Income && amount < 0 {
		return ErrInvalidAmount
	}
	if kind == Expense && amount > 0 {
		return ErrInvalidAmount
	}
	return nil
}

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MonthKey returns the YYYY-MM bucket key used by the monthly series.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date in its YYYY-MM-DD text form.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		if v == "" {
			*d = Date{}
			return nil
		}
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.Scan(string(v))
	}
	return fmt.Errorf("scan date: unsupported type %T", src)
}

// ValidateRange rejects windows whose end date precedes the start date.
// Open-ended windows (either side zero) are allowed.
func ValidateRange(from, to Date) error {
	if from.IsZero() || to.IsZero() {
		return nil
	}
	if to.Before(from.Time) {
		return ErrInvalidRange
	}
	return nil
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (b Budget) Validate() error {
	if b.Amount < 0 {
		return ErrInvalidAmount
	}
	if !b.Period.Valid() {
		return ErrInvalidPeriod
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return ErrInvalidRange
	}
	return ValidateRange(b.StartDate, b.EndDate)
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if g.TargetAmount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
