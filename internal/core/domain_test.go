package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCheckAmountSign(t *testing.T) {
	tests := []struct {
		name    string
		kind    CategoryKind
		amount  int64
		wantErr bool
	}{
		{"income positive", Income, 150000, false},
		{"expense negative", Expense, -45000, false},
		{"zero amount", Income, 0, true},
		{"zero amount expense", Expense, 0, true},
		{"income negative", Income, -100, true},
		{"expense positive", Expense, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAmountSign(tt.kind, tt.amount)
			if tt.wantErr && !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("CheckAmountSign(%v, %d) = %v, want ErrInvalidAmount", tt.kind, tt.amount, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("CheckAmountSign(%v, %d) = %v, want nil", tt.kind, tt.amount, err)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	from := NewDate(2024, 1, 1)
	to := NewDate(2024, 3, 31)

	if err := ValidateRange(from, to); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := ValidateRange(to, from); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("inverted range accepted: %v", err)
	}
	// Single-day windows are inclusive and therefore valid
	if err := ValidateRange(from, from); err != nil {
		t.Errorf("single-day range rejected: %v", err)
	}
	// Open-ended windows are allowed
	if err := ValidateRange(Date{}, to); err != nil {
		t.Errorf("open start rejected: %v", err)
	}
}

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := d.String(); got != "2024-02-29" {
		t.Errorf("String() = %q, want 2024-02-29", got)
	}
	if got := d.MonthKey(); got != "2024-02" {
		t.Errorf("MonthKey() = %q, want 2024-02", got)
	}

	if _, err := ParseDate("29/02/2024"); err == nil {
		t.Error("ParseDate accepted non-ISO format")
	}
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(NewDate(2024, 1, 15))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-15"` {
		t.Errorf("marshal = %s", b)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2024-01-15"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.String() != "2024-01-15" {
		t.Errorf("unmarshal = %s", d)
	}

	var zero Date
	if err := json.Unmarshal([]byte(`null`), &zero); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !zero.IsZero() {
		t.Error("null should produce the zero date")
	}
}

func TestAccountValidate(t *testing.T) {
	acc := Account{Name: "Compte courant", Bank: "Ecobank", Type: Checking}
	if err := acc.Validate(); err != nil {
		t.Errorf("valid account rejected: %v", err)
	}

	acc.Name = "  "
	if err := acc.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name accepted: %v", err)
	}

	acc.Name = "Compte"
	acc.Type = "offshore"
	if err := acc.Validate(); !errors.Is(err, ErrInvalidType) {
		t.Errorf("bad type accepted: %v", err)
	}
}

func TestBudgetValidate(t *testing.T) {
	b := Budget{
		CategoryID: 1,
		Amount:     300000,
		Period:     Monthly,
		StartDate:  NewDate(2024, 1, 1),
		EndDate:    NewDate(2024, 1, 31),
	}
	if err := b.Validate(); err != nil {
		t.Errorf("valid budget rejected: %v", err)
	}

	b.Amount = -1
	if err := b.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative allocation accepted: %v", err)
	}

	b.Amount = 300000
	b.Period = "daily"
	if err := b.Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("bad period accepted: %v", err)
	}

	b.Period = Monthly
	b.StartDate, b.EndDate = b.EndDate, b.StartDate
	if err := b.Validate(); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("inverted window accepted: %v", err)
	}
}

func TestGoalValidate(t *testing.T) {
	g := Goal{Title: "Fonds d'urgence", TargetAmount: 1000000}
	if err := g.Validate(); err != nil {
		t.Errorf("valid goal rejected: %v", err)
	}

	g.TargetAmount = 0
	if err := g.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero target accepted: %v", err)
	}

	g.TargetAmount = 1000
	g.Title = ""
	if err := g.Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("empty title accepted: %v", err)
	}
}
