package governor

import (
	"testing"

	"moltworks/replygate/pkg/state"
)

func testConfig() Config {
	return Config{
		DailyBudgetUSD: 1.00,
		MaxCallsPerDay: 200,
		SoftCapRatio:   0.80,
	}
}

// ============================================================================
// Hard Cap Tests
// ============================================================================

func TestCheckHard_UnderBothCaps(t *testing.T) {
	st := state.New("2026-03-07", "2026-03-07-12")
	st.SpentUSD = 0.50
	st.CallsToday = 100

	if denial := CheckHard(st, testConfig()); denial != nil {
		t.Errorf("Expected no denial, got %q", denial.Reason)
	}
}

func TestCheckHard_BudgetExhausted(t *testing.T) {
	st := state.New("2026-03-07", "2026-03-07-12")
	st.SpentUSD = 1.00

	denial := CheckHard(st, testConfig())
	if denial == nil {
		t.Fatal("Expected a denial at the spend ceiling")
	}
	if denial.Reason != ReasonBudgetExhausted {
		t.Errorf("Expected %q, got %q", ReasonBudgetExhausted, denial.Reason)
	}
	if denial.Budget.SpentUSD != 1.00 || denial.Budget.DailyBudgetUSD != 1.00 {
		t.Errorf("Expected budget snapshot on the denial, got %+v", denial.Budget)
	}
}

func TestCheckHard_OverBudget(t *testing.T) {
	st := state.New("2026-03-07", "2026-03-07-12")
	st.SpentUSD = 1.37

	denial := CheckHard(st, testConfig())
	if denial == nil || denial.Reason != ReasonBudgetExhausted {
		t.Fatalf("Expected budget_exhausted past the ceiling, got %+v", denial)
	}
}

func TestCheckHard_CallCap(t *testing.T) {
	st := state.New("2026-03-07", "2026-03-07-12")
	st.CallsToday = 200

	denial := CheckHard(st, testConfig())
	if denial == nil {
		t.Fatal("Expected a denial at the call ceiling")
	}
	if denial.Reason != ReasonDailyCallsCap {
		t.Errorf("Expected %q, got %q", ReasonDailyCallsCap, denial.Reason)
	}
}

func TestCheckHard_BudgetBeforeCalls(t *testing.T) {
	// Both ceilings hit: the spend ceiling wins.
	st := state.New("2026-03-07", "2026-03-07-12")
	st.SpentUSD = 1.00
	st.CallsToday = 200

	denial := CheckHard(st, testConfig())
	if denial == nil || denial.Reason != ReasonBudgetExhausted {
		t.Fatalf("Expected budget_exhausted to take precedence, got %+v", denial)
	}
}

// ============================================================================
// Soft Cap Tests
// ============================================================================

func TestCheckSoft_UnderThreshold(t *testing.T) {
	st := state.New("2026-03-07", "2026-03-07-12")
	st.SpentUSD = 0.79

	if denial := CheckSoft(st, testConfig()); denial != nil {
		t.Errorf("Expected no soft denial at 0.79, got %q", denial.Reason)
	}
}

func TestCheckSoft_AtThreshold(t *testing.T) {
	st := state.New("2026-03-07", "2026-03-07-12")
	st.SpentUSD = 0.80

	denial := CheckSoft(st, testConfig())
	if denial == nil {
		t.Fatal("Expected a soft denial exactly at the threshold")
	}
	if denial.Reason != ReasonSoftCapP2Blocked {
		t.Errorf("Expected %q, got %q", ReasonSoftCapP2Blocked, denial.Reason)
	}
	if denial.Budget.SoftCapThreshold != 0.80 {
		t.Errorf("Expected threshold 0.80 in snapshot, got %.2f", denial.Budget.SoftCapThreshold)
	}
	if denial.Budget.SoftCapRatio != 0.80 {
		t.Errorf("Expected ratio 0.80 in snapshot, got %.2f", denial.Budget.SoftCapRatio)
	}
}

func TestCheckSoft_CustomRatio(t *testing.T) {
	cfg := Config{DailyBudgetUSD: 2.00, MaxCallsPerDay: 200, SoftCapRatio: 0.50}
	st := state.New("2026-03-07", "2026-03-07-12")
	st.SpentUSD = 1.00

	denial := CheckSoft(st, cfg)
	if denial == nil {
		t.Fatal("Expected a soft denial at half of a $2 budget with ratio 0.5")
	}
	if denial.Budget.SoftCapThreshold != 1.00 {
		t.Errorf("Expected threshold 1.00, got %.2f", denial.Budget.SoftCapThreshold)
	}
}
