package loan

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from LoanStatus
		to   LoanStatus
		want bool
	}{
		{StatusPending, StatusHRApproved, true},
		{StatusPending, StatusHRRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusHRApproved, StatusActive, true},
		{StatusHRApproved, StatusCancelled, true},
		{StatusActive, StatusCompleted, true},
		{StatusPending, StatusActive, false},
		{StatusPending, StatusCompleted, false},
		{StatusHRApproved, StatusHRRejected, false},
		{StatusHRApproved, StatusCompleted, false},
		{StatusActive, StatusCancelled, false},
		{StatusActive, StatusHRApproved, false},
		{StatusHRRejected, StatusPending, false},
		{StatusCompleted, StatusActive, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, c := range cases {
		got := CanTransition(c.from, c.to)
		if got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestParseLoanStatus(t *testing.T) {
	for _, s := range []string{"pending", "hr_approved", "hr_rejected", "active", "completed", "cancelled"} {
		if _, err := ParseLoanStatus(s); err != nil {
			t.Errorf("ParseLoanStatus(%q) returned error: %v", s, err)
		}
	}
	for _, s := range []string{"", "approved", "disbursed", "PENDING", "rejected"} {
		if _, err := ParseLoanStatus(s); err == nil {
			t.Errorf("ParseLoanStatus(%q) accepted unknown status", s)
		}
	}
}

func TestLoanStatusIsOpen(t *testing.T) {
	open := []LoanStatus{StatusPending, StatusHRApproved, StatusActive}
	closed := []LoanStatus{StatusHRRejected, StatusCompleted, StatusCancelled}
	for _, s := range open {
		if !s.IsOpen() {
			t.Errorf("%s should count as open exposure", s)
		}
	}
	for _, s := range closed {
		if s.IsOpen() {
			t.Errorf("%s should not count as open exposure", s)
		}
	}
}

func TestParseInstallmentStatus(t *testing.T) {
	for _, s := range []string{"pending", "paid", "overdue"} {
		if _, err := ParseInstallmentStatus(s); err != nil {
			t.Errorf("ParseInstallmentStatus(%q) returned error: %v", s, err)
		}
	}
	for _, s := range []string{"", "due", "late", "Paid"} {
		if _, err := ParseInstallmentStatus(s); err == nil {
			t.Errorf("ParseInstallmentStatus(%q) accepted unknown status", s)
		}
	}
}
