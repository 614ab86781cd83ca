package payrun

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from PayrunStatus
		to   PayrunStatus
		want bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusApproved, StatusPaid, true},
		{StatusPaid, StatusArchived, true},
		{StatusPending, StatusPaid, false},
		{StatusPending, StatusArchived, false},
		{StatusApproved, StatusPending, false},
		{StatusApproved, StatusArchived, false},
		{StatusPaid, StatusPending, false},
		{StatusPaid, StatusApproved, false},
		{StatusArchived, StatusPending, false},
		{StatusArchived, StatusApproved, false},
		{StatusArchived, StatusPaid, false},
	}
	for _, c := range cases {
		got := CanTransition(c.from, c.to)
		if got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestParsePayrunStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "paid", "archived"} {
		if _, err := ParsePayrunStatus(s); err != nil {
			t.Errorf("ParsePayrunStatus(%q) returned error: %v", s, err)
		}
	}
	for _, s := range []string{"", "draft", "PENDING", "completed", "cancelled"} {
		if _, err := ParsePayrunStatus(s); err == nil {
			t.Errorf("ParsePayrunStatus(%q) accepted unknown status", s)
		}
	}
}

func TestParsePayrunType(t *testing.T) {
	for _, s := range []string{"salary", "allowance"} {
		if _, err := ParsePayrunType(s); err != nil {
			t.Errorf("ParsePayrunType(%q) returned error: %v", s, err)
		}
	}
	for _, s := range []string{"", "bonus", "Salary", "deduction"} {
		if _, err := ParsePayrunType(s); err == nil {
			t.Errorf("ParsePayrunType(%q) accepted unknown type", s)
		}
	}
}
