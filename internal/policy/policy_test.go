package policy

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge_CalendarAnniversary(t *testing.T) {
	today := date(2024, time.June, 15)

	cases := []struct {
		name      string
		birthdate time.Time
		want      int
	}{
		{"anniversary today", date(2006, time.June, 15), 18},
		{"anniversary tomorrow", date(2006, time.June, 16), 17},
		{"anniversary yesterday", date(2006, time.June, 14), 18},
		{"earlier month", date(2006, time.January, 1), 18},
		{"later month", date(2006, time.December, 31), 17},
		{"same day much older", date(1980, time.June, 15), 44},
		{"born this year", date(2024, time.January, 1), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Age(tc.birthdate, today); got != tc.want {
				t.Fatalf("Age(%v, %v) = %d; want %d", tc.birthdate, today, got, tc.want)
			}
		})
	}
}

func TestAge_LeapDayBirthdate(t *testing.T) {
	bd := date(2004, time.February, 29)
	// In a non-leap year the anniversary has not occurred on Feb 28.
	if got := Age(bd, date(2022, time.February, 28)); got != 17 {
		t.Fatalf("Age on Feb 28 = %d; want 17", got)
	}
	if got := Age(bd, date(2022, time.March, 1)); got != 18 {
		t.Fatalf("Age on Mar 1 = %d; want 18", got)
	}
}

func TestIsOfAge_Boundary(t *testing.T) {
	today := date(2024, time.June, 15)
	if !IsOfAge(date(2006, time.June, 15), today) {
		t.Fatalf("member turning 18 today should pass")
	}
	if IsOfAge(date(2006, time.June, 16), today) {
		t.Fatalf("member turning 18 tomorrow should fail")
	}
	if !IsOfAge(date(1990, time.January, 1), today) {
		t.Fatalf("adult should pass")
	}
}

func TestCanModerate(t *testing.T) {
	if !CanModerate(10, 5, false) {
		t.Fatalf("higher actor rank should moderate")
	}
	if CanModerate(5, 5, false) {
		t.Fatalf("equal rank must not moderate")
	}
	if CanModerate(3, 5, false) {
		t.Fatalf("lower rank must not moderate")
	}
	if !CanModerate(0, 100, true) {
		t.Fatalf("owner moderates regardless of rank")
	}
}

func TestBotCanModerate(t *testing.T) {
	if !BotCanModerate(10, 5) {
		t.Fatalf("bot above target should act")
	}
	if BotCanModerate(5, 5) || BotCanModerate(3, 5) {
		t.Fatalf("bot at or below target must refuse")
	}
}

func TestAutoBanTransitions(t *testing.T) {
	// A warning sequence 0->1->2->3->4 fires the auto-ban exactly once,
	// at the 2->3 transition.
	fires := []bool{}
	for before := int64(0); before < 4; before++ {
		fires = append(fires, CrossedAutoBanThreshold(before, before+1))
	}
	want := []bool{false, false, true, false}
	for i := range want {
		if fires[i] != want[i] {
			t.Fatalf("transition %d->%d fired=%v; want %v", i, i+1, fires[i], want[i])
		}
	}

	if ShouldAutoBan(2) {
		t.Fatalf("count 2 must not auto-ban")
	}
	if !ShouldAutoBan(3) || !ShouldAutoBan(7) {
		t.Fatalf("counts at or above 3 must auto-ban")
	}
}

func TestAutoBanPrevented(t *testing.T) {
	if AutoBanPrevented(2) {
		t.Fatalf("removal below threshold is not a prevention")
	}
	if !AutoBanPrevented(3) || !AutoBanPrevented(5) {
		t.Fatalf("removal at or above threshold is a prevention")
	}
}

func TestToggleRole(t *testing.T) {
	roles := []string{"1", "2", "3"}
	if got := ToggleRole(roles, "2"); got != RevokeRole {
		t.Fatalf("held role should revoke, got %v", got)
	}
	if got := ToggleRole(roles, "9"); got != GrantRole {
		t.Fatalf("missing role should grant, got %v", got)
	}
	if got := ToggleRole(nil, "1"); got != GrantRole {
		t.Fatalf("empty role set should grant, got %v", got)
	}
}
