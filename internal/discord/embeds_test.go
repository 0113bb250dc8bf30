package discord

import (
	"testing"
	"time"
)

func TestMentionHelpers(t *testing.T) {
	if got := mention("123"); got != "<@123>" {
		t.Fatalf("mention = %q", got)
	}
	if got := chanRef(456); got != "<#456>" {
		t.Fatalf("chanRef = %q", got)
	}
	if got := roleRef(789); got != "<@&789>" {
		t.Fatalf("roleRef = %q", got)
	}
}

func TestDMNotice(t *testing.T) {
	e := successEmbed("t", "d")
	if got := dmNotice(e, true); len(got.Fields) != 0 {
		t.Fatalf("delivered DM must not add a notice, got %+v", got.Fields)
	}
	if got := dmNotice(e, false); len(got.Fields) != 1 || got.Fields[0].Name != "Notice" {
		t.Fatalf("undelivered DM must add the notice field, got %+v", got.Fields)
	}
}

func TestVerifiedEmbed_BirthdateFormat(t *testing.T) {
	bd := time.Date(2006, time.March, 4, 0, 0, 0, 0, time.UTC)
	e := verifiedEmbed("123", "alice", bd)
	if e.Color != colorGreen || len(e.Fields) != 3 {
		t.Fatalf("unexpected embed: %+v", e)
	}
	if e.Fields[2].Value != "04-03-2006" {
		t.Fatalf("birthdate format = %q; want day-month-year", e.Fields[2].Value)
	}
}

func TestUnderageEmbed(t *testing.T) {
	bd := time.Date(2010, time.January, 2, 0, 0, 0, 0, time.UTC)
	e := underageEmbed("123", "kid", bd, 14)
	if e.Color != colorRed || len(e.Fields) != 4 {
		t.Fatalf("unexpected embed: %+v", e)
	}
	if e.Fields[3].Value != "14" {
		t.Fatalf("age field = %q", e.Fields[3].Value)
	}
}

func TestWarnCountField(t *testing.T) {
	if got := warnCountField(2); got.Value != "2/3" {
		t.Fatalf("warnCountField = %q", got.Value)
	}
}
