package discord

import (
	"reflect"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestParseRolePairs(t *testing.T) {
	t.Run("valid pairs", func(t *testing.T) {
		got, err := parseRolePairs("100:Red  200:Blue\t300:Green")
		if err != nil {
			t.Fatalf("parseRolePairs: %v", err)
		}
		want := map[string]string{"100": "Red", "200": "Blue", "300": "Green"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %#v; want %#v", got, want)
		}
	})
	t.Run("empty input yields empty map", func(t *testing.T) {
		got, err := parseRolePairs("   ")
		if err != nil || len(got) != 0 {
			t.Fatalf("got %#v err=%v; want empty map", got, err)
		}
	})

	bad := []string{
		"100",        // no separator
		"100:",       // empty label
		":Red",       // empty id
		"abc:Red",    // non-numeric id
		"100:Red :x", // one bad pair poisons the list
	}
	for _, in := range bad {
		if _, err := parseRolePairs(in); err == nil {
			t.Fatalf("parseRolePairs(%q) should fail", in)
		}
	}
}

func TestSnowflakeRoundTrip(t *testing.T) {
	if got := parseSnowflake("123456789012345678"); got != 123456789012345678 {
		t.Fatalf("parseSnowflake = %d", got)
	}
	if got := formatSnowflake(123456789012345678); got != "123456789012345678" {
		t.Fatalf("formatSnowflake = %q", got)
	}
}

func TestButtonStyle(t *testing.T) {
	cases := map[string]discordgo.ButtonStyle{
		"primary":   discordgo.PrimaryButton,
		"secondary": discordgo.SecondaryButton,
		"success":   discordgo.SuccessButton,
		"danger":    discordgo.DangerButton,
		"":          discordgo.PrimaryButton,
		"sparkly":   discordgo.PrimaryButton, // unknown falls back
	}
	for name, want := range cases {
		if got := buttonStyle(name); got != want {
			t.Fatalf("buttonStyle(%q) = %v; want %v", name, got, want)
		}
	}
}
