package config

import (
	"net/url"
	"reflect"
	"testing"
	"time"

	kit "reviewlens/internal/platform/testkit"
)

func TestPrefixComposesKeys(t *testing.T) {
	web := New().Prefix("REVIEWLENS_").Prefix("WEB_")
	if got := web.Key("PORT"); got != "REVIEWLENS_WEB_PORT" {
		t.Fatalf("Key = %q, want REVIEWLENS_WEB_PORT", got)
	}
}

func TestMustGetters(t *testing.T) {
	c := New().Prefix("RL_T_")
	t.Setenv("RL_T_NAME", "  reviewlens ")
	t.Setenv("RL_T_N", " 8 ")
	t.Setenv("RL_T_ON", "true")
	t.Setenv("RL_T_WAIT", "250ms")
	t.Setenv("RL_T_URL", "https://api.example.com/v1")
	t.Setenv("RL_T_PORT", "4000")

	if got := c.MustString("NAME"); got != "reviewlens" {
		t.Fatalf("MustString = %q", got)
	}
	if got := c.MustInt("N"); got != 8 {
		t.Fatalf("MustInt = %d", got)
	}
	if !c.MustBool("ON") {
		t.Fatal("MustBool = false")
	}
	if got := c.MustDuration("WAIT"); got != 250*time.Millisecond {
		t.Fatalf("MustDuration = %v", got)
	}
	if u := c.MustURL("URL"); u.Host != "api.example.com" {
		t.Fatalf("MustURL host = %q", u.Host)
	}
	if got := c.MustPort("PORT"); got != ":4000" {
		t.Fatalf("MustPort = %q", got)
	}
}

func TestMustGettersPanic(t *testing.T) {
	c := New().Prefix("RL_P_")
	t.Setenv("RL_P_BADINT", "x")
	t.Setenv("RL_P_BADBOOL", "maybe")
	t.Setenv("RL_P_BADDUR", "soon")
	t.Setenv("RL_P_RELURL", "/relative")
	t.Setenv("RL_P_BIGPORT", "70000")

	tests := map[string]func(){
		"missing string": func() { c.MustString("NOPE") },
		"bad int":        func() { c.MustInt("BADINT") },
		"bad bool":       func() { c.MustBool("BADBOOL") },
		"bad duration":   func() { c.MustDuration("BADDUR") },
		"relative url":   func() { c.MustURL("RELURL") },
		"port range":     func() { c.MustPort("BIGPORT") },
		"require":        func() { c.Require("BADINT", "NOPE") },
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) { kit.MustPanic(t, fn) })
	}
}

func TestMayGetters(t *testing.T) {
	c := New().Prefix("RL_M_")
	t.Setenv("RL_M_INT", "3")
	t.Setenv("RL_M_BADINT", "three")
	t.Setenv("RL_M_F", "0.5")
	t.Setenv("RL_M_B", "0")
	t.Setenv("RL_M_D", "2s")
	t.Setenv("RL_M_URL", "http://localhost:8000")
	t.Setenv("RL_M_RELURL", "localhost")

	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayInt("INT", 1); got != 3 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BADINT", 1); got != 1 {
		t.Fatalf("MayInt bad = %d, want default", got)
	}
	if got := c.MayFloat64("F", 1); got != 0.5 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if got := c.MayBool("B", true); got {
		t.Fatal("MayBool = true, want false")
	}
	if got := c.MayDuration("D", time.Second); got != 2*time.Second {
		t.Fatalf("MayDuration = %v", got)
	}
	def, _ := url.Parse("http://fallback")
	if got := c.MayURL("URL", def); got.Host != "localhost:8000" {
		t.Fatalf("MayURL = %v", got)
	}
	if got := c.MayURL("RELURL", def); got != def {
		t.Fatalf("MayURL relative = %v, want default", got)
	}
}

func TestMayCSVAndMap(t *testing.T) {
	c := New().Prefix("RL_C_")
	t.Setenv("RL_C_LIST", " a, ,b ,")
	t.Setenv("RL_C_BLANK", " , ")
	t.Setenv("RL_C_COLORS", "steam=#111111, gog_positive = #222 ,junk")

	if got := c.MayCSV("LIST", nil); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("MayCSV = %v", got)
	}
	if got := c.MayCSV("BLANK", []string{"d"}); !reflect.DeepEqual(got, []string{"d"}) {
		t.Fatalf("MayCSV blank = %v", got)
	}
	want := map[string]string{"steam": "#111111", "gog_positive": "#222"}
	if got := c.MayMap("COLORS", nil); !reflect.DeepEqual(got, want) {
		t.Fatalf("MayMap = %v, want %v", got, want)
	}
	if got := c.MayMap("MISSING", nil); got != nil {
		t.Fatalf("MayMap missing = %v, want nil", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("RL_E_")
	t.Setenv("RL_E_FMT", "JSON")
	t.Setenv("RL_E_BAD", "xml")

	if got := c.MayEnum("FMT", "console", "console", "json"); got != "json" {
		t.Fatalf("MayEnum = %q", got)
	}
	if got := c.MayEnum("MISSING", "console", "console", "json"); got != "console" {
		t.Fatalf("MayEnum default = %q", got)
	}
	kit.MustPanic(t, func() { c.MayEnum("BAD", "console", "console", "json") })
}
