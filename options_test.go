package sie

import (
	"strings"
	"testing"
)

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if len(o.Encodings) != 3 {
		t.Errorf("encodings %v", o.Encodings)
	}
	if o.Currency != "SEK" {
		t.Errorf("currency %q", o.Currency)
	}
	if len(o.EquityPrefixes) != 2 {
		t.Errorf("equity prefixes %v", o.EquityPrefixes)
	}
	if o.Logger == nil {
		t.Error("nil logger")
	}
}

func TestOptionsPartialOverride(t *testing.T) {
	o := Options{Currency: "EUR"}.withDefaults()
	if o.Currency != "EUR" {
		t.Errorf("currency %q", o.Currency)
	}
	if len(o.Encodings) != 3 {
		t.Errorf("encodings not defaulted: %v", o.Encodings)
	}
}

func TestOptionsCurrencyOnLedger(t *testing.T) {
	l, err := ParseWithOptions(strings.NewReader("#FLAGGA 0\n"), Options{Currency: "EUR"})
	if err != nil {
		t.Fatal(err)
	}
	if l.Metadata.Currency != "EUR" {
		t.Errorf("currency %q", l.Metadata.Currency)
	}
}
