package sie

import (
	"io"
	"log/slog"

	"dario.cat/mergo"
)

// Options tunes a parse. The zero value means "use defaults"; any field
// left unset is filled in from DefaultOptions.
type Options struct {
	// Encodings is the ordered list the encoding resolver tries.
	Encodings []Encoding
	// EquityPrefixes are the account-number prefixes classified as
	// equity rather than liability on the balance sheet. The default
	// "20"/"21" split is a vendor-observed heuristic, not a documented
	// BAS range, so it stays configurable.
	EquityPrefixes []string
	// Currency is recorded on the ledger metadata. SIE 4 files covered
	// here are single-currency.
	Currency string
	// Logger receives one structured event per diagnostic. Defaults to
	// a discarding logger; diagnostics are always collected on the
	// ledger regardless.
	Logger *slog.Logger
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Encodings:      DefaultEncodings(),
		EquityPrefixes: []string{"20", "21"},
		Currency:       "SEK",
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	_ = mergo.Merge(&o, def)
	return o
}
