// Package precedence models the privilege precedence table a server advertises
// through ISUPPORT PREFIX. This is part of the Functional Core - no I/O, only
// pure functions.
package precedence

import (
	"fmt"
	"math"
	"strings"
)

// Unranked is the rank of a symbol that is empty or absent from the table.
// It sorts after every real privilege tier.
const Unranked = math.MaxInt

// Entry pairs a raw privilege code (e.g. "o") with its display symbol (e.g. "@").
type Entry struct {
	Code   string `json:"code" yaml:"code"`
	Symbol string `json:"symbol" yaml:"symbol"`
}

// Table is an ordered precedence table. Earlier entries denote strictly
// higher privilege. A nil or empty Table is valid and ranks nobody.
type Table []Entry

// Default returns the RFC 2812 table, (ov)@+, used when a server does not
// advertise PREFIX.
func Default() Table {
	return Table{
		{Code: "o", Symbol: "@"},
		{Code: "v", Symbol: "+"},
	}
}

// Len returns the number of tiers in the table.
func (t Table) Len() int {
	return len(t)
}

// Clone returns an independent copy so callers can snapshot a table that may
// be replaced mid-negotiation.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// Symbol returns the display symbol for code, or "" when the code is unknown.
func (t Table) Symbol(code string) string {
	for _, e := range t {
		if e.Code == code {
			return e.Symbol
		}
	}
	return ""
}

// Code returns the privilege code for symbol, or "" when the symbol is unknown.
func (t Table) Code(symbol string) string {
	for _, e := range t {
		if e.Symbol == symbol {
			return e.Code
		}
	}
	return ""
}

// Rank returns the index of symbol in the table (0 = highest privilege).
// Empty or unknown symbols get Unranked.
func (t Table) Rank(symbol string) int {
	if symbol == "" {
		return Unranked
	}
	for i, e := range t {
		if e.Symbol == symbol {
			return i
		}
	}
	return Unranked
}

// CodeRank returns the index of code in the table, or Unranked.
func (t Table) CodeRank(code string) int {
	if code == "" {
		return Unranked
	}
	for i, e := range t {
		if e.Code == code {
			return i
		}
	}
	return Unranked
}

// Validate checks that every entry is populated and that codes and symbols
// are each unique within the table.
func (t Table) Validate() error {
	codes := make(map[string]bool, len(t))
	symbols := make(map[string]bool, len(t))
	for i, e := range t {
		if e.Code == "" || e.Symbol == "" {
			return fmt.Errorf("%w: entry %d has an empty code or symbol", ErrMalformedPrefix, i)
		}
		if codes[e.Code] {
			return fmt.Errorf("%w: duplicate code %q", ErrMalformedPrefix, e.Code)
		}
		if symbols[e.Symbol] {
			return fmt.Errorf("%w: duplicate symbol %q", ErrMalformedPrefix, e.Symbol)
		}
		codes[e.Code] = true
		symbols[e.Symbol] = true
	}
	return nil
}

// String renders the table as a PREFIX value, e.g. "(qaohv)~&@%+".
// An empty table renders as "".
func (t Table) String() string {
	if len(t) == 0 {
		return ""
	}
	var codes, symbols strings.Builder
	for _, e := range t {
		codes.WriteString(e.Code)
		symbols.WriteString(e.Symbol)
	}
	return "(" + codes.String() + ")" + symbols.String()
}

// SplitPrefixed strips leading table symbols from a NAMES reply entry such
// as "@+alice" (multi-prefix). It returns the bare nick and the codes in the
// order their symbols appeared.
func (t Table) SplitPrefixed(entry string) (string, []string) {
	var codes []string
	rest := entry
	for rest != "" {
		matched := false
		for _, e := range t {
			if strings.HasPrefix(rest, e.Symbol) {
				codes = append(codes, e.Code)
				rest = rest[len(e.Symbol):]
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}
	return rest, codes
}
