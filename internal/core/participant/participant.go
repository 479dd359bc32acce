// Package participant builds normalized channel participant records.
// This is part of the Functional Core - no I/O, only pure functions.
package participant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/roster/internal/core/precedence"
)

// ErrInvalidAttribute matches any InvalidAttributeError via errors.Is.
var ErrInvalidAttribute = errors.New("invalid participant attribute")

// InvalidAttributeError reports raw attributes that cannot produce a record.
type InvalidAttributeError struct {
	Field  string
	Reason string
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("invalid participant %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidAttribute.
func (e *InvalidAttributeError) Is(target error) bool {
	return target == ErrInvalidAttribute
}

// Attributes are the raw inputs for a participant record.
type Attributes struct {
	// Nick is the display name. Required; surrounding whitespace is trimmed.
	Nick string
	// Modes are raw privilege codes in the order the transport delivered
	// them. Defaults to none.
	Modes []string
}

// Record is one channel occupant. Symbols and Mode are derived from Modes
// and the table the record was built with; rebuild rather than edit them.
type Record struct {
	Nick    string
	Modes   []string
	Symbols []string // Symbols[i] is the symbol for Modes[i], "" when unknown
	Mode    string   // Symbol of Modes[0], or ""
}

// Build constructs a record from attrs, resolving codes through table.
// Unknown codes resolve to an empty symbol. The only failure is a nick that
// is empty after trimming.
func Build(attrs Attributes, table precedence.Table) (Record, error) {
	nick := strings.TrimSpace(attrs.Nick)
	if nick == "" {
		return Record{}, &InvalidAttributeError{Field: "nick", Reason: "must not be empty"}
	}

	rec := Record{Nick: nick}
	if len(attrs.Modes) > 0 {
		rec.Modes = make([]string, len(attrs.Modes))
		rec.Symbols = make([]string, len(attrs.Modes))
		for i, code := range attrs.Modes {
			rec.Modes[i] = code
			rec.Symbols[i] = table.Symbol(code)
		}
		rec.Mode = rec.Symbols[0]
	}
	return rec, nil
}

// Attributes returns the raw inputs the record was built from.
func (r Record) Attributes() Attributes {
	return Attributes{Nick: r.Nick, Modes: cloneStrings(r.Modes)}
}

// Rebuild recomputes the derived fields against table. Used when the server
// renegotiates PREFIX.
func (r Record) Rebuild(table precedence.Table) Record {
	rec, err := Build(r.Attributes(), table)
	if err != nil {
		// r was built by Build, so its nick is already valid.
		return r.Clone()
	}
	return rec
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	return Record{
		Nick:    r.Nick,
		Modes:   cloneStrings(r.Modes),
		Symbols: cloneStrings(r.Symbols),
		Mode:    r.Mode,
	}
}

// HasMode reports whether the record holds code.
func (r Record) HasMode(code string) bool {
	for _, m := range r.Modes {
		if m == code {
			return true
		}
	}
	return false
}

// Prefixed returns the nick with its primary symbol, e.g. "@alice".
func (r Record) Prefixed() string {
	return r.Mode + r.Nick
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
