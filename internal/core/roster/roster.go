package roster

import (
	"errors"
	"fmt"

	"github.com/example/roster/internal/core/participant"
	"github.com/example/roster/internal/core/precedence"
)

var (
	// ErrNotInRoster is returned when a nick is not present in the roster.
	ErrNotInRoster = errors.New("nick not in roster")
	// ErrNickInUse is returned when a rename targets another occupant's nick.
	ErrNickInUse = errors.New("nick already in use")
)

// Roster is the participant list of one channel. Records are kept in
// insertion order; Sorted computes the display order on demand.
// A Roster is not safe for concurrent use.
type Roster struct {
	channel string
	table   precedence.Table
	records []participant.Record
	opts    []Option
}

// New creates an empty roster for channel. table is snapshotted.
func New(channel string, table precedence.Table, opts ...Option) *Roster {
	return &Roster{
		channel: channel,
		table:   table.Clone(),
		opts:    opts,
	}
}

// Channel returns the channel name.
func (r *Roster) Channel() string { return r.channel }

// Table returns a copy of the table in effect.
func (r *Roster) Table() precedence.Table { return r.table.Clone() }

// Len returns the number of occupants.
func (r *Roster) Len() int { return len(r.records) }

// Add builds a record for attrs. An occupant with the same nick is replaced
// in place; otherwise the record is appended.
func (r *Roster) Add(attrs participant.Attributes) (participant.Record, error) {
	rec, err := participant.Build(attrs, r.table)
	if err != nil {
		return participant.Record{}, err
	}
	if i := r.index(rec.Nick); i >= 0 {
		r.records[i] = rec
	} else {
		r.records = append(r.records, rec)
	}
	return rec.Clone(), nil
}

// Remove drops nick and reports whether it was present.
func (r *Roster) Remove(nick string) bool {
	i := r.index(nick)
	if i < 0 {
		return false
	}
	r.records = append(r.records[:i], r.records[i+1:]...)
	return true
}

// Rename rebuilds oldNick's record under newNick, keeping its modes and its
// insertion position.
func (r *Roster) Rename(oldNick, newNick string) (participant.Record, error) {
	i := r.index(oldNick)
	if i < 0 {
		return participant.Record{}, fmt.Errorf("%w: %s", ErrNotInRoster, oldNick)
	}
	attrs := r.records[i].Attributes()
	attrs.Nick = newNick
	rec, err := participant.Build(attrs, r.table)
	if err != nil {
		return participant.Record{}, err
	}
	if j := r.index(rec.Nick); j >= 0 && j != i {
		return participant.Record{}, fmt.Errorf("%w: %s", ErrNickInUse, rec.Nick)
	}
	r.records[i] = rec
	return rec.Clone(), nil
}

// SetModes replaces nick's privilege codes and rebuilds its record.
func (r *Roster) SetModes(nick string, codes []string) (participant.Record, error) {
	i := r.index(nick)
	if i < 0 {
		return participant.Record{}, fmt.Errorf("%w: %s", ErrNotInRoster, nick)
	}
	rec, err := participant.Build(participant.Attributes{Nick: nick, Modes: codes}, r.table)
	if err != nil {
		return participant.Record{}, err
	}
	r.records[i] = rec
	return rec.Clone(), nil
}

// AddMode grants code to nick. Held codes are kept in table precedence order
// so the first-listed code is also the highest held; codes the table does not
// know go last. Granting a held code is a no-op.
func (r *Roster) AddMode(nick, code string) (participant.Record, error) {
	rec, ok := r.Find(nick)
	if !ok {
		return participant.Record{}, fmt.Errorf("%w: %s", ErrNotInRoster, nick)
	}
	if rec.HasMode(code) {
		return rec, nil
	}
	return r.SetModes(nick, InsertMode(rec.Modes, code, r.table))
}

// RemoveMode revokes code from nick. Revoking a code not held is a no-op.
func (r *Roster) RemoveMode(nick, code string) (participant.Record, error) {
	rec, ok := r.Find(nick)
	if !ok {
		return participant.Record{}, fmt.Errorf("%w: %s", ErrNotInRoster, nick)
	}
	if !rec.HasMode(code) {
		return rec, nil
	}
	return r.SetModes(nick, WithoutMode(rec.Modes, code))
}

// Find returns a copy of nick's record. Lookup is case-sensitive.
func (r *Roster) Find(nick string) (participant.Record, bool) {
	i := r.index(nick)
	if i < 0 {
		return participant.Record{}, false
	}
	return r.records[i].Clone(), true
}

// Records returns copies of the records in insertion order.
func (r *Roster) Records() []participant.Record {
	out := make([]participant.Record, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.Clone()
	}
	return out
}

// Rebuild switches to table and recomputes every record's derived fields.
func (r *Roster) Rebuild(table precedence.Table) {
	r.table = table.Clone()
	for i, rec := range r.records {
		r.records[i] = rec.Rebuild(r.table)
	}
}

// Sorted returns the display order. The insertion order is left untouched.
func (r *Roster) Sorted() []participant.Record {
	return Sort(r.records, r.table, r.opts...)
}

// Rank returns rec's tier under the roster's table and rank policy.
func (r *Roster) Rank(rec participant.Record) int {
	return Rank(rec, r.table, buildOptions(r.opts).rankBy)
}

// Symbol returns the symbol of the code that decides rec's tier.
func (r *Roster) Symbol(rec participant.Record) string {
	return RankSymbol(rec, r.table, buildOptions(r.opts).rankBy)
}

func (r *Roster) index(nick string) int {
	for i, rec := range r.records {
		if rec.Nick == nick {
			return i
		}
	}
	return -1
}

// InsertMode returns codes with code added at its precedence position.
// Unknown codes are appended after every known one.
func InsertMode(codes []string, code string, table precedence.Table) []string {
	rank := table.CodeRank(code)
	out := make([]string, 0, len(codes)+1)
	inserted := false
	for _, c := range codes {
		if !inserted && rank < table.CodeRank(c) {
			out = append(out, code)
			inserted = true
		}
		out = append(out, c)
	}
	if !inserted {
		out = append(out, code)
	}
	return out
}

// WithoutMode returns codes with every occurrence of code removed.
func WithoutMode(codes []string, code string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c != code {
			out = append(out, c)
		}
	}
	return out
}
