// Package roster orders channel participants for display.
// This is part of the Functional Core - no I/O, only pure functions.
package roster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/roster/internal/core/participant"
	"github.com/example/roster/internal/core/precedence"
)

// RankPolicy selects which held code decides a participant's tier.
type RankPolicy int

const (
	// RankFirst ranks by the first-listed code (the record's Mode).
	RankFirst RankPolicy = iota
	// RankHighest ranks by the highest-privileged code held.
	RankHighest
)

// ParseRankPolicy resolves a configured policy name ("first" or "highest").
func ParseRankPolicy(name string) (RankPolicy, error) {
	switch name {
	case "", "first":
		return RankFirst, nil
	case "highest":
		return RankHighest, nil
	default:
		return RankFirst, fmt.Errorf("unknown rank policy %q (want \"first\" or \"highest\")", name)
	}
}

func (p RankPolicy) String() string {
	if p == RankHighest {
		return "highest"
	}
	return "first"
}

type options struct {
	comparer Comparer
	rankBy   RankPolicy
}

// Option configures Sort and Roster.
type Option func(*options)

// WithComparer replaces the default FoldComparer.
func WithComparer(c Comparer) Option {
	return func(o *options) {
		if c != nil {
			o.comparer = c
		}
	}
}

// WithRankBy sets the rank policy. Default RankFirst.
func WithRankBy(p RankPolicy) Option {
	return func(o *options) {
		o.rankBy = p
	}
}

func buildOptions(opts []Option) options {
	o := options{comparer: FoldComparer(), rankBy: RankFirst}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Rank returns the tier of rec under table: 0 is the highest privilege and
// precedence.Unranked marks unprivileged or unknown symbols.
func Rank(rec participant.Record, table precedence.Table, policy RankPolicy) int {
	if policy == RankHighest {
		best := precedence.Unranked
		for _, sym := range rec.Symbols {
			if r := table.Rank(sym); r < best {
				best = r
			}
		}
		return best
	}
	return table.Rank(rec.Mode)
}

// RankSymbol returns the symbol of the code that decides rec's tier under
// policy, or "" when rec is unranked.
func RankSymbol(rec participant.Record, table precedence.Table, policy RankPolicy) string {
	rank := Rank(rec, table, policy)
	if rank == precedence.Unranked {
		return ""
	}
	return table[rank].Symbol
}

type ranked struct {
	rec  participant.Record
	rank int
	key  string // comparer sort key, set when the comparer is a keyer
}

// Sort returns a new slice ordered by rank, then nick. Equal records keep
// their input order. Neither records nor table are modified.
func Sort(records []participant.Record, table precedence.Table, opts ...Option) []participant.Record {
	o := buildOptions(opts)

	k, keyed := o.comparer.(keyer)
	items := make([]ranked, len(records))
	for i, rec := range records {
		items[i] = ranked{rec: rec.Clone(), rank: Rank(rec, table, o.rankBy)}
		if keyed {
			items[i].key = k.Key(rec.Nick)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		if keyed {
			if c := strings.Compare(a.key, b.key); c != 0 {
				return c < 0
			}
			return a.rec.Nick < b.rec.Nick
		}
		return o.comparer.Compare(a.rec.Nick, b.rec.Nick) < 0
	})

	out := make([]participant.Record, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return out
}
