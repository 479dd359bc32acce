package roster

import (
	"reflect"
	"testing"

	"golang.org/x/text/language"

	"github.com/example/roster/internal/core/participant"
	"github.com/example/roster/internal/core/precedence"
)

func networkTable() precedence.Table {
	return precedence.Table{
		{Code: "q", Symbol: "~"},
		{Code: "a", Symbol: "&"},
		{Code: "o", Symbol: "@"},
		{Code: "h", Symbol: "%"},
		{Code: "v", Symbol: "+"},
	}
}

// user builds a record or fails the test.
func user(t *testing.T, table precedence.Table, nick string, modes ...string) participant.Record {
	t.Helper()
	rec, err := participant.Build(participant.Attributes{Nick: nick, Modes: modes}, table)
	if err != nil {
		t.Fatalf("Build(%q) failed: %v", nick, err)
	}
	return rec
}

func users(t *testing.T, table precedence.Table, nicks ...string) []participant.Record {
	t.Helper()
	out := make([]participant.Record, len(nicks))
	for i, n := range nicks {
		out[i] = user(t, table, n)
	}
	return out
}

func nicks(records []participant.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Nick
	}
	return out
}

func TestSort_Scenarios(t *testing.T) {
	table := networkTable()

	tests := []struct {
		name    string
		records []participant.Record
		want    []string
	}{
		{
			name:    "simple user list",
			records: users(t, table, "JocelynD", "YaManicKill", "astorije", "xPaw", "Max-P"),
			want:    []string{"astorije", "JocelynD", "Max-P", "xPaw", "YaManicKill"},
		},
		{
			name: "grouped by modes",
			records: []participant.Record{
				user(t, table, "JocelynD", "a", "o"),
				user(t, table, "YaManicKill", "v"),
				user(t, table, "astorije", "h"),
				user(t, table, "xPaw", "q"),
				user(t, table, "Max-P", "o"),
			},
			want: []string{"xPaw", "JocelynD", "Max-P", "astorije", "YaManicKill"},
		},
		{
			name: "mix of users and modes",
			records: []participant.Record{
				user(t, table, "JocelynD"),
				user(t, table, "YaManicKill", "o"),
				user(t, table, "astorije"),
				user(t, table, "xPaw"),
				user(t, table, "Max-P", "o"),
			},
			want: []string{"Max-P", "YaManicKill", "astorije", "JocelynD", "xPaw"},
		},
		{
			name:    "case-insensitive",
			records: users(t, table, "aB", "Ad", "AA", "ac"),
			want:    []string{"AA", "aB", "ac", "Ad"},
		},
		{
			name: "special characters",
			records: users(t, table,
				"[foo", "]foo", "(foo)", "{foo}", "<foo>", "_foo", "@foo", "^foo",
				"&foo", "!foo", "+foo", "Foo"),
			want: []string{
				"!foo", "&foo", "(foo)", "+foo", "<foo>", "@foo", "[foo", "]foo",
				"^foo", "_foo", "Foo", "{foo}",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nicks(Sort(tt.records, table))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sort() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSort_Idempotent(t *testing.T) {
	table := networkTable()
	records := []participant.Record{
		user(t, table, "zed", "v"),
		user(t, table, "Amy"),
		user(t, table, "bob", "o"),
		user(t, table, "amy"),
		user(t, table, "carl", "x"),
		user(t, table, "Bob", "o"),
	}

	once := Sort(records, table)
	twice := Sort(once, table)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Sort is not idempotent:\n once  %v\n twice %v", nicks(once), nicks(twice))
	}
}

func TestSort_GroupingAndTieBreak(t *testing.T) {
	table := networkTable()
	records := []participant.Record{
		user(t, table, "mallory", "v"),
		user(t, table, "Eve"),
		user(t, table, "trent", "q"),
		user(t, table, "alice", "o"),
		user(t, table, "Bob", "o"),
		user(t, table, "peggy", "zz"),
		user(t, table, "carol", "h"),
		user(t, table, "dave"),
	}

	cmp := FoldComparer()
	sorted := Sort(records, table)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		pr, cr := table.Rank(prev.Mode), table.Rank(cur.Mode)
		if pr > cr {
			t.Errorf("%s (rank %d) sorted before %s (rank %d)", prev.Nick, pr, cur.Nick, cr)
		}
		if pr == cr && cmp.Compare(prev.Nick, cur.Nick) > 0 {
			t.Errorf("within rank %d, %s sorted before %s", pr, prev.Nick, cur.Nick)
		}
	}

	// Unknown code sorts with the unprivileged, after every ranked record.
	last := nicks(sorted[len(sorted)-3:])
	want := []string{"dave", "Eve", "peggy"}
	if !reflect.DeepEqual(last, want) {
		t.Errorf("unprivileged tail = %v, want %v", last, want)
	}
}

func TestSort_Stable(t *testing.T) {
	table := networkTable()
	first := user(t, table, "dup", "o")
	second := user(t, table, "dup", "o")
	second.Symbols = append(second.Symbols, "marker")

	sorted := Sort([]participant.Record{first, second}, table)
	if len(sorted[0].Symbols) != 1 || len(sorted[1].Symbols) != 2 {
		t.Errorf("equal records changed relative order: %v", sorted)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	table := networkTable()
	records := users(t, table, "b", "a", "c")
	records[0] = user(t, table, "b", "o")
	before := make([]participant.Record, len(records))
	for i, r := range records {
		before[i] = r.Clone()
	}

	sorted := Sort(records, table)
	sorted[0].Modes[0] = "q"
	sorted[0].Mode = "~"

	if !reflect.DeepEqual(records, before) {
		t.Errorf("Sort mutated its input: %v", records)
	}
}

func TestSort_EmptyInputs(t *testing.T) {
	if got := Sort(nil, networkTable()); len(got) != 0 {
		t.Errorf("Sort(nil) = %v, want empty", got)
	}

	records := []participant.Record{
		user(t, nil, "b", "o"),
		user(t, nil, "A"),
	}
	got := nicks(Sort(records, nil))
	if want := []string{"A", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sort with empty table = %v, want %v", got, want)
	}
}

func TestSort_SymbolAbsentFromTable(t *testing.T) {
	full := networkTable()
	// Built while the server advertised ~, then sorted against RFC 2812
	// defaults after renegotiation.
	owner := user(t, full, "owner", "q")
	voiced := user(t, full, "voiced", "v")
	plain := user(t, full, "aaron")

	got := nicks(Sort([]participant.Record{owner, plain, voiced}, precedence.Default()))
	if want := []string{"voiced", "aaron", "owner"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sort() = %v, want %v", got, want)
	}
}

func TestSort_RankHighest(t *testing.T) {
	table := networkTable()
	records := []participant.Record{
		user(t, table, "bob", "o"),
		user(t, table, "alice", "v", "q"),
	}

	first := nicks(Sort(records, table))
	if want := []string{"bob", "alice"}; !reflect.DeepEqual(first, want) {
		t.Errorf("RankFirst Sort() = %v, want %v", first, want)
	}

	highest := nicks(Sort(records, table, WithRankBy(RankHighest)))
	if want := []string{"alice", "bob"}; !reflect.DeepEqual(highest, want) {
		t.Errorf("RankHighest Sort() = %v, want %v", highest, want)
	}
}

func TestSort_WithCollateComparer(t *testing.T) {
	table := networkTable()
	records := users(t, table, "Zoe", "émile", "eve")

	folded := nicks(Sort(records, table))
	if want := []string{"eve", "Zoe", "émile"}; !reflect.DeepEqual(folded, want) {
		t.Errorf("fold Sort() = %v, want %v", folded, want)
	}

	collated := nicks(Sort(records, table, WithComparer(CollateComparer(language.French))))
	if want := []string{"émile", "eve", "Zoe"}; !reflect.DeepEqual(collated, want) {
		t.Errorf("collate Sort() = %v, want %v", collated, want)
	}
}

func TestRank(t *testing.T) {
	table := networkTable()

	tests := []struct {
		name   string
		rec    participant.Record
		policy RankPolicy
		want   int
	}{
		{"no modes", user(t, table, "a"), RankFirst, precedence.Unranked},
		{"first code", user(t, table, "a", "h", "q"), RankFirst, 3},
		{"highest code", user(t, table, "a", "h", "q"), RankHighest, 0},
		{"unknown only", user(t, table, "a", "x"), RankHighest, precedence.Unranked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rank(tt.rec, table, tt.policy); got != tt.want {
				t.Errorf("Rank() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseRankPolicy(t *testing.T) {
	for name, want := range map[string]RankPolicy{"": RankFirst, "first": RankFirst, "highest": RankHighest} {
		got, err := ParseRankPolicy(name)
		if err != nil {
			t.Fatalf("ParseRankPolicy(%q) unexpected error: %v", name, err)
		}
		if got != want {
			t.Errorf("ParseRankPolicy(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := ParseRankPolicy("loudest"); err == nil {
		t.Error("ParseRankPolicy(loudest) error = nil, want error")
	}
}

type compareOnly struct{ Comparer }

type countingKeyer struct {
	foldComparer
	keys int
}

func (c *countingKeyer) Key(nick string) string {
	c.keys++
	return c.foldComparer.Key(nick)
}

func TestSort_KeysComputedOncePerRecord(t *testing.T) {
	table := precedence.Default()
	records := users(t, table, "[foo", "Foo", "_foo", "{foo}", "foo", "Ab", "aB", "émile", "émile", "zed")

	c := &countingKeyer{}
	keyed := Sort(records, table, WithComparer(c))
	if c.keys != len(records) {
		t.Errorf("Key called %d times, want %d", c.keys, len(records))
	}

	plain := Sort(records, table, WithComparer(compareOnly{FoldComparer()}))
	if got, want := nicks(keyed), nicks(plain); !reflect.DeepEqual(got, want) {
		t.Errorf("keyed order %v differs from pairwise order %v", got, want)
	}
}

func TestRankSymbol(t *testing.T) {
	table := networkTable()
	rec := user(t, table, "bob", "v", "o")

	if got := RankSymbol(rec, table, RankFirst); got != "+" {
		t.Errorf("RankSymbol(first) = %q, want +", got)
	}
	if got := RankSymbol(rec, table, RankHighest); got != "@" {
		t.Errorf("RankSymbol(highest) = %q, want @", got)
	}
	if got := RankSymbol(user(t, table, "eve"), table, RankHighest); got != "" {
		t.Errorf("RankSymbol(unprivileged) = %q, want empty", got)
	}
}
