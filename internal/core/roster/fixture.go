package roster

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/example/roster/internal/core/participant"
	"github.com/example/roster/internal/core/precedence"
)

// Fixture is a channel snapshot in YAML form:
//
//	channel: "#thelounge"
//	prefix: "(qaohv)~&@%+"
//	participants:
//	  - nick: xPaw
//	    modes: [q]
//	  - name: astorije
//	    mode: "%"
//
// An explicit table takes precedence over prefix. With neither, the RFC 2812
// default table applies.
type Fixture struct {
	Channel      string                         `yaml:"channel"`
	Prefix       string                         `yaml:"prefix,omitempty"`
	Table        precedence.Table               `yaml:"table,omitempty"`
	Participants []participant.LegacyAttributes `yaml:"participants"`
}

// DecodeFixture parses a YAML fixture.
func DecodeFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return &f, nil
}

// ResolveTable returns the table the fixture's participants are built with.
func (f *Fixture) ResolveTable() (precedence.Table, error) {
	switch {
	case len(f.Table) > 0:
		if err := f.Table.Validate(); err != nil {
			return nil, err
		}
		return f.Table.Clone(), nil
	case f.Prefix != "":
		return precedence.ParsePrefix(f.Prefix)
	default:
		return precedence.Default(), nil
	}
}

// Roster builds a roster holding the fixture's participants in file order.
func (f *Fixture) Roster(opts ...Option) (*Roster, error) {
	table, err := f.ResolveTable()
	if err != nil {
		return nil, err
	}

	r := New(f.Channel, table, opts...)
	for i, l := range f.Participants {
		rec, err := participant.FromLegacy(l, table)
		if err != nil {
			return nil, fmt.Errorf("participant %d: %w", i, err)
		}
		if _, err := r.Add(rec.Attributes()); err != nil {
			return nil, fmt.Errorf("participant %d: %w", i, err)
		}
	}
	return r, nil
}
