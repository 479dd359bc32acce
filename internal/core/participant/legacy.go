package participant

import "github.com/example/roster/internal/core/precedence"

// LegacyAttributes is the flat user shape older clients and fixtures send.
// Name wins over Nick; Modes wins over the single Mode symbol.
type LegacyAttributes struct {
	Name  string   `json:"name,omitempty" yaml:"name,omitempty"`
	Nick  string   `json:"nick,omitempty" yaml:"nick,omitempty"`
	Mode  string   `json:"mode,omitempty" yaml:"mode,omitempty"` // display symbol, e.g. "@"
	Modes []string `json:"modes,omitempty" yaml:"modes,omitempty"`
}

// FromLegacy adapts the flat shape into the same record Build produces.
// A Mode symbol is mapped back to its code; a symbol the table does not
// know degrades to no privilege.
func FromLegacy(l LegacyAttributes, table precedence.Table) (Record, error) {
	attrs := Attributes{Nick: l.Name, Modes: l.Modes}
	if attrs.Nick == "" {
		attrs.Nick = l.Nick
	}
	if len(attrs.Modes) == 0 && l.Mode != "" {
		if code := table.Code(l.Mode); code != "" {
			attrs.Modes = []string{code}
		}
	}
	return Build(attrs, table)
}
