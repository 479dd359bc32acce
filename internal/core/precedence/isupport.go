package precedence

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedPrefix is returned when a PREFIX token or table cannot be used.
var ErrMalformedPrefix = errors.New("malformed PREFIX")

// ParsePrefix builds a table from an ISUPPORT PREFIX value. Both the bare value
// "(qaohv)~&@%+" and the full token "PREFIX=(qaohv)~&@%+" are accepted.
// An empty value yields an empty table: the server defines no prefixes.
func ParsePrefix(token string) (Table, error) {
	value := strings.TrimSpace(token)
	value = strings.TrimPrefix(value, "PREFIX=")
	if value == "" {
		return Table{}, nil
	}

	if !strings.HasPrefix(value, "(") {
		return nil, fmt.Errorf("%w: %q does not start with '('", ErrMalformedPrefix, token)
	}
	end := strings.IndexByte(value, ')')
	if end < 0 {
		return nil, fmt.Errorf("%w: %q has no closing ')'", ErrMalformedPrefix, token)
	}

	codes := []rune(value[1:end])
	symbols := []rune(value[end+1:])
	if len(codes) != len(symbols) {
		return nil, fmt.Errorf("%w: %q has %d codes but %d symbols", ErrMalformedPrefix, token, len(codes), len(symbols))
	}

	table := make(Table, len(codes))
	for i := range codes {
		table[i] = Entry{Code: string(codes[i]), Symbol: string(symbols[i])}
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
