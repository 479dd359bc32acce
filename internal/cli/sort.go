package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/roster/internal/config"
	"github.com/example/roster/internal/core/roster"
	"github.com/example/roster/internal/wire"
)

// SortCmd returns the sort command.
func SortCmd() *cobra.Command {
	var (
		file    string
		compare string
		locale  string
		rankBy  string
	)

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort a roster fixture file without touching the database",
		Long: `Read a YAML roster fixture and print it in display order.

Fixture format:

  channel: "#thelounge"
  prefix: "(qaohv)~&@%+"
  participants:
    - nick: xPaw
      modes: [q]
    - name: astorije   # legacy shape: name and a single mode symbol
      mode: "%"

Use --file - to read from stdin. Flags override the configured comparer
and rank policy for this run. --locale on its own selects collation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFixture(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			opts := append([]roster.Option(nil), wire.SortOptions()...)
			if compare != "" || locale != "" {
				c, err := comparerFromFlags(compare, locale, wire.Config())
				if err != nil {
					return err
				}
				opts = append(opts, roster.WithComparer(c))
			}
			if rankBy != "" {
				policy, err := roster.ParseRankPolicy(rankBy)
				if err != nil {
					return err
				}
				opts = append(opts, roster.WithRankBy(policy))
			}

			return wire.OfflineRosterAdapter(cmd.OutOrStdout()).SortFixture(data, opts...)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Fixture file (- for stdin)")
	cmd.Flags().StringVar(&compare, "compare", "", "Nick comparer: fold or collate")
	cmd.Flags().StringVar(&locale, "locale", "", "Collation locale (BCP 47) for --compare collate")
	cmd.Flags().StringVar(&rankBy, "rank-by", "", "Rank policy: first or highest")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// comparerFromFlags resolves --compare and --locale over the configured
// comparer. A locale without --compare selects collation.
func comparerFromFlags(compare, locale string, cfg *config.Config) (roster.Comparer, error) {
	if compare == "" {
		compare = cfg.Compare
		if locale != "" {
			compare = roster.CompareCollate
		}
	}
	if compare != roster.CompareCollate && locale != "" {
		return nil, fmt.Errorf("--locale requires --compare %s", roster.CompareCollate)
	}
	if locale == "" {
		locale = cfg.Locale
	}
	return roster.NewComparer(compare, locale)
}

func readFixture(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return data, nil
}
