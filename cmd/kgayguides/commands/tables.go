package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/query"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/schema"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/ui"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the known backend tables",
		Long:  "Print every table handle the API serves and how it resolves",
		RunE:  runTables,
	}
}

func runTables(cmd *cobra.Command, args []string) error {
	handles := schema.All()

	names := make([]string, 0, len(handles))
	for name := range handles {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		h := handles[name]
		source := "sql name"
		if h.SQLName == "" && h.Meta != nil {
			source = "metadata"
		}
		rows = append(rows, []string{name, source})
	}

	ui.PrintTable([]string{"Table", "Resolved From"}, rows)
	fmt.Println()
	ui.PrintInfo("%d tables in the registry, %d names in match order", len(rows), len(query.KnownTables()))
	return nil
}
