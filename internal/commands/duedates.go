package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dan9191/tax-ledger/internal/models"
)

func newDueDatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "due-dates [year]",
		Short: "Print the quarterly tax due dates of a year (default: current year)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := time.Now().Year()
			if len(args) > 0 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q: %w", args[0], err)
				}
				year = y
			}
			return printDueDates(cmd.OutOrStdout(), year)
		},
	}
}

func printDueDates(w io.Writer, year int) error {
	for _, d := range models.QuarterlyDueDates(year) {
		if _, err := fmt.Fprintln(w, d.Display()); err != nil {
			return err
		}
	}
	return nil
}
