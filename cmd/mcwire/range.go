package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Versifine/mcwire/internal/bounds"
)

func rangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "range <range> [value...]",
		Short: "Check values against a range expression",
		Long: `Parse a range expression ("5", "1..", "..2.5", "1..10") and report for
each value whether it is inside.

Examples:
  mcwire range 1..10 0 5 10.5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bounds.ParseDoubles(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "range %s\n", b)
			if len(args) == 1 {
				return nil
			}
			tw := tablewriter.NewWriter(cmd.OutOrStdout())
			tw.SetHeader([]string{"Value", "Matches"})
			for _, arg := range args[1:] {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid value %q: %w", arg, err)
				}
				tw.Append([]string{arg, strconv.FormatBool(b.Matches(v))})
			}
			tw.Render()
			return nil
		},
	}
}
