package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"delugekit/internal/deluge"
	"delugekit/internal/kit"
)

func newInspectCommand(_ *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "inspect <kit.XML>",
		Short:       "List the rows of an existing kit file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := deluge.ReadKit(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(summary.Rows))
			for i, r := range summary.Rows {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					r.Name,
					r.FileName,
					formatUint(r.Start),
					formatUint(r.End),
					kit.PlaybackMode(r.LoopMode).String(),
				})
			}
			fmt.Fprintln(out, renderTable(tableSpec{
				Title:   fmt.Sprintf("%s (firmware %s)", summary.Path, summary.FirmwareVersion),
				Headers: []string{"#", "Name", "Sample", "Start", "End", "Mode"},
				Rows:    rows,
				Aligns:  []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the kit rows as JSON")
	return cmd
}
