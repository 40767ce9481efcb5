package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/wavelet/internal/errmsg"
	"github.com/llehouerou/wavelet/internal/state"
	"github.com/llehouerou/wavelet/internal/ui/render"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently loaded sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		mgr, err := state.Open()
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpStateOpen, err))
		}
		defer mgr.Close()

		entries, err := mgr.History(historyLimit)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpHistoryLoad, err))
		}
		return printHistory(cmd.OutOrStdout(), entries)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")
}

func printHistory(w io.Writer, entries []state.LoadEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No sources loaded yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tTITLE\tLENGTH\tFORMAT\tSIZE\tSOURCE")
	for _, e := range entries {
		title := e.Title
		if e.Artist != "" {
			title = e.Artist + " - " + title
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			humanize.Time(e.LoadedAt),
			render.Truncate(title, 40),
			render.Duration(e.Duration),
			e.Format,
			humanize.Bytes(uint64(max(e.Size, 0))),
			e.Ref,
		)
	}
	return tw.Flush()
}
