package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// historyView is the JSON shape of one install record.
type historyView struct {
	ID          string    `json:"id"`
	Mod         string    `json:"mod"`
	Target      string    `json:"target"`
	Family      string    `json:"family"`
	Layout      string    `json:"layout"`
	Deprecated  bool      `json:"deprecated,omitempty"`
	Partial     bool      `json:"partial,omitempty"`
	Digest      string    `json:"digest"`
	Files       int       `json:"files"`
	InstalledAt time.Time `json:"installed_at"`
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded installs, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		recorder, err := newRecorder()
		if err != nil {
			return err
		}

		records, err := recorder.History()
		if err != nil {
			return fmt.Errorf("failed to read install history: %w", err)
		}

		views := []historyView{}
		for _, r := range records {
			views = append(views, historyView{
				ID:          r.ID,
				Mod:         r.Mod,
				Target:      r.Target,
				Family:      r.Family,
				Layout:      r.Layout,
				Deprecated:  r.Deprecated,
				Partial:     r.Partial,
				Digest:      r.Digest,
				Files:       len(r.Instructions),
				InstalledAt: r.InstalledAt,
			})
		}

		if jsonOutput {
			return outputJSON(views)
		}

		if len(views) == 0 {
			PrintEmptyState("No installs recorded")
			return nil
		}

		rows := make([][]string, 0, len(views))
		for _, v := range views {
			mod := v.Mod
			if v.Partial {
				mod += " (partial)"
			}
			rows = append(rows, []string{
				v.InstalledAt.Local().Format(time.DateTime),
				mod,
				v.Layout,
				fmt.Sprint(v.Files),
				v.Target,
			})
		}

		PrintSection("Install History")
		PrintTable([]string{"INSTALLED", "MOD", "LAYOUT", "INSTRUCTIONS", "TARGET"}, rows)
		return nil
	},
}
