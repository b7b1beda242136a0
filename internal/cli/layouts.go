package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// layoutView is the JSON shape of one catalog entry.
type layoutView struct {
	Priority    int      `json:"priority"`
	Family      string   `json:"family"`
	Layout      string   `json:"layout"`
	Deprecated  bool     `json:"deprecated"`
	Fingerprint []string `json:"fingerprint,omitempty"`
}

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List known layouts in the order they are tried",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		catalog, err := settings.Catalog()
		if err != nil {
			return err
		}

		views := []layoutView{}
		for _, f := range catalog.Families {
			for _, l := range f.Layouts {
				views = append(views, layoutView{
					Priority:    len(views) + 1,
					Family:      f.Name,
					Layout:      l.Name,
					Deprecated:  l.Deprecated,
					Fingerprint: l.Fingerprint,
				})
			}
		}

		if jsonOutput {
			return outputJSON(views)
		}

		if len(views) == 0 {
			PrintEmptyState("No layouts configured")
			return nil
		}

		rows := make([][]string, 0, len(views))
		for _, v := range views {
			deprecated := ""
			if v.Deprecated {
				deprecated = "yes"
			}
			detect := "structural"
			if len(v.Fingerprint) > 0 {
				detect = strings.Join(v.Fingerprint, ", ")
			}
			rows = append(rows, []string{v.Family, v.Layout, deprecated, detect})
		}

		PrintSection("Layouts")
		PrintTable([]string{"FAMILY", "LAYOUT", "DEPRECATED", "DETECTED BY"}, rows)
		return nil
	},
}
