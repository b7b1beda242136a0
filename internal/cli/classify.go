package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/modlayout/internal/engine"
	"github.com/danieljhkim/modlayout/internal/planner"
)

var (
	classifyDir    string
	classifyList   string
	classifyName   string
	classifyFamily string
)

// classificationView is the JSON shape of a classification.
type classificationView struct {
	State         string                `json:"state"`
	Family        string                `json:"family,omitempty"`
	Layout        string                `json:"layout,omitempty"`
	Deprecated    bool                  `json:"deprecated,omitempty"`
	Instructions  []planner.Instruction `json:"instructions"`
	Conflicts     []planner.Conflict    `json:"conflicts,omitempty"`
	ConflictsWith string                `json:"conflicts_with,omitempty"`
	Reason        string                `json:"reason,omitempty"`
	Files         int                   `json:"files"`
	Skipped       []string              `json:"skipped,omitempty"`
	Digest        string                `json:"digest,omitempty"`
}

func newClassificationView(c *engine.Classification) classificationView {
	v := classificationView{
		State:         c.State.String(),
		Family:        c.Result.Family,
		Layout:        c.Result.Layout,
		Deprecated:    c.Result.Deprecated,
		Instructions:  []planner.Instruction{},
		ConflictsWith: c.Result.ConflictsWith,
		Reason:        c.Result.Reason,
		Files:         len(c.Files),
		Skipped:       c.Skipped,
		Digest:        c.Digest,
	}

	// A pending classification shows what would be installed.
	switch c.State {
	case engine.StateMatched:
		v.Instructions = c.Instructions()
	case engine.StatePendingDecision:
		v.Instructions = c.PendingInstructions()
	}
	if c.Result.Plan != nil {
		v.Conflicts = c.Result.Plan.Conflicts
	}
	return v
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Detect an archive's layout and print its install plan",
	Long: `Classify an archive listing against the layout catalog and print the
instructions that would install it.

The listing is read from an extracted directory (--dir), a file with one
path per line (--list), or standard input. Deprecated layouts are reported
as pending; nothing is prompted or written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readArchive(classifyDir, classifyList, cmd.InOrStdin())
		if err != nil {
			return err
		}

		eng, settings, err := newEngine(cmd, false)
		if err != nil {
			return err
		}

		ctx := context.Background()
		c, err := eng.Classify(ctx, &engine.ClassifyRequest{
			Paths:    in.Paths,
			ModInfo:  modInfo(classifyName, in),
			Features: settings.FeatureSet(),
			Family:   classifyFamily,
		})
		if err != nil {
			return err
		}

		view := newClassificationView(c)
		if jsonOutput {
			return outputJSON(view)
		}

		printClassification(view)
		return nil
	},
}

func printClassification(v classificationView) {
	PrintSection("Classification")
	PrintLabelValue("State", v.State)
	if v.Family != "" {
		PrintLabelValue("Family", v.Family)
	}
	if v.Layout != "" {
		PrintLabelValue("Layout", v.Layout)
	}
	PrintLabelValue("Files", fmt.Sprint(v.Files))
	if len(v.Skipped) > 0 {
		PrintLabelValue("Skipped", PrintCount(len(v.Skipped), "malformed entry", "malformed entries"))
	}
	if v.Digest != "" {
		PrintLabelValue("Digest", v.Digest)
	}

	switch v.State {
	case engine.StateNoMatch.String():
		PrintWarning("No known layout matched this archive.")
	case engine.StateConflict.String():
		PrintError(v.Reason)
		for _, c := range v.Conflicts {
			PrintError(fmt.Sprintf("%s: %s", c.Path, c.Reason))
		}
	case engine.StatePendingDecision.String():
		PrintWarning("Deprecated layout: install will ask for confirmation.")
	}

	if len(v.Instructions) > 0 {
		fmt.Println()
		PrintSubsection(PrintCount(len(v.Instructions), "instruction:", "instructions:"))
		items := make([]string, 0, len(v.Instructions))
		for _, ins := range v.Instructions {
			items = append(items, ins.String())
		}
		PrintList(items, 1)
	}
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyDir, "dir", "d", "", "Extracted archive directory")
	classifyCmd.Flags().StringVarP(&classifyList, "list", "l", "", "File with one archive path per line (- for stdin)")
	classifyCmd.Flags().StringVarP(&classifyName, "name", "n", "", "Mod name used for relocated folders")
	classifyCmd.Flags().StringVar(&classifyFamily, "family", "", "Only try layouts of this family")
}
