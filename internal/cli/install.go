package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/modlayout/internal/engine"
	"github.com/danieljhkim/modlayout/internal/fsops"
	"github.com/danieljhkim/modlayout/internal/state"
)

var (
	installDir    string
	installTarget string
	installName   string
	installFamily string
	installYes    bool
	installDryRun bool
)

// installView is the JSON shape of an install result.
type installView struct {
	Classification classificationView `json:"classification"`
	Decision       string             `json:"decision,omitempty"`
	Executed       int                `json:"executed"`
	DryRun         bool               `json:"dry_run"`
	Target         string             `json:"target"`
	Record         string             `json:"record,omitempty"`
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install an extracted archive into a game directory",
	Long: `Classify an extracted archive and copy its files into the target
directory according to the matched layout.

Deprecated layouts ask for confirmation unless --yes is given or
assume_yes is set in the config. Interrupting the prompt cancels the
install; nothing is written before the plan is final.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if installDir == "" || installTarget == "" {
			return fmt.Errorf("--dir and --target are required")
		}

		in, err := readArchive(installDir, "", nil)
		if err != nil {
			return err
		}

		eng, settings, err := newEngine(cmd, installYes)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		req := &engine.InstallRequest{
			ClassifyRequest: engine.ClassifyRequest{
				Paths:    in.Paths,
				ModInfo:  modInfo(installName, in),
				Features: settings.FeatureSet(),
				Family:   installFamily,
			},
			DryRun: installDryRun,
		}
		target, err := filepath.Abs(installTarget)
		if err != nil {
			return fmt.Errorf("failed to resolve target directory: %w", err)
		}
		if !installDryRun {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create target directory: %w", err)
			}
			req.Executor = fsops.NewExecutor(in.FS, fsops.NewOSFS(target))
		}

		result, err := eng.Install(ctx, req)
		if result == nil {
			return err
		}

		view := installView{
			Classification: newClassificationView(result.Classification),
			Executed:       len(result.Executed),
			DryRun:         installDryRun,
			Target:         installTarget,
		}
		if result.Decision != nil {
			view.Decision = result.Decision.String()
		}
		if shouldRecord(result, installDryRun) {
			view.Record = recordInstall(cmd, req.ModInfo.DirName(), target, result)
		}

		if jsonOutput {
			if jsonErr := outputJSON(view); jsonErr != nil {
				return jsonErr
			}
			return err
		}

		if err != nil {
			if errors.Is(err, engine.ErrUserCancelled) {
				PrintWarning("Install cancelled.")
			}
			return err
		}

		if installDryRun {
			PrintSection("Dry Run")
			PrintInfo(fmt.Sprintf("Would apply %s for %s",
				PrintCount(len(view.Classification.Instructions), "instruction", "instructions"),
				view.Classification.Layout))
			items := make([]string, 0, len(view.Classification.Instructions))
			for _, ins := range view.Classification.Instructions {
				items = append(items, ins.String())
			}
			PrintList(items, 1)
			return nil
		}

		PrintSuccess(fmt.Sprintf("Installed %s with %s",
			view.Classification.Layout, PrintCount(view.Executed, "instruction", "instructions")))
		PrintLabelValue("Target", installTarget)
		if view.Record != "" {
			PrintLabelValue("Record", view.Record)
		}
		return nil
	},
}

// shouldRecord reports whether anything was written to the target. A run that
// failed midway is still recorded so its files can be traced.
func shouldRecord(result *engine.InstallResult, dryRun bool) bool {
	return !dryRun && result != nil && len(result.Executed) > 0
}

// recordInstall saves an install record and returns its ID. The files are
// already in place, so a failure is only warned about.
func recordInstall(cmd *cobra.Command, mod, target string, result *engine.InstallResult) string {
	recorder, err := newRecorder()
	if err == nil {
		var record *state.InstallRecord
		record, err = recorder.Record(mod, target, result)
		if err == nil && record != nil {
			if record.Partial {
				_, _ = warningColor.Fprintf(cmd.ErrOrStderr(), "⚠ Partial install recorded: %d of %d instructions ran\n",
					len(record.Instructions), len(result.Classification.Instructions()))
			}
			return record.ID
		}
	}
	if err != nil {
		_, _ = warningColor.Fprintf(cmd.ErrOrStderr(), "⚠ Install record not saved: %v\n", err)
	}
	return ""
}

func init() {
	installCmd.Flags().StringVarP(&installDir, "dir", "d", "", "Extracted archive directory")
	installCmd.Flags().StringVarP(&installTarget, "target", "t", "", "Game directory to install into")
	installCmd.Flags().StringVarP(&installName, "name", "n", "", "Mod name used for relocated folders")
	installCmd.Flags().StringVar(&installFamily, "family", "", "Only try layouts of this family")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Install deprecated layouts without asking")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "Show what would be installed without writing")
}
