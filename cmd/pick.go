package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/moosepick/internal/catalog"
	"github.com/agentic-research/moosepick/internal/config"
	"github.com/agentic-research/moosepick/internal/picker"
	"github.com/agentic-research/moosepick/internal/syntax"
)

var pickCmd = &cobra.Command{
	Use:   `pick "<job description>"`,
	Short: "Select the MOOSE objects for a job description and print their mini syntax",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		selector := picker.NewOpenAISelector(cfg.APIKey, cfg.Model, os.Getenv("OPENAI_BASE_URL"))
		return runPick(cmd.Context(), cfg, selector, args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

// runPick loads both artifacts up front — the model call costs money, so a
// missing or corrupt store must fail the request before the selector runs.
func runPick(ctx context.Context, cfg *config.Config, selector picker.Selector, task string, out io.Writer) error {
	fsys := osfs.New("/")

	objectsPath, err := filepath.Abs(cfg.ObjectsPath)
	if err != nil {
		return fmt.Errorf("resolve objects path: %w", err)
	}
	allObjects, err := catalog.LoadObjects(fsys, objectsPath)
	if err != nil {
		return err
	}

	syntaxPath, err := filepath.Abs(cfg.SyntaxMapPath)
	if err != nil {
		return fmt.Errorf("resolve syntax map path: %w", err)
	}
	store, err := syntax.Load(fsys, syntaxPath)
	if err != nil {
		return err
	}

	completer := picker.NewCompleter(selector, cfg.MinKeep)
	picked, err := completer.Complete(ctx, task, allObjects)
	if err != nil {
		return err
	}

	pretty, err := json.MarshalIndent(picked, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal picked objects: %w", err)
	}
	fmt.Fprintln(out, "### Picked objects ###")
	fmt.Fprintln(out, string(pretty))

	rendered, err := store.Render(picked)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\n### Mini syntax ###")
	fmt.Fprintln(out, rendered)
	return nil
}
