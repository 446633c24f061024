package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/moosepick/internal/catalog"
)

var (
	regenSrc string
	regenDst string
)

var regenCmd = &cobra.Command{
	Use:   "regen",
	Short: "Regenerate objects.json and syntax_map.json from a raw syntax dump",
	Long: `Flattens a raw MOOSE app syntax dump ('app-name --json > syntax_full.json')
into the two artifacts the pipeline runs on. Each file is only touched when
its content actually changed, so the command is safe to run from CI without
creating noisy diffs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegen(regenSrc, regenDst, cmd.OutOrStdout())
	},
}

func init() {
	regenCmd.Flags().StringVar(&regenSrc, "src", "artifacts/syntax_full.json", "raw app JSON dump")
	regenCmd.Flags().StringVar(&regenDst, "dst", "artifacts", "output directory")
	rootCmd.AddCommand(regenCmd)
}

func runRegen(src, dst string, out io.Writer) error {
	raw, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read syntax dump %s (run 'app-name --json > %s' first): %w", src, src, err)
	}

	objects, syntaxMap, err := catalog.Build(raw)
	if err != nil {
		return err
	}

	objBytes, err := catalog.MarshalObjects(objects)
	if err != nil {
		return err
	}
	mapBytes, err := catalog.MarshalSyntaxMap(syntaxMap)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dst, err)
	}

	fsys := osfs.New(dst)
	for _, artifact := range []struct {
		name    string
		content []byte
	}{
		{catalog.ObjectsFile, objBytes},
		{catalog.SyntaxMapFile, mapBytes},
	} {
		wrote, err := catalog.WriteIfChanged(fsys, artifact.name, artifact.content)
		if err != nil {
			return fmt.Errorf("persist %s: %w", artifact.name, err)
		}
		if wrote {
			fmt.Fprintf(out, "wrote %s\n", filepath.Join(dst, artifact.name))
		}
	}

	fmt.Fprintf(out, "total objects: %d | syntax snippets: %d\n", len(objects), len(syntaxMap))
	return nil
}
