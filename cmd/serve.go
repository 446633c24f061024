package cmd

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agentic-research/moosepick/internal/config"
	"github.com/agentic-research/moosepick/internal/syntax"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the syntax map over HTTP (POST /get_syntax)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		syntaxPath, err := filepath.Abs(cfg.SyntaxMapPath)
		if err != nil {
			return fmt.Errorf("resolve syntax map path: %w", err)
		}
		store, err := syntax.Load(osfs.New("/"), syntaxPath)
		if err != nil {
			return err
		}

		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		handler := syntax.NewHandler(store, logger)
		logger.Info("serving syntax map",
			zap.String("addr", serveAddr),
			zap.String("path", syntaxPath),
			zap.Int("snippets", store.Len()),
		)
		return http.ListenAndServe(serveAddr, handler.Router())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8000", "listen address")
	rootCmd.AddCommand(serveCmd)
}
