package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/agentic-research/moosepick/internal/catalog"
	"github.com/agentic-research/moosepick/internal/config"
	"github.com/agentic-research/moosepick/internal/picker"
	"github.com/agentic-research/moosepick/internal/syntax"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose get_syntax and pick_objects as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		fsys := osfs.New("/")
		syntaxPath, err := filepath.Abs(cfg.SyntaxMapPath)
		if err != nil {
			return fmt.Errorf("resolve syntax map path: %w", err)
		}
		store, err := syntax.Load(fsys, syntaxPath)
		if err != nil {
			return err
		}
		objectsPath, err := filepath.Abs(cfg.ObjectsPath)
		if err != nil {
			return fmt.Errorf("resolve objects path: %w", err)
		}
		allObjects, err := catalog.LoadObjects(fsys, objectsPath)
		if err != nil {
			return err
		}

		selector := picker.NewOpenAISelector(cfg.APIKey, cfg.Model, os.Getenv("OPENAI_BASE_URL"))
		completer := picker.NewCompleter(selector, cfg.MinKeep)

		s := server.NewMCPServer("moosepick", version)

		getSyntaxTool := mcp.NewTool("get_syntax",
			mcp.WithDescription("Return prompt-ready MOOSE input snippets for the given Block/Object names."),
			mcp.WithArray("objects",
				mcp.Required(),
				mcp.Description("Block/Object names, rendered in the given order"),
				mcp.WithStringItems(),
			),
		)
		s.AddTool(getSyntaxTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var in struct {
				Objects []string `json:"objects"`
			}
			if err := req.BindArguments(&in); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			rendered, err := store.Render(in.Objects)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(rendered), nil
		})

		pickTool := mcp.NewTool("pick_objects",
			mcp.WithDescription("Pick the smallest set of MOOSE objects that satisfies a free-text job description."),
			mcp.WithString("task",
				mcp.Required(),
				mcp.Description("free-text description of the simulation task"),
			),
		)
		s.AddTool(pickTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			task, err := req.RequireString("task")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			picked, err := completer.Complete(ctx, task, allObjects)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			out, err := json.MarshalIndent(picked, "", "  ")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(string(out)), nil
		})

		return server.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
