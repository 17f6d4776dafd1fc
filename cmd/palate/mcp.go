package main

import (
	"github.com/spf13/cobra"

	"github.com/savorworks/palate"
	palatemcp "github.com/savorworks/palate/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for coding agent integration",
	Long: `Start a Model Context Protocol (MCP) server over stdio.

This allows coding agents to call Palate tools directly.

Configuration in an agent's MCP config:

  {
    "mcpServers": {
      "palate": {
        "command": "palate",
        "args": ["mcp"],
        "env": {
          "PALATE_DB_PATH": "/path/to/model.db"
        }
      }
    }
  }

Environment variables:
  PALATE_DB_PATH    Path to local SQLite model database
  PALATE_SOURCE_ID  Instance identifier (default: hostname)
  PALATE_IN_MEMORY  Run without durable persistence`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The MCP transport owns stdout; keep logs on stderr only.
	engine, err := palate.NewEngine(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	server := palatemcp.NewServer(engine)
	return server.Run()
}
