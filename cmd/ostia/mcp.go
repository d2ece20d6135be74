package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/ostia/internal/cli"
	"github.com/aretw0/ostia/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the model store as MCP tools so agents can learn and apply transducers.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		return withStore(func(store cli.Store) error {
			srv := mcp.NewServer(cli.NewService(store, logger, debugEnabled(), nil))

			switch transport {
			case "stdio":
				log.SetOutput(os.Stderr)
				logger.Info("Starting Ostia MCP Server (Stdio)...")
				return srv.ServeStdio()
			case "sse":
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				logger.Info("MCP Server stopped gracefully")
				return nil
			}
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
