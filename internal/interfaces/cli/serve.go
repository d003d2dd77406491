package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/admet-prioritizer/internal/apiserver"
)

// NewServeCmd starts the web front end and JSON API in the foreground.
func NewServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web interface and HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := *cliCtx.Config
			if addr != "" {
				host, port, err := splitAddr(addr)
				if err != nil {
					return err
				}
				cfg.Server.Host, cfg.Server.Port = host, port
			}
			cliCtx.Logger.Info("starting prioritizer web interface")
			return apiserver.Run(cmd.Context(), &cfg, cliCtx.Logger, apiserver.Options{
				ConfigPath: cliCtx.ConfigPath,
				Version:    Version,
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address host:port (overrides server.host and server.port)")
	return cmd
}

//Personal.AI order the ending
