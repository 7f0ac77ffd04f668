package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/abhisek/brainarcade/internal/live"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the leaderboards over HTTP and WebSocket",
	Long: `Serve read-only leaderboard endpoints and push board updates to
WebSocket subscribers. With Redis configured, games finished in any arcade
process reach subscribers through the pub/sub channel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			e.cfg.Server.Addr = addr
		}
		if e.cfg.Store.Driver == "postgres" {
			if skip, _ := cmd.Flags().GetBool("skip-migrate"); !skip {
				if err := runMigrations(ctx, e.cfg); err != nil {
					return err
				}
			}
		}

		// serve never records games, so its gate needs no publisher.
		boards := e.gate(nil, nil)
		hub := live.NewHub(boards, e.log)
		bus := e.bus()

		engine := live.NewRouter(live.RouterConfig{
			Boards:         boards,
			Hub:            hub,
			AllowedOrigins: e.cfg.Server.AllowedOrigins,
			Logger:         e.log,
		})
		return live.NewServer(e.cfg.Server.Addr, engine, hub, bus, e.log).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().Bool("skip-migrate", false, "Do not apply Postgres migrations on start")
}
