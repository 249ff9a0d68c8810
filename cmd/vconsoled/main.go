// Command vconsoled boots a vconsole.ConsoleSubsystem, spawns a shell
// behind a PTY bound to virtual console 1, and optionally serves a
// WebSocket endpoint that streams raw output to remote viewers.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fiwix-go/vconsole"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var listenAddr string
	var debug bool

	root := &cobra.Command{
		Use:           "vconsoled",
		Short:         "Run a virtual console subsystem with a PTY-backed shell",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, listenAddr, debug)
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML boot config (defaults built in if omitted)")
	root.PersistentFlags().StringVarP(&listenAddr, "listen", "l", "", "address to serve the websocket viewer on, e.g. :8080 (disabled if empty)")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable human-readable development logging")

	return root
}

func run(configPath, listenAddr string, debugFlag bool) error {
	cfg := vconsole.DefaultBootConfig()
	if configPath != "" {
		loaded, err := vconsole.LoadBootConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if debugFlag {
		cfg.Debug = true
	}

	log, err := vconsole.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("vconsoled: build logger: %w", err)
	}
	defer log.Sync()

	backend, err := cfg.NewBackend()
	if err != nil {
		return err
	}

	sub := vconsole.NewConsoleSubsystem(vconsole.Config{
		Columns: cfg.Columns,
		Lines:   cfg.Lines,
		Count:   cfg.Count,
	}, backend)

	vc := sub.VC(1)
	sess, err := vconsole.NewSession(vc, cfg.Shell, log)
	if err != nil {
		return fmt.Errorf("vconsoled: start session: %w", err)
	}
	defer sess.Close()

	log.Info("session started",
		zap.String("session", sess.ID.String()),
		zap.Int("columns", cfg.Columns),
		zap.Int("lines", cfg.Lines),
	)

	if listenAddr == "" {
		select {}
	}
	return serveViewer(listenAddr, sess, log)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// serveViewer exposes a single /ws endpoint that upgrades to a
// WebSocket and streams raw shell output to the client, forwarding
// client-sent frames back into the PTY as keyboard input.
func serveViewer(addr string, sess *vconsole.Session, log *zap.Logger) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		sess.AddViewer(conn)
		defer sess.RemoveViewer(conn)

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if _, err := sess.Write(data); err != nil {
				return
			}
		}
	})

	log.Info("serving viewer", zap.String("addr", addr))
	return http.ListenAndServe(addr, mux)
}
