package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	synchub "musicreg/internal/sync"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Follow registration changes as they happen",
}

var syncRaw bool

var syncListenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Stream events from the TCP sync server, reconnecting on drops",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		for {
			err := synchub.Listen(ctx, cfg.SyncAddr, func(line []byte) { printEvent(out, line) })
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("[sync] disconnected: %v", err)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
		}
	},
}

var syncWSCmd = &cobra.Command{
	Use:   "ws",
	Short: "Stream events over the API WebSocket endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		endpoint, err := websocketURL(cfg.APIURL, "/ws")
		if err != nil {
			return fmt.Errorf("ws url: %w", err)
		}
		return runWebSocket(ctx, endpoint, cmd.OutOrStdout())
	},
}

func printEvent(w io.Writer, line []byte) {
	ev, ok := synchub.DecodeEvent(line)
	if syncRaw || !ok {
		fmt.Fprintln(w, string(line))
		return
	}
	fmt.Fprintf(w, "%s  %-20s #%d %q (%d%%)\n",
		ev.At.Local().Format("15:04:05"), ev.Type, ev.RegistrationID, ev.Title, ev.Progress)
}

func runWebSocket(ctx context.Context, endpoint string, w io.Writer) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	log.Printf("[sync] connected to %s", endpoint)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		printEvent(w, msg)
	}
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func init() {
	syncCmd.PersistentFlags().BoolVar(&syncRaw, "raw", false, "print lines as received")
	syncListenCmd.Flags().String("addr", "", "TCP sync server address")
	_ = viper.BindPFlag("sync_addr", syncListenCmd.Flags().Lookup("addr"))

	syncCmd.AddCommand(syncListenCmd, syncWSCmd)
	rootCmd.AddCommand(syncCmd)
}
