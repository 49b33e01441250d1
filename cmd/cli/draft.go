package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"musicreg/internal/dossier"
	"musicreg/internal/recovery"
	"musicreg/internal/shell"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Fill in a registration interactively and save it",
	Long: `Opens the registration shell. The last saved dossier is restored from
the local recovery file; attached files have to be selected again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := authedClient()
		if err != nil {
			return err
		}

		path := draftPath()
		logger := log.New(os.Stderr, "[draft] ", log.LstdFlags)
		cache := recovery.NewFileCache(path, logger)
		if err := cache.Lock(); err != nil {
			if errors.Is(err, recovery.ErrLocked) {
				return fmt.Errorf("another draft session is open (%s)", path)
			}
			return err
		}
		defer func() { _ = cache.Unlock() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session := dossier.NewSession(client, cache, logger)
		session.Start()

		sh := shell.New(session, cmd.OutOrStdout(), shell.WithFancyTables(shell.IsTerminal(os.Stdout)))
		if err := sh.Run(ctx, cmd.InOrStdin()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the locally recovered dossier",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache := recovery.NewFileCache(draftPath(), nil)
		if err := cache.Lock(); err != nil {
			return err
		}
		defer func() { _ = cache.Unlock() }()
		return cache.Clear()
	},
}

func draftPath() string {
	if cfg.DraftPath != "" {
		return cfg.DraftPath
	}
	return recovery.DefaultPath()
}

func init() {
	draftCmd.PersistentFlags().String("file", "", "recovery file (default: ~/.musicreg/draft.json)")
	_ = viper.BindPFlag("draft_path", draftCmd.PersistentFlags().Lookup("file"))
	draftCmd.AddCommand(draftClearCmd)
	rootCmd.AddCommand(draftCmd)
}
