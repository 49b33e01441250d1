package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"musicreg/internal/export"
)

var (
	exportOut   string
	exportGenre string
)

var exportCmd = &cobra.Command{
	Use:       "export <json|csv|yaml>",
	Short:     "Export all your registrations",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "csv", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(args[0])
		if err != nil {
			return err
		}
		client, err := authedClient()
		if err != nil {
			return err
		}
		regs, err := client.All(cmd.Context(), exportGenre)
		if err != nil {
			return fmt.Errorf("export %s failed: %w", format, err)
		}

		if exportOut == "" || exportOut == "-" {
			return export.Write(os.Stdout, format, regs)
		}
		if err := export.WriteFile(exportOut, format, regs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d registro(s) exportado(s) para %s\n", len(regs), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default: stdout)")
	exportCmd.Flags().StringVar(&exportGenre, "genre", "", "only this genre")
	rootCmd.AddCommand(exportCmd)
}
