package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"musicreg/internal/dossier"
	"musicreg/internal/shell"
	"musicreg/pkg/models"
)

var regsCmd = &cobra.Command{
	Use:     "registrations",
	Aliases: []string{"regs"},
	Short:   "Browse saved registrations",
}

var (
	listGenre  string
	listLimit  int
	listOffset int
	listJSON   bool
)

var regsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your registrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := authedClient()
		if err != nil {
			return err
		}
		page, err := client.List(cmd.Context(), listGenre, listLimit, listOffset)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if listJSON {
			return printJSON(out, page)
		}

		rows := make([][]string, 0, len(page.Items))
		for _, r := range page.Items {
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10),
				r.Title,
				r.Genre,
				r.CreationDate.Display(),
				strconv.Itoa(dossier.Progress(r.Checklist)) + "%",
				r.UpdatedAt.Local().Format("02/01/2006 15:04"),
			})
		}
		fmt.Fprintln(out, shell.RenderTable(
			[]string{"ID", "Título", "Gênero", "Criação", "Progresso", "Atualizado"},
			rows, nil, shell.IsTerminal(os.Stdout)))
		fmt.Fprintf(out, "%d de %d registro(s)\n", len(page.Items), page.Total)
		return nil
	},
}

var regsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRegID(args[0])
		if err != nil {
			return err
		}
		client, err := authedClient()
		if err != nil {
			return err
		}
		reg, err := client.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		if listJSON {
			return printJSON(cmd.OutOrStdout(), reg)
		}
		printRegistration(cmd.OutOrStdout(), reg)
		return nil
	},
}

var regsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRegID(args[0])
		if err != nil {
			return err
		}
		client, err := authedClient()
		if err != nil {
			return err
		}
		if err := client.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "registro %d excluído\n", id)
		return nil
	},
}

func printRegistration(w io.Writer, r models.Registration) {
	fancy := shell.IsTerminal(os.Stdout)
	pages := "-"
	if r.PageCount != nil {
		pages = strconv.Itoa(*r.PageCount)
	}
	fmt.Fprintln(w, shell.RenderTable([]string{"Campo", "Valor"}, [][]string{
		{"ID", strconv.FormatInt(r.ID, 10)},
		{"Título", r.Title},
		{"Gênero", r.Genre},
		{"Criação", r.CreationDate.Display()},
		{"Páginas", pages},
		{"Progresso", strconv.Itoa(dossier.Progress(r.Checklist)) + "%"},
		{"Pendências", strings.Join(r.Checklist.Pending(), ", ")},
	}, nil, fancy))

	rows := make([][]string, 0, len(r.Authors))
	for i, a := range r.Authors {
		rows = append(rows, []string{strconv.Itoa(i + 1), a.Name, a.TaxID, a.Role})
	}
	fmt.Fprintln(w, shell.RenderTable([]string{"#", "Autor", "CPF", "Função"}, rows, nil, fancy))
}

func parseRegID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid registration id %q", s)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func init() {
	regsListCmd.Flags().StringVar(&listGenre, "genre", "", "only this genre")
	regsListCmd.Flags().IntVar(&listLimit, "limit", 20, "page size")
	regsListCmd.Flags().IntVar(&listOffset, "offset", 0, "offset")
	regsCmd.PersistentFlags().BoolVar(&listJSON, "json", false, "print raw JSON")

	regsCmd.AddCommand(regsListCmd, regsShowCmd, regsDeleteCmd)
	rootCmd.AddCommand(regsCmd)
}
