package models

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	DefaultGenre       = "Música"
	DefaultRole        = "Autor(a)"
	DefaultNationality = "Brasileira"
	ContractType       = "Contrato"
)

// Genres is the fixed genre catalog of the official registration form.
var Genres = []string{
	"Música", "Poema", "Antologia", "Conferência", "Ensaio", "Mapa", "Religioso",
	"Argumento (audiovisual)", "Conto", "Fotografia", "Místico/esotérico", "Romance",
	"Artigo", "Crônica", "Guia", "Monografia", "Roteiro (audiovisual)",
	"Autobiografia", "Desenho", "História em Quadrinhos", "Novela", "Teatro",
	"Biografia", "Design de Website", "Literatura Infantil", "Periódico", "Técnico",
	"Cartaz/folder/panfleto", "Dicionário", "Letra de Música", "Personagem", "Tese",
	"Comics", "Didático", "Livro-jogo (RPG)", "Outros",
}

// Roles lists the accepted relationships between an author and the work.
var Roles = []string{
	"Autor(a)", "Adaptador(a)", "Cessionário(a)", "Tradutor(a)", "Ilustrador(a)",
	"Organizador(a)", "Fotógrafo(a)", "Representante Legal para menores de 18 anos",
	"Cedente", "Herdeiro", "Inventariante", "Editor", "Titular",
}

// StateCodes are the 27 Brazilian federative unit codes.
var StateCodes = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG",
	"PA", "PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

// NormalizeGenre returns the catalog spelling of s, or "" when s is not a genre.
func NormalizeGenre(s string) string { return lookup(Genres, s) }

// NormalizeRole returns the catalog spelling of s, or "" when s is not a role.
func NormalizeRole(s string) string { return lookup(Roles, s) }

// NormalizeState returns the upper-case state code, or "" when s is not one.
func NormalizeState(s string) string { return lookup(StateCodes, s) }

func lookup(catalog []string, s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	fold := cases.Fold()
	want := fold.String(s)
	for _, v := range catalog {
		if fold.String(v) == want {
			return v
		}
	}
	return ""
}
