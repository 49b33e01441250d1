package models

import (
	"fmt"
	"strings"
)

// Author is one person credited on the work. Field names follow the
// official form; every value is kept exactly as typed.
type Author struct {
	Name         string `json:"name" yaml:"name"`
	TaxID        string `json:"tax_id" yaml:"tax_id"` // CPF
	Pseudonym    string `json:"pseudonym" yaml:"pseudonym"`
	BirthDate    string `json:"birth_date" yaml:"birth_date"`
	Birthplace   string `json:"birthplace" yaml:"birthplace"`
	Nationality  string `json:"nationality" yaml:"nationality"`
	PostalCode   string `json:"postal_code" yaml:"postal_code"` // CEP
	Address      string `json:"address" yaml:"address"`
	Neighborhood string `json:"neighborhood" yaml:"neighborhood"`
	City         string `json:"city" yaml:"city"`
	State        string `json:"state" yaml:"state"` // UF code
	Phone        string `json:"phone" yaml:"phone"`
	Email        string `json:"email" yaml:"email"`
	Role         string `json:"role" yaml:"role"`
	Signature    string `json:"signature" yaml:"signature"`
}

// NewAuthor returns a blank author carrying the form defaults.
func NewAuthor() Author {
	return Author{
		Nationality: DefaultNationality,
		Role:        DefaultRole,
	}
}

// AuthorField names a single settable field of Author.
type AuthorField string

const (
	FieldName         AuthorField = "name"
	FieldTaxID        AuthorField = "tax_id"
	FieldPseudonym    AuthorField = "pseudonym"
	FieldBirthDate    AuthorField = "birth_date"
	FieldBirthplace   AuthorField = "birthplace"
	FieldNationality  AuthorField = "nationality"
	FieldPostalCode   AuthorField = "postal_code"
	FieldAddress      AuthorField = "address"
	FieldNeighborhood AuthorField = "neighborhood"
	FieldCity         AuthorField = "city"
	FieldState        AuthorField = "state"
	FieldPhone        AuthorField = "phone"
	FieldEmail        AuthorField = "email"
	FieldRole         AuthorField = "role"
	FieldSignature    AuthorField = "signature"
)

// AuthorFields lists every field in form order.
var AuthorFields = []AuthorField{
	FieldName, FieldTaxID, FieldPseudonym, FieldBirthDate, FieldBirthplace,
	FieldNationality, FieldPostalCode, FieldAddress, FieldNeighborhood, FieldCity,
	FieldState, FieldPhone, FieldEmail, FieldRole, FieldSignature,
}

// ParseAuthorField accepts the json field name, case-insensitively.
func ParseAuthorField(s string) (AuthorField, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range AuthorFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Set replaces one field. State and role values are checked against
// their catalogs; an empty value is always accepted.
func (a *Author) Set(field AuthorField, value string) error {
	switch field {
	case FieldName:
		a.Name = value
	case FieldTaxID:
		a.TaxID = value
	case FieldPseudonym:
		a.Pseudonym = value
	case FieldBirthDate:
		a.BirthDate = value
	case FieldBirthplace:
		a.Birthplace = value
	case FieldNationality:
		a.Nationality = value
	case FieldPostalCode:
		a.PostalCode = value
	case FieldAddress:
		a.Address = value
	case FieldNeighborhood:
		a.Neighborhood = value
	case FieldCity:
		a.City = value
	case FieldState:
		if strings.TrimSpace(value) == "" {
			a.State = ""
			return nil
		}
		code := NormalizeState(value)
		if code == "" {
			return fmt.Errorf("unknown state code %q", value)
		}
		a.State = code
	case FieldPhone:
		a.Phone = value
	case FieldEmail:
		a.Email = value
	case FieldRole:
		if strings.TrimSpace(value) == "" {
			a.Role = ""
			return nil
		}
		role := NormalizeRole(value)
		if role == "" {
			return fmt.Errorf("unknown role %q", value)
		}
		a.Role = role
	case FieldSignature:
		a.Signature = value
	default:
		return fmt.Errorf("unknown author field %q", field)
	}
	return nil
}

// Get returns the value of one field, "" for unknown fields.
func (a Author) Get(field AuthorField) string {
	switch field {
	case FieldName:
		return a.Name
	case FieldTaxID:
		return a.TaxID
	case FieldPseudonym:
		return a.Pseudonym
	case FieldBirthDate:
		return a.BirthDate
	case FieldBirthplace:
		return a.Birthplace
	case FieldNationality:
		return a.Nationality
	case FieldPostalCode:
		return a.PostalCode
	case FieldAddress:
		return a.Address
	case FieldNeighborhood:
		return a.Neighborhood
	case FieldCity:
		return a.City
	case FieldState:
		return a.State
	case FieldPhone:
		return a.Phone
	case FieldEmail:
		return a.Email
	case FieldRole:
		return a.Role
	case FieldSignature:
		return a.Signature
	}
	return ""
}
