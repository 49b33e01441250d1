package registration

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"musicreg/pkg/models"
)

var ErrNotFound = errors.New("registration not found")

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// ListFilter narrows List. Empty fields match everything.
type ListFilter struct {
	UserID string
	Genre  string
	Limit  int
	Offset int
}

const selectColumns = `
	SELECT id, user_id, title, genre, creation_date, page_count,
	       authors, lyrics, contracts, checklist, created_at, updated_at
	FROM registrations`

// encoded holds the JSON text columns of a registration.
type encoded struct {
	authors, contracts, checklist string
	pageCount                     sql.NullInt64
}

func encode(d models.Dossier) (encoded, error) {
	var e encoded
	authors := d.Authors
	if authors == nil {
		authors = []models.Author{}
	}
	contracts := d.Contracts
	if contracts == nil {
		contracts = []models.ContractRef{}
	}
	b, err := json.Marshal(authors)
	if err != nil {
		return e, fmt.Errorf("encode authors: %w", err)
	}
	e.authors = string(b)
	if b, err = json.Marshal(contracts); err != nil {
		return e, fmt.Errorf("encode contracts: %w", err)
	}
	e.contracts = string(b)
	if b, err = json.Marshal(d.Checklist); err != nil {
		return e, fmt.Errorf("encode checklist: %w", err)
	}
	e.checklist = string(b)
	if d.PageCount != nil {
		e.pageCount = sql.NullInt64{Int64: int64(*d.PageCount), Valid: true}
	}
	return e, nil
}

func (r *Repo) Create(ctx context.Context, userID string, d models.Dossier) (models.Registration, error) {
	e, err := encode(d)
	if err != nil {
		return models.Registration{}, err
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO registrations (user_id, title, genre, creation_date, page_count, authors, lyrics, contracts, checklist)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, userID, d.Title, d.Genre, d.CreationDate.String(), e.pageCount, e.authors, d.Lyrics, e.contracts, e.checklist)
	if err != nil {
		return models.Registration{}, fmt.Errorf("create registration: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Registration{}, fmt.Errorf("create registration id: %w", err)
	}
	return r.Get(ctx, id)
}

// Update replaces the dossier of an existing registration owned by userID.
func (r *Repo) Update(ctx context.Context, id int64, userID string, d models.Dossier) (models.Registration, error) {
	e, err := encode(d)
	if err != nil {
		return models.Registration{}, err
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE registrations
		SET title = ?, genre = ?, creation_date = ?, page_count = ?, authors = ?,
		    lyrics = ?, contracts = ?, checklist = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
	`, d.Title, d.Genre, d.CreationDate.String(), e.pageCount, e.authors, d.Lyrics, e.contracts, e.checklist, id, userID)
	if err != nil {
		return models.Registration{}, fmt.Errorf("update registration: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Registration{}, fmt.Errorf("update registration rows: %w", err)
	}
	if n == 0 {
		return models.Registration{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *Repo) Get(ctx context.Context, id int64) (models.Registration, error) {
	row := r.DB.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	reg, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Registration{}, ErrNotFound
		}
		return models.Registration{}, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

// WithDefaults clamps Limit to 1-100 (default 20) and Offset to >= 0.
func (f ListFilter) WithDefaults() ListFilter {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]models.Registration, int, error) {
	f = f.WithDefaults()

	var where []string
	var args []any
	if f.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.Genre != "" {
		where = append(where, "genre = ?")
		args = append(args, f.Genre)
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count registrations: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, selectColumns+clause+`
		ORDER BY updated_at DESC, id DESC
		LIMIT ? OFFSET ?`, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	out := make([]models.Registration, 0, f.Limit)
	for rows.Next() {
		reg, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan registration: %w", err)
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate registrations: %w", err)
	}
	return out, total, nil
}

func (r *Repo) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM registrations
		WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (models.Registration, error) {
	var (
		reg                           models.Registration
		creationDate                  string
		pageCount                     sql.NullInt64
		authors, contracts, checklist string
	)
	err := s.Scan(&reg.ID, &reg.UserID, &reg.Title, &reg.Genre, &creationDate, &pageCount,
		&authors, &reg.Lyrics, &contracts, &checklist, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return models.Registration{}, err
	}

	if reg.CreationDate, err = models.ParseDate(creationDate); err != nil {
		return models.Registration{}, err
	}
	if pageCount.Valid {
		n := int(pageCount.Int64)
		reg.PageCount = &n
	}
	if err := json.Unmarshal([]byte(authors), &reg.Authors); err != nil {
		return models.Registration{}, fmt.Errorf("decode authors: %w", err)
	}
	if err := json.Unmarshal([]byte(contracts), &reg.Contracts); err != nil {
		return models.Registration{}, fmt.Errorf("decode contracts: %w", err)
	}
	if err := json.Unmarshal([]byte(checklist), &reg.Checklist); err != nil {
		return models.Registration{}, fmt.Errorf("decode checklist: %w", err)
	}
	return reg, nil
}
