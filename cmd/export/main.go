package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"time"

	"musicreg/internal/export"
	"musicreg/internal/registration"
	"musicreg/pkg/database"
	"musicreg/pkg/models"
)

// pageSize matches the largest page the registration repo hands out.
const pageSize = 100

func main() {
	var (
		out    = flag.String("out", "data/registrations.csv", "output path")
		format = flag.String("format", "", "json, csv or yaml (default: from the output extension)")
		user   = flag.String("user", "", "only registrations owned by this user id")
		genre  = flag.String("genre", "", "only this genre")
	)
	flag.Parse()

	fmtName := *format
	if fmtName == "" {
		fmtName = filepath.Ext(*out)
	}
	f, err := export.ParseFormat(fmtName)
	if err != nil {
		log.Fatalf("export: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.OpenAndMigrate(database.DefaultConfig())
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer db.Close()

	regs, err := dump(ctx, registration.NewRepo(db), registration.ListFilter{UserID: *user, Genre: *genre})
	if err != nil {
		log.Fatalf("export registrations failed: %v", err)
	}
	if err := export.WriteFile(*out, f, regs); err != nil {
		log.Fatalf("write %s failed: %v", *out, err)
	}

	log.Printf("exported %d registrations to %s", len(regs), *out)
}

func dump(ctx context.Context, repo *registration.Repo, f registration.ListFilter) ([]models.Registration, error) {
	var all []models.Registration
	f.Limit = pageSize
	for {
		items, total, err := repo.List(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		f.Offset += len(items)
		if len(items) == 0 || f.Offset >= total {
			return all, nil
		}
	}
}
