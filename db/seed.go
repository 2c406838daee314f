// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/ridepolls/models"
)

// SeedFile is the YAML layout accepted by Seed
type SeedFile struct {
	Polls []SeedPoll `yaml:"polls"`
}

type SeedPoll struct {
	ID       string       `yaml:"id"`
	Question string       `yaml:"question"`
	Options  []SeedOption `yaml:"options"`
}

type SeedOption struct {
	ID        string `yaml:"id"`
	Label     string `yaml:"label"`
	SortOrder *int   `yaml:"sort_order"`
}

// Seed upserts the polls and options described in r inside one transaction.
// Missing poll IDs are derived from the question and missing option IDs from
// the poll ID and list position, so reseeding the same file is a no-op.
func Seed(ctx context.Context, conn *sql.DB, dbType string, r io.Reader) ([]models.Poll, error) {
	const op = "db.Seed"

	var file SeedFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("%s: decoding yaml: %w", op, err)
	}

	polls, err := file.normalize()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := Goqu(conn, dbType).BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = tx.Wrap(func() error {
		for _, p := range polls {
			_, err := tx.Insert(models.TablePolls).
				Rows(goqu.Record{"id": p.ID, "question": p.Question}).
				OnConflict(goqu.DoUpdate("id", goqu.Record{"question": goqu.L("excluded.question")})).
				Prepared(true).
				Executor().ExecContext(ctx)
			if err != nil {
				return fmt.Errorf("poll %s: %w", p.ID, err)
			}

			for _, o := range p.Options {
				_, err := tx.Insert(models.TableOptions).
					Rows(goqu.Record{"id": o.ID, "poll_id": p.ID, "label": o.Label, "sort_order": o.SortOrder}).
					OnConflict(goqu.DoUpdate("id", goqu.Record{
						"label":      goqu.L("excluded.label"),
						"sort_order": goqu.L("excluded.sort_order"),
					})).
					Prepared(true).
					Executor().ExecContext(ctx)
				if err != nil {
					return fmt.Errorf("option %s: %w", o.ID, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return polls, nil
}

func (f SeedFile) normalize() ([]models.Poll, error) {
	polls := make([]models.Poll, 0, len(f.Polls))
	for i, sp := range f.Polls {
		if sp.Question == "" {
			return nil, fmt.Errorf("poll %d: question is required", i)
		}
		id := sp.ID
		if id == "" {
			id = uuid.NewSHA1(uuid.NameSpaceURL, []byte("ridepolls:"+sp.Question)).String()
		}

		p := models.Poll{ID: id, Question: sp.Question}
		for j, so := range sp.Options {
			if so.Label == "" {
				return nil, fmt.Errorf("poll %s option %d: label is required", id, j)
			}
			o := models.Option{ID: so.ID, PollID: id, Label: so.Label, SortOrder: j}
			if o.ID == "" {
				o.ID = fmt.Sprintf("%s-%d", id, j+1)
			}
			if so.SortOrder != nil {
				o.SortOrder = *so.SortOrder
			}
			p.Options = append(p.Options, o)
		}
		polls = append(polls, p)
	}
	return polls, nil
}
