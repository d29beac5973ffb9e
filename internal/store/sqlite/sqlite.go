package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"blocgdp/internal/model"
)

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) UpsertDecadeRows(ctx context.Context, rows []model.DecadeRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bloc_decade_rows (
			countrycode, country, year, bloc, bloc_percentage,
			gdppc, pop, gdp, gdp_percent, generated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(countrycode, year, bloc)
		DO UPDATE SET
			country = excluded.country,
			bloc_percentage = excluded.bloc_percentage,
			gdppc = excluded.gdppc,
			pop = excluded.pop,
			gdp = excluded.gdp,
			gdp_percent = excluded.gdp_percent,
			generated_at = excluded.generated_at
	`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := range rows {
		row := rows[i]
		_, err = stmt.ExecContext(
			ctx,
			row.CountryCode,
			row.Country,
			row.Year,
			row.Bloc,
			row.BlocPercentage,
			row.GDPPerCapita,
			row.Population,
			row.GDP,
			row.GDPPercent,
			now,
		)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}

func (s *Store) ListDecadeRows(ctx context.Context) ([]model.DecadeRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT countrycode, country, year, bloc, bloc_percentage,
			gdppc, pop, gdp, gdp_percent
		FROM bloc_decade_rows
		ORDER BY countrycode, year, bloc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]model.DecadeRow, 0)
	for rows.Next() {
		var row model.DecadeRow
		if err := rows.Scan(
			&row.CountryCode,
			&row.Country,
			&row.Year,
			&row.Bloc,
			&row.BlocPercentage,
			&row.GDPPerCapita,
			&row.Population,
			&row.GDP,
			&row.GDPPercent,
		); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func (s *Store) migrate() error {
	statements := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS bloc_decade_rows (
			countrycode TEXT NOT NULL,
			country TEXT NOT NULL,
			year INTEGER NOT NULL,
			bloc TEXT NOT NULL,
			bloc_percentage REAL NOT NULL,
			gdppc REAL NOT NULL,
			pop REAL NOT NULL,
			gdp REAL NOT NULL,
			gdp_percent REAL NOT NULL,
			generated_at TEXT NOT NULL,
			PRIMARY KEY (countrycode, year, bloc)
		);`,
	}

	for _, statement := range statements {
		if _, err := s.db.Exec(statement); err != nil {
			return err
		}
	}

	return nil
}
