package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/sahayak/internal/models"
)

// SQLite implements Catalog on a SQLite database populated by Import.
type SQLite struct {
	db   *sql.DB
	path string
}

// NewSQLite opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLite(dbPath string) (*SQLite, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLite{db: db, path: dbPath}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS localities (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS providers (
		id TEXT PRIMARY KEY,
		locality INTEGER NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		rating REAL NOT NULL,
		review_count INTEGER NOT NULL,
		price_tier TEXT NOT NULL,
		address TEXT,
		phone TEXT,
		description TEXT,
		availability TEXT,
		image_url TEXT,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		services TEXT,
		year_established INTEGER,
		is_verified INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (locality) REFERENCES localities(position) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_providers_locality ON providers(locality, position);
	CREATE INDEX IF NOT EXISTS idx_providers_category ON providers(category COLLATE NOCASE);
	`
	_, err := db.Exec(schema)
	return err
}

// Import replaces the stored catalog with ds in a single transaction.
func (s *SQLite) Import(ctx context.Context, ds *Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM providers`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM localities`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO providers (id, locality, position, name, category, rating, review_count,
		 price_tier, address, phone, description, availability, image_url, latitude, longitude,
		 services, year_established, is_verified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for li, loc := range ds.Localities {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO localities (position, name) VALUES (?, ?)`, li, loc.Name,
		); err != nil {
			return fmt.Errorf("failed to insert locality %s: %w", loc.Name, err)
		}
		for pi, p := range loc.Providers {
			servicesJSON, err := json.Marshal(p.Services)
			if err != nil {
				return fmt.Errorf("failed to marshal services: %w", err)
			}
			if _, err := stmt.ExecContext(ctx,
				p.ID, li, pi, p.Name, p.Category, p.Rating, p.ReviewCount,
				string(p.PriceTier), p.Address, p.Phone, p.Description, p.Availability, p.ImageURL,
				p.Latitude, p.Longitude, string(servicesJSON), p.YearEstablished, p.IsVerified,
			); err != nil {
				return fmt.Errorf("failed to insert provider %s: %w", p.ID, err)
			}
		}
	}
	return tx.Commit()
}

const providerColumns = `id, name, category, rating, review_count, price_tier, address, phone,
	description, availability, image_url, latitude, longitude, services, year_established, is_verified`

func (s *SQLite) localityNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM localities ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLite) ByLocality(ctx context.Context, city, category string) ([]models.Provider, error) {
	names, err := s.localityNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list localities: %w", err)
	}
	idx := matchLocality(names, city)
	if idx < 0 {
		return []models.Provider{}, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+providerColumns+` FROM providers
		 WHERE locality = (SELECT position FROM localities WHERE name = ?)
		   AND (? = '' OR category = ? COLLATE NOCASE)
		 ORDER BY position`,
		names[idx], category, category,
	)
	if err != nil {
		return nil, err
	}
	return scanProviders(rows)
}

func (s *SQLite) ByID(ctx context.Context, id string) (models.Provider, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+providerColumns+` FROM providers WHERE id = ?`, id)
	p, err := scanProvider(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Provider{}, ErrNotFound
	}
	if err != nil {
		return models.Provider{}, err
	}
	return p, nil
}

func (s *SQLite) Categories(ctx context.Context, city string) ([]string, error) {
	providers, err := s.ByLocality(ctx, city, "")
	if err != nil {
		return nil, err
	}
	return distinctCategories(providers), nil
}

func (s *SQLite) All(ctx context.Context) ([]models.Provider, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+providerColumns+` FROM providers ORDER BY locality, position`)
	if err != nil {
		return nil, err
	}
	return scanProviders(rows)
}

// Localities returns the stored locality names, or nil if they cannot be read.
func (s *SQLite) Localities() []string {
	names, err := s.localityNames(context.Background())
	if err != nil {
		return nil
	}
	return names
}

// Count returns the number of stored providers.
func (s *SQLite) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM providers`).Scan(&n)
	return n, err
}

// SizeBytes returns the on-disk size of the database including its WAL files.
func (s *SQLite) SizeBytes() (int64, error) {
	var total int64
	for _, p := range []string{s.path, s.path + "-wal", s.path + "-shm"} {
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, err
		}
		total += info.Size()
	}
	return total, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProvider(row rowScanner) (models.Provider, error) {
	var p models.Provider
	var tier, servicesJSON string
	var phone, imageURL, address, description, availability sql.NullString
	var year sql.NullInt64
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Rating, &p.ReviewCount, &tier,
		&address, &phone, &description, &availability, &imageURL,
		&p.Latitude, &p.Longitude, &servicesJSON, &year, &p.IsVerified); err != nil {
		return p, err
	}
	p.PriceTier = models.PriceTier(tier)
	p.Address = address.String
	p.Phone = phone.String
	p.Description = description.String
	p.Availability = availability.String
	p.ImageURL = imageURL.String
	p.YearEstablished = int(year.Int64)
	if servicesJSON != "" {
		if err := json.Unmarshal([]byte(servicesJSON), &p.Services); err != nil {
			return p, fmt.Errorf("failed to unmarshal services: %w", err)
		}
	}
	return p, nil
}

func scanProviders(rows *sql.Rows) ([]models.Provider, error) {
	defer rows.Close()
	out := []models.Provider{}
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
