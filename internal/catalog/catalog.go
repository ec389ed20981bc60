// Package catalog stores the slide decks shown by the site's carousels.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Zachkp/showcase/internal/i18n"
)

var ErrDeckNotFound = errors.New("catalog: deck not found")

// Slide is one rendered slide in a single locale.
type Slide struct {
	Position int    `json:"position"`
	Kind     string `json:"kind"`
	Src      string `json:"src"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Text     string `json:"text,omitempty"`
	CTALabel string `json:"cta_label,omitempty"`
	CTAHref  string `json:"cta_href,omitempty"`
}

// Deck is an ordered slide sequence plus its autoplay settings.
type Deck struct {
	Name         string        `json:"name"`
	Locale       i18n.Locale   `json:"locale"`
	Autoplay     bool          `json:"autoplay"`
	Interval     time.Duration `json:"interval"`
	PauseOnHover bool          `json:"pause_on_hover"`
	Slides       []Slide       `json:"slides"`
}

// Caption holds the translatable fields of a slide.
type Caption struct {
	Title    string
	Subtitle string
	Text     string
	CTALabel string
}

type SlideSpec struct {
	Kind     string
	Src      string
	CTAHref  string
	Captions map[i18n.Locale]Caption
}

// DeckSpec is the seed form of a deck, with every translation.
type DeckSpec struct {
	Name         string
	Autoplay     bool
	Interval     time.Duration
	PauseOnHover bool
	Slides       []SlideSpec
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite catalog at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Catalog opened at: %s", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the catalog tables.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS decks (
			name TEXT PRIMARY KEY,
			autoplay INTEGER NOT NULL DEFAULT 1,
			interval_ms INTEGER NOT NULL,
			pause_on_hover INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS slides (
			deck TEXT NOT NULL REFERENCES decks(name) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			kind TEXT NOT NULL DEFAULT 'image',
			src TEXT NOT NULL,
			cta_href TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (deck, position)
		)`,
		`CREATE TABLE IF NOT EXISTS captions (
			deck TEXT NOT NULL,
			position INTEGER NOT NULL,
			locale TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			subtitle TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			cta_label TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (deck, position, locale),
			FOREIGN KEY (deck, position) REFERENCES slides(deck, position) ON DELETE CASCADE
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate catalog: %w", err)
		}
	}
	return nil
}

// Seed replaces the named decks with the given content. Decks not in the
// list are left alone, so seeding twice is harmless.
func (s *Store) Seed(ctx context.Context, decks []DeckSpec) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, d := range decks {
		if d.Interval <= 0 {
			return fmt.Errorf("deck %q: interval must be positive", d.Name)
		}

		for _, table := range []string{"captions", "slides"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE deck = ?`, d.Name); err != nil {
				return fmt.Errorf("deck %q: %w", d.Name, err)
			}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM decks WHERE name = ?`, d.Name); err != nil {
			return fmt.Errorf("deck %q: %w", d.Name, err)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO decks (name, autoplay, interval_ms, pause_on_hover) VALUES (?, ?, ?, ?)`,
			d.Name, d.Autoplay, d.Interval.Milliseconds(), d.PauseOnHover)
		if err != nil {
			return fmt.Errorf("deck %q: %w", d.Name, err)
		}

		for pos, sl := range d.Slides {
			kind := sl.Kind
			if kind == "" {
				kind = "image"
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO slides (deck, position, kind, src, cta_href) VALUES (?, ?, ?, ?, ?)`,
				d.Name, pos, kind, sl.Src, sl.CTAHref)
			if err != nil {
				return fmt.Errorf("deck %q slide %d: %w", d.Name, pos, err)
			}

			for locale, c := range sl.Captions {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO captions (deck, position, locale, title, subtitle, body, cta_label)
					VALUES (?, ?, ?, ?, ?, ?, ?)`,
					d.Name, pos, string(locale), c.Title, c.Subtitle, c.Text, c.CTALabel)
				if err != nil {
					return fmt.Errorf("deck %q slide %d caption %s: %w", d.Name, pos, locale, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	log.Printf("Catalog seeded with %d decks", len(decks))
	return nil
}

// Deck loads a deck with captions in locale, falling back to the
// i18n.Fallback caption for slides that lack a translation.
func (s *Store) Deck(ctx context.Context, name string, locale i18n.Locale) (*Deck, error) {
	d := &Deck{Name: name, Locale: locale}

	var intervalMS int64
	err := s.db.QueryRowContext(ctx,
		`SELECT autoplay, interval_ms, pause_on_hover FROM decks WHERE name = ?`, name).
		Scan(&d.Autoplay, &intervalMS, &d.PauseOnHover)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDeckNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load deck %q: %w", name, err)
	}
	d.Interval = time.Duration(intervalMS) * time.Millisecond

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.position, s.kind, s.src, s.cta_href,
			COALESCE(c.title, f.title, ''),
			COALESCE(c.subtitle, f.subtitle, ''),
			COALESCE(c.body, f.body, ''),
			COALESCE(c.cta_label, f.cta_label, '')
		FROM slides s
		LEFT JOIN captions c ON c.deck = s.deck AND c.position = s.position AND c.locale = ?
		LEFT JOIN captions f ON f.deck = s.deck AND f.position = s.position AND f.locale = ?
		WHERE s.deck = ?
		ORDER BY s.position`,
		string(locale), string(i18n.Fallback), name)
	if err != nil {
		return nil, fmt.Errorf("failed to load slides of %q: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sl Slide
		if err := rows.Scan(&sl.Position, &sl.Kind, &sl.Src, &sl.CTAHref,
			&sl.Title, &sl.Subtitle, &sl.Text, &sl.CTALabel); err != nil {
			return nil, fmt.Errorf("failed to scan slide of %q: %w", name, err)
		}
		d.Slides = append(d.Slides, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read slides of %q: %w", name, err)
	}

	return d, nil
}

// Decks lists deck names in alphabetical order.
func (s *Store) Decks(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM decks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
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
