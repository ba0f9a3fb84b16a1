package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/goliatone/go-fishlist/pkg/model"
	"github.com/goliatone/go-fishlist/pkg/source"
)

// ErrNotFound is returned when no record matches the requested id.
var ErrNotFound = errors.New("store: fish not found")

// SQLiteStore persists fish records and serves them in insertion order.
type SQLiteStore struct {
	db         *sql.DB
	insertStmt *sql.Stmt
	listStmt   *sql.Stmt
	getStmt    *sql.Stmt
	deleteStmt *sql.Stmt
	now        func() time.Time
}

var _ source.Provider = (*SQLiteStore)(nil)

// OpenSQLite opens or creates the database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, errors.New("store: database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("store: create db path: %w", err)
	}

	// busy_timeout waits on locks, WAL keeps readers off the writer, and
	// synchronous(NORMAL) is safe with WAL.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", filepath.Clean(dbPath))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.prepare(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("store: prepare: %w", err)
	}
	return s, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS fish (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			id         TEXT    NOT NULL UNIQUE,
			name       TEXT    NOT NULL,
			image      TEXT    NOT NULL DEFAULT '',
			species    TEXT    NOT NULL DEFAULT '',
			location   TEXT    NOT NULL DEFAULT '',
			size       TEXT    NOT NULL DEFAULT '',
			food       TEXT    NOT NULL DEFAULT '[]',
			created_at INTEGER NOT NULL
		);
	`)
	return err
}

func (s *SQLiteStore) prepare() error {
	var err error
	if s.insertStmt, err = s.db.Prepare(`
		INSERT INTO fish (id, name, image, species, location, size, food, created_at)
		VALUES (?,?,?,?,?,?,?,?)
	`); err != nil {
		return err
	}
	if s.listStmt, err = s.db.Prepare(`
		SELECT id, name, image, species, location, size, food
		FROM fish
		ORDER BY seq ASC
	`); err != nil {
		return err
	}
	if s.getStmt, err = s.db.Prepare(`
		SELECT id, name, image, species, location, size, food
		FROM fish
		WHERE id = ?
	`); err != nil {
		return err
	}
	s.deleteStmt, err = s.db.Prepare(`DELETE FROM fish WHERE id = ?`)
	return err
}

// Close releases the prepared statements and the database handle.
func (s *SQLiteStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.insertStmt, s.listStmt, s.getStmt, s.deleteStmt} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
	return s.db.Close()
}

// Add appends a record at the end of the ordering and returns the stored
// copy. Records without an ID receive a random UUID.
func (s *SQLiteStore) Add(ctx context.Context, fish *model.Fish) (*model.Fish, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store: not initialized")
	}
	if err := model.Require(fish); err != nil {
		return nil, fmt.Errorf("store: add: %w", err)
	}
	if strings.TrimSpace(fish.Name) == "" {
		return nil, errors.New("store: add: name is required")
	}

	record := fish.Clone()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	food, err := encodeFood(record.Food)
	if err != nil {
		return nil, err
	}

	_, err = s.insertStmt.ExecContext(ctx,
		record.ID,
		record.Name,
		record.Image,
		record.Species,
		record.Location,
		record.Size.String(),
		food,
		s.now().Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("store: add %q: %w", record.ID, err)
	}
	return record, nil
}

// Fish lists every stored record in insertion order.
func (s *SQLiteStore) Fish(ctx context.Context) (model.Collection, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store: not initialized")
	}

	rows, err := s.listStmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	out := model.Collection{}
	for rows.Next() {
		record, err := scanFish(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return out, nil
}

// Get returns the record with the given id or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Fish, error) {
	record, err := scanFish(s.getStmt.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %q: %w", id, err)
	}
	return record, nil
}

// Remove deletes the record with the given id.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	res, err := s.deleteStmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("store: remove %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: remove %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFish(row scanner) (*model.Fish, error) {
	var (
		record model.Fish
		size   string
		food   string
	)
	if err := row.Scan(&record.ID, &record.Name, &record.Image, &record.Species, &record.Location, &size, &food); err != nil {
		return nil, err
	}
	record.Size = model.Measure(size)
	if err := json.Unmarshal([]byte(food), &record.Food); err != nil {
		return nil, fmt.Errorf("decode food for %q: %w", record.ID, err)
	}
	return &record, nil
}

func encodeFood(food []string) (string, error) {
	if food == nil {
		food = []string{}
	}
	data, err := json.Marshal(food)
	if err != nil {
		return "", fmt.Errorf("store: encode food: %w", err)
	}
	return string(data), nil
}
