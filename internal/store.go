package internal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const storeTimeLayout = "2006-01-02 15:04:05"

const storeSchema = `
CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	sender TEXT NOT NULL,
	item TEXT NOT NULL,
	amount REAL NOT NULL CHECK (amount > 0),
	original_message TEXT,
	category_id TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
`

// Store persists transaction snapshots in a sqlite database. The model
// is snapshot-in, snapshot-out: Save replaces the stored list wholesale
// and Load returns the full list.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot with the given transaction list.
func (s *Store) Save(txs []Transaction) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO transactions (id, date, sender, item, amount, original_message, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txs {
		_, err := stmt.Exec(
			t.ID,
			t.Date.Format(storeTimeLayout),
			t.Sender,
			t.Item,
			t.Amount,
			t.OriginalMessage,
			t.CategoryID,
			t.CreatedAt.Format(storeTimeLayout),
			t.UpdatedAt.Format(storeTimeLayout),
		)
		if err != nil {
			return fmt.Errorf("inserting transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Load returns the full stored transaction list, oldest first.
func (s *Store) Load() ([]Transaction, error) {
	rows, err := s.db.Query(`
		SELECT id, date, sender, item, amount, original_message, category_id, created_at, updated_at
		FROM transactions ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var t Transaction
		var date, createdAt, updatedAt string
		if err := rows.Scan(&t.ID, &date, &t.Sender, &t.Item, &t.Amount,
			&t.OriginalMessage, &t.CategoryID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		if t.Date, err = time.ParseInLocation(storeTimeLayout, date, time.Local); err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", date, err)
		}
		t.CreatedAt, _ = time.ParseInLocation(storeTimeLayout, createdAt, time.Local)
		t.UpdatedAt, _ = time.ParseInLocation(storeTimeLayout, updatedAt, time.Local)
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
