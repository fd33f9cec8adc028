package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// MySQLStore keeps each document in one row of the documents table.
// A single row is the unit of atomicity, which matches the storage
// model exactly: one document commits or fails as a whole, and two
// documents never commit together.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore returns a MySQLStore bound to the provided database.
func NewMySQLStore(db *sql.DB) *MySQLStore { return &MySQLStore{db: db} }

// EnsureSchema creates the documents table when it does not exist yet.
// It is safe to call on every startup.
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS documents (
        name       VARCHAR(64) NOT NULL PRIMARY KEY,
        body       JSON        NOT NULL,
        updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
    )`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// Load returns the full body of the named document, or ErrNotFound
// when it has never been written.
func (s *MySQLStore) Load(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE name = ?`, name,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Save rewrites the named document wholesale.  The upsert is a single
// statement so the document is always either the old or the new body,
// never a mix.
func (s *MySQLStore) Save(ctx context.Context, name string, body []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (name, body) VALUES (?, ?)
         ON DUPLICATE KEY UPDATE body = VALUES(body)`,
		name, body,
	)
	return err
}
