// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/tabuparty/gameserver/models"
)

// PostgreSQL is the database/sql word bank backend.
type PostgreSQL struct {
	db *sql.DB
}

// NewPostgreSQL opens a connection pool and ensures the words table exists.
func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS words (
            id INTEGER PRIMARY KEY,
            word TEXT UNIQUE NOT NULL,
            taboos TEXT[] NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`)
	return err
}

func (p *PostgreSQL) Create(word string, taboos []string) (models.Word, error) {
	tx, err := p.db.Begin()
	if err != nil {
		return models.Word{}, err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM words WHERE word = $1)`, word,
	).Scan(&exists); err != nil {
		return models.Word{}, err
	}
	if exists {
		return models.Word{}, ErrDuplicateWord
	}

	var id int
	if err := tx.QueryRow(
		`SELECT COALESCE(MAX(id), 0) + 1 FROM words`,
	).Scan(&id); err != nil {
		return models.Word{}, err
	}

	if _, err := tx.Exec(
		`INSERT INTO words (id, word, taboos) VALUES ($1, $2, $3)`,
		id, word, pq.Array(taboos),
	); err != nil {
		return models.Word{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Word{}, err
	}
	return models.Word{ID: id, Word: word, Taboos: taboos}, nil
}

func (p *PostgreSQL) List() ([]models.Word, error) {
	rows, err := p.db.Query(`SELECT id, word, taboos FROM words ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := []models.Word{}
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.ID, &w.Word, pq.Array(&w.Taboos)); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

func (p *PostgreSQL) Delete(id int) error {
	result, err := p.db.Exec(`DELETE FROM words WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWordNotFound
	}
	return nil
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
