package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

var DB *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id    TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS players (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scores (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id      TEXT NOT NULL,
	player_id    INTEGER NOT NULL,
	round_number INTEGER NOT NULL,
	score        INTEGER NOT NULL,
	UNIQUE(game_id, player_id, round_number),
	FOREIGN KEY (game_id) REFERENCES games(game_id),
	FOREIGN KEY (player_id) REFERENCES players(id)
);
`

// Open opens a sqlite database at the given path. sqlite allows a single
// writer, so the pool is capped at one connection.
func Open(path string) (*sql.DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	d.SetMaxOpenConns(1)
	d.SetMaxIdleConns(1)

	if _, err := d.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000;"); err != nil {
		d.Close()
		return nil, fmt.Errorf("setting pragmas: %w", err)
	}

	if _, err := d.Exec(schema); err != nil {
		d.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	DB = d
	return d, nil
}

// Close is for graceful shutdown
func Close() {
	if DB != nil {
		DB.Close()
	}
}
