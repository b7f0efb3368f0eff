// Package storage keeps self-play results in SQLite, using the pure-Go
// modernc.org/sqlite driver.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/peterkuimelis/locm/internal/game"
	"github.com/peterkuimelis/locm/internal/selfplay"
)

// Store manages the SQLite connection.
type Store struct {
	db *sql.DB
}

// GameRow is a stored game.
type GameRow struct {
	ID        uuid.UUID
	Batch     string
	Seed      int64
	First     string
	Second    string
	Winner    game.PlayerOrder
	Turns     int
	Result    string
	Checksum  string
	CreatedAt time.Time
}

// Tally counts stored outcomes.
type Tally struct {
	Games int
	Wins  [2]int
	Draws int
}

// Open creates or opens a database at path, creating parent directories and
// running migrations. A leading ~ is expanded to the home directory.
func Open(path string) (*Store, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; concurrent sqlite writers fail with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			batch TEXT NOT NULL,
			seed INTEGER NOT NULL,
			first TEXT NOT NULL,
			second TEXT NOT NULL,
			winner INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			result TEXT NOT NULL,
			checksum TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_batch ON games(batch);

		CREATE TABLE IF NOT EXISTS battle_states (
			game_id TEXT NOT NULL REFERENCES games(id),
			seq INTEGER NOT NULL,
			turn INTEGER NOT NULL,
			player INTEGER NOT NULL,
			won INTEGER NOT NULL,
			state TEXT NOT NULL,
			PRIMARY KEY (game_id, seq)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecord stores a finished game and its samples under batch in one
// transaction. It returns the id assigned to the game.
func (s *Store) SaveRecord(ctx context.Context, batch string, rec *selfplay.Record) (uuid.UUID, error) {
	id := uuid.New()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO games (id, batch, seed, first, second, winner, turns, result, checksum)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), batch, rec.Seed, rec.Players[0], rec.Players[1],
		int(rec.Winner), rec.Turns, rec.Result, rec.Checksum,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot save game: %w", err)
	}

	if len(rec.Samples) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO battle_states (game_id, seq, turn, player, won, state) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return uuid.Nil, fmt.Errorf("storage: cannot prepare sample insert: %w", err)
		}
		defer stmt.Close()
		for i, smp := range rec.Samples {
			if _, err := stmt.ExecContext(ctx, id.String(), i, smp.Turn, int(smp.Player), smp.Won, smp.State); err != nil {
				return uuid.Nil, fmt.Errorf("storage: cannot save sample %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot commit: %w", err)
	}
	return id, nil
}

// Game retrieves a stored game. It returns nil when no game has the id.
func (s *Store) Game(ctx context.Context, id uuid.UUID) (*GameRow, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, batch, seed, first, second, winner, turns, result, checksum, created_at
		 FROM games WHERE id = ?`, id.String())
	g, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}
	return g, nil
}

// Games lists the games of a batch in seed order.
func (s *Store) Games(ctx context.Context, batch string) ([]GameRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, batch, seed, first, second, winner, turns, result, checksum, created_at
		 FROM games WHERE batch = ? ORDER BY seed`, batch)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameRow
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		games = append(games, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return games, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (*GameRow, error) {
	var g GameRow
	var id string
	var winner int
	var createdAt any
	if err := row.Scan(&id, &g.Batch, &g.Seed, &g.First, &g.Second, &winner, &g.Turns, &g.Result, &g.Checksum, &createdAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	g.ID = parsed
	g.Winner = game.PlayerOrder(winner)

	switch v := createdAt.(type) {
	case time.Time:
		g.CreatedAt = v
	case string:
		if t, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			g.CreatedAt = t
		}
	}
	return &g, nil
}

// Samples returns the stored battle states of a game in play order.
func (s *Store) Samples(ctx context.Context, id uuid.UUID) ([]selfplay.Sample, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT turn, player, won, state FROM battle_states WHERE game_id = ? ORDER BY seq`, id.String())
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query samples: %w", err)
	}
	defer rows.Close()

	var samples []selfplay.Sample
	for rows.Next() {
		var smp selfplay.Sample
		var player int
		if err := rows.Scan(&smp.Turn, &player, &smp.Won, &smp.State); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		smp.Player = game.PlayerOrder(player)
		samples = append(samples, smp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return samples, nil
}

// Tally counts the outcomes of a batch, or of every game when batch is empty.
func (s *Store) Tally(ctx context.Context, batch string) (Tally, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT winner, COUNT(*) FROM games WHERE ? = '' OR batch = ? GROUP BY winner`, batch, batch)
	if err != nil {
		return Tally{}, fmt.Errorf("storage: cannot query tally: %w", err)
	}
	defer rows.Close()

	var t Tally
	for rows.Next() {
		var winner, n int
		if err := rows.Scan(&winner, &n); err != nil {
			return Tally{}, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		t.Games += n
		switch game.PlayerOrder(winner) {
		case game.PlayerFirst, game.PlayerSecond:
			t.Wins[winner] += n
		default:
			t.Draws += n
		}
	}
	if err := rows.Err(); err != nil {
		return Tally{}, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return t, nil
}
