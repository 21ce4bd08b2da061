package leaderboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Postgres is a shared leaderboard backed by PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// Row is one leaderboard line.
type Row struct {
	Name      string
	Score     int
	GameID    string
	CreatedAt time.Time
}

// OpenPostgres connects to dsn and creates the tables if needed.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: cannot ping database: %w", err)
	}

	p := &Postgres{db: db}
	if err := p.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: schema: %w", err)
	}
	return p, nil
}

func (p *Postgres) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS leaderboard (
		id BIGSERIAL PRIMARY KEY,
		game_id TEXT NOT NULL,
		name TEXT NOT NULL,
		score INTEGER NOT NULL,
		player_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS leaderboard_top ON leaderboard (game_id, score DESC);

	CREATE TABLE IF NOT EXISTS personal_records (
		player_key TEXT NOT NULL,
		game_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		PRIMARY KEY (player_key, game_id)
	);

	CREATE TABLE IF NOT EXISTS player_profiles (
		player_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := p.db.ExecContext(ctx, schema)
	return err
}

// Submit implements Submitter. The leaderboard row, personal record and
// profile are written in one transaction.
func (p *Postgres) Submit(ctx context.Context, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	name := strings.TrimSpace(e.Name)
	key := e.PlayerID
	if key == "" {
		key = "name:" + name
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("leaderboard: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO leaderboard (game_id, name, score, player_id) VALUES ($1, $2, $3, $4)`,
		e.GameID, name, e.Score, e.PlayerID,
	); err != nil {
		return fmt.Errorf("leaderboard: insert: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO personal_records (player_key, game_id, score) VALUES ($1, $2, $3)
		 ON CONFLICT (player_key, game_id)
		 DO UPDATE SET score = GREATEST(personal_records.score, EXCLUDED.score), updated_at = NOW()`,
		key, e.GameID, e.Score,
	); err != nil {
		return fmt.Errorf("leaderboard: personal record: %w", err)
	}

	if e.PlayerID != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO player_profiles (player_id, name) VALUES ($1, $2)
			 ON CONFLICT (player_id) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()`,
			e.PlayerID, name,
		); err != nil {
			return fmt.Errorf("leaderboard: profile: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("leaderboard: commit: %w", err)
	}
	return nil
}

// Top returns the best limit runs for gameID.
func (p *Postgres) Top(ctx context.Context, gameID string, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := p.db.QueryContext(ctx,
		`SELECT name, score, game_id, created_at FROM leaderboard
		 WHERE game_id = $1 ORDER BY score DESC, id ASC LIMIT $2`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: query: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Name, &r.Score, &r.GameID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("leaderboard: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PersonalBest returns the recorded best for a player id (or name when the
// id is empty). Zero means no record.
func (p *Postgres) PersonalBest(ctx context.Context, gameID, playerID, name string) (int, error) {
	key := playerID
	if key == "" {
		key = "name:" + strings.TrimSpace(name)
	}
	var score int
	err := p.db.QueryRowContext(ctx,
		`SELECT score FROM personal_records WHERE player_key = $1 AND game_id = $2`,
		key, gameID,
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("leaderboard: personal best: %w", err)
	}
	return score, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}
