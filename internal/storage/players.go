package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Player is a local identity: a generated id and a display name.
type Player struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// ErrEmptyName is returned when a player name is blank after trimming.
var ErrEmptyName = errors.New("storage: player name is empty")

// NewPlayerID returns an id of the form user_<unix millis>_<7 base36 chars>.
func NewPlayerID(now time.Time, rng *rand.Rand) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	var sb strings.Builder
	for i := 0; i < 7; i++ {
		sb.WriteByte(alphabet[rng.Intn(len(alphabet))])
	}
	return "user_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + sb.String()
}

// PlayerByName returns the player with the given name, or nil if none exists.
func (s *Store) PlayerByName(name string) (*Player, error) {
	var p Player
	var createdAt any
	err := s.db.QueryRow(
		"SELECT id, name, created_at FROM players WHERE name = ?",
		strings.TrimSpace(name),
	).Scan(&p.ID, &p.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}

// EnsurePlayer returns the player called name, creating one if needed.
func (s *Store) EnsurePlayer(name string) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	existing, err := s.PlayerByName(name)
	if err != nil || existing != nil {
		return existing, err
	}

	now := time.Now()
	p := &Player{
		ID:        NewPlayerID(now, rand.New(rand.NewSource(now.UnixNano()))),
		Name:      name,
		CreatedAt: now,
	}
	_, err = s.db.Exec(
		"INSERT INTO players (id, name) VALUES (?, ?) ON CONFLICT(name) DO NOTHING",
		p.ID, p.Name,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot save player: %w", err)
	}

	// Another writer may have won the race for this name
	return s.PlayerByName(name)
}

// PlayerID returns the stable id for name, creating the player if needed.
func (s *Store) PlayerID(name string) (string, error) {
	p, err := s.EnsurePlayer(name)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}
