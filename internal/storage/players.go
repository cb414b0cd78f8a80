package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultNameMax is the display name limit used when none is configured.
const DefaultNameMax = 12

var (
	// ErrNotFound is returned for score updates or rank lookups on an unknown id.
	ErrNotFound = errors.New("storage: player not found")

	// ErrInvalidName is returned when a display name is blank, too long or
	// contains non-printable characters.
	ErrInvalidName = errors.New("storage: invalid player name")
)

// CorruptError reports a player file that exists but cannot be decoded.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("storage: corrupt player file %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Player is one persisted profile.
// Seq is the insertion sequence; files from older versions omit it.
type Player struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Seq      int64  `json:"seq,omitempty"`
}

// PlayerStore keeps player records in a single JSON document keyed by uid.
// Every call reads the file; every mutation rewrites it atomically.
// It is not safe for concurrent use.
type PlayerStore struct {
	path    string
	nameMax int
	logger  *log.Logger
	now     func() time.Time
}

// OpenPlayers prepares a player store at path, creating parent directories.
// The file itself is created on the first mutation.
func OpenPlayers(path string, nameMax int, logger *log.Logger) (*PlayerStore, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	if nameMax <= 0 {
		nameMax = DefaultNameMax
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &PlayerStore{
		path:    path,
		nameMax: nameMax,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Path returns the location of the player file.
func (s *PlayerStore) Path() string {
	return s.path
}

// NormalizeName trims the name and checks it against the store's rules.
func NormalizeName(name string, max int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is blank", ErrInvalidName)
	}
	if n := utf8.RuneCountInString(name); n > max {
		return "", fmt.Errorf("%w: %d characters, at most %d allowed", ErrInvalidName, n, max)
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return "", fmt.Errorf("%w: contains non-printable %U", ErrInvalidName, r)
		}
	}
	return name, nil
}

// CreatePlayer validates the name, assigns a fresh id and persists the
// record with a zero score.
func (s *PlayerStore) CreatePlayer(name string) (Player, error) {
	name, err := NormalizeName(name, s.nameMax)
	if err != nil {
		return Player{}, err
	}

	players, err := s.loadForWrite()
	if err != nil {
		return Player{}, err
	}

	var seq int64
	for _, p := range players {
		seq = max(seq, p.Seq)
	}

	p := Player{
		UID:      uuid.NewString(),
		Username: name,
		Score:    0,
		Seq:      seq + 1,
	}
	players[p.UID] = p

	if err := s.write(players); err != nil {
		return Player{}, err
	}
	s.logger.Info("player created", "uid", p.UID, "name", p.Username)
	return p, nil
}

// LoadAll returns every persisted record. A missing file is an empty store.
// A malformed file yields an empty map together with a *CorruptError; a file
// that cannot be read is a plain error and is never treated as corrupt.
func (s *PlayerStore) LoadAll() (map[string]Player, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]Player{}, nil
	}
	if err != nil {
		return map[string]Player{}, fmt.Errorf("storage: cannot read players: %w", err)
	}

	players := make(map[string]Player)
	if len(strings.TrimSpace(string(data))) == 0 {
		return players, nil
	}
	if err := json.Unmarshal(data, &players); err != nil {
		return map[string]Player{}, &CorruptError{Path: s.path, Err: err}
	}

	for key, p := range players {
		if p.UID == "" {
			p.UID = key
		}
		if p.UID != key || p.Score < 0 {
			return map[string]Player{}, &CorruptError{
				Path: s.path,
				Err:  fmt.Errorf("record %q is inconsistent", key),
			}
		}
		players[key] = p
	}
	return players, nil
}

// Players returns all players in insertion order. On a corrupt file the
// list is empty and the *CorruptError is returned alongside it.
func (s *PlayerStore) Players() ([]Player, error) {
	players, err := s.LoadAll()
	return InsertionOrder(players), err
}

// Leaderboard returns players by descending best score, ties broken by
// insertion order and then id. A limit <= 0 returns everyone.
func (s *PlayerStore) Leaderboard(limit int) ([]Player, error) {
	players, err := s.LoadAll()
	list := RankOrder(players)
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, err
}

// UpdateScoreIfHigher persists score only when it beats the stored best.
// It reports whether a write happened.
func (s *PlayerStore) UpdateScoreIfHigher(id string, score int) (bool, error) {
	players, err := s.loadForWrite()
	if err != nil {
		return false, err
	}

	p, ok := players[id]
	if !ok {
		return false, fmt.Errorf("storage: update %s: %w", id, ErrNotFound)
	}
	if score <= p.Score {
		return false, nil
	}

	prev := p.Score
	p.Score = score
	players[id] = p
	if err := s.write(players); err != nil {
		return false, err
	}
	s.logger.Info("new best score", "uid", id, "previous", prev, "score", score)
	return true, nil
}

// Rank returns the 1-based leaderboard position of the player.
func (s *PlayerStore) Rank(id string) (int, error) {
	players, err := s.LoadAll()
	if err != nil {
		return 0, err
	}
	for i, p := range RankOrder(players) {
		if p.UID == id {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("storage: rank %s: %w", id, ErrNotFound)
}

// RankOrder lists players by descending score, then insertion sequence,
// then id.
func RankOrder(players map[string]Player) []Player {
	list := make([]Player, 0, len(players))
	for _, p := range players {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Seq != b.Seq {
			return a.Seq < b.Seq
		}
		return a.UID < b.UID
	})
	return list
}

// InsertionOrder lists players by insertion sequence, then id.
func InsertionOrder(players map[string]Player) []Player {
	list := make([]Player, 0, len(players))
	for _, p := range players {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Seq != list[j].Seq {
			return list[i].Seq < list[j].Seq
		}
		return list[i].UID < list[j].UID
	})
	return list
}

// loadForWrite loads the records a mutation starts from. A corrupt file is
// moved aside so the write that follows does not destroy it.
func (s *PlayerStore) loadForWrite() (map[string]Player, error) {
	players, err := s.LoadAll()
	var corrupt *CorruptError
	if errors.As(err, &corrupt) {
		aside := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().Unix())
		if rerr := os.Rename(s.path, aside); rerr != nil {
			return nil, fmt.Errorf("storage: cannot move corrupt file aside: %w", rerr)
		}
		s.logger.Warn("corrupt player file moved aside", "path", aside, "err", corrupt.Err)
		return map[string]Player{}, nil
	}
	return players, err
}

// write replaces the store file with the given records. The document goes
// to a temporary file in the same directory, is synced, then renamed over
// the store so readers never observe a partial file.
func (s *PlayerStore) write(players map[string]Player) error {
	data, err := json.MarshalIndent(players, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: cannot encode players: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".players-*.tmp")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write players: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot sync players: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("storage: cannot set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", s.path, err)
	}
	return nil
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
