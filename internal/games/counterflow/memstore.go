package counterflow

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vovakirdan/counterflow/internal/storage"
)

// memoryStore keeps players for the life of the process. The game falls back
// to it when no persistent store is configured.
type memoryStore struct {
	nameMax int
	players map[string]storage.Player
	seq     int64
}

func newMemoryStore(nameMax int) *memoryStore {
	return &memoryStore{nameMax: nameMax, players: make(map[string]storage.Player)}
}

func (m *memoryStore) CreatePlayer(name string) (storage.Player, error) {
	name, err := storage.NormalizeName(name, m.nameMax)
	if err != nil {
		return storage.Player{}, err
	}
	m.seq++
	p := storage.Player{UID: uuid.NewString(), Username: name, Seq: m.seq}
	m.players[p.UID] = p
	return p, nil
}

func (m *memoryStore) Players() ([]storage.Player, error) {
	return storage.InsertionOrder(m.players), nil
}

func (m *memoryStore) Leaderboard(limit int) ([]storage.Player, error) {
	list := storage.RankOrder(m.players)
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *memoryStore) UpdateScoreIfHigher(id string, score int) (bool, error) {
	p, ok := m.players[id]
	if !ok {
		return false, fmt.Errorf("memory store: update %s: %w", id, storage.ErrNotFound)
	}
	if score <= p.Score {
		return false, nil
	}
	p.Score = score
	m.players[id] = p
	return true, nil
}

func (m *memoryStore) Rank(id string) (int, error) {
	for i, p := range storage.RankOrder(m.players) {
		if p.UID == id {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("memory store: rank %s: %w", id, storage.ErrNotFound)
}
