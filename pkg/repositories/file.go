package repositories

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cbodonnell/monopoly/pkg/repositories/models"
	"github.com/klauspost/compress/zstd"
)

const (
	gameFileSuffix   = ".json.zst"
	eventsFileSuffix = ".events.jsonl.zst"
)

// FileRepository stores each game as a zstd-compressed JSON document in a
// directory. Events are appended to a per-game JSONL stream, one zstd frame
// per append.
type FileRepository struct {
	dir  string
	lock sync.Mutex
}

type savedGameFile struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CurrentRound int             `json:"current_round"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Snapshot     json.RawMessage `json:"snapshot"`
}

func NewFileRepository(dir string) (Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %v", err)
	}
	return &FileRepository{
		dir: dir,
	}, nil
}

func (r *FileRepository) Close(ctx context.Context) error {
	return nil
}

func (r *FileRepository) SaveGame(ctx context.Context, game *models.SavedGame) error {
	if err := validGameID(game.ID); err != nil {
		return err
	}
	snapshot, err := json.Marshal(game.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %v", err)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	now := time.Now().UTC()
	createdAt := now
	if existing, err := r.readGameFile(game.ID); err == nil {
		createdAt = existing.CreatedAt
	} else if !IsNotFound(err) {
		return err
	}

	doc, err := json.Marshal(savedGameFile{
		ID:           game.ID,
		Name:         game.Name,
		CurrentRound: game.CurrentRound,
		CreatedAt:    createdAt,
		UpdatedAt:    now,
		Snapshot:     snapshot,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal game: %v", err)
	}

	path := r.gamePath(game.ID)
	tmp := path + ".tmp"
	if err := writeCompressed(tmp, doc, os.O_TRUNC); err != nil {
		return fmt.Errorf("failed to write game: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace game: %v", err)
	}
	return nil
}

func (r *FileRepository) LoadGame(ctx context.Context, gameID string) (*models.SavedGame, error) {
	if err := validGameID(gameID); err != nil {
		return nil, err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	doc, err := r.readGameFile(gameID)
	if err != nil {
		return nil, err
	}
	snapshot, err := models.DecodeGameSnapshot(doc.Snapshot)
	if err != nil {
		return nil, err
	}

	game := doc.summary()
	game.Snapshot = snapshot
	return game, nil
}

func (r *FileRepository) ListGames(ctx context.Context) ([]*models.SavedGame, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read save directory: %v", err)
	}

	games := []*models.SavedGame{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, gameFileSuffix) || strings.HasSuffix(name, eventsFileSuffix) {
			continue
		}
		doc, err := r.readGameFile(strings.TrimSuffix(name, gameFileSuffix))
		if err != nil {
			return nil, err
		}
		games = append(games, doc.summary())
	}

	sort.SliceStable(games, func(i, j int) bool {
		if !games[i].UpdatedAt.Equal(games[j].UpdatedAt) {
			return games[i].UpdatedAt.After(games[j].UpdatedAt)
		}
		return games[i].ID < games[j].ID
	})
	return games, nil
}

func (r *FileRepository) DeleteGame(ctx context.Context, gameID string) error {
	if err := validGameID(gameID); err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if err := os.Remove(r.gamePath(gameID)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ErrNotFound{}
		}
		return fmt.Errorf("failed to delete game: %v", err)
	}
	if err := os.Remove(r.eventsPath(gameID)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete game events: %v", err)
	}
	return nil
}

func (r *FileRepository) AppendEvents(ctx context.Context, events []*models.GameEvent) error {
	byGame := make(map[string][]byte)
	var order []string
	for _, e := range events {
		if err := validGameID(e.GameID); err != nil {
			return err
		}
		line, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal game event: %v", err)
		}
		if _, ok := byGame[e.GameID]; !ok {
			order = append(order, e.GameID)
		}
		byGame[e.GameID] = append(append(byGame[e.GameID], line...), '\n')
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	for _, gameID := range order {
		if err := writeCompressed(r.eventsPath(gameID), byGame[gameID], os.O_APPEND); err != nil {
			return fmt.Errorf("failed to append game events: %v", err)
		}
	}
	return nil
}

func (r *FileRepository) ListEvents(ctx context.Context, gameID string) ([]*models.GameEvent, error) {
	if err := validGameID(gameID); err != nil {
		return nil, err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	events := []*models.GameEvent{}
	f, err := os.Open(r.eventsPath(gameID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return events, nil
		}
		return nil, fmt.Errorf("failed to open game events: %v", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read game events: %v", err)
	}
	defer dec.Close()

	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		e := &models.GameEvent{}
		if err := json.Unmarshal(scanner.Bytes(), e); err != nil {
			return nil, fmt.Errorf("failed to decode game event: %v", err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game events: %v", err)
	}
	return events, nil
}

func (r *FileRepository) readGameFile(gameID string) (*savedGameFile, error) {
	f, err := os.Open(r.gamePath(gameID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to open game: %v", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read game: %v", err)
	}
	defer dec.Close()

	doc := &savedGameFile{}
	if err := json.NewDecoder(dec).Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidSnapshot, err)
	}
	return doc, nil
}

func (d *savedGameFile) summary() *models.SavedGame {
	return &models.SavedGame{
		ID:           d.ID,
		Name:         d.Name,
		CurrentRound: d.CurrentRound,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *FileRepository) gamePath(gameID string) string {
	return filepath.Join(r.dir, gameID+gameFileSuffix)
}

func (r *FileRepository) eventsPath(gameID string) string {
	return filepath.Join(r.dir, gameID+eventsFileSuffix)
}

// writeCompressed writes data to path as a single zstd frame.
func writeCompressed(path string, data []byte, mode int) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|mode, 0o644)
	if err != nil {
		return err
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return err
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func validGameID(gameID string) error {
	if gameID == "" || strings.ContainsAny(gameID, `/\`) || strings.HasPrefix(gameID, ".") {
		return fmt.Errorf("invalid game id %q", gameID)
	}
	return nil
}
