package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cbodonnell/monopoly/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
)

func testSnapshot(round int) *models.GameSnapshot {
	return &models.GameSnapshot{
		Players: []models.PlayerSnapshot{
			{Token: "Player 1", PlayerID: 0, Balance: 900, SquarePosition: 2, Properties: []int{2, 3}},
			{Token: "Player 2", PlayerID: 1, Balance: 1350, SquarePosition: 6, IsJailed: true, MoveCountSinceJail: 1, JailBailMode: true, Properties: []int{}},
		},
		CurrentPlayerID: 1,
		CurrentRound:    round,
	}
}

// testRepository runs the behaviour every repository shares.
func testRepository(t *testing.T, repository Repository) {
	ctx := context.Background()

	_, err := repository.LoadGame(ctx, "missing")
	assert.True(t, IsNotFound(err), "expected not found, got %v", err)
	assert.True(t, IsNotFound(repository.DeleteGame(ctx, "missing")))

	games, err := repository.ListGames(ctx)
	assert.NoError(t, err)
	assert.Empty(t, games)

	assert.NoError(t, repository.SaveGame(ctx, &models.SavedGame{ID: "game-1", Name: "first", CurrentRound: 3, Snapshot: testSnapshot(3)}))
	first, err := repository.LoadGame(ctx, "game-1")
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "first", first.Name)
	assert.Equal(t, testSnapshot(3), first.Snapshot)

	assert.NoError(t, repository.SaveGame(ctx, &models.SavedGame{ID: "game-1", Name: "first", CurrentRound: 4, Snapshot: testSnapshot(4)}))
	updated, err := repository.LoadGame(ctx, "game-1")
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, 4, updated.CurrentRound)
	assert.Equal(t, 4, updated.Snapshot.CurrentRound)
	assert.True(t, first.CreatedAt.Equal(updated.CreatedAt))

	assert.NoError(t, repository.SaveGame(ctx, &models.SavedGame{ID: "game-2", Name: "second", CurrentRound: 1, Snapshot: testSnapshot(1)}))
	games, err = repository.ListGames(ctx)
	assert.NoError(t, err)
	assert.Len(t, games, 2)
	for _, g := range games {
		assert.Nil(t, g.Snapshot)
	}

	events := []*models.GameEvent{
		{GameID: "game-1", Round: 4, Type: "dice_rolled", PlayerID: 0, Token: "Player 1", Amount: 5, Balance: 900, Message: "Player 1 rolled"},
		{GameID: "game-2", Round: 1, Type: "tax_paid", PlayerID: 1, Amount: 30, Balance: 270},
		{GameID: "game-1", Round: 4, Type: "jailed", PlayerID: 0, Position: 6, Balance: 900},
	}
	assert.NoError(t, repository.AppendEvents(ctx, events[:2]))
	assert.NoError(t, repository.AppendEvents(ctx, events[2:]))
	assert.NoError(t, repository.AppendEvents(ctx, nil))

	gameEvents, err := repository.ListEvents(ctx, "game-1")
	assert.NoError(t, err)
	assert.Equal(t, []*models.GameEvent{events[0], events[2]}, gameEvents)

	assert.NoError(t, repository.DeleteGame(ctx, "game-1"))
	_, err = repository.LoadGame(ctx, "game-1")
	assert.True(t, IsNotFound(err))
	gameEvents, err = repository.ListEvents(ctx, "game-1")
	assert.NoError(t, err)
	assert.Empty(t, gameEvents)

	gameEvents, err = repository.ListEvents(ctx, "game-2")
	assert.NoError(t, err)
	assert.Len(t, gameEvents, 1)
}

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	repository, err := NewSQLiteRepository(ctx, filepath.Join(t.TempDir(), "monopoly.db"), "../../migrations/sqlite")
	if !assert.NoError(t, err) {
		return
	}
	defer repository.Close(ctx)

	testRepository(t, repository)
}

func TestFileRepository(t *testing.T) {
	repository, err := NewFileRepository(t.TempDir())
	if !assert.NoError(t, err) {
		return
	}
	defer repository.Close(context.Background())

	testRepository(t, repository)
}

func TestFileRepositoryRejectsPathIDs(t *testing.T) {
	repository, err := NewFileRepository(t.TempDir())
	if !assert.NoError(t, err) {
		return
	}
	err = repository.SaveGame(context.Background(), &models.SavedGame{ID: "../escape", Snapshot: testSnapshot(1)})
	assert.Error(t, err)
}

func TestNewRepositoryFromURL(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repository, err := NewRepositoryFromURL(ctx, "file://"+dir, "")
	assert.NoError(t, err)
	assert.IsType(t, &FileRepository{}, repository)

	repository, err = NewRepositoryFromURL(ctx, "sqlite://"+filepath.Join(dir, "monopoly.db"), "../../migrations/sqlite")
	if assert.NoError(t, err) {
		assert.IsType(t, &SQLiteRepository{}, repository)
		repository.Close(ctx)
	}

	_, err = NewRepositoryFromURL(ctx, "mysql://localhost/monopoly", "")
	assert.Error(t, err)
}
