package game

import (
	"errors"
	"testing"

	mocks "github.com/cbodonnell/monopoly/mocks/github.com/cbodonnell/monopoly/pkg/queue"
	"github.com/cbodonnell/monopoly/pkg/config"
	"github.com/cbodonnell/monopoly/pkg/game/types"
	"github.com/cbodonnell/monopoly/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestQueueNotifier(t *testing.T) {
	mockQueue := mocks.NewQueue(t)
	n := NewQueueNotifier("game-1", mockQueue)

	var enqueued *models.GameEvent
	mockQueue.EXPECT().Enqueue(mock.Anything).Run(func(item interface{}) {
		enqueued = item.(*models.GameEvent)
	}).Return(nil).Once()
	mockQueue.EXPECT().Enqueue(mock.Anything).Return(errors.New("queue is full")).Once()

	n.Notify(types.Event{
		Type:     types.EventTypeRentPaid,
		Round:    4,
		PlayerID: 1,
		Token:    "Player 2",
		Position: 2,
		Amount:   90,
		Balance:  1410,
		Message:  "Player 2 paid HKD 90 rent to Player 1",
	})
	// a full queue drops the event without failing the game
	n.Notify(types.Event{Type: types.EventTypeBalance})

	if assert.NotNil(t, enqueued) {
		assert.Equal(t, "game-1", enqueued.GameID)
		assert.Equal(t, "rent_paid", enqueued.Type)
		assert.Equal(t, 4, enqueued.Round)
		assert.Equal(t, 90, enqueued.Amount)
		assert.Equal(t, 1410, enqueued.Balance)
		assert.NotZero(t, enqueued.Timestamp)
	}
}

func TestMultiNotifier(t *testing.T) {
	a, b := &eventRecorder{}, &eventRecorder{}
	var n Notifier = MultiNotifier{a, NopNotifier{}, b}

	n.Notify(types.Event{Type: types.EventTypeJailed})

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

func TestDefaultDecider(t *testing.T) {
	d := NewDefaultDecider(config.Default().Defaults)

	tests := []struct {
		kind PromptKind
		want int
	}{
		{kind: PromptKindBuyProperty, want: OptionNo},
		{kind: PromptKindJailStrategy, want: OptionFeelingLucky},
		{kind: PromptKindBailPayNow, want: OptionYes},
		{kind: PromptKindTurnAction, want: OptionPlayTurn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, d.Choose(Prompt{Kind: tt.kind, Options: []string{"a", "b"}}), tt.kind.String())
	}
}

func TestPromptValid(t *testing.T) {
	p := Prompt{Options: []string{"Yes", "No"}}
	assert.False(t, p.Valid(0))
	assert.True(t, p.Valid(1))
	assert.True(t, p.Valid(2))
	assert.False(t, p.Valid(3))
}
