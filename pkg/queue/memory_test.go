package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryQueue(t *testing.T) {
	q := NewInMemoryQueue(2)

	assert.NoError(t, q.Enqueue(1))
	assert.NoError(t, q.Enqueue(2))
	assert.ErrorIs(t, q.Enqueue(3), ErrQueueFull)
	assert.Equal(t, 2, q.Size())

	item, err := q.Dequeue()
	assert.NoError(t, err)
	assert.Equal(t, 1, item)

	assert.NoError(t, q.Enqueue(3))
	messages, err := q.ReadAllMessages()
	assert.NoError(t, err)
	assert.Equal(t, []interface{}{2, 3}, messages)
	assert.Equal(t, 0, q.Size())

	_, err = q.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestInMemoryQueueClear(t *testing.T) {
	q := NewInMemoryQueue(0)
	for i := 0; i < 10; i++ {
		assert.NoError(t, q.Enqueue(i))
	}
	assert.NoError(t, q.ClearQueue())
	assert.Equal(t, 0, q.Size())

	messages, err := q.ReadAllMessages()
	assert.NoError(t, err)
	assert.Empty(t, messages)
}
