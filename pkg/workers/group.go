package workers

import (
	"context"
	"sync"
)

// Group runs workers on a shared context that is cancelled by Stop.
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func NewGroup() *Group {
	ctx, cancel := context.WithCancel(context.Background())
	return &Group{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Go starts a worker in its own goroutine.
func (g *Group) Go(start func(ctx context.Context)) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		start(g.ctx)
	}()
}

// Stop cancels every worker and waits until they have drained what is
// pending. Only the first call has any effect.
func (g *Group) Stop() {
	g.once.Do(func() {
		g.cancel()
		g.wg.Wait()
	})
}
