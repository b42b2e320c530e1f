package router

import (
	"context"
	"sync"
)

// operation tracks the newest load of one area. Each begin bumps the
// generation and cancels the previous context; commit runs only for the
// current generation.
type operation struct {
	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	key      string
	inFlight bool
}

// begin starts a new generation. With a non-empty key, a begin whose key
// matches the load still in flight is refused.
func (o *operation) begin(parent context.Context, key string) (context.Context, uint64, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if key != "" && o.inFlight && o.key == key {
		return nil, 0, false
	}
	if o.cancel != nil {
		o.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	o.gen++
	o.cancel = cancel
	o.key = key
	o.inFlight = true
	return ctx, o.gen, true
}

// commit runs fn if gen is still current. Holding the lock keeps a newer
// begin from slipping between the check and the write.
func (o *operation) commit(gen uint64, fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen == o.gen {
		fn()
	}
}

func (o *operation) finish(gen uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		return
	}
	o.inFlight = false
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

// invalidate makes any in-flight load stale and returns the new generation.
func (o *operation) invalidate() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gen++
	o.inFlight = false
	o.key = ""
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	return o.gen
}

// pending counts background loads. Unlike a sync.WaitGroup it may be waited
// on while other goroutines start new loads.
type pending struct {
	mu   sync.Mutex
	n    int
	idle chan struct{}
}

func (p *pending) add() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.n == 0 {
		p.idle = make(chan struct{})
	}
	p.n++
}

func (p *pending) done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.n--
	if p.n == 0 {
		close(p.idle)
	}
}

// wait blocks until no load is running. Loads started after wait returns
// are not covered.
func (p *pending) wait() {
	p.mu.Lock()
	if p.n == 0 {
		p.mu.Unlock()
		return
	}
	idle := p.idle
	p.mu.Unlock()
	<-idle
}
