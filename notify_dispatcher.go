package authgate

import (
	"context"
	"sync"
	"sync/atomic"
)

// notifyDispatcher runs the fire-and-forget login notification path. Notices
// are dropped rather than queued when the buffer is full: notification is
// best-effort and must never hold up a login response.
type notifyDispatcher struct {
	notifier  Notifier
	ch        chan LoginNotice
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

func newNotifyDispatcher(cfg NotifyConfig, notifier Notifier) *notifyDispatcher {
	if notifier == nil {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}

	d := &notifyDispatcher{
		notifier: notifier,
		ch:       make(chan LoginNotice, cfg.BufferSize),
		done:     make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *notifyDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case notice := <-d.ch:
			// Delivery errors are swallowed: the login already succeeded.
			_ = d.notifier.NotifyLogin(context.Background(), notice)
		case <-d.done:
			for {
				select {
				case notice := <-d.ch:
					_ = d.notifier.NotifyLogin(context.Background(), notice)
				default:
					return
				}
			}
		}
	}
}

func (d *notifyDispatcher) Dispatch(notice LoginNotice) {
	if d == nil || d.closed.Load() {
		return
	}
	select {
	case d.ch <- notice:
	case <-d.done:
	default:
		d.dropped.Add(1)
	}
}

func (d *notifyDispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

func (d *notifyDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
