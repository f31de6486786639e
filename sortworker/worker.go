// Package sortworker runs comment-count ordering on a dedicated
// background goroutine, one request at a time.
//
// A Worker is created by its owning component at startup and released
// with Close at teardown. Requests and replies are plain messages: the
// caller hands over a copy of its posts and receives exactly one reply
// on the ticket channel. After Close no further replies are delivered,
// even for a request that was mid-sort when teardown started.
package sortworker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lmarchen/commentdeck/app"
	"github.com/lmarchen/commentdeck/domain"
)

type request struct {
	id    string
	posts []domain.Post
	order app.SortOrder
	reply chan app.SortReply
}

// Worker is the background sort unit. It satisfies app.PostSorter.
type Worker struct {
	requests chan request
	closed   chan struct{} // closed by Close; run loop stops accepting work
	done     chan struct{} // closed when the run loop has exited
	closing  sync.Once
	log      *zap.Logger
}

// New starts a worker goroutine and returns its handle.
func New(log *zap.Logger) *Worker {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Worker{
		requests: make(chan request),
		closed:   make(chan struct{}),
		done:     make(chan struct{}),
		log:      log,
	}
	go w.run()
	return w
}

// Submit hands one sort request to the worker. The posts slice is copied
// so the caller's state is never shared with the background goroutine.
// Exactly one reply is delivered on the returned ticket's channel unless
// the worker is released first.
func (w *Worker) Submit(ctx context.Context, posts []domain.Post, order app.SortOrder) (app.SortTicket, error) {
	req := request{
		id:    uuid.NewString(),
		posts: append([]domain.Post(nil), posts...),
		order: order,
		reply: make(chan app.SortReply, 1),
	}

	select {
	case w.requests <- req:
		w.log.Debug("sort request accepted",
			zap.String("request_id", req.id),
			zap.Int("posts", len(req.posts)),
			zap.Stringer("order", order))
		return app.SortTicket{ID: req.id, Reply: req.reply}, nil
	case <-w.closed:
		return app.SortTicket{}, domain.ErrSorterReleased
	case <-ctx.Done():
		return app.SortTicket{}, ctx.Err()
	}
}

// Released is closed once the worker goroutine has exited.
func (w *Worker) Released() <-chan struct{} {
	return w.done
}

// Close tears the worker down and waits for its goroutine to exit.
// Safe to call more than once. A reply for a request that was already
// being processed is dropped, never delivered late.
func (w *Worker) Close() {
	w.closing.Do(func() {
		close(w.closed)
	})
	<-w.done
}

func (w *Worker) run() {
	defer close(w.done)
	for {
		select {
		case req := <-w.requests:
			sortByComments(req.posts, req.order)

			// The owner may have torn us down while the sort ran.
			select {
			case <-w.closed:
				w.log.Debug("dropping reply after close", zap.String("request_id", req.id))
				return
			default:
			}

			// reply is buffered, the send never blocks the loop.
			req.reply <- app.SortReply{ID: req.id, Posts: req.posts}
			w.log.Debug("sort reply delivered", zap.String("request_id", req.id))

		case <-w.closed:
			w.log.Debug("sort worker stopped")
			return
		}
	}
}
