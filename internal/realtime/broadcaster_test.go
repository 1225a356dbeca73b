package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseapp/pulse/domain"
)

// fakeBlockGraph serves fixed exclusion lists.
type fakeBlockGraph struct {
	excluded map[int64][]int64
	err      error
}

func (f *fakeBlockGraph) Block(context.Context, int64, int64) error   { return nil }
func (f *fakeBlockGraph) Unblock(context.Context, int64, int64) error { return nil }

func (f *fakeBlockGraph) ExcludedAuthors(_ context.Context, userID int64) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.excluded[userID], nil
}

func TestBroadcaster_NewPostSkipsAuthorAndBlocked(t *testing.T) {
	registry := NewRegistry()
	author, blocked, viewer := &fakeConn{}, &fakeConn{}, &fakeConn{}
	registry.Register(1, author)
	registry.Register(2, blocked)
	registry.Register(3, viewer)

	blocks := &fakeBlockGraph{excluded: map[int64][]int64{1: {2}}}
	b := NewBroadcaster(registry, blocks)

	b.deliver(context.Background(), event{kind: eventNewPost, userID: 1, targetID: 100})

	assert.Empty(t, author.messages(t))
	assert.Empty(t, blocked.messages(t))
	msgs := viewer.messages(t)
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.MessageNewPost, msgs[0].Type)
}

func TestBroadcaster_NewPostDroppedOnGraphError(t *testing.T) {
	registry := NewRegistry()
	viewer := &fakeConn{}
	registry.Register(3, viewer)

	blocks := &fakeBlockGraph{err: domain.ErrInternalServerError}
	b := NewBroadcaster(registry, blocks)

	// delivery without a resolvable exclusion set is dropped, never leaked
	b.deliver(context.Background(), event{kind: eventNewPost, userID: 1, targetID: 100})
	assert.Empty(t, viewer.messages(t))
}

func TestBroadcaster_NewNotificationOnlyToRecipient(t *testing.T) {
	registry := NewRegistry()
	recipient, other := &fakeConn{}, &fakeConn{}
	registry.Register(1, recipient)
	registry.Register(2, other)

	b := NewBroadcaster(registry, &fakeBlockGraph{})
	b.deliver(context.Background(), event{kind: eventNewNotification, userID: 1, targetID: 50})

	msgs := recipient.messages(t)
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.MessageNewNotification, msgs[0].Type)
	assert.Empty(t, other.messages(t))
}

func TestBroadcaster_EnqueueNeverBlocks(t *testing.T) {
	b := NewBroadcaster(NewRegistry(), &fakeBlockGraph{})

	// no consumer running; producers must stay unblocked past the buffer
	for i := 0; i < 2000; i++ {
		b.NewPost(1, int64(i))
	}
}

func TestBroadcaster_StartDrainsQueue(t *testing.T) {
	registry := NewRegistry()
	viewer := &fakeConn{}
	registry.Register(2, viewer)

	b := NewBroadcaster(registry, &fakeBlockGraph{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		b.Start(ctx)
		close(done)
	}()

	b.NewPost(1, 100)
	b.NewNotification(2, 50)

	assert.Eventually(t, func() bool {
		return len(viewer.messages(t)) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
