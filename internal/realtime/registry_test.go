package realtime

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseapp/pulse/domain"
)

// fakeConn records everything sent to it.
type fakeConn struct {
	mu   sync.Mutex
	sent [][]byte
}

func (c *fakeConn) Send(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, data)
}

func (c *fakeConn) messages(t *testing.T) []domain.Message {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Message, len(c.sent))
	for i, data := range c.sent {
		require.NoError(t, json.Unmarshal(data, &out[i]))
	}
	return out
}

func TestRegistry_RegisterUnregister(t *testing.T) {
	r := NewRegistry()
	conn := &fakeConn{}

	assert.False(t, r.IsConnected(1))

	r.Register(1, conn)
	assert.True(t, r.IsConnected(1))
	assert.Equal(t, []int64{1}, r.ConnectedUserIDs())

	r.Unregister(1, conn)
	assert.False(t, r.IsConnected(1))
	assert.Empty(t, r.ConnectedUserIDs())
}

func TestRegistry_MultipleConnectionsPerUser(t *testing.T) {
	r := NewRegistry()
	tab1, tab2 := &fakeConn{}, &fakeConn{}

	r.Register(1, tab1)
	r.Register(1, tab2)

	r.SendToUser(1, domain.Message{Type: domain.MessagePong})
	assert.Len(t, tab1.messages(t), 1)
	assert.Len(t, tab2.messages(t), 1)

	// closing one tab keeps the user connected
	r.Unregister(1, tab1)
	assert.True(t, r.IsConnected(1))

	r.SendToUser(1, domain.Message{Type: domain.MessagePong})
	assert.Len(t, tab1.messages(t), 1)
	assert.Len(t, tab2.messages(t), 2)
}

func TestRegistry_SendToUsersTargetsOnlyListed(t *testing.T) {
	r := NewRegistry()
	alice, bob, carol := &fakeConn{}, &fakeConn{}, &fakeConn{}
	r.Register(1, alice)
	r.Register(2, bob)
	r.Register(3, carol)

	r.SendToUsers([]int64{1, 3}, domain.Message{
		Type:    domain.MessageNewPost,
		Payload: domain.NewPostPayload{PostID: 7, AuthorID: 2},
	})

	require.Len(t, alice.messages(t), 1)
	assert.Empty(t, bob.messages(t))
	require.Len(t, carol.messages(t), 1)
	assert.Equal(t, domain.MessageNewPost, alice.messages(t)[0].Type)
}

func TestRegistry_SendToAbsentUserIsNoop(t *testing.T) {
	r := NewRegistry()
	assert.NotPanics(t, func() {
		r.SendToUser(42, domain.Message{Type: domain.MessagePong})
	})
}
