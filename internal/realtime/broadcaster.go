package realtime

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pulseapp/pulse/domain"
)

type eventKind int

const (
	eventNewPost eventKind = iota
	eventNewNotification
)

type event struct {
	kind     eventKind
	userID   int64 // author for new_post, recipient for new_notification
	targetID int64 // post id or notification id
}

// Broadcaster consumes mutation events from a buffered channel and fans
// them out to eligible connected users. Producers never block: when the
// channel is full the event is dropped and logged, the REST state stays
// the source of truth for reconciliation.
type Broadcaster struct {
	registry domain.ConnectionRegistry
	blocks   domain.BlockGraph
	ch       chan event
}

var _ domain.Broadcaster = (*Broadcaster)(nil)

func NewBroadcaster(registry domain.ConnectionRegistry, blocks domain.BlockGraph) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		blocks:   blocks,
		ch:       make(chan event, 1024),
	}
}

func (b *Broadcaster) NewPost(authorID, postID int64) {
	b.enqueue(event{kind: eventNewPost, userID: authorID, targetID: postID})
}

func (b *Broadcaster) NewNotification(recipientID, notificationID int64) {
	b.enqueue(event{kind: eventNewNotification, userID: recipientID, targetID: notificationID})
}

func (b *Broadcaster) enqueue(ev event) {
	select {
	case b.ch <- ev:
	default:
		logrus.Warn("Broadcaster's channel is full, event dropped")
	}
}

func (b *Broadcaster) Start(ctx context.Context) {
	for {
		select {
		case ev := <-b.ch:
			b.deliver(ctx, ev)
		case <-ctx.Done():
			logrus.Info("shutting down Broadcaster...")
			return
		}
	}
}

func (b *Broadcaster) deliver(ctx context.Context, ev event) {
	switch ev.kind {
	case eventNewPost:
		b.deliverNewPost(ctx, ev.userID, ev.targetID)
	case eventNewNotification:
		// no block filtering: the notification exists only because its
		// creation was not prevented by a live block edge
		if b.registry.IsConnected(ev.userID) {
			b.registry.SendToUser(ev.userID, domain.Message{
				Type:    domain.MessageNewNotification,
				Payload: domain.NewNotificationPayload{NotificationID: ev.targetID},
			})
		}
	}
}

// deliverNewPost pushes to every connected user outside the author's block
// relationships. The author themselves is skipped too.
func (b *Broadcaster) deliverNewPost(ctx context.Context, authorID, postID int64) {
	excluded, err := b.blocks.ExcludedAuthors(ctx, authorID)
	if err != nil {
		logrus.Errorf("failed to resolve excluded authors for user %d, dropping new_post fanout: %v", authorID, err)
		return
	}

	skip := make(map[int64]struct{}, len(excluded)+1)
	skip[authorID] = struct{}{}
	for _, id := range excluded {
		skip[id] = struct{}{}
	}

	connected := b.registry.ConnectedUserIDs()
	recipients := make([]int64, 0, len(connected))
	for _, id := range connected {
		if _, ok := skip[id]; !ok {
			recipients = append(recipients, id)
		}
	}
	if len(recipients) == 0 {
		return
	}

	b.registry.SendToUsers(recipients, domain.Message{
		Type:    domain.MessageNewPost,
		Payload: domain.NewPostPayload{PostID: postID, AuthorID: authorID},
	})
}
