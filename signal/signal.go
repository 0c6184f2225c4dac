// Package signal fans out user invalidation events over redis pub/sub so that
// other processes holding handles for the same user can drop them.
package signal

import (
	"context"
	"encoding/json"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/totegamma/nameless-go"
	"github.com/totegamma/nameless-go/policy"
)

const DefaultChannel = "nameless:invalidations"

type Event struct {
	Identifier string    `json:"identifier"`
	Operation  string    `json:"operation"`
	Source     string    `json:"source,omitempty"`
	At         time.Time `json:"at"`
}

// UserIdentifier parses the event's identifier.
func (e Event) UserIdentifier() (nameless.Identifier, error) {
	return nameless.ParseIdentifier(e.Identifier)
}

type RedisPublisher struct {
	rdb     *redis.Client
	channel string
	source  string
	now     func() time.Time
}

func NewRedisPublisher(rdb *redis.Client, channel, source string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{
		rdb:     rdb,
		channel: channel,
		source:  source,
		now:     time.Now,
	}
}

func (s *RedisPublisher) Publish(ctx context.Context, event Event) error {
	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, s.channel, jsonstr).Err()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to publish invalidation")
	}

	return nil
}

// Invalidated has the shape of api.InvalidationHook.
func (s *RedisPublisher) Invalidated(ctx context.Context, id nameless.Identifier, op policy.Operation) error {
	return s.Publish(ctx, s.event(id, op))
}

func (s *RedisPublisher) event(id nameless.Identifier, op policy.Operation) Event {
	return Event{
		Identifier: id.String(),
		Operation:  string(op),
		Source:     s.source,
		At:         s.now().UTC(),
	}
}

// Subscribe calls fn for every event on channel until ctx is done. Messages
// that do not decode are skipped.
func Subscribe(ctx context.Context, rdb *redis.Client, channel string, fn func(Event)) error {
	if channel == "" {
		channel = DefaultChannel
	}
	sub := rdb.Subscribe(ctx, channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return pkgerrors.Wrap(err, "failed to subscribe")
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			event, err := decodeEvent(msg.Payload)
			if err != nil {
				continue
			}
			fn(event)
		}
	}
}

func decodeEvent(payload string) (Event, error) {
	var event Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return Event{}, err
	}
	if _, err := event.UserIdentifier(); err != nil {
		return Event{}, err
	}
	return event, nil
}
