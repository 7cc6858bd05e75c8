package kanban

import (
	"context"
	"errors"
)

// ErrEventsDisabled is returned by Subscribe when the service runs without
// Redis; dashboards then fall back to polling.
var ErrEventsDisabled = errors.New("change events disabled: no redis client")

// Subscribe delivers raw change-event payloads published by this service's
// mutations. The returned cancel function must be called when the
// subscriber goes away; the channel closes after cancel or context end.
//
// One writer (the mutation paths), many read-only subscribers: observers
// never mutate through this surface.
func (s *Service) Subscribe(ctx context.Context) (<-chan string, func(), error) {
	if s.rdb == nil {
		return nil, nil, ErrEventsDisabled
	}

	sub := s.rdb.Subscribe(ctx, EventCardMoved, EventJobChanged, EventJobDeleted)
	out := make(chan string)

	go func() {
		defer close(out)
		in := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	cancel := func() { _ = sub.Close() }
	return out, cancel, nil
}
