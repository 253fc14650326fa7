package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnomegl/tgpin/pkg/telegram"
)

// ChatClient is the collection slice of the remote client.
type ChatClient interface {
	ResolveChat(ctx context.Context, handle string) (telegram.ChatIdentity, error)
	SearchPinned(ctx context.Context, chat telegram.ChatIdentity) (telegram.PinnedSearch, error)
}

// Collector walks the configured chats in order and extracts their pinned
// messages. Collection is all-or-nothing: an unresolvable handle or a
// sender without a public handle aborts the whole run, producing no output.
type Collector struct {
	client ChatClient
	log    *slog.Logger
}

func NewCollector(client ChatClient, log *slog.Logger) *Collector {
	if log == nil {
		log = slog.Default()
	}
	return &Collector{client: client, log: log}
}

// Collect returns every qualifying pinned message in discovery order: chats
// in the given order, items in the service's pagination order within each
// chat. Items carrying media are dropped; the export is text only.
func (c *Collector) Collect(ctx context.Context, handles []string) ([]Message, error) {
	var out []Message
	for _, handle := range handles {
		chat, err := c.client.ResolveChat(ctx, handle)
		if err != nil {
			return nil, fmt.Errorf("resolve chat: %w", err)
		}
		search, err := c.client.SearchPinned(ctx, chat)
		if err != nil {
			return nil, fmt.Errorf("chat %q: %w", handle, err)
		}
		c.log.Info("collecting pinned messages", "chat", handle, "total", search.Total())

		for {
			item, ok, err := search.Next(ctx)
			if err != nil {
				return nil, fmt.Errorf("chat %q: %w", handle, err)
			}
			if !ok {
				break
			}
			if item.HasMedia {
				continue
			}
			if item.Sender == "" {
				return nil, fmt.Errorf("chat %q: %w", handle, ErrNoSenderHandle)
			}
			out = append(out, Message{
				Sender: item.Sender,
				Text:   item.Text,
				Date:   item.Date.UTC().Format(DateLayout),
			})
		}
	}
	return out, nil
}
