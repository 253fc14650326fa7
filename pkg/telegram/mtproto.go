package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	tdclient "github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
)

const searchPageSize = 100

// MTProto implements Client on top of a connected gotd client. It must be
// used inside the client's Run callback.
type MTProto struct {
	client *tdclient.Client
	api    *tg.Client

	// login state carried between SendLoginCode and VerifyCode
	phone    string
	codeHash string
}

func NewMTProto(client *tdclient.Client) *MTProto {
	return &MTProto{client: client, api: client.API()}
}

func (m *MTProto) Authorized(ctx context.Context) (bool, error) {
	status, err := m.client.Auth().Status(ctx)
	if err != nil {
		return false, fmt.Errorf("auth status: %w", err)
	}
	return status.Authorized, nil
}

func (m *MTProto) SendLoginCode(ctx context.Context, phone string) error {
	sent, err := m.client.Auth().SendCode(ctx, phone, auth.SendCodeOptions{})
	if err != nil {
		return fmt.Errorf("send login code: %w", err)
	}
	code, ok := sent.(*tg.AuthSentCode)
	if !ok {
		return fmt.Errorf("send login code: unexpected response %T", sent)
	}
	m.phone = phone
	m.codeHash = code.PhoneCodeHash
	return nil
}

func (m *MTProto) VerifyCode(ctx context.Context, code string) error {
	_, err := m.client.Auth().SignIn(ctx, m.phone, code, m.codeHash)
	if err == nil {
		return nil
	}
	if errors.Is(err, auth.ErrPasswordAuthNeeded) {
		return &PasswordRequiredError{Hint: m.passwordHint(ctx)}
	}
	return fmt.Errorf("verify code: %w", err)
}

// passwordHint fetches the account's password hint. A failed lookup just
// means the operator gets no hint.
func (m *MTProto) passwordHint(ctx context.Context) string {
	pwd, err := m.api.AccountGetPassword(ctx)
	if err != nil {
		return ""
	}
	hint, _ := pwd.GetHint()
	return hint
}

func (m *MTProto) VerifyPassword(ctx context.Context, password string) error {
	if _, err := m.client.Auth().Password(ctx, password); err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	return nil
}

func (m *MTProto) SignOut(ctx context.Context) error {
	if _, err := m.api.AuthLogOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func (m *MTProto) ResolveChat(ctx context.Context, handle string) (ChatIdentity, error) {
	res, err := m.api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{
		Username: handle,
	})
	if err != nil {
		if tgerr.Is(err, "USERNAME_NOT_OCCUPIED", "USERNAME_INVALID") {
			return ChatIdentity{}, fmt.Errorf("%q: %w", handle, ErrChatNotFound)
		}
		return ChatIdentity{}, fmt.Errorf("resolve %q: %w", handle, err)
	}

	switch p := res.Peer.(type) {
	case *tg.PeerUser:
		for _, uc := range res.Users {
			if user, ok := uc.(*tg.User); ok && user.ID == p.UserID {
				return ChatIdentity{
					Handle: handle,
					ID:     user.ID,
					Title:  user.FirstName,
					peer:   user.AsInputPeer(),
				}, nil
			}
		}
	case *tg.PeerChannel:
		for _, cc := range res.Chats {
			if ch, ok := cc.(*tg.Channel); ok && ch.ID == p.ChannelID {
				return ChatIdentity{
					Handle: handle,
					ID:     ch.ID,
					Title:  ch.Title,
					peer:   ch.AsInputPeer(),
				}, nil
			}
		}
	case *tg.PeerChat:
		return ChatIdentity{
			Handle: handle,
			ID:     p.ChatID,
			peer:   &tg.InputPeerChat{ChatID: p.ChatID},
		}, nil
	}
	return ChatIdentity{}, fmt.Errorf("%q: %w", handle, ErrChatNotFound)
}

func (m *MTProto) SearchPinned(ctx context.Context, chat ChatIdentity) (PinnedSearch, error) {
	s := &pinnedSearch{api: m.api, peer: chat.peer, limit: searchPageSize}
	// Fetch the first page eagerly so Total is known up front.
	if err := s.fetch(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// pinnedSearch pages through messages.search results with the pinned filter.
// Items are yielded in the order the service returns them.
type pinnedSearch struct {
	api   *tg.Client
	peer  tg.InputPeerClass
	limit int

	total    int
	offsetID int
	buf      []PinnedItem
	done     bool
}

func (s *pinnedSearch) Total() int { return s.total }

func (s *pinnedSearch) Next(ctx context.Context) (PinnedItem, bool, error) {
	for len(s.buf) == 0 && !s.done {
		if err := s.fetch(ctx); err != nil {
			return PinnedItem{}, false, err
		}
	}
	if len(s.buf) == 0 {
		return PinnedItem{}, false, nil
	}
	item := s.buf[0]
	s.buf = s.buf[1:]
	return item, true, nil
}

func (s *pinnedSearch) fetch(ctx context.Context) error {
	res, err := s.api.MessagesSearch(ctx, &tg.MessagesSearchRequest{
		Peer:     s.peer,
		Filter:   &tg.InputMessagesFilterPinned{},
		OffsetID: s.offsetID,
		Limit:    s.limit,
	})
	if err != nil {
		return fmt.Errorf("search pinned: %w", err)
	}

	var (
		msgs  []tg.MessageClass
		users []tg.UserClass
		chats []tg.ChatClass
	)
	switch r := res.(type) {
	case *tg.MessagesMessages:
		msgs, users, chats = r.Messages, r.Users, r.Chats
		s.total = len(r.Messages)
		s.done = true
	case *tg.MessagesMessagesSlice:
		msgs, users, chats = r.Messages, r.Users, r.Chats
		s.total = r.Count
	case *tg.MessagesChannelMessages:
		msgs, users, chats = r.Messages, r.Users, r.Chats
		s.total = r.Count
	default:
		return fmt.Errorf("search pinned: unexpected result %T", res)
	}
	if len(msgs) == 0 {
		s.done = true
		return nil
	}

	userHandles, chatHandles := publicHandles(users, chats)
	for _, mc := range msgs {
		s.offsetID = mc.GetID()
		msg, ok := mc.(*tg.Message)
		if !ok {
			// service and empty messages carry nothing exportable
			continue
		}
		_, hasMedia := msg.GetMedia()
		s.buf = append(s.buf, PinnedItem{
			Sender:   senderHandle(msg, userHandles, chatHandles),
			Text:     msg.Message,
			Date:     time.Unix(int64(msg.Date), 0).UTC(),
			HasMedia: hasMedia,
		})
	}
	if len(msgs) < s.limit {
		s.done = true
	}
	return nil
}

// publicHandles indexes the usernames of the users and channels attached to
// a search result page.
func publicHandles(users []tg.UserClass, chats []tg.ChatClass) (map[int64]string, map[int64]string) {
	userHandles := make(map[int64]string, len(users))
	for _, uc := range users {
		if user, ok := uc.(*tg.User); ok {
			if name, ok := user.GetUsername(); ok {
				userHandles[user.ID] = name
			}
		}
	}
	chatHandles := make(map[int64]string, len(chats))
	for _, cc := range chats {
		if ch, ok := cc.(*tg.Channel); ok {
			if name, ok := ch.GetUsername(); ok {
				chatHandles[ch.ID] = name
			}
		}
	}
	return userHandles, chatHandles
}

// senderHandle maps a message to its sender's public handle. Channel posts
// have no FromID and are attributed to the channel itself. An empty result
// means the sender has no public handle.
func senderHandle(msg *tg.Message, userHandles, chatHandles map[int64]string) string {
	from, ok := msg.GetFromID()
	if !ok {
		from = msg.PeerID
	}
	switch p := from.(type) {
	case *tg.PeerUser:
		return userHandles[p.UserID]
	case *tg.PeerChannel:
		return chatHandles[p.ChannelID]
	}
	return ""
}
