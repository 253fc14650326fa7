package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/gotd/td/tg"
)

// ErrChatNotFound is returned by ResolveChat when a handle does not resolve
// to any chat.
var ErrChatNotFound = fmt.Errorf("chat not found")

// PasswordRequiredError signals that code verification succeeded but the
// account has a second password factor. Hint may be empty when the account
// has none configured.
type PasswordRequiredError struct {
	Hint string
}

func (e *PasswordRequiredError) Error() string {
	return "password required"
}

// ChatIdentity is a resolved chat handle. It is only valid for the run that
// resolved it and is never persisted.
type ChatIdentity struct {
	Handle string
	ID     int64
	Title  string

	peer tg.InputPeerClass
}

// PinnedItem is one pinned message as the remote service reports it, before
// any export filtering.
type PinnedItem struct {
	// Sender is the public handle of the message sender, empty when the
	// sender has none.
	Sender   string
	Text     string
	Date     time.Time
	HasMedia bool
}

// PinnedSearch is a finite, forward-only producer of pinned items in the
// service's own pagination order. It is single-pass: drain it fully before
// starting the next chat.
type PinnedSearch interface {
	// Total reports the service's total pinned count for the chat. It is
	// informational (progress reporting) and may disagree with the number
	// of items the sequence actually yields.
	Total() int

	// Next returns the next item. The second result is false once the
	// sequence is exhausted.
	Next(ctx context.Context) (PinnedItem, bool, error)
}

// Client is the slice of the remote messaging service this tool consumes.
// The production implementation is MTProto; tests script it.
type Client interface {
	// Authorized reports whether the stored session already proves the
	// caller is signed in.
	Authorized(ctx context.Context) (bool, error)

	// SendLoginCode asks the service to deliver a login code to phone and
	// retains the login token for the following VerifyCode call.
	SendLoginCode(ctx context.Context, phone string) error

	// VerifyCode submits the operator-supplied code. It returns
	// *PasswordRequiredError when the account needs its second factor.
	VerifyCode(ctx context.Context, code string) error

	// VerifyPassword submits the second-factor password.
	VerifyPassword(ctx context.Context, password string) error

	// ResolveChat resolves a public handle, wrapping ErrChatNotFound when
	// no chat owns it.
	ResolveChat(ctx context.Context, handle string) (ChatIdentity, error)

	// SearchPinned starts a pinned-messages search scoped to chat.
	SearchPinned(ctx context.Context, chat ChatIdentity) (PinnedSearch, error)

	// SignOut invalidates the current authorization.
	SignOut(ctx context.Context) error
}
