package authflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/gnomegl/tgpin/pkg/telegram"
)

// noHintPlaceholder is shown when the account has no password hint.
const noHintPlaceholder = "None"

// State of the login machine.
type State int

const (
	Unauthenticated State = iota
	AwaitingCode
	AwaitingPassword
	Authenticated
	Failed
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case AwaitingCode:
		return "awaiting-code"
	case AwaitingPassword:
		return "awaiting-password"
	case Authenticated:
		return "authenticated"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Prompter supplies the three operator inputs the login flow can ask for.
// The console implementation lives in this package; tests script their own.
type Prompter interface {
	Phone() (string, error)
	Code() (string, error)
	Password(hint string) (string, error)
}

// Authenticator is the authentication slice of the remote client.
type Authenticator interface {
	Authorized(ctx context.Context) (bool, error)
	SendLoginCode(ctx context.Context, phone string) error
	VerifyCode(ctx context.Context, code string) error
	VerifyPassword(ctx context.Context, password string) error
}

// Controller drives the login state machine. Any challenge rejection other
// than the password-required branch is fatal; there are no retries.
type Controller struct {
	auth   Authenticator
	prompt Prompter
	log    *slog.Logger
	state  State
}

func NewController(auth Authenticator, prompt Prompter, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{auth: auth, prompt: prompt, log: log, state: Unauthenticated}
}

// State returns the machine's current state.
func (c *Controller) State() State { return c.state }

// Run drives the machine until Authenticated or Failed. fresh reports
// whether an interactive login happened this run; it is false when the
// stored session already proved authorization.
func (c *Controller) Run(ctx context.Context) (fresh bool, err error) {
	authorized, err := c.auth.Authorized(ctx)
	if err != nil {
		c.state = Failed
		return false, fmt.Errorf("probe session: %w", err)
	}
	if authorized {
		c.log.Debug("stored session already authorized")
		c.state = Authenticated
		return false, nil
	}

	c.log.Info("signing in")
	phone, err := c.prompt.Phone()
	if err != nil {
		c.state = Failed
		return false, fmt.Errorf("read phone number: %w", err)
	}
	if err := c.auth.SendLoginCode(ctx, strings.TrimSpace(phone)); err != nil {
		c.state = Failed
		return false, err
	}
	c.state = AwaitingCode

	code, err := c.prompt.Code()
	if err != nil {
		c.state = Failed
		return false, fmt.Errorf("read login code: %w", err)
	}
	err = c.auth.VerifyCode(ctx, strings.TrimSpace(code))
	var pwRequired *telegram.PasswordRequiredError
	switch {
	case err == nil:
		c.state = Authenticated
		return true, nil
	case errors.As(err, &pwRequired):
		c.state = AwaitingPassword
	default:
		c.state = Failed
		return false, err
	}

	hint := lo.Ternary(pwRequired.Hint == "", noHintPlaceholder, pwRequired.Hint)
	password, err := c.prompt.Password(hint)
	if err != nil {
		c.state = Failed
		return false, fmt.Errorf("read password: %w", err)
	}
	if err := c.auth.VerifyPassword(ctx, strings.TrimSpace(password)); err != nil {
		c.state = Failed
		return false, err
	}
	c.state = Authenticated
	return true, nil
}
