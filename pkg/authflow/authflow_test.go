package authflow

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gnomegl/tgpin/pkg/telegram"
)

type scriptedPrompter struct {
	phone    string
	code     string
	password string

	hintSeen string
	asked    []string
}

func (p *scriptedPrompter) Phone() (string, error) {
	p.asked = append(p.asked, "phone")
	return p.phone, nil
}

func (p *scriptedPrompter) Code() (string, error) {
	p.asked = append(p.asked, "code")
	return p.code, nil
}

func (p *scriptedPrompter) Password(hint string) (string, error) {
	p.asked = append(p.asked, "password")
	p.hintSeen = hint
	return p.password, nil
}

type fakeAuth struct {
	authorized bool
	hint       string
	wantCode   string
	wantPass   string

	codeErr error

	phoneSent string
	codeSeen  string
	passSeen  string
}

func (a *fakeAuth) Authorized(_ context.Context) (bool, error) { return a.authorized, nil }

func (a *fakeAuth) SendLoginCode(_ context.Context, phone string) error {
	a.phoneSent = phone
	return nil
}

func (a *fakeAuth) VerifyCode(_ context.Context, code string) error {
	a.codeSeen = code
	if a.codeErr != nil {
		return a.codeErr
	}
	if a.wantPass != "" {
		return &telegram.PasswordRequiredError{Hint: a.hint}
	}
	if code != a.wantCode {
		return fmt.Errorf("PHONE_CODE_INVALID")
	}
	return nil
}

func (a *fakeAuth) VerifyPassword(_ context.Context, password string) error {
	a.passSeen = password
	if password != a.wantPass {
		return fmt.Errorf("PASSWORD_HASH_INVALID")
	}
	return nil
}

func TestRunSkipsPromptsWhenSessionAuthorized(t *testing.T) {
	auth := &fakeAuth{authorized: true}
	prompt := &scriptedPrompter{}

	ctrl := NewController(auth, prompt, nil)
	fresh, err := ctrl.Run(context.Background())
	require.NoError(t, err)
	require.False(t, fresh)
	require.Equal(t, Authenticated, ctrl.State())
	require.Empty(t, prompt.asked)
}

func TestRunCodeOnlyLogin(t *testing.T) {
	auth := &fakeAuth{wantCode: "12345"}
	prompt := &scriptedPrompter{phone: " +1555000111 \n", code: "12345\n"}

	ctrl := NewController(auth, prompt, nil)
	fresh, err := ctrl.Run(context.Background())
	require.NoError(t, err)
	require.True(t, fresh)
	require.Equal(t, Authenticated, ctrl.State())
	require.Equal(t, "+1555000111", auth.phoneSent)
	require.Equal(t, "12345", auth.codeSeen)
	require.Equal(t, []string{"phone", "code"}, prompt.asked)
}

func TestRunPasswordChallenge(t *testing.T) {
	tests := []struct {
		name         string
		hint         string
		expectedHint string
	}{
		{name: "Hint surfaced", hint: "favorite color", expectedHint: "favorite color"},
		{name: "Missing hint falls back to placeholder", hint: "", expectedHint: "None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{hint: tt.hint, wantPass: "hunter2"}
			prompt := &scriptedPrompter{phone: "+1", code: "000", password: "  hunter2  "}

			ctrl := NewController(auth, prompt, nil)
			fresh, err := ctrl.Run(context.Background())
			require.NoError(t, err)
			require.True(t, fresh)
			require.Equal(t, Authenticated, ctrl.State())
			require.Equal(t, tt.expectedHint, prompt.hintSeen)
			// password is trimmed before verification
			require.Equal(t, "hunter2", auth.passSeen)
		})
	}
}

func TestRunCodeRejectionIsFatal(t *testing.T) {
	auth := &fakeAuth{codeErr: fmt.Errorf("PHONE_CODE_INVALID")}
	prompt := &scriptedPrompter{phone: "+1", code: "999"}

	ctrl := NewController(auth, prompt, nil)
	fresh, err := ctrl.Run(context.Background())
	require.Error(t, err)
	require.False(t, fresh)
	require.Equal(t, Failed, ctrl.State())
	require.NotContains(t, prompt.asked, "password")
}

func TestRunWrongPasswordIsFatal(t *testing.T) {
	auth := &fakeAuth{hint: "h", wantPass: "right"}
	prompt := &scriptedPrompter{phone: "+1", code: "000", password: "wrong"}

	ctrl := NewController(auth, prompt, nil)
	_, err := ctrl.Run(context.Background())
	require.Error(t, err)
	require.Equal(t, Failed, ctrl.State())
}

func TestConsolePrompter(t *testing.T) {
	in := strings.NewReader("+1555000111\n12345\nsecret pass\n")
	var out bytes.Buffer
	p := NewConsolePrompter(in, &out)

	phone, err := p.Phone()
	require.NoError(t, err)
	require.Equal(t, "+1555000111", phone)

	code, err := p.Code()
	require.NoError(t, err)
	require.Equal(t, "12345", code)

	password, err := p.Password("None")
	require.NoError(t, err)
	require.Equal(t, "secret pass", password)

	prompts := out.String()
	require.Contains(t, prompts, "Enter your phone number (international format): ")
	require.Contains(t, prompts, "Enter the code you received: ")
	require.Contains(t, prompts, "Enter the password (hint None): ")
}

func TestConsolePrompterMissingTrailingNewline(t *testing.T) {
	p := NewConsolePrompter(strings.NewReader("+49123"), &bytes.Buffer{})
	phone, err := p.Phone()
	require.NoError(t, err)
	require.Equal(t, "+49123", phone)
}
