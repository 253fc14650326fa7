package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/gnomegl/tgpin/pkg/upload"
)

func loadTOML(t *testing.T, body string) (*Config, error) {
	t.Helper()
	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(body)))
	return Load(v)
}

const validTOML = `
[telegram]
api_id = 12345
api_hash = "0123456789abcdef"

[export]
chats = ["somechannel", "otherchat"]
output = "out.json"

[upload]
provider = "gofile"
token = "secret"
`

func TestLoadValidConfig(t *testing.T) {
	cfg, err := loadTOML(t, validTOML)
	require.NoError(t, err)

	require.Equal(t, 12345, cfg.Telegram.APIID)
	require.Equal(t, "0123456789abcdef", cfg.Telegram.APIHash)
	require.Equal(t, []string{"somechannel", "otherchat"}, cfg.Export.Chats)
	require.Equal(t, "out.json", cfg.Export.Output)
	require.Equal(t, "gofile", cfg.Upload.Provider)
	require.Equal(t, "secret", cfg.Upload.Token)

	// defaults
	require.Equal(t, DefaultSessionFile, cfg.Telegram.SessionFile)
	require.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestLoadEmptyChatListIsValid(t *testing.T) {
	cfg, err := loadTOML(t, `
[telegram]
api_id = 1
api_hash = "h"

[upload]
provider = "gofile"
token = "t"
`)
	require.NoError(t, err)
	require.Empty(t, cfg.Export.Chats)
}

func TestLoadValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{
			name: "Missing api_id",
			toml: strings.Replace(validTOML, "api_id = 12345", "", 1),
			want: "telegram.api_id",
		},
		{
			name: "Missing api_hash",
			toml: strings.Replace(validTOML, `api_hash = "0123456789abcdef"`, "", 1),
			want: "telegram.api_hash",
		},
		{
			name: "Unsupported provider",
			toml: strings.Replace(validTOML, `provider = "gofile"`, `provider = "dropbox"`, 1),
			want: "dropbox",
		},
		{
			name: "Missing token",
			toml: strings.Replace(validTOML, `token = "secret"`, "", 1),
			want: "upload.token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadTOML(t, tt.toml)
			require.Error(t, err)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadUnsupportedProviderSentinel(t *testing.T) {
	_, err := loadTOML(t, strings.Replace(validTOML, `provider = "gofile"`, `provider = "mega"`, 1))
	require.ErrorIs(t, err, upload.ErrUnsupportedProvider)
}
