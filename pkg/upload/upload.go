package upload

import (
	"context"
	"fmt"
	"time"
)

// Uploader delivers a serialized batch to a remote blob host and returns
// the host's textual response.
type Uploader interface {
	Upload(ctx context.Context, filename string, payload []byte) (string, error)
}

// ProviderGofile is the only supported provider value.
const ProviderGofile = "gofile"

var ErrUnsupportedProvider = fmt.Errorf("unsupported upload provider")

// ForProvider returns the uploader for a configured provider name. This is
// deliberately a fixed integration, not a plugin registry: anything but
// gofile is a configuration error.
func ForProvider(name, token string) (Uploader, error) {
	switch name {
	case ProviderGofile:
		return NewGofile(token), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, name)
	}
}

// BatchFilename names the delivered artifact after the UTC calendar date.
func BatchFilename(now time.Time) string {
	return now.UTC().Format("2006-01-02") + ".json"
}
