package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnomegl/tgpin/pkg/authflow"
	"github.com/gnomegl/tgpin/pkg/export"
	"github.com/gnomegl/tgpin/pkg/fileutil"
	"github.com/gnomegl/tgpin/pkg/telegram"
	"github.com/gnomegl/tgpin/pkg/upload"
)

// SessionState reports whether session persistence failed during the run.
type SessionState interface {
	PersistErr() error
}

// Options carries everything one run needs. Client must already be
// connected; the pipeline never dials.
type Options struct {
	Client  telegram.Client
	Prompt  authflow.Prompter
	Session SessionState

	// Uploader delivers the batch; nil skips delivery.
	Uploader upload.Uploader

	Chats []string

	// Output is the local artifact path; empty skips the local copy.
	Output string

	// Now is settable for tests; nil means time.Now.
	Now func() time.Time

	Log *slog.Logger
}

// Run executes one full export: authenticate, collect every configured
// chat's pinned messages, sort, write the local artifact, deliver, and
// finally sign out if the session could not be persisted. Delivery failure
// is the only tolerated partial failure; everything else aborts the run.
func Run(ctx context.Context, opts Options) error {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	fresh, err := authflow.NewController(opts.Client, opts.Prompt, log).Run(ctx)
	if err != nil {
		return err
	}
	if fresh {
		log.Info("signed in")
		if perr := persistErr(opts.Session); perr != nil {
			log.Warn("failed to save the session, will sign out when done", "err", perr)
		}
	}

	// A fresh login whose session could not be saved must not stay
	// authorized: sign out at the end. Cleanup is best effort; its own
	// failure is swallowed. A pre-authorized run is left untouched, the
	// session file on disk still holds a valid session.
	defer func() {
		if fresh && persistErr(opts.Session) != nil {
			if err := opts.Client.SignOut(ctx); err != nil {
				log.Debug("best-effort sign-out failed", "err", err)
			}
		}
	}()

	batch, err := export.NewCollector(opts.Client, log).Collect(ctx, opts.Chats)
	if err != nil {
		return err
	}
	export.SortByDate(batch)

	payload, err := export.Marshal(batch)
	if err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}

	if opts.Output != "" {
		if err := fileutil.WriteFile(opts.Output, payload); err != nil {
			return err
		}
		log.Info("wrote local artifact", "path", opts.Output, "messages", len(batch))
	}

	if opts.Uploader != nil {
		filename := upload.BatchFilename(now())
		if ref, err := opts.Uploader.Upload(ctx, filename, payload); err != nil {
			// Tolerated: the batch was collected and (optionally)
			// written locally; the run still counts as successful.
			log.Warn("upload failed", "file", filename, "err", err)
		} else {
			log.Info("uploaded batch", "file", filename, "messages", len(batch), "response", ref)
		}
	}
	return nil
}

func persistErr(s SessionState) error {
	if s == nil {
		return nil
	}
	return s.PersistErr()
}
