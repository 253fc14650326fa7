package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

const (
	gofileEndpoint = "https://upload.gofile.io/uploadfile"

	// destination folder on the gofile account receiving the exports
	gofileFolderID = "pinned-exports"
)

// Gofile uploads batches to gofile.io with a bearer token. Endpoint and
// FolderID are settable for tests.
type Gofile struct {
	Endpoint string
	FolderID string
	Client   *http.Client

	token string
}

func NewGofile(token string) *Gofile {
	return &Gofile{
		Endpoint: gofileEndpoint,
		FolderID: gofileFolderID,
		Client:   http.DefaultClient,
		token:    token,
	}
}

// Upload submits one multipart POST: a JSON file part plus the destination
// folder field. The response body is returned verbatim, not parsed.
func (g *Gofile) Upload(ctx context.Context, filename string, payload []byte) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", "application/json")
	part, err := form.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(payload); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := form.WriteField("folderId", g.FolderID); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("upload %s: read response: %w", filename, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("upload %s: %s: %s", filename, resp.Status, strings.TrimSpace(string(raw)))
	}
	return string(raw), nil
}
