package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/go-github/v80/github"

	"github.com/pagegate/pagegate/internal/core"
)

// Asset streams a repository file (typically an image referenced by a
// document) using the server-side token. It returns the raw bytes and a
// sniffed content type.
func (h *Hub) Asset(ctx context.Context, org, repo, path, ref string) ([]byte, string, error) {
	client, err := h.serverClient()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", core.ErrUpstream, err)
	}

	rc, _, err := client.Repositories.DownloadContents(ctx, org, repo, path, &github.RepositoryContentGetOptions{
		Ref: ref,
	})
	if err != nil {
		if notAccessible(err) {
			return nil, "", fmt.Errorf("%w: %s", core.ErrDocumentNotFound, path)
		}
		return nil, "", fmt.Errorf("%w: downloading %s: %w", core.ErrUpstream, path, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading %s: %w", core.ErrUpstream, path, err)
	}

	return data, http.DetectContentType(data), nil
}
