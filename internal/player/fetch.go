// internal/player/fetch.go
package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxStreamSize caps a single download. Long chapters in slow recitations
// run to a few hundred megabytes at 128 kbps.
const maxStreamSize = 512 << 20

var errTooLarge = errors.New("stream exceeds size limit")

func (p *Player) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxStreamSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxStreamSize {
		return nil, errTooLarge
	}
	return data, nil
}

// memFile serves a downloaded stream to the decoder.
type memFile struct {
	*bytes.Reader
}

func newMemFile(data []byte) memFile {
	return memFile{Reader: bytes.NewReader(data)}
}

func (memFile) Close() error { return nil }
