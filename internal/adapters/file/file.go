// Package file holds the filesystem and HTTP plumbing the CLI driver needs
// around the document core.
package file

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// Fetch returns the byte content of the file at the given URL.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err = fmt.Errorf("error creating request %w", err)
		log.Error().Err(err).Str("url", url).Send()
		return nil, err
	}

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request %w", err)
		log.Error().Err(err).Str("url", url).Send()
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status code on download: %d", res.StatusCode)
		log.Error().Err(err).Str("url", url).Send()
		return nil, err
	}

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		err = fmt.Errorf("error reading response %w", err)
		log.Error().Err(err).Str("url", url).Send()
		return nil, err
	}

	return buf, nil
}

// WriteAtomic writes data to path through a uuid-named temp file in the same
// directory, renaming it into place, so a failed write never leaves a
// truncated output file behind.
func WriteAtomic(path string, data []byte) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), "."+id.String()+".tmp")

	log.Debug().Int("bytes", len(data)).Str("path", path).Msg("writing output file")

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("error writing temp file %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			log.Warn().Str("path", tmp).Err(rmErr).Msg("could not clean up temp file")
		}
		return fmt.Errorf("error renaming temp file %w", err)
	}

	return nil
}
