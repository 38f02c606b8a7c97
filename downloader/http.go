package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/ppartarr/tunedeck/processor"
)

// Download pulls url into path, optionally running the
// bytes through a processor first; every channel passed as
// observer receives its own copy of the final payload
func Download(ctx context.Context, url, path string, post processor.Processor, observers ...chan []byte) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: unexpected status %d", url, response.StatusCode)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if post != nil {
		if data, err = post.Do(data); err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	for _, observer := range observers {
		observer <- data
	}
	return nil
}
