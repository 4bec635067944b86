package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// partPattern names a report that is still being written. Each transfer gets
// its own file, so concurrent downloads to one destination never share it.
const partPattern = ".*.part"

// fetchToFile streams the body of a GET on url into dest. The body is written
// to a temporary file next to dest and renamed into place once complete, so
// an interrupted transfer never leaves a file that later runs would take for
// a finished report.
func fetchToFile(ctx context.Context, client HTTPDoer, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+partPattern)
	if err != nil {
		return 0, err
	}
	tmp := out.Name()

	written, err := io.Copy(out, resp.Body)
	if err == nil {
		err = out.Sync()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return written, err
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return written, err
	}
	return written, nil
}
