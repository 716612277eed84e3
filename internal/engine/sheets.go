package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/ekobrazil/birthday-panel/internal/config"
)

// SheetFetcher retrieves the raw text of one bundled monthly sheet by its
// fixed filename. Implementations cover the local assets directory and a
// remote HTTP(S) base path.
type SheetFetcher interface {
	FetchSheet(ctx context.Context, filename string) (string, error)
}

// LoadSheets iterates the fixed list of bundled monthly filenames and
// concatenates every valid record across them. Files are fetched one at a
// time; a fetch or parse failure skips that file with a warning and the batch
// continues. It errors only when no file produced any contacts.
func LoadSheets(ctx context.Context, fetcher SheetFetcher) ([]Contact, error) {
	if fetcher == nil {
		return nil, errors.New(config.ErrFetcherMissing)
	}

	log := slog.With(config.LogKeyComponent, config.CompFetcher)

	var combined []Contact
	loaded, failed := 0, 0

	for _, name := range config.SheetFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := fetcher.FetchSheet(ctx, name)
		if err != nil {
			log.Warn(config.MsgSheetSkipped, config.LogKeyFile, name, config.LogKeyError, err)
			failed++
			continue
		}

		contacts, err := ParseContacts(text)
		if err != nil {
			log.Warn(config.MsgSheetSkipped, config.LogKeyFile, name, config.LogKeyError, err)
			failed++
			continue
		}

		combined = append(combined, contacts...)
		loaded++
		log.Debug(config.MsgSheetLoaded, config.LogKeyFile, name, config.LogKeyCount, len(contacts))
	}

	log.Info(config.MsgSheetsDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyLoaded, loaded),
			slog.Int(config.LogKeyFailed, failed),
			slog.Int(config.LogKeyTotal, len(combined)),
		),
	)

	if len(combined) == 0 {
		return nil, errors.New(config.ErrAllSheetsFailed)
	}
	return combined, nil
}

// DirSheetFetcher reads sheets from a local assets directory.
type DirSheetFetcher struct {
	Dir string
}

// FetchSheet reads one sheet file from the directory.
func (f *DirSheetFetcher) FetchSheet(_ context.Context, filename string) (string, error) {
	if f.Dir == "" {
		return "", errors.New(config.ErrSheetDirEmpty)
	}
	data, err := os.ReadFile(filepath.Join(f.Dir, filename))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// HTTPSheetFetcher downloads sheets from a remote base URL, optionally with
// HTTP Basic Auth. Filenames contain spaces and accents and are path-escaped
// before the request.
type HTTPSheetFetcher struct {
	BaseURL string
	User    string
	Pass    string
	Client  *http.Client
}

// NewHTTPSheetFetcher creates an HTTPSheetFetcher with configured timeouts.
func NewHTTPSheetFetcher(baseURL, user, pass string) *HTTPSheetFetcher {
	return &HTTPSheetFetcher{
		BaseURL: baseURL,
		User:    user,
		Pass:    pass,
		Client:  &http.Client{Timeout: config.HTTPTimeout},
	}
}

// FetchSheet retrieves one sheet over HTTP(S). It enforces the scheme,
// identifies itself with the application User-Agent and limits the number of
// bytes read from the response.
func (f *HTTPSheetFetcher) FetchSheet(ctx context.Context, filename string) (string, error) {
	if f.BaseURL == "" {
		return "", errors.New(config.ErrSheetURLEmpty)
	}

	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if base.Scheme != config.SchemeHTTP && base.Scheme != config.SchemeHTTPS {
		return "", fmt.Errorf("%s: %s", config.ErrProtocol, base.Scheme)
	}

	target := base.JoinPath(filename)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if f.User != "" || f.Pass != "" {
		req.SetBasicAuth(f.User, f.Pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("network error during fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Server returned error status",
			config.LogKeyComponent, config.CompFetcher,
			config.LogKeyFile, filename,
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return "", fmt.Errorf("server returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, config.MaxHTTPResponseSize))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
