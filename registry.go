package hub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// registryIndex represents the index document served by a registry.
// Structure: "author/name" slug to raw manifest.
type registryIndex struct {
	// Packages maps package slugs to their raw manifests.
	Packages map[string]map[string]any `json:"packages"`
}

// publishFile is one file entry in the publish request body.
type publishFile struct {
	// Path is the upload path relative to the package's storage prefix.
	Path string `json:"path"`

	// Target is the local-relative path the file materializes to.
	Target string `json:"target"`

	// SHA256 is the lowercase hex digest of the decoded content.
	SHA256 string `json:"sha256"`

	// Content is the standard-alphabet base64 encoding of the file bytes.
	Content string `json:"content"`

	// ContentType is the MIME type guessed from the file extension.
	ContentType string `json:"contentType"`
}

// publishPayload is the JSON body of a publish request.
type publishPayload struct {
	Manifest map[string]any `json:"manifest"`
	Metadata map[string]any `json:"metadata"`
	Files    []publishFile  `json:"files"`
}

// repository abstracts the registry transport. The core pipeline depends
// on the registry only through this contract.
// Implemented by *httpRepository and *fsRepository.
type repository interface {
	// listPackages returns the registry index, keyed by slug.
	listPackages(ctx context.Context) (map[string]map[string]any, error)

	// getManifest returns the raw manifest for a package.
	// Returns ErrPackageNotFound if the registry has no such package.
	getManifest(ctx context.Context, ref Ref) (map[string]any, error)

	// fetchBytes retrieves file content by its registry storage path.
	// The onProgress callback, when non-nil, receives byte deltas as
	// content is read.
	fetchBytes(ctx context.Context, source string, onProgress func(delta int64)) ([]byte, error)

	// publish submits a package to the registry and returns the parsed
	// response body.
	publish(ctx context.Context, ref Ref, payload publishPayload, devKey string) (map[string]any, error)
}

// newRepository selects a repository implementation for a registry
// location: URL locations get an HTTP repository, everything else is
// treated as a local registry directory.
func newRepository(location string, client HTTPClient, logger Logger) repository {
	if strings.Contains(location, "://") {
		return newHTTPRepository(location, client, logger)
	}
	return newFSRepository(location)
}

// httpRepository talks to a remote registry over HTTP.
type httpRepository struct {
	// indexURL is the full URL of the registry index document.
	indexURL string

	// baseURL is the index URL with its last path segment removed. File
	// sources and the publish endpoint resolve relative to it.
	baseURL string

	// httpClient is used for all HTTP requests.
	httpClient HTTPClient

	// logger receives diagnostic messages. May be nil.
	logger Logger
}

// newHTTPRepository creates an HTTP repository for a registry index URL.
func newHTTPRepository(indexURL string, client HTTPClient, logger Logger) *httpRepository {
	indexURL = strings.TrimRight(indexURL, "/")
	base := indexURL
	if i := strings.Index(base, "://"); i != -1 {
		// Strip the index document's filename, keeping the host intact.
		if j := strings.LastIndex(base[i+3:], "/"); j != -1 {
			base = base[:i+3+j]
		}
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &httpRepository{
		indexURL:   indexURL,
		baseURL:    base,
		httpClient: client,
		logger:     logger,
	}
}

// fetchIndex fetches and parses the registry index document.
func (r *httpRepository) fetchIndex(ctx context.Context) (registryIndex, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.indexURL, nil)
	if err != nil {
		return registryIndex{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return registryIndex{}, fmt.Errorf("fetching registry index: %v: %w", err, ErrRegistry)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return registryIndex{}, fmt.Errorf("fetching registry index: status %d: %w", resp.StatusCode, ErrRegistry)
	}

	var index registryIndex
	if err := json.NewDecoder(resp.Body).Decode(&index); err != nil {
		return registryIndex{}, fmt.Errorf("parsing registry index: %w", ErrRegistry)
	}

	return index, nil
}

// listPackages returns all raw manifests declared by the registry index.
func (r *httpRepository) listPackages(ctx context.Context) (map[string]map[string]any, error) {
	index, err := r.fetchIndex(ctx)
	if err != nil {
		return nil, err
	}
	return index.Packages, nil
}

// getManifest returns the raw manifest for ref from the registry index.
func (r *httpRepository) getManifest(ctx context.Context, ref Ref) (map[string]any, error) {
	index, err := r.fetchIndex(ctx)
	if err != nil {
		return nil, err
	}

	raw, ok := index.Packages[ref.String()]
	if !ok {
		return nil, fmt.Errorf("package %s: %w", ref, ErrPackageNotFound)
	}
	return raw, nil
}

// fetchBytes retrieves file content from <base>/<source>.
func (r *httpRepository) fetchBytes(ctx context.Context, source string, onProgress func(delta int64)) ([]byte, error) {
	url := r.baseURL + "/" + strings.TrimLeft(source, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %v: %w", source, err, ErrRegistry)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("file %s: %w", source, ErrPackageNotFound)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d: %w", source, resp.StatusCode, ErrRegistry)
	}

	var reader io.Reader = resp.Body
	if onProgress != nil {
		reader = &progressReader{reader: resp.Body, onProgress: onProgress}
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %v: %w", source, err, ErrRegistry)
	}

	if r.logger != nil {
		r.logger.Debug("fetched file", "source", source, "size", len(data))
	}

	return data, nil
}

// publish submits the payload with PUT <base>/api/packages/<author>/<name>.
// Any non-2xx response is reported as ErrRegistry carrying the
// server-provided message when one is available.
func (r *httpRepository) publish(ctx context.Context, ref Ref, payload publishPayload, devKey string) (map[string]any, error) {
	endpoint := r.baseURL + "/api/packages/" + ref.Author + "/" + ref.Name

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding publish payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("authorization", "Bearer "+devKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("publishing package: %v: %w", err, ErrRegistry)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading publish response: %v: %w", err, ErrRegistry)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := serverMessage(respBody)
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("publishing package: %s: %w", msg, ErrRegistry)
	}

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("registry returned malformed response: %w", ErrRegistry)
	}

	if r.logger != nil {
		r.logger.Info("published package", "slug", ref.String(), "files", len(payload.Files))
	}

	return result, nil
}

// serverMessage extracts a human-readable message from an error response
// body. JSON bodies yield their "error" or "message" field; anything else
// is returned as trimmed text.
func serverMessage(body []byte) string {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, key := range []string{"error", "message"} {
			if msg, ok := parsed[key].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return strings.TrimSpace(string(body))
}

// encodeContent encodes file bytes with the standard base64 alphabet for
// transfer in a publish payload.
func encodeContent(content []byte) string {
	return base64.StdEncoding.EncodeToString(content)
}

// progressReader wraps an io.Reader and reports progress as bytes are read.
type progressReader struct {
	reader     io.Reader
	onProgress func(delta int64)
}

func (pr *progressReader) Read(p []byte) (n int, err error) {
	n, err = pr.reader.Read(p)
	if n > 0 && pr.onProgress != nil {
		pr.onProgress(int64(n))
	}
	return
}
