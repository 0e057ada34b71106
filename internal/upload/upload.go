// Package upload drives file submissions over the out-of-band upload
// endpoint. The endpoint is fire-and-forget from the chat connection's point
// of view: the client posts the file, then inspects the response payload once
// to learn the served URI or the failure reason.
package upload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hallway-chat/hallway/internal/logger"
)

// Result is the parsed completion payload: exactly one of URI or Error is
// set on a well-formed response.
type Result struct {
	URI   string `json:"uri,omitempty"`
	Error string `json:"error,omitempty"`
}

// OK reports whether the submission produced a served URI.
func (r Result) OK() bool { return r.Error == "" && r.URI != "" }

// Parse decodes a completion payload. A payload that is neither an error nor
// a URI is reported as a generic upload error rather than a parse failure;
// the overlay shows it inline either way.
func Parse(data []byte) Result {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		logger.Warn("Upload: malformed response payload: %v", err)
		return Result{Error: "upload failed: unreadable server response"}
	}
	if r.Error == "" && r.URI == "" {
		return Result{Error: "upload failed: empty server response"}
	}
	return r
}

// Transport performs one submission and settles with a Result. Implementations
// must not panic; every failure mode becomes a Result with Error set.
type Transport interface {
	Submit(path, comment string) Result
}

// HTTPTransport posts multipart form data to the server's upload endpoint.
type HTTPTransport struct {
	// URL is the full endpoint, e.g. "http://host:1201/upload".
	URL string
	// Client defaults to a client with a 5 minute timeout.
	Client *http.Client
}

func (t HTTPTransport) httpClient() *http.Client {
	if t.Client != nil {
		return t.Client
	}
	return &http.Client{Timeout: 5 * time.Minute}
}

// Submit uploads the file at path. The comment travels with the file and ends
// up in the chat message the server broadcasts.
func (t HTTPTransport) Submit(path, comment string) Result {
	f, err := os.Open(path)
	if err != nil {
		return Result{Error: fmt.Sprintf("open %s: %v", path, err)}
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return Result{Error: err.Error()}
	}
	if _, err := io.Copy(part, f); err != nil {
		return Result{Error: fmt.Sprintf("read %s: %v", path, err)}
	}
	if err := mw.WriteField("message", comment); err != nil {
		return Result{Error: err.Error()}
	}
	if err := mw.Close(); err != nil {
		return Result{Error: err.Error()}
	}

	resp, err := t.httpClient().Post(t.URL, mw.FormDataContentType(), &body)
	if err != nil {
		return Result{Error: fmt.Sprintf("upload: %v", err)}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{Error: fmt.Sprintf("upload response: %v", err)}
	}
	return Parse(payload)
}

// ellipsisFrames is the busy indicator cycle shown while a submission is in
// flight. The transport reports no progress, so the indicator only proves
// liveness.
var ellipsisFrames = []string{"uploading", "uploading.", "uploading..", "uploading..."}

// Indicator returns the busy indicator text for the given tick count.
func Indicator(tick int) string {
	if tick < 0 {
		tick = 0
	}
	return ellipsisFrames[tick%len(ellipsisFrames)]
}

// ValidatePath rejects paths that cannot be submitted before a goroutine is
// spent on them.
func ValidatePath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("no file selected")
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
