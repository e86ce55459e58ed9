package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	devenv "webcache/dev/env"

	"github.com/go-resty/resty/v2"
)

// FilesystemDump writes HTTP transcripts into a directory, one file per
// exchange. The directory is wiped on construction.
type FilesystemDump struct {
	directory string
}

func NewFilesystemDump(dir string) (FilesystemDump, error) {
	dir, err := devenv.ResolvePath(dir)
	if err != nil {
		return FilesystemDump{}, err
	}
	os.RemoveAll(dir)
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemDump{}, err
	}
	return FilesystemDump{directory: dir}, nil
}

func (o FilesystemDump) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write http transcript", "id", id, "err", err)
	}
}

func formatHeaders(headers http.Header) string {
	var out strings.Builder
	for k, vals := range headers {
		for _, v := range vals {
			fmt.Fprintf(&out, "%s: %s\n", k, v)
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func formatRequestBody(req *http.Request) string {
	if req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("failed to get request body: %s", err.Error())
	}
	readBody, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("failed to read request body: %s", err.Error())
	}
	return string(readBody)
}

func formatHttpMessage(res *resty.Response) string {
	responseUrl := res.Request.URL
	redirected, err := res.RawResponse.Location()
	if err == nil {
		responseUrl = redirected.String()
	}

	var out strings.Builder
	fmt.Fprintf(&out, "---- REQUEST ----\n\n%s %s\n\n", res.Request.Method, res.Request.URL)
	fmt.Fprintf(&out, "%s\n\n", formatHeaders(res.Request.RawRequest.Header))
	fmt.Fprintf(&out, "%s\n\n", formatRequestBody(res.Request.RawRequest))
	fmt.Fprintf(&out, "---- RESPONSE ----\n\n%d %s\n\n", res.StatusCode(), responseUrl)
	fmt.Fprintf(&out, "%s\n\n", formatHeaders(res.Header()))
	out.WriteString(res.String())
	return out.String()
}
