package client

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// contentTypeExtensions maps upstream content types to download extensions
// when the original filename carries none.
var contentTypeExtensions = map[string]string{
	"application/pdf":    ".pdf",
	"application/zip":    ".zip",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
	"application/json": ".json",
	"text/plain":       ".txt",
	"text/csv":         ".csv",
	"image/png":        ".png",
	"image/jpeg":       ".jpg",
	"image/gif":        ".gif",
}

const defaultExtension = ".bin"

// Download is a raw binary body fetched from the upstream file endpoint.
type Download struct {
	FileName    string
	ContentType string
	Body        []byte
}

// DownloadFile streams the binary body of the file identified by id. The
// download endpoint bypasses the JSON envelope; non-2xx statuses become
// APIError with the generic message since the body is not decodable.
func (c *Client) DownloadFile(ctx context.Context, path, id, originalName string) (*Download, error) {
	done := c.beginRequest()
	defer done()

	resp, err := c.newRequest(ctx).Execute("GET", joinPath(path, id))
	if err != nil {
		return nil, &APIError{Message: genericErrorMessage}
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: genericErrorMessage}
	}
	contentType := strings.TrimSpace(strings.Split(resp.Header().Get("Content-Type"), ";")[0])
	return &Download{
		FileName:    downloadFileName(originalName, contentType, id),
		ContentType: contentType,
		Body:        resp.Body(),
	}, nil
}

// downloadFileName picks the client-visible filename: the original name when
// it already carries an extension, else the base name plus an extension
// inferred from the content type, else a generic default.
func downloadFileName(originalName, contentType, id string) string {
	base := strings.TrimSpace(originalName)
	if base != "" && filepath.Ext(base) != "" {
		return base
	}
	if base == "" {
		base = fmt.Sprintf("file-%s", id)
	}
	if ext, ok := contentTypeExtensions[contentType]; ok {
		return base + ext
	}
	return base + defaultExtension
}
