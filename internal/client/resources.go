package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// FetchList reads a collection from the given endpoint. A missing or null
// payload normalizes to an empty collection rather than nil so callers can
// always range over the result.
func FetchList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	envelope, err := c.get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	payload := envelope.Payload()
	if len(payload) == 0 || string(payload) == "null" {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// FetchOne reads a single record from the given endpoint.
func FetchOne[T any](ctx context.Context, c *Client, path string) (T, error) {
	var record T
	envelope, err := c.get(ctx, path, nil)
	if err != nil {
		return record, fmt.Errorf("fetch %s: %w", path, err)
	}
	payload := envelope.Payload()
	if len(payload) == 0 {
		return record, nil
	}
	if err := json.Unmarshal(payload, &record); err != nil {
		return record, fmt.Errorf("decode %s response: %w", path, err)
	}
	return record, nil
}

// Create posts a new record payload to the endpoint.
func (c *Client) Create(ctx context.Context, path string, payload any) (Ack, error) {
	req := c.newRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)
	envelope, err := c.execute(req, "POST", path)
	if err != nil {
		return Ack{}, fmt.Errorf("create %s: %w", path, err)
	}
	return Ack{Message: envelope.Message}, nil
}

// Update replaces the record identified by id with the payload.
func (c *Client) Update(ctx context.Context, path, id string, payload any) (Ack, error) {
	req := c.newRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)
	envelope, err := c.execute(req, "PUT", joinPath(path, id))
	if err != nil {
		return Ack{}, fmt.Errorf("update %s/%s: %w", path, id, err)
	}
	return Ack{Message: envelope.Message}, nil
}

// Delete removes the record identified by id.
func (c *Client) Delete(ctx context.Context, path, id string) (Ack, error) {
	req := c.newRequest(ctx)
	envelope, err := c.execute(req, "DELETE", joinPath(path, id))
	if err != nil {
		return Ack{}, fmt.Errorf("delete %s/%s: %w", path, id, err)
	}
	return Ack{Message: envelope.Message}, nil
}

// Upload posts a multipart form with one binary attachment plus metadata
// fields. Used by the Files screen for uploads with tagging metadata.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader) (Ack, error) {
	req := c.newRequest(ctx).
		SetFileReader(fileField, fileName, file).
		SetFormData(fields)
	envelope, err := c.execute(req, "POST", path)
	if err != nil {
		return Ack{}, fmt.Errorf("upload %s: %w", path, err)
	}
	return Ack{Message: envelope.Message}, nil
}

func joinPath(path, id string) string {
	return strings.TrimRight(path, "/") + "/" + url.PathEscape(id)
}
