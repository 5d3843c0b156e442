// Package console exposes the list-view pipeline over HTTP, one route family
// per screen. Responses reuse the upstream envelope shape plus the drained
// notifications, so the browser renders one consistent surface.
package console

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fileadmin/internal/client"
	"fileadmin/internal/domain"
	"fileadmin/internal/listview"
	"fileadmin/internal/notify"
	"fileadmin/pkg/tabular"
)

// Console routes /screens/{name}/... to the registered screen handlers.
type Console struct {
	screens map[string]http.Handler
	notices *notify.Center
}

func New(notices *notify.Center) *Console {
	return &Console{screens: make(map[string]http.Handler), notices: notices}
}

// Register mounts a screen handler under its name.
func (c *Console) Register(name string, handler http.Handler) {
	c.screens[name] = handler
}

// ScreenNames lists the registered screens, for the index route.
func (c *Console) ScreenNames() []string {
	names := make([]string, 0, len(c.screens))
	for name := range c.screens {
		names = append(names, name)
	}
	return names
}

func (c *Console) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/screens/")
	if rest == r.URL.Path || rest == "" {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	parts := strings.SplitN(rest, "/", 2)
	handler, ok := c.screens[parts[0]]
	if !ok {
		http.Error(w, fmt.Sprintf("unknown screen %q", parts[0]), http.StatusNotFound)
		return
	}
	subPath := ""
	if len(parts) == 2 {
		subPath = parts[1]
	}
	r2 := r.Clone(r.Context())
	r2.URL.Path = "/" + subPath
	handler.ServeHTTP(w, r2)
}

// envelope mirrors the upstream response shape toward the browser, extended
// with the notifications accumulated during the interaction.
type envelope struct {
	Success       bool                  `json:"success"`
	Body          any                   `json:"body,omitempty"`
	Message       string                `json:"message,omitempty"`
	Notifications []notify.Notification `json:"notifications"`
}

// routes serves one screen: list, mutations, export and binary download.
type routes[T domain.Record] struct {
	pipeline *listview.Pipeline[T]
	api      *client.Client
	notices  *notify.Center

	// upstreamParams are query parameters forwarded verbatim to the upstream
	// list endpoint (e.g. category, from, to).
	upstreamParams []string
	// multipartCreate switches POST from JSON to multipart with a "file" part.
	multipartCreate bool
	// downloadPath is the upstream binary endpoint; empty disables download.
	downloadPath string
}

// NewScreenRoutes builds the handler for one configured screen.
func NewScreenRoutes[T domain.Record](pipeline *listview.Pipeline[T], api *client.Client, notices *notify.Center, opts ...RouteOption[T]) http.Handler {
	rt := &routes[T]{pipeline: pipeline, api: api, notices: notices}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// RouteOption customizes one screen's routes.
type RouteOption[T domain.Record] func(*routes[T])

func WithUpstreamParams[T domain.Record](params ...string) RouteOption[T] {
	return func(rt *routes[T]) { rt.upstreamParams = params }
}

func WithMultipartCreate[T domain.Record]() RouteOption[T] {
	return func(rt *routes[T]) { rt.multipartCreate = true }
}

func WithDownload[T domain.Record](upstreamPath string) RouteOption[T] {
	return func(rt *routes[T]) { rt.downloadPath = upstreamPath }
}

func (rt *routes[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	segments := splitPath(r.URL.Path)
	switch {
	case r.Method == http.MethodGet && len(segments) == 0:
		rt.handleList(w, r)
	case r.Method == http.MethodGet && len(segments) == 1 && segments[0] == "export":
		rt.handleExport(w, r)
	case r.Method == http.MethodGet && len(segments) == 2 && segments[0] == "download":
		rt.handleDownload(w, r, segments[1])
	case r.Method == http.MethodGet && len(segments) == 2 && segments[1] == "export":
		rt.handleExportOne(w, r, segments[0])
	case r.Method == http.MethodPost && len(segments) == 0:
		rt.handleCreate(w, r)
	case r.Method == http.MethodPut && len(segments) == 1:
		rt.handleUpdate(w, r, segments[0])
	case r.Method == http.MethodDelete && len(segments) == 1:
		rt.handleDelete(w, r, segments[0])
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// applyQueryState maps browser query parameters onto the pipeline's filter
// and page state, then refetches the collection snapshot.
func (rt *routes[T]) applyQueryState(r *http.Request) {
	q := r.URL.Query()
	rt.pipeline.SetSearch(q.Get("search"))
	for field := range rt.pipeline.Screen().FilterFields {
		rt.pipeline.SetFilter(field, q.Get(field))
	}
	rt.pipeline.SetValidity(domain.Validity(q.Get("validity")))
	if size, err := strconv.Atoi(q.Get("pageSize")); err == nil {
		rt.pipeline.SetPageSize(size)
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		rt.pipeline.SetPage(page)
	}
	upstream := url.Values{}
	for _, param := range rt.upstreamParams {
		if value := q.Get(param); value != "" {
			upstream.Set(param, value)
		}
	}
	// A refetch failure keeps the previous snapshot visible; the error is
	// already queued as a notification.
	_ = rt.pipeline.Refresh(r.Context(), upstream)
}

func (rt *routes[T]) handleList(w http.ResponseWriter, r *http.Request) {
	rt.applyQueryState(r)
	rt.writeEnvelope(w, http.StatusOK, true, rt.pipeline.View(), "")
}

func (rt *routes[T]) handleExport(w http.ResponseWriter, r *http.Request) {
	rt.applyQueryState(r)
	format := exportFormat(r)
	name, body, err := rt.pipeline.Export(format)
	if err != nil {
		rt.writeEnvelope(w, http.StatusInternalServerError, false, nil, err.Error())
		return
	}
	writeAttachment(w, name, body, format.ContentType())
}

// handleExportOne exports a single record fetched fresh from upstream, for
// the detail view's per-record export action.
func (rt *routes[T]) handleExportOne(w http.ResponseWriter, r *http.Request, id string) {
	endpoint := strings.TrimRight(rt.pipeline.Screen().Endpoint, "/") + "/" + url.PathEscape(id)
	record, err := client.FetchOne[T](r.Context(), rt.api, endpoint)
	if err != nil {
		rt.writeEnvelope(w, http.StatusBadGateway, false, nil, client.DisplayMessage(err))
		return
	}
	format := exportFormat(r)
	name, body, err := rt.pipeline.ExportSelection([]T{record}, format)
	if err != nil {
		rt.writeEnvelope(w, http.StatusInternalServerError, false, nil, err.Error())
		return
	}
	writeAttachment(w, name, body, format.ContentType())
}

func exportFormat(r *http.Request) tabular.Format {
	if r.URL.Query().Get("format") == string(tabular.FormatXLSX) {
		return tabular.FormatXLSX
	}
	return tabular.FormatCSV
}

func writeAttachment(w http.ResponseWriter, name string, body []byte, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (rt *routes[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	var err error
	if rt.multipartCreate {
		err = rt.createMultipart(r)
	} else {
		var payload map[string]any
		if decodeErr := json.NewDecoder(r.Body).Decode(&payload); decodeErr != nil {
			rt.writeEnvelope(w, http.StatusBadRequest, false, nil, fmt.Sprintf("invalid payload: %v", decodeErr))
			return
		}
		err = rt.pipeline.Create(r.Context(), payload)
	}
	rt.finishMutation(w, err)
}

func (rt *routes[T]) createMultipart(r *http.Request) error {
	const maxUploadMemory = 32 << 20
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return fmt.Errorf("parse multipart form: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return fmt.Errorf("read file part: %w", err)
	}
	defer file.Close()
	fields := make(map[string]string, len(r.MultipartForm.Value))
	for key, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return rt.pipeline.CreateMultipart(r.Context(), fields, "file", header.Filename, file)
}

func (rt *routes[T]) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		rt.writeEnvelope(w, http.StatusBadRequest, false, nil, fmt.Sprintf("invalid payload: %v", err))
		return
	}
	err := rt.pipeline.Update(r.Context(), id, payload)
	if errors.Is(err, listview.ErrNotOwner) {
		rt.writeEnvelope(w, http.StatusForbidden, false, nil, "You can only edit records you own.")
		return
	}
	rt.finishMutation(w, err)
}

// handleDelete implements the two-phase flow: the first DELETE stages the
// victim, a second DELETE with confirm=true issues the request.
func (rt *routes[T]) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if r.URL.Query().Get("confirm") != "true" {
		if err := rt.pipeline.StageDelete(id); err != nil {
			rt.writeEnvelope(w, http.StatusNotFound, false, nil, err.Error())
			return
		}
		rt.writeEnvelope(w, http.StatusOK, true, map[string]string{"staged": id}, "Confirm deletion to proceed.")
		return
	}
	err := rt.pipeline.ConfirmDelete(r.Context(), id)
	if errors.Is(err, listview.ErrNoStagedDelete) {
		rt.writeEnvelope(w, http.StatusConflict, false, nil, "No deletion pending for this record.")
		return
	}
	rt.finishMutation(w, err)
}

func (rt *routes[T]) handleDownload(w http.ResponseWriter, r *http.Request, id string) {
	if rt.downloadPath == "" {
		http.Error(w, "downloads not supported on this screen", http.StatusNotFound)
		return
	}
	download, err := rt.api.DownloadFile(r.Context(), rt.downloadPath, id, r.URL.Query().Get("name"))
	if err != nil {
		rt.writeEnvelope(w, http.StatusBadGateway, false, nil, client.DisplayMessage(err))
		return
	}
	contentType := download.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	writeAttachment(w, download.FileName, download.Body, contentType)
}

func (rt *routes[T]) finishMutation(w http.ResponseWriter, err error) {
	if err != nil {
		rt.writeEnvelope(w, http.StatusBadGateway, false, nil, client.DisplayMessage(err))
		return
	}
	rt.writeEnvelope(w, http.StatusOK, true, rt.pipeline.View(), "")
}

func (rt *routes[T]) writeEnvelope(w http.ResponseWriter, status int, success bool, body any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	response := envelope{
		Success:       success,
		Body:          body,
		Message:       message,
		Notifications: rt.notices.Drain(),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("[console] encode response: %v", err)
	}
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
