// Package listview hosts the one generic list-view pipeline every console
// screen runs on: fetch from the upstream API, filter and paginate in memory,
// export the filtered collection, and refetch wholesale after mutations. A
// screen is pure configuration; the pipeline owns the state machine.
package listview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"fileadmin/internal/auth"
	"fileadmin/internal/client"
	"fileadmin/internal/domain"
	"fileadmin/internal/notify"
	"fileadmin/internal/query"
	"fileadmin/pkg/tabular"
)

// ErrNotOwner rejects an edit on a record the acting user does not own. This
// gate is a UX affordance only; the upstream API independently re-enforces
// ownership on every mutation.
var ErrNotOwner = errors.New("record belongs to another user")

// ErrNoStagedDelete rejects a delete confirmation with no staged victim.
var ErrNoStagedDelete = errors.New("no delete pending confirmation")

const defaultPageSize = 10

// Screen configures one console screen: where its data lives upstream, which
// fields are searchable and filterable, and how rows project into exports.
type Screen[T domain.Record] struct {
	Name         string
	Title        string
	Endpoint     string
	ExportPrefix string

	// SearchFields lists the textual fields free-text search runs over.
	SearchFields func(T) []string
	// FilterFields maps categorical filter names to field extractors.
	FilterFields map[string]func(T) string
	// Validity classifies a record against wall-clock time; nil when the
	// screen has no expiry semantics.
	Validity func(T, time.Time) domain.Validity
	// OwnedBy reports record ownership for the client-side edit gate; nil
	// disables the gate.
	OwnedBy func(T, string) bool

	Columns []tabular.Column[T]
}

// Pipeline is the per-screen state machine. The collection is an immutable
// snapshot replaced wholesale on every refetch; filtering and pagination are
// re-derived from it on demand.
type Pipeline[T domain.Record] struct {
	screen  Screen[T]
	api     *client.Client
	notices *notify.Center
	now     func() time.Time

	mu           sync.Mutex
	collection   []T
	search       string
	filters      map[string]string
	validity     domain.Validity
	pageIndex    int
	pageSize     int
	stagedDelete string

	// lastUpstream is the most recent upstream query, reused by the
	// post-mutation refetch so the snapshot keeps the user's server-side
	// filters.
	lastUpstream url.Values

	// issued is the stale-response guard: each fetch carries a token and a
	// completion applies only when it is still the latest issued one.
	issued uint64
}

// View is the render-ready state for one screen request.
type View[T any] struct {
	Items       []T   `json:"items"`
	PageIndex   int   `json:"pageIndex"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int   `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	PageNumbers []int `json:"pageNumbers"`
	Loading     bool  `json:"loading"`
}

// Option adjusts a pipeline at construction time.
type Option[T domain.Record] func(*Pipeline[T])

// WithDefaultPageSize overrides the built-in default page size. Values below
// one are ignored.
func WithDefaultPageSize[T domain.Record](size int) Option[T] {
	return func(p *Pipeline[T]) {
		if size > 0 {
			p.pageSize = size
		}
	}
}

// NewPipeline wires a screen configuration to the upstream client.
func NewPipeline[T domain.Record](screen Screen[T], api *client.Client, notices *notify.Center, opts ...Option[T]) *Pipeline[T] {
	p := &Pipeline[T]{
		screen:    screen,
		api:       api,
		notices:   notices,
		now:       time.Now,
		filters:   make(map[string]string),
		pageIndex: 1,
		pageSize:  defaultPageSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Screen exposes the pipeline's configuration.
func (p *Pipeline[T]) Screen() Screen[T] { return p.screen }

// Refresh replaces the collection with a fresh upstream snapshot. On failure
// the previous collection stays visible and one error notification is
// emitted. A completion that lost the race to a later fetch is discarded.
func (p *Pipeline[T]) Refresh(ctx context.Context, upstreamQuery url.Values) error {
	p.mu.Lock()
	p.issued++
	token := p.issued
	if upstreamQuery != nil {
		p.lastUpstream = upstreamQuery
	} else {
		upstreamQuery = p.lastUpstream
	}
	p.mu.Unlock()

	records, err := client.FetchList[T](ctx, p.api, p.screen.Endpoint, upstreamQuery)

	p.mu.Lock()
	defer p.mu.Unlock()
	if token != p.issued {
		// A later fetch was issued while this one was in flight; applying it
		// would overwrite newer state with stale data.
		return nil
	}
	if err != nil {
		p.notices.Error(p.screen.Title, client.DisplayMessage(err))
		return err
	}
	p.collection = records
	return nil
}

// SetSearch updates the free-text query and resets to the first page.
func (p *Pipeline[T]) SetSearch(search string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.search == search {
		return
	}
	p.search = search
	p.pageIndex = 1
}

// SetFilter updates one categorical filter and resets to the first page.
// Filter names the screen does not declare are ignored.
func (p *Pipeline[T]) SetFilter(field, value string) {
	if _, known := p.screen.FilterFields[field]; !known {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.filters[field] == value {
		return
	}
	if value == "" {
		delete(p.filters, field)
	} else {
		p.filters[field] = value
	}
	p.pageIndex = 1
}

// SetValidity updates the expiry-state filter and resets to the first page.
func (p *Pipeline[T]) SetValidity(validity domain.Validity) {
	if p.screen.Validity == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.validity == validity {
		return
	}
	p.validity = validity
	p.pageIndex = 1
}

// SetPageSize changes the window size and resets to the first page.
func (p *Pipeline[T]) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pageSize == size {
		return
	}
	p.pageSize = size
	p.pageIndex = 1
}

// SetPage moves to the requested 1-based page. Out-of-range values clamp at
// view time.
func (p *Pipeline[T]) SetPage(index int) {
	if index < 1 {
		index = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pageIndex = index
}

// View recomputes the filtered collection and page window from scratch.
func (p *Pipeline[T]) View() View[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	page := query.Paginate(p.filteredLocked(), p.pageIndex, p.pageSize)
	// Persist the clamp so subsequent mutations target the page the user saw.
	p.pageIndex = page.PageIndex
	return View[T]{
		Items:       page.Items,
		PageIndex:   page.PageIndex,
		PageSize:    page.PageSize,
		TotalItems:  page.TotalItems,
		TotalPages:  page.TotalPages,
		PageNumbers: page.PageNumbers,
		Loading:     p.api.Loading(),
	}
}

// Filtered returns the full filtered collection in source order.
func (p *Pipeline[T]) Filtered() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filteredLocked()
}

func (p *Pipeline[T]) filteredLocked() []T {
	predicates := []query.Predicate[T]{
		query.TextSearch(p.search, p.screen.SearchFields),
	}
	for field, want := range p.filters {
		predicates = append(predicates, query.FieldEquals(want, p.screen.FilterFields[field]))
	}
	if p.validity != "" && p.screen.Validity != nil {
		now := p.now()
		want := p.validity
		classify := p.screen.Validity
		predicates = append(predicates, func(record T) bool {
			return classify(record, now) == want
		})
	}
	return query.Apply(p.collection, predicates...)
}

// Find locates a record in the current snapshot by its identifier.
func (p *Pipeline[T]) Find(id string) (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, record := range p.collection {
		if record.RecordID() == id {
			return record, true
		}
	}
	var zero T
	return zero, false
}

// Create submits a new record and refetches on success. On failure the
// current snapshot stays untouched and one error notification is emitted.
func (p *Pipeline[T]) Create(ctx context.Context, payload any) error {
	ack, err := p.api.Create(ctx, p.screen.Endpoint, payload)
	return p.finishMutation(ctx, "create", ack, err)
}

// CreateMultipart submits a new record as a multipart form with one binary
// attachment, then follows the same success/failure path as Create.
func (p *Pipeline[T]) CreateMultipart(ctx context.Context, fields map[string]string, fileField, fileName string, file io.Reader) error {
	ack, err := p.api.Upload(ctx, p.screen.Endpoint, fields, fileField, fileName, file)
	return p.finishMutation(ctx, "upload", ack, err)
}

// Update edits an existing record. When the screen declares an ownership
// gate and the acting user does not own the record, the request never reaches
// the server and a warning notification is emitted instead.
func (p *Pipeline[T]) Update(ctx context.Context, id string, payload any) error {
	if p.screen.OwnedBy != nil {
		if actor, ok := auth.ActorFromContext(ctx); ok {
			if record, found := p.Find(id); found && !p.screen.OwnedBy(record, actor) {
				p.notices.Warning(p.screen.Title, "You can only edit records you own.")
				return fmt.Errorf("update %s: %w", id, ErrNotOwner)
			}
		}
	}
	ack, err := p.api.Update(ctx, p.screen.Endpoint, id, payload)
	return p.finishMutation(ctx, "update", ack, err)
}

// StageDelete records the delete victim; the request is only issued once
// ConfirmDelete is called for the same record.
func (p *Pipeline[T]) StageDelete(id string) error {
	if _, found := p.Find(id); !found {
		return fmt.Errorf("stage delete: record %s not in current collection", id)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stagedDelete = id
	return nil
}

// ConfirmDelete issues the delete for the staged victim.
func (p *Pipeline[T]) ConfirmDelete(ctx context.Context, id string) error {
	p.mu.Lock()
	staged := p.stagedDelete
	p.mu.Unlock()
	if staged == "" || staged != id {
		return ErrNoStagedDelete
	}
	ack, err := p.api.Delete(ctx, p.screen.Endpoint, id)
	if err == nil {
		p.mu.Lock()
		p.stagedDelete = ""
		p.mu.Unlock()
	}
	return p.finishMutation(ctx, "delete", ack, err)
}

func (p *Pipeline[T]) finishMutation(ctx context.Context, operation string, ack client.Ack, err error) error {
	if err != nil {
		p.notices.Error(p.screen.Title, client.DisplayMessage(err))
		return err
	}
	message := ack.Message
	if message == "" {
		message = "Saved."
	}
	p.notices.Success(p.screen.Title, message)
	// No optimistic update: the refetch is what makes the mutation visible.
	if refreshErr := p.Refresh(ctx, nil); refreshErr != nil {
		return fmt.Errorf("%s succeeded but refetch failed: %w", operation, refreshErr)
	}
	return nil
}

// Export projects the currently filtered collection into the requested
// format. Pagination never scopes an export.
func (p *Pipeline[T]) Export(format tabular.Format) (string, []byte, error) {
	return p.exportRecords(p.Filtered(), format)
}

// ExportSelection projects an explicit sub-selection, e.g. the files of one
// parent entity shown in a detail view.
func (p *Pipeline[T]) ExportSelection(records []T, format tabular.Format) (string, []byte, error) {
	return p.exportRecords(records, format)
}

func (p *Pipeline[T]) exportRecords(records []T, format tabular.Format) (string, []byte, error) {
	table := tabular.Project(records, p.screen.Columns)
	name := tabular.FileName(p.screen.ExportPrefix, format, p.now())
	switch format {
	case tabular.FormatXLSX:
		body, err := table.XLSX(p.screen.Title)
		if err != nil {
			return "", nil, fmt.Errorf("export %s: %w", p.screen.Name, err)
		}
		return name, body, nil
	default:
		return name, table.CSV(), nil
	}
}
