package console

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fileadmin/internal/client"
	"fileadmin/internal/middleware"
	"fileadmin/internal/notify"
)

// newConsoleServer stands up a fake upstream API plus the console in front
// of it, mirroring the browser's view of the system.
func newConsoleServer(t *testing.T, upstream http.HandlerFunc) *httptest.Server {
	return newConsoleServerWithPageSize(t, upstream, 10)
}

func newConsoleServerWithPageSize(t *testing.T, upstream http.HandlerFunc, pageSize int) *httptest.Server {
	t.Helper()
	upstreamServer := httptest.NewServer(upstream)
	t.Cleanup(upstreamServer.Close)

	notices := notify.NewCenter()
	api := client.New(upstreamServer.URL, 5*time.Second)
	root := New(notices)
	RegisterScreens(root, api, notices, pageSize)

	mux := http.NewServeMux()
	mux.Handle("/screens/", root)
	consoleServer := httptest.NewServer(middleware.SessionMiddleware(mux))
	t.Cleanup(consoleServer.Close)
	return consoleServer
}

func upstreamFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodDelete {
		w.Write([]byte(`{"success":true,"message":"File removed"}`))
		return
	}
	if strings.HasSuffix(r.URL.Path, "/f1") {
		w.Write([]byte(`{"success":true,"body":{"id":"f1","name":"northern contract","size":1536,"status":"active"}}`))
		return
	}
	w.Write([]byte(`{"success":true,"body":[
		{"id":"f1","name":"northern contract","size":1536,"status":"active"},
		{"id":"f2","name":"southern invoice","size":2048,"status":"archived"}
	]}`))
}

type viewBody struct {
	Items      []map[string]any `json:"items"`
	PageIndex  int              `json:"pageIndex"`
	PageSize   int              `json:"pageSize"`
	TotalItems int              `json:"totalItems"`
	TotalPages int              `json:"totalPages"`
}

type listResponse struct {
	Success       bool                  `json:"success"`
	Body          viewBody              `json:"body"`
	Message       string                `json:"message"`
	Notifications []notify.Notification `json:"notifications"`
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestListScreenAppliesSearchAndPagination(t *testing.T) {
	server := newConsoleServer(t, upstreamFiles)

	var response listResponse
	getJSON(t, server.URL+"/screens/files?search=northern", &response)
	if !response.Success {
		t.Fatalf("expected success, got %+v", response)
	}
	if response.Body.TotalItems != 1 || response.Body.Items[0]["id"] != "f1" {
		t.Fatalf("expected only the northern file, got %+v", response.Body)
	}

	getJSON(t, server.URL+"/screens/files?status=archived", &response)
	if response.Body.TotalItems != 1 || response.Body.Items[0]["id"] != "f2" {
		t.Fatalf("expected only the archived file, got %+v", response.Body)
	}
}

func TestUnknownScreenIs404(t *testing.T) {
	server := newConsoleServer(t, upstreamFiles)
	resp, err := http.Get(server.URL + "/screens/nonsense")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestExportServesDateStampedCSV(t *testing.T) {
	server := newConsoleServer(t, upstreamFiles)
	resp, err := http.Get(server.URL + "/screens/files/export?format=csv")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "text/csv" {
		t.Errorf("Content-Type = %q", got)
	}
	disposition := resp.Header.Get("Content-Disposition")
	if !strings.Contains(disposition, "files-") || !strings.Contains(disposition, ".csv") {
		t.Errorf("Content-Disposition = %q", disposition)
	}
}

func TestConfiguredPageSizeAppliesToScreens(t *testing.T) {
	server := newConsoleServerWithPageSize(t, upstreamFiles, 1)

	var response listResponse
	getJSON(t, server.URL+"/screens/files", &response)
	if response.Body.PageSize != 1 {
		t.Fatalf("expected configured page size 1, got %d", response.Body.PageSize)
	}
	if len(response.Body.Items) != 1 || response.Body.TotalPages != 2 {
		t.Fatalf("expected 2 one-item pages, got %+v", response.Body)
	}
}

func TestExportSingleRecordFetchesFresh(t *testing.T) {
	server := newConsoleServer(t, upstreamFiles)
	resp, err := http.Get(server.URL + "/screens/files/f1/export?format=csv")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := new(strings.Builder)
	if _, err := io.Copy(body, resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	lines := strings.Split(strings.TrimRight(body.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines: %q", len(lines), body.String())
	}
	if !strings.Contains(lines[1], "northern contract") {
		t.Errorf("expected the fetched record's row, got %q", lines[1])
	}
	disposition := resp.Header.Get("Content-Disposition")
	if !strings.Contains(disposition, "files-") || !strings.Contains(disposition, ".csv") {
		t.Errorf("Content-Disposition = %q", disposition)
	}
}

func TestDeleteRequiresConfirmationOverHTTP(t *testing.T) {
	server := newConsoleServer(t, upstreamFiles)
	httpClient := &http.Client{}

	// Populate the screen's snapshot first.
	var listResp listResponse
	getJSON(t, server.URL+"/screens/files", &listResp)

	stage, err := http.NewRequest(http.MethodDelete, server.URL+"/screens/files/f1", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := httpClient.Do(stage)
	if err != nil {
		t.Fatalf("stage request failed: %v", err)
	}
	var staged listResponse
	json.NewDecoder(resp.Body).Decode(&staged)
	resp.Body.Close()
	if !staged.Success || !strings.Contains(staged.Message, "Confirm") {
		t.Fatalf("expected staging ack, got %+v", staged)
	}

	confirm, err := http.NewRequest(http.MethodDelete, server.URL+"/screens/files/f1?confirm=true", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err = httpClient.Do(confirm)
	if err != nil {
		t.Fatalf("confirm request failed: %v", err)
	}
	var confirmed listResponse
	json.NewDecoder(resp.Body).Decode(&confirmed)
	resp.Body.Close()
	if !confirmed.Success {
		t.Fatalf("expected delete success, got %+v", confirmed)
	}
	found := false
	for _, n := range confirmed.Notifications {
		if n.Severity == notify.SeveritySuccess && n.Description == "File removed" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected success notification with server message, got %v", confirmed.Notifications)
	}
}

func TestFailedMutationSurfacesServerMessage(t *testing.T) {
	server := newConsoleServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"success":false,"message":"Duplicate entry"}`))
			return
		}
		upstreamFiles(w, r)
	})

	resp, err := http.Post(server.URL+"/screens/regions", "application/json", strings.NewReader(`{"name":"West"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	var response listResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Success {
		t.Fatal("expected success=false")
	}
	errorCount := 0
	for _, n := range response.Notifications {
		if n.Severity == notify.SeverityError && strings.Contains(n.Description, "Duplicate entry") {
			errorCount++
		}
	}
	if errorCount != 1 {
		t.Errorf("expected exactly one error notification with the server message, got %v", response.Notifications)
	}
}
