package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/HerodesVe/fsr-go/internal/api"
	"github.com/HerodesVe/fsr-go/internal/models"
	"github.com/HerodesVe/fsr-go/internal/services"
)

// countingBackend serves a minimal workflow collection and counts requests
// per method+path so tests can assert how often the network was hit.
type countingBackend struct {
	mux    *http.ServeMux
	counts map[string]*atomic.Int64
}

func newCountingBackend() *countingBackend {
	b := &countingBackend{mux: http.NewServeMux(), counts: map[string]*atomic.Int64{}}
	return b
}

func (b *countingBackend) handle(pattern string, status int, body any) {
	c := &atomic.Int64{}
	b.counts[pattern] = c
	b.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		c.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			json.NewEncoder(w).Encode(body)
		}
	})
}

func (b *countingBackend) hits(pattern string) int64 { return b.counts[pattern].Load() }

func newStoreOver(t *testing.T, backend http.Handler) (*Store, *api.Client, *Recorder, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	client := api.New(srv.URL, nil, 5*time.Second, nil)
	rec := &Recorder{}
	return New(rec, nil), client, rec, srv
}

func TestFreshReadHitsNetworkOnce(t *testing.T) {
	backend := newCountingBackend()
	backend.handle("GET /anteproyectos/", http.StatusOK, []models.WorkflowRecord{{ID: "r1"}})
	s, client, _, _ := newStoreOver(t, backend.mux)
	wf := s.Workflows(services.NewWorkflowService(client, "anteproyectos"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		recs, err := wf.List(ctx)
		if err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
		if len(recs) != 1 || recs[0].ID != "r1" {
			t.Fatalf("unexpected records: %v", recs)
		}
	}
	if got := backend.hits("GET /anteproyectos/"); got != 1 {
		t.Fatalf("expected 1 network fetch within the freshness window, got %d", got)
	}
}

func TestReadRetriesOnce(t *testing.T) {
	var calls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /anteproyectos/", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]models.WorkflowRecord{{ID: "r1"}})
	})
	s, client, _, _ := newStoreOver(t, mux)
	wf := s.Workflows(services.NewWorkflowService(client, "anteproyectos"))

	recs, err := wf.List(context.Background())
	if err != nil {
		t.Fatalf("list must succeed on the retry: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("unexpected records: %v", recs)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected exactly 2 fetches, got %d", calls.Load())
	}
}

func TestReadGivesUpAfterSecondFailure(t *testing.T) {
	var calls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /anteproyectos/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	s, client, _, _ := newStoreOver(t, mux)
	wf := s.Workflows(services.NewWorkflowService(client, "anteproyectos"))

	if _, err := wf.List(context.Background()); err == nil {
		t.Fatal("expected error after both fetches fail")
	}
	if calls.Load() != 2 {
		t.Fatalf("expected exactly 2 fetches, got %d", calls.Load())
	}
}

func TestMutationInvalidatesCollection(t *testing.T) {
	var listCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /anteproyectos/", func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		json.NewEncoder(w).Encode([]models.WorkflowRecord{{ID: "r1"}})
	})
	mux.HandleFunc("POST /anteproyectos/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.WorkflowRecord{ID: "r2"})
	})
	s, client, _, _ := newStoreOver(t, mux)
	wf := s.Workflows(services.NewWorkflowService(client, "anteproyectos"))
	ctx := context.Background()

	wf.List(ctx)
	wf.List(ctx)
	if listCalls.Load() != 1 {
		t.Fatalf("cache warmup expected 1 fetch, got %d", listCalls.Load())
	}
	if _, err := wf.Create(ctx, &models.WorkflowRecord{}); err != nil {
		t.Fatalf("create: %v", err)
	}
	wf.List(ctx)
	if listCalls.Load() != 2 {
		t.Fatalf("list after create must re-fetch, got %d fetches", listCalls.Load())
	}
}

func TestFailedMutationLeavesCacheUntouched(t *testing.T) {
	var listCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /anteproyectos/", func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		json.NewEncoder(w).Encode([]models.WorkflowRecord{{ID: "r1"}})
	})
	mux.HandleFunc("POST /anteproyectos/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "cliente requerido"})
	})
	s, client, rec, _ := newStoreOver(t, mux)
	wf := s.Workflows(services.NewWorkflowService(client, "anteproyectos"))
	ctx := context.Background()

	wf.List(ctx)
	if _, err := wf.Create(ctx, &models.WorkflowRecord{}); err == nil {
		t.Fatal("expected create failure")
	}
	wf.List(ctx)
	if listCalls.Load() != 1 {
		t.Fatalf("failed create must not invalidate, got %d fetches", listCalls.Load())
	}
	notes := rec.All()
	if len(notes) != 1 || notes[0].Level != "error" {
		t.Fatalf("expected one error notification, got %v", notes)
	}
	if notes[0].Message != "cliente requerido" {
		t.Fatalf("backend detail must win, got %q", notes[0].Message)
	}
}

func TestOneNotificationPerMutation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /anteproyectos/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.WorkflowRecord{ID: "r1"})
	})
	s, client, rec, _ := newStoreOver(t, mux)
	wf := s.Workflows(services.NewWorkflowService(client, "anteproyectos"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := wf.Create(ctx, &models.WorkflowRecord{}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	notes := rec.All()
	if len(notes) != 3 {
		t.Fatalf("expected 3 notifications for 3 mutations, got %d", len(notes))
	}
	seen := map[string]bool{}
	for _, n := range notes {
		if n.Level != "success" || n.Message != "Trámite creado correctamente" {
			t.Fatalf("unexpected notification %+v", n)
		}
		if seen[n.ID] {
			t.Fatalf("notification ids must be unique, repeated %q", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestUploadSetsRecordSlotDirectly(t *testing.T) {
	var getCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /anteproyectos/r1/", func(w http.ResponseWriter, r *http.Request) {
		getCalls.Add(1)
		json.NewEncoder(w).Encode(models.WorkflowRecord{ID: "r1"})
	})
	mux.HandleFunc("POST /anteproyectos/r1/documents", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.WorkflowRecord{
			ID:                "r1",
			UploadedDocuments: []models.UploadedDocument{{ID: "d1", Key: "plano", Name: "plano.pdf"}},
		})
	})
	s, client, _, _ := newStoreOver(t, mux)
	wf := s.Workflows(services.NewWorkflowService(client, "anteproyectos"))
	ctx := context.Background()

	file := api.File{Name: "plano.pdf", ContentType: "application/pdf", Data: []byte("pdf")}
	if _, err := wf.UploadDocument(ctx, "r1", file, "plano"); err != nil {
		t.Fatalf("upload: %v", err)
	}
	got, err := wf.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if getCalls.Load() != 0 {
		t.Fatalf("record slot must be served from the upload response, got %d fetches", getCalls.Load())
	}
	if len(got.UploadedDocuments) != 1 || got.UploadedDocuments[0].Key != "plano" {
		t.Fatalf("cached record missing uploaded document: %+v", got)
	}
}

func TestResetDropsEverything(t *testing.T) {
	backend := newCountingBackend()
	backend.handle("GET /anteproyectos/", http.StatusOK, []models.WorkflowRecord{{ID: "r1"}})
	s, client, _, _ := newStoreOver(t, backend.mux)
	wf := s.Workflows(services.NewWorkflowService(client, "anteproyectos"))
	ctx := context.Background()

	wf.List(ctx)
	s.Reset()
	wf.List(ctx)
	if got := backend.hits("GET /anteproyectos/"); got != 2 {
		t.Fatalf("reset must force a re-fetch, got %d fetches", got)
	}
}

func TestFailureMessagePrecedence(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{"backend detail wins", &api.Error{Status: 422, Detail: "cliente requerido"}, "fallback", "cliente requerido"},
		{"api error without detail falls back", &api.Error{Status: 500}, "No se pudo crear", "No se pudo crear"},
		{"transport error surfaces", fmt.Errorf("dial tcp: connection refused"), "fallback", "dial tcp: connection refused"},
	}
	for _, c := range cases {
		if got := failureMessage(c.err, c.fallback); got != c.want {
			t.Fatalf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestClientsFacadeToasts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /clients/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Client{ID: "c1", ClientType: models.ClientNatural})
	})
	mux.HandleFunc("DELETE /clients/c1/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	s, client, rec, _ := newStoreOver(t, mux)
	cs := s.Clients(services.NewClientService(client))
	ctx := context.Background()

	if _, err := cs.Create(ctx, &models.Client{ClientType: models.ClientNatural}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := cs.Delete(ctx, "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	notes := rec.All()
	if len(notes) != 2 {
		t.Fatalf("expected 2 notifications, got %v", notes)
	}
	if notes[0].Message != "Cliente creado correctamente" {
		t.Fatalf("unexpected create toast %q", notes[0].Message)
	}
	if notes[1].Message != "Cliente eliminado" {
		t.Fatalf("unexpected delete toast %q", notes[1].Message)
	}
}
