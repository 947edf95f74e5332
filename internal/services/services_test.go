package services_test

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/HerodesVe/fsr-go/internal/api"
	"github.com/HerodesVe/fsr-go/internal/fakeapi"
	"github.com/HerodesVe/fsr-go/internal/models"
	"github.com/HerodesVe/fsr-go/internal/services"
)

// tokenHolder is a settable TokenSource for tests.
type tokenHolder struct {
	mu  sync.Mutex
	tok string
}

func (h *tokenHolder) AccessToken() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tok
}

func (h *tokenHolder) set(tok string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tok = tok
}

func newTestClient(t *testing.T) (*api.Client, *tokenHolder) {
	t.Helper()
	srv := httptest.NewServer(fakeapi.New().Handler())
	t.Cleanup(srv.Close)
	tokens := &tokenHolder{}
	return api.New(srv.URL+"/api/v1", tokens, 5*time.Second, nil), tokens
}

func login(t *testing.T, client *api.Client, tokens *tokenHolder) *models.TokenPair {
	t.Helper()
	pair, err := services.NewAuthService(client).Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	tokens.set(pair.AccessToken)
	return pair
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	client, _ := newTestClient(t)
	_, err := services.NewAuthService(client).Login(context.Background(), "admin", "wrong")
	if err == nil {
		t.Fatal("expected login failure")
	}
	if !api.Unauthorized(err) {
		t.Fatalf("expected 401, got %v", err)
	}
	if api.Detail(err) != "credenciales inválidas" {
		t.Fatalf("unexpected detail %q", api.Detail(err))
	}
}

func TestLoginReturnsTokenPairWithUser(t *testing.T) {
	client, tokens := newTestClient(t)
	pair := login(t, client, tokens)
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("token pair incomplete")
	}
	if pair.User.Username != "admin" || pair.User.Role != "admin" {
		t.Fatalf("unexpected user %+v", pair.User)
	}
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	client, _ := newTestClient(t)
	_, err := services.NewClientService(client).GetAll(context.Background())
	if !api.Unauthorized(err) {
		t.Fatalf("expected 401 without a token, got %v", err)
	}
}

func TestClientLifecycle(t *testing.T) {
	client, tokens := newTestClient(t)
	login(t, client, tokens)
	svc := services.NewClientService(client)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.Client{
		ClientType:      models.ClientNatural,
		Names:           "Juan",
		PaternalSurname: "Perez",
		DocumentType:    "DNI",
		DocumentNumber:  "12345678",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("server must assign the id")
	}

	list, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 client, got %d", len(list))
	}
	got := list[0]
	if got.ClientType != models.ClientNatural || got.DocumentNumber != "12345678" {
		t.Fatalf("round trip mangled the client: %+v", got)
	}
	if got.DisplayName() != "Juan Perez" {
		t.Fatalf("unexpected display name %q", got.DisplayName())
	}

	got.Email = "juan@example.com"
	updated, err := svc.Update(ctx, created.ID, &got)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != "juan@example.com" || updated.Names != "Juan" {
		t.Fatalf("update lost fields: %+v", updated)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); api.Detail(err) != "cliente no encontrado" {
		t.Fatalf("expected not-found detail, got %v", err)
	}
}

func TestClientTypeIsValidated(t *testing.T) {
	client, tokens := newTestClient(t)
	login(t, client, tokens)
	_, err := services.NewClientService(client).Create(context.Background(), &models.Client{ClientType: "other"})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if api.Detail(err) != "clientType must be natural or juridical" {
		t.Fatalf("unexpected detail %q", api.Detail(err))
	}
}

func TestWorkflowRecordLifecycle(t *testing.T) {
	client, tokens := newTestClient(t)
	login(t, client, tokens)
	svc := services.NewWorkflowService(client, "anteproyectos")
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.WorkflowRecord{
		Data: models.FormData{"nombre_proyecto": "Edificio San Martín"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != "draft" {
		t.Fatalf("new record must default to draft, got %q", created.Status)
	}
	if created.InstanceCode == "" {
		t.Fatal("server must assign an instance code")
	}

	created.Status = "submitted"
	updated, err := svc.Update(ctx, created.ID, created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != "submitted" {
		t.Fatalf("status not updated: %+v", updated)
	}
	if v, _ := updated.Data["nombre_proyecto"].(string); v != "Edificio San Martín" {
		t.Fatalf("form data lost: %v", updated.Data)
	}

	if _, err := svc.GetByID(ctx, "missing"); api.Detail(err) != "trámite no encontrado" {
		t.Fatalf("expected not-found detail, got %v", err)
	}
}

func TestUploadAccumulatesAndReplaces(t *testing.T) {
	client, tokens := newTestClient(t)
	login(t, client, tokens)
	svc := services.NewWorkflowService(client, "anteproyectos")
	ctx := context.Background()

	rec, err := svc.Create(ctx, &models.WorkflowRecord{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	plano := api.File{Name: "plano.pdf", ContentType: "application/pdf", Data: []byte("plano")}
	memoria := api.File{Name: "memoria.pdf", ContentType: "application/pdf", Data: []byte("memoria")}

	rec, err = svc.UploadSingleDocument(ctx, rec.ID, plano, "plano_ubicacion")
	if err != nil {
		t.Fatalf("upload plano: %v", err)
	}
	rec, err = svc.UploadSingleDocument(ctx, rec.ID, memoria, "memoria_descriptiva")
	if err != nil {
		t.Fatalf("upload memoria: %v", err)
	}
	if len(rec.UploadedDocuments) != 2 {
		t.Fatalf("different keys must accumulate, got %v", rec.UploadedDocuments)
	}

	plano2 := api.File{Name: "plano-v2.pdf", ContentType: "application/pdf", Data: []byte("plano v2")}
	rec, err = svc.UploadSingleDocument(ctx, rec.ID, plano2, "plano_ubicacion")
	if err != nil {
		t.Fatalf("re-upload: %v", err)
	}
	if len(rec.UploadedDocuments) != 2 {
		t.Fatalf("same key must replace, got %v", rec.UploadedDocuments)
	}
	doc := rec.DocumentByKey("plano_ubicacion")
	if doc == nil || doc.Name != "plano-v2.pdf" {
		t.Fatalf("slot must hold the newest file: %+v", doc)
	}
	if doc.Size != int64(len("plano v2")) {
		t.Fatalf("size must reflect the uploaded bytes, got %d", doc.Size)
	}
}

func TestUploadMultipleFilesAtOnce(t *testing.T) {
	client, tokens := newTestClient(t)
	login(t, client, tokens)
	svc := services.NewWorkflowService(client, "proyectos")
	ctx := context.Background()

	rec, err := svc.Create(ctx, &models.WorkflowRecord{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	files := []api.File{
		{Name: "arq.pdf", ContentType: "application/pdf", Data: []byte("a")},
		{Name: "est.pdf", ContentType: "application/pdf", Data: []byte("e")},
	}
	rec, err = svc.UploadDocuments(ctx, rec.ID, files, []string{"plano_arquitectura", "plano_estructuras"})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(rec.UploadedDocuments) != 2 {
		t.Fatalf("expected 2 documents, got %v", rec.UploadedDocuments)
	}

	if _, err := svc.UploadDocuments(ctx, rec.ID, files, []string{"solo_una"}); err == nil {
		t.Fatal("mismatched files and keys must fail before the wire")
	}
}

func TestServiceDefinitions(t *testing.T) {
	client, tokens := newTestClient(t)
	login(t, client, tokens)
	svc := services.NewServiceDefinitionService(client)
	ctx := context.Background()

	defs, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(defs) != 3 {
		t.Fatalf("expected 3 seeded definitions, got %d", len(defs))
	}
	var ant *models.ServiceDefinition
	for i := range defs {
		if defs[i].Code == "ANT" {
			ant = &defs[i]
		}
	}
	if ant == nil {
		t.Fatalf("ANT definition missing: %v", defs)
	}
	if ant.Price.StringFixed(2) != "2500.00" {
		t.Fatalf("price must survive as a decimal, got %s", ant.Price)
	}

	got, err := svc.GetByID(ctx, ant.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Resource != "anteproyectos" {
		t.Fatalf("unexpected definition %+v", got)
	}
}

func TestUbigeoChain(t *testing.T) {
	client, tokens := newTestClient(t)
	login(t, client, tokens)
	svc := services.NewUbigeoService(client)
	ctx := context.Background()

	deps, err := svc.Departments(ctx)
	if err != nil {
		t.Fatalf("departments: %v", err)
	}
	var lima string
	for _, d := range deps {
		if d.Name == "Lima" {
			lima = d.ID
		}
	}
	if lima == "" {
		t.Fatalf("Lima missing from %v", deps)
	}

	provs, err := svc.Provinces(ctx, lima)
	if err != nil {
		t.Fatalf("provinces: %v", err)
	}
	if len(provs) != 2 {
		t.Fatalf("expected 2 provinces for Lima, got %v", provs)
	}
	for _, p := range provs {
		if p.DepartmentID != lima {
			t.Fatalf("province %v outside department %s", p, lima)
		}
	}

	dists, err := svc.Districts(ctx, provs[0].ID)
	if err != nil {
		t.Fatalf("districts: %v", err)
	}
	for _, d := range dists {
		if d.ProvinceID != provs[0].ID {
			t.Fatalf("district %v outside province %s", d, provs[0].ID)
		}
	}
}
