// Package fakeapi is an in-memory stand-in for the platform backend,
// implementing the REST surface the toolkit consumes. It exists for
// package tests and the CLI's demo mode; it is not a product server.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/HerodesVe/fsr-go/internal/models"
	"github.com/HerodesVe/fsr-go/internal/workflows"
)

type userRec struct {
	user models.User
	hash []byte
}

// Server holds all state behind a mutex; identifiers are uuids assigned
// here, never by the caller.
type Server struct {
	mu        sync.Mutex
	jwtSecret string
	users     map[string]userRec                           // by username
	clients   map[string]models.Client                     // by id
	records   map[string]map[string]*models.WorkflowRecord // resource -> id
	defs      []models.ServiceDefinition
	deps      []models.Department
	provs     []models.Province
	dists     []models.District
	seq       int
	router    *chi.Mux
}

// New builds a server with the workflow resources from the catalog, ubigeo
// fixtures and a seeded operator (admin / admin123).
func New() *Server {
	s := &Server{
		jwtSecret: "fsr-test-secret",
		users:     map[string]userRec{},
		clients:   map[string]models.Client{},
		records:   map[string]map[string]*models.WorkflowRecord{},
	}
	for _, res := range workflows.Resources() {
		s.records[res] = map[string]*models.WorkflowRecord{}
	}
	s.seedFixtures()
	s.AddUser("admin", "admin123", "Administrador", "admin")
	s.routes()
	return s
}

// Handler returns the HTTP handler, mounted under /api/v1.
func (s *Server) Handler() http.Handler { return s.router }

// AddUser registers an operator with a bcrypt-hashed password.
func (s *Server) AddUser(username, password, name, role string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = userRec{
		user: models.User{ID: s.nextID(), Username: username, Name: name, Role: role},
		hash: hash,
	}
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/token", s.handleToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(s.jwtSecret))

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", s.listClients)
				r.Post("/", s.createClient)
				r.Get("/{id}/", s.getClient)
				r.Patch("/{id}/", s.updateClient)
				r.Delete("/{id}/", s.deleteClient)
			})

			for _, res := range workflows.Resources() {
				resource := res
				r.Route("/"+resource, func(r chi.Router) {
					r.Get("/", s.listRecords(resource))
					r.Post("/", s.createRecord(resource))
					r.Get("/{id}/", s.getRecord(resource))
					r.Patch("/{id}/", s.updateRecord(resource))
					r.Delete("/{id}/", s.deleteRecord(resource))
					r.Post("/{id}/documents", s.uploadDocuments(resource))
				})
			}

			r.Get("/service-definitions/", s.listServiceDefinitions)
			r.Get("/service-definitions/{id}/", s.getServiceDefinition)
			r.Get("/ubigeo/departments", s.listDepartments)
			r.Get("/ubigeo/departments/{id}/provinces", s.listProvinces)
			r.Get("/ubigeo/provinces/{id}/districts", s.listDistricts)
		})
	})
	s.router = r
}

// nextID hands out stable uuids; seq only feeds instance codes.
func (s *Server) nextID() string { return uuid.New().String() }

func (s *Server) nextInstanceCode(resource string) string {
	s.seq++
	return fmt.Sprintf("%s-%04d", resource, s.seq)
}

func (s *Server) seedFixtures() {
	s.deps = []models.Department{
		{ID: "15", Name: "Lima"},
		{ID: "04", Name: "Arequipa"},
	}
	s.provs = []models.Province{
		{ID: "1501", DepartmentID: "15", Name: "Lima"},
		{ID: "1508", DepartmentID: "15", Name: "Huarochirí"},
		{ID: "0401", DepartmentID: "04", Name: "Arequipa"},
	}
	s.dists = []models.District{
		{ID: "150101", ProvinceID: "1501", Name: "Lima"},
		{ID: "150122", ProvinceID: "1501", Name: "Miraflores"},
		{ID: "040101", ProvinceID: "0401", Name: "Arequipa"},
	}
	s.defs = []models.ServiceDefinition{
		{ID: s.nextID(), Code: "ANT", Name: "Anteproyecto en consulta", Resource: "anteproyectos", Price: decimal.NewFromInt(2500), Active: true},
		{ID: s.nextID(), Code: "PRO", Name: "Proyecto de edificación", Resource: "proyectos", Price: decimal.NewFromInt(6800), Active: true},
		{ID: s.nextID(), Code: "DEM", Name: "Licencia de demolición", Resource: "demoliciones", Price: decimal.NewFromInt(1900), Active: true},
	}
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
