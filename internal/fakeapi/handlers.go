package fakeapi

import (
	"io"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/HerodesVe/fsr-go/internal/models"
)

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	s.mu.Lock()
	rec, ok := s.users[username]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(rec.hash, []byte(password)) != nil {
		writeError(w, http.StatusUnauthorized, "credenciales inválidas")
		return
	}

	access, err := generateToken(s.jwtSecret, rec.user.ID, username, rec.user.Role, 24*3600e9)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token generation failed")
		return
	}
	refresh, err := generateToken(s.jwtSecret, rec.user.ID, username, rec.user.Role, 7*24*3600e9)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token generation failed")
		return
	}
	writeJSON(w, http.StatusOK, models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		User:         rec.user,
	})
}

// ---------------------------------------------------------------
// Clients
// ---------------------------------------------------------------

func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]models.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := readJSON(r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if c.ClientType != models.ClientNatural && c.ClientType != models.ClientJuridical {
		writeError(w, http.StatusBadRequest, "clientType must be natural or juridical")
		return
	}
	s.mu.Lock()
	c.ID = s.nextID()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	s.clients[c.ID] = c
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	c, ok := s.clients[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "cliente no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) updateClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch models.Client
	if err := readJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[id]
	if !ok {
		writeError(w, http.StatusNotFound, "cliente no encontrado")
		return
	}
	patch.ID = c.ID
	patch.CreatedAt = c.CreatedAt
	patch.UpdatedAt = now()
	if patch.ClientType == "" {
		patch.ClientType = c.ClientType
	}
	s.clients[id] = patch
	writeJSON(w, http.StatusOK, patch)
}

func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.clients[id]
	delete(s.clients, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "cliente no encontrado")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------
// Workflow records
// ---------------------------------------------------------------

func (s *Server) listRecords(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		out := make([]models.WorkflowRecord, 0, len(s.records[resource]))
		for _, rec := range s.records[resource] {
			out = append(out, *rec)
		}
		s.mu.Unlock()
		sort.Slice(out, func(i, j int) bool { return out[i].InstanceCode < out[j].InstanceCode })
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) createRecord(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec models.WorkflowRecord
		if err := readJSON(r, &rec); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		s.mu.Lock()
		rec.ID = s.nextID()
		rec.InstanceCode = s.nextInstanceCode(resource)
		rec.CreatedAt = now()
		rec.UpdatedAt = rec.CreatedAt
		if rec.Data == nil {
			rec.Data = models.FormData{}
		}
		if rec.Status == "" {
			rec.Status = "draft"
		}
		rec.UploadedDocuments = nil
		s.records[resource][rec.ID] = &rec
		s.mu.Unlock()
		writeJSON(w, http.StatusCreated, rec)
	}
}

func (s *Server) getRecord(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		s.mu.Lock()
		rec, ok := s.records[resource][id]
		var cp models.WorkflowRecord
		if ok {
			cp = *rec
		}
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusNotFound, "trámite no encontrado")
			return
		}
		writeJSON(w, http.StatusOK, cp)
	}
}

func (s *Server) updateRecord(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var patch models.WorkflowRecord
		if err := readJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		rec, ok := s.records[resource][id]
		if !ok {
			writeError(w, http.StatusNotFound, "trámite no encontrado")
			return
		}
		if patch.Data != nil {
			rec.Data = patch.Data
		}
		if patch.StepsStatus != nil {
			rec.StepsStatus = patch.StepsStatus
		}
		if patch.Status != "" {
			rec.Status = patch.Status
		}
		if patch.ClientID != "" {
			rec.ClientID = patch.ClientID
		}
		if patch.ProgressPercentage != 0 {
			rec.ProgressPercentage = patch.ProgressPercentage
		}
		rec.UpdatedAt = now()
		writeJSON(w, http.StatusOK, *rec)
	}
}

func (s *Server) deleteRecord(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		s.mu.Lock()
		_, ok := s.records[resource][id]
		delete(s.records[resource], id)
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusNotFound, "trámite no encontrado")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// uploadDocuments receives parallel files[] and keys[] multipart fields and
// routes each file into its named slot, replacing whatever the slot held.
func (s *Server) uploadDocuments(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart body")
			return
		}
		headers := r.MultipartForm.File["files"]
		keys := r.MultipartForm.Value["keys"]
		if len(headers) == 0 {
			writeError(w, http.StatusBadRequest, "files is required")
			return
		}
		if len(headers) != len(keys) {
			writeError(w, http.StatusBadRequest, "files and keys must be parallel")
			return
		}

		docs := make([]models.UploadedDocument, 0, len(headers))
		for i, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, "unreadable file")
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				writeError(w, http.StatusBadRequest, "unreadable file")
				return
			}
			docs = append(docs, models.UploadedDocument{
				ID:   s.nextID(),
				Name: fh.Filename,
				URL:  "/files/" + s.nextID(),
				Size: int64(len(data)),
				Type: fh.Header.Get("Content-Type"),
				Key:  keys[i],
			})
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		rec, ok := s.records[resource][id]
		if !ok {
			writeError(w, http.StatusNotFound, "trámite no encontrado")
			return
		}
		for _, doc := range docs {
			replaced := false
			for i := range rec.UploadedDocuments {
				if rec.UploadedDocuments[i].Key == doc.Key {
					rec.UploadedDocuments[i] = doc
					replaced = true
					break
				}
			}
			if !replaced {
				rec.UploadedDocuments = append(rec.UploadedDocuments, doc)
			}
		}
		rec.UpdatedAt = now()
		writeJSON(w, http.StatusOK, *rec)
	}
}

// ---------------------------------------------------------------
// Catalog and ubigeo
// ---------------------------------------------------------------

func (s *Server) listServiceDefinitions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]models.ServiceDefinition, len(s.defs))
	copy(out, s.defs)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getServiceDefinition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, def := range s.defs {
		if def.ID == id {
			writeJSON(w, http.StatusOK, def)
			return
		}
	}
	writeError(w, http.StatusNotFound, "servicio no encontrado")
}

func (s *Server) listDepartments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps)
}

func (s *Server) listProvinces(w http.ResponseWriter, r *http.Request) {
	depID := chi.URLParam(r, "id")
	out := make([]models.Province, 0)
	for _, p := range s.provs {
		if p.DepartmentID == depID {
			out = append(out, p)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listDistricts(w http.ResponseWriter, r *http.Request) {
	provID := chi.URLParam(r, "id")
	out := make([]models.District, 0)
	for _, d := range s.dists {
		if d.ProvinceID == provID {
			out = append(out, d)
		}
	}
	writeJSON(w, http.StatusOK, out)
}
