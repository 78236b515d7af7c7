package admin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/utkarshgupta137/httpmock/internal/model"
	"github.com/utkarshgupta137/httpmock/internal/registry"
	"github.com/utkarshgupta137/httpmock/pkg/logging"
)

// API implements the /__mocks management endpoints on top of a Registry.
type API struct {
	reg *registry.Registry
	log *slog.Logger
}

// New returns an API serving reg's management endpoints. A nil log disables
// logging.
func New(reg *registry.Registry, log *slog.Logger) *API {
	if log == nil {
		log = logging.Nop()
	}
	return &API{reg: reg, log: log}
}

// Register mounts the management endpoints on mux under the /__mocks prefix.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /__mocks", a.handleCreate)
	mux.HandleFunc("GET /__mocks/{id}", a.handleGet)
	mux.HandleFunc("DELETE /__mocks/{id}", a.handleDelete)
	mux.HandleFunc("DELETE /__mocks", a.handleDeleteAll)
}

// handleCreate handles POST /__mocks: register a new mock definition.
func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	var wire definitionWire
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		writeTextError(w, http.StatusInternalServerError, "invalid mock definition: "+err.Error())
		return
	}

	def := wire.toModel()
	if err := validateDefinition(def); err != nil {
		writeTextError(w, http.StatusInternalServerError, "invalid mock definition: "+err.Error())
		return
	}

	id := a.reg.Add(def)
	a.log.Info("mock registered", "id", id)
	writeJSON(w, http.StatusCreated, model.Identification{ID: id})
}

// handleGet handles GET /__mocks/{id}.
func (a *API) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	m, err := a.reg.Read(id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		writeTextError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, activeMockToWire(m))
}

// handleDelete handles DELETE /__mocks/{id}.
func (a *API) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := a.reg.Delete(id); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		writeTextError(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.log.Info("mock deleted", "id", id)
	w.WriteHeader(http.StatusAccepted)
}

// handleDeleteAll handles DELETE /__mocks.
func (a *API) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	n := a.reg.DeleteAll()
	a.log.Info("all mocks deleted", "count", n)
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeTextError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}
