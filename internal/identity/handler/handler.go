package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"licensing/internal/identity/models"
	id "licensing/pkg/domain"
	"licensing/pkg/platform/httputil"
	"licensing/pkg/requestcontext"
)

// Service defines the identity operations exposed over HTTP.
type Service interface {
	RegisterPerson(ctx context.Context, in models.PersonInput) (*models.Person, error)
	UpdatePerson(ctx context.Context, personID id.PersonID, in models.PersonInput) (*models.Person, error)
	GetPerson(ctx context.Context, personID id.PersonID) (*models.Person, error)
	FindPersonByNationalID(ctx context.Context, nationalID string) (*models.Person, error)
	ListPeople(ctx context.Context) ([]*models.Person, error)
	GetDriver(ctx context.Context, driverID id.DriverID) (*models.Driver, error)
	FindDriverByPerson(ctx context.Context, personID id.PersonID) (*models.Driver, error)
}

// Handler wires people and driver endpoints to the identity service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts identity endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/people", h.HandleRegisterPerson)
	r.Get("/people", h.HandleListPeople)
	r.Get("/people/by-national-id/{nationalID}", h.HandleFindByNationalID)
	r.Get("/people/{personID}", h.HandleGetPerson)
	r.Put("/people/{personID}", h.HandleUpdatePerson)
	r.Get("/people/{personID}/driver", h.HandleGetDriverByPerson)
	r.Get("/drivers/{driverID}", h.HandleGetDriver)
}

func (h *Handler) HandleRegisterPerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[PersonRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	person, err := h.service.RegisterPerson(ctx, req.Input())
	if err != nil {
		h.logger.ErrorContext(ctx, "register person failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "person registered",
		"request_id", requestID,
		"person_id", person.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, person)
}

func (h *Handler) HandleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	personID, err := id.ParsePersonID(chi.URLParam(r, "personID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[PersonRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	person, err := h.service.UpdatePerson(ctx, personID, req.Input())
	if err != nil {
		h.logger.ErrorContext(ctx, "update person failed",
			"request_id", requestID,
			"person_id", personID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, person)
}

func (h *Handler) HandleGetPerson(w http.ResponseWriter, r *http.Request) {
	personID, err := id.ParsePersonID(chi.URLParam(r, "personID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	person, err := h.service.GetPerson(r.Context(), personID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, person)
}

func (h *Handler) HandleFindByNationalID(w http.ResponseWriter, r *http.Request) {
	person, err := h.service.FindPersonByNationalID(r.Context(), chi.URLParam(r, "nationalID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, person)
}

func (h *Handler) HandleListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.service.ListPeople(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"people": httputil.NonNil(people)})
}

func (h *Handler) HandleGetDriver(w http.ResponseWriter, r *http.Request) {
	driverID, err := id.ParseDriverID(chi.URLParam(r, "driverID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	driver, err := h.service.GetDriver(r.Context(), driverID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, driver)
}

func (h *Handler) HandleGetDriverByPerson(w http.ResponseWriter, r *http.Request) {
	personID, err := id.ParsePersonID(chi.URLParam(r, "personID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	driver, err := h.service.FindDriverByPerson(r.Context(), personID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, driver)
}
