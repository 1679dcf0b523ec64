package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"licensing/internal/application/models"
	id "licensing/pkg/domain"
	"licensing/pkg/platform/httputil"
	"licensing/pkg/requestcontext"
)

// Service defines the application operations exposed over HTTP.
type Service interface {
	FileApplication(ctx context.Context, personID id.PersonID, classID id.LicenseClassID, createdBy id.UserID) (*models.LocalApplication, error)
	CancelApplication(ctx context.Context, appID id.ApplicationID) error
	GetApplication(ctx context.Context, appID id.ApplicationID) (*models.LocalApplication, error)
	FindActiveLicenseID(ctx context.Context, driverID id.DriverID, classID id.LicenseClassID) (id.LicenseID, bool, error)
	IssueFirstTimeLicense(ctx context.Context, appID id.ApplicationID, notes string, createdBy id.UserID) (id.LicenseID, error)
	ListLicenseClasses(ctx context.Context) ([]*models.LicenseClass, error)
	ListApplicationTypes(ctx context.Context) ([]*models.ApplicationType, error)
}

// Handler wires local application endpoints to the application service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts application endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/license-classes", h.HandleListLicenseClasses)
	r.Get("/application-types", h.HandleListApplicationTypes)
	r.Post("/applications", h.HandleFileApplication)
	r.Get("/applications/{applicationID}", h.HandleGetApplication)
	r.Post("/applications/{applicationID}/cancel", h.HandleCancelApplication)
	r.Post("/applications/{applicationID}/issue", h.HandleIssueFirstTimeLicense)
	r.Get("/drivers/{driverID}/active-license", h.HandleFindActiveLicense)
}

// ActiveLicenseResponse answers GET /drivers/{driverID}/active-license.
type ActiveLicenseResponse struct {
	Found     bool   `json:"found"`
	LicenseID *int64 `json:"license_id,omitempty"`
}

// IssuedResponse is returned when a license is issued.
type IssuedResponse struct {
	LicenseID id.LicenseID `json:"license_id"`
}

func (h *Handler) HandleFileApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	operator, err := httputil.Operator(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[FileApplicationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	app, err := h.service.FileApplication(ctx, id.PersonID(req.PersonID), id.LicenseClassID(req.LicenseClassID), operator)
	if err != nil {
		h.logger.WarnContext(ctx, "file application rejected",
			"request_id", requestID,
			"person_id", req.PersonID,
			"license_class_id", req.LicenseClassID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "application filed",
		"request_id", requestID,
		"application_id", app.ID,
		"driver_id", app.DriverID,
	)
	httputil.WriteJSON(w, http.StatusCreated, app)
}

func (h *Handler) HandleGetApplication(w http.ResponseWriter, r *http.Request) {
	appID, err := id.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	app, err := h.service.GetApplication(r.Context(), appID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, app)
}

func (h *Handler) HandleCancelApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	appID, err := id.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.CancelApplication(ctx, appID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "application cancelled",
		"request_id", requestcontext.RequestID(ctx),
		"application_id", appID,
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleIssueFirstTimeLicense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	operator, err := httputil.Operator(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	appID, err := id.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[IssueLicenseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	licenseID, err := h.service.IssueFirstTimeLicense(ctx, appID, req.Notes, operator)
	if err != nil {
		h.logger.WarnContext(ctx, "first-time issuance rejected",
			"request_id", requestID,
			"application_id", appID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "license issued",
		"request_id", requestID,
		"application_id", appID,
		"license_id", licenseID,
	)
	httputil.WriteJSON(w, http.StatusCreated, IssuedResponse{LicenseID: licenseID})
}

func (h *Handler) HandleFindActiveLicense(w http.ResponseWriter, r *http.Request) {
	driverID, err := id.ParseDriverID(chi.URLParam(r, "driverID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	classID, err := id.ParseLicenseClassID(r.URL.Query().Get("class_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	licenseID, found, err := h.service.FindActiveLicenseID(r.Context(), driverID, classID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	resp := ActiveLicenseResponse{Found: found}
	if found {
		v := int64(licenseID)
		resp.LicenseID = &v
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleListLicenseClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.ListLicenseClasses(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"license_classes": httputil.NonNil(classes)})
}

func (h *Handler) HandleListApplicationTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListApplicationTypes(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"application_types": httputil.NonNil(types)})
}
