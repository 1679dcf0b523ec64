package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"licensing/internal/international/models"
	"licensing/internal/international/service"
	licensemodels "licensing/internal/license/models"
	id "licensing/pkg/domain"
	"licensing/pkg/platform/httputil"
	"licensing/pkg/requestcontext"
)

// Service defines the international license operations exposed over HTTP.
type Service interface {
	Issue(ctx context.Context, req service.IssueRequest) (id.InternationalLicenseID, error)
	Get(ctx context.Context, licenseID id.InternationalLicenseID) (*models.License, error)
	ListByDriver(ctx context.Context, driverID id.DriverID) ([]*models.License, error)
}

// Handler wires international license endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts international license endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/international-licenses", h.HandleIssue)
	r.Get("/international-licenses/{internationalLicenseID}", h.HandleGet)
	r.Get("/drivers/{driverID}/international-licenses", h.HandleListByDriver)
}

// IssuedResponse is returned when an international license is issued.
type IssuedResponse struct {
	InternationalLicenseID id.InternationalLicenseID `json:"international_license_id"`
}

// LicenseResponse is an international license with its status at request time.
type LicenseResponse struct {
	*models.License
	Status licensemodels.Status `json:"status"`
}

func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	operator, err := httputil.Operator(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[IssueRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	licenseID, err := h.service.Issue(ctx, service.IssueRequest{
		LocalLicenseID: id.LicenseID(req.LocalLicenseID),
		IssueDate:      req.issueDate,
		ExpirationDate: req.expirationDate,
		CreatedBy:      operator,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "international issuance rejected",
			"request_id", requestID,
			"local_license_id", req.LocalLicenseID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "international license issued",
		"request_id", requestID,
		"local_license_id", req.LocalLicenseID,
		"international_license_id", licenseID,
	)
	httputil.WriteJSON(w, http.StatusCreated, IssuedResponse{InternationalLicenseID: licenseID})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	licenseID, err := id.ParseInternationalLicenseID(chi.URLParam(r, "internationalLicenseID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	l, err := h.service.Get(ctx, licenseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LicenseResponse{License: l, Status: l.Status(requestcontext.Now(ctx))})
}

func (h *Handler) HandleListByDriver(w http.ResponseWriter, r *http.Request) {
	driverID, err := id.ParseDriverID(chi.URLParam(r, "driverID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	licenses, err := h.service.ListByDriver(r.Context(), driverID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"international_licenses": httputil.NonNil(licenses)})
}
