package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"licensing/internal/license/models"
	"licensing/internal/license/service"
	id "licensing/pkg/domain"
	"licensing/pkg/money"
	"licensing/pkg/platform/httputil"
	"licensing/pkg/requestcontext"
)

// Service defines the license operations exposed over HTTP.
type Service interface {
	GetLicense(ctx context.Context, licenseID id.LicenseID) (*models.License, error)
	DriverLicenseHistory(ctx context.Context, driverID id.DriverID) (*service.History, error)
	Detain(ctx context.Context, licenseID id.LicenseID, fine money.Amount, createdBy id.UserID) (id.DetainID, error)
	Release(ctx context.Context, licenseID id.LicenseID, releasedBy id.UserID) (*models.ReleaseResult, error)
	GetOpenDetain(ctx context.Context, licenseID id.LicenseID) (*models.Detain, bool, error)
	ListDetains(ctx context.Context) ([]*models.Detain, error)
	Renew(ctx context.Context, licenseID id.LicenseID, notes string, createdBy id.UserID) (*models.License, error)
	Replace(ctx context.Context, licenseID id.LicenseID, reason models.IssueReason, createdBy id.UserID) (*models.License, error)
}

// Handler wires license lifecycle endpoints to the license service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts license endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/licenses/{licenseID}", h.HandleGetLicense)
	r.Post("/licenses/{licenseID}/detain", h.HandleDetain)
	r.Get("/licenses/{licenseID}/detain", h.HandleGetDetain)
	r.Post("/licenses/{licenseID}/release", h.HandleRelease)
	r.Post("/licenses/{licenseID}/renew", h.HandleRenew)
	r.Post("/licenses/{licenseID}/replace", h.HandleReplace)
	r.Get("/detains", h.HandleListDetains)
	r.Get("/drivers/{driverID}/licenses", h.HandleHistory)
}

func (h *Handler) licenseID(w http.ResponseWriter, r *http.Request) (id.LicenseID, bool) {
	licenseID, err := id.ParseLicenseID(chi.URLParam(r, "licenseID"))
	if err != nil {
		httputil.WriteError(w, err)
		return 0, false
	}
	return licenseID, true
}

func (h *Handler) HandleGetLicense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	licenseID, ok := h.licenseID(w, r)
	if !ok {
		return
	}
	l, err := h.service.GetLicense(ctx, licenseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromLicense(l, requestcontext.Now(ctx)))
}

// HandleDetain handles POST /licenses/{licenseID}/detain.
func (h *Handler) HandleDetain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	operator, err := httputil.Operator(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	licenseID, ok := h.licenseID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DetainRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	detainID, err := h.service.Detain(ctx, licenseID, *req.FineFee, operator)
	if err != nil {
		h.logger.WarnContext(ctx, "detain rejected",
			"request_id", requestID,
			"license_id", licenseID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "license detained",
		"request_id", requestID,
		"license_id", licenseID,
		"detain_id", detainID,
		"fine_fee", req.FineFee.String(),
	)
	httputil.WriteJSON(w, http.StatusCreated, DetainedResponse{DetainID: detainID})
}

// HandleRelease handles POST /licenses/{licenseID}/release.
func (h *Handler) HandleRelease(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	operator, err := httputil.Operator(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	licenseID, ok := h.licenseID(w, r)
	if !ok {
		return
	}
	result, err := h.service.Release(ctx, licenseID, operator)
	if err != nil {
		h.logger.WarnContext(ctx, "release rejected",
			"request_id", requestID,
			"license_id", licenseID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "license released",
		"request_id", requestID,
		"license_id", licenseID,
		"application_id", result.ApplicationID,
		"total_fee", result.TotalFee.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleGetDetain(w http.ResponseWriter, r *http.Request) {
	licenseID, ok := h.licenseID(w, r)
	if !ok {
		return
	}
	d, found, err := h.service.GetOpenDetain(r.Context(), licenseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DetainResponse{Detained: found, Detain: d})
}

func (h *Handler) HandleListDetains(w http.ResponseWriter, r *http.Request) {
	detains, err := h.service.ListDetains(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"detains": httputil.NonNil(detains)})
}

func (h *Handler) HandleRenew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	operator, err := httputil.Operator(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	licenseID, ok := h.licenseID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RenewRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	renewed, err := h.service.Renew(ctx, licenseID, req.Notes, operator)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "license renewed",
		"request_id", requestID,
		"license_id", licenseID,
		"new_license_id", renewed.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromLicense(renewed, requestcontext.Now(ctx)))
}

func (h *Handler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	operator, err := httputil.Operator(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	licenseID, ok := h.licenseID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ReplaceRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	replacement, err := h.service.Replace(ctx, licenseID, req.reason, operator)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "license replaced",
		"request_id", requestID,
		"license_id", licenseID,
		"new_license_id", replacement.ID,
		"reason", req.reason,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromLicense(replacement, requestcontext.Now(ctx)))
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	driverID, err := id.ParseDriverID(chi.URLParam(r, "driverID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	history, err := h.service.DriverLicenseHistory(ctx, driverID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromHistory(history, requestcontext.Now(ctx)))
}
