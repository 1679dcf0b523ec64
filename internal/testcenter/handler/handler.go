package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"licensing/internal/testcenter/models"
	"licensing/internal/testcenter/service"
	id "licensing/pkg/domain"
	"licensing/pkg/platform/httputil"
	"licensing/pkg/requestcontext"
)

// Service defines the test subsystem operations exposed over HTTP.
type Service interface {
	ScheduleAppointment(ctx context.Context, req service.ScheduleRequest) (id.AppointmentID, error)
	RescheduleAppointment(ctx context.Context, apptID id.AppointmentID, date time.Time) (*models.Appointment, error)
	RecordResult(ctx context.Context, apptID id.AppointmentID, passed bool, notes string, createdBy id.UserID) (id.TestID, error)
	CountTrials(ctx context.Context, appID id.ApplicationID, testType id.TestTypeID) (int, error)
	HasPassedAllRequiredTests(ctx context.Context, appID id.ApplicationID) (bool, error)
	PassedTestCount(ctx context.Context, appID id.ApplicationID) (int, error)
	ListAppointments(ctx context.Context, appID id.ApplicationID, testType id.TestTypeID) ([]*models.Appointment, error)
	GetAppointment(ctx context.Context, apptID id.AppointmentID) (*models.Appointment, error)
	GetResult(ctx context.Context, apptID id.AppointmentID) (*models.Test, error)
	ListTestTypes(ctx context.Context) ([]*models.TestType, error)
}

// Handler wires appointment and test endpoints to the test subsystem.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts test subsystem endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/test-types", h.HandleListTestTypes)
	r.Post("/applications/{applicationID}/appointments", h.HandleSchedule)
	r.Get("/applications/{applicationID}/appointments", h.HandleListAppointments)
	r.Get("/applications/{applicationID}/trials", h.HandleCountTrials)
	r.Get("/applications/{applicationID}/progress", h.HandleProgress)
	r.Get("/appointments/{appointmentID}", h.HandleGetAppointment)
	r.Put("/appointments/{appointmentID}", h.HandleReschedule)
	r.Post("/appointments/{appointmentID}/result", h.HandleRecordResult)
	r.Get("/appointments/{appointmentID}/result", h.HandleGetResult)
}

// ScheduledResponse is returned when an appointment is booked.
type ScheduledResponse struct {
	AppointmentID id.AppointmentID `json:"appointment_id"`
}

// RecordedResponse is returned when a test result is recorded.
type RecordedResponse struct {
	TestID id.TestID `json:"test_id"`
}

// TrialsResponse answers GET /applications/{applicationID}/trials.
type TrialsResponse struct {
	TestTypeID id.TestTypeID `json:"test_type_id"`
	Trials     int           `json:"trials"`
}

// ProgressResponse answers GET /applications/{applicationID}/progress.
type ProgressResponse struct {
	PassedTests    int  `json:"passed_tests"`
	AllTestsPassed bool `json:"all_tests_passed"`
}

func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
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
	req, ok := httputil.DecodeAndPrepare[ScheduleRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	apptID, err := h.service.ScheduleAppointment(ctx, service.ScheduleRequest{
		ApplicationID: appID,
		TestType:      id.TestTypeID(req.TestTypeID),
		Date:          req.date,
		Fee:           req.Fee,
		CreatedBy:     operator,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "schedule appointment rejected",
			"request_id", requestID,
			"application_id", appID,
			"test_type", models.TestTypeName(id.TestTypeID(req.TestTypeID)),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "appointment scheduled",
		"request_id", requestID,
		"application_id", appID,
		"appointment_id", apptID,
	)
	httputil.WriteJSON(w, http.StatusCreated, ScheduledResponse{AppointmentID: apptID})
}

func (h *Handler) HandleReschedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	apptID, err := id.ParseAppointmentID(chi.URLParam(r, "appointmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[RescheduleRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	appt, err := h.service.RescheduleAppointment(ctx, apptID, req.date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, appt)
}

func (h *Handler) HandleRecordResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	operator, err := httputil.Operator(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	apptID, err := id.ParseAppointmentID(chi.URLParam(r, "appointmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ResultRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	testID, err := h.service.RecordResult(ctx, apptID, *req.Passed, req.Notes, operator)
	if err != nil {
		h.logger.WarnContext(ctx, "record result rejected",
			"request_id", requestID,
			"appointment_id", apptID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "test result recorded",
		"request_id", requestID,
		"appointment_id", apptID,
		"passed", *req.Passed,
	)
	httputil.WriteJSON(w, http.StatusCreated, RecordedResponse{TestID: testID})
}

func (h *Handler) HandleListAppointments(w http.ResponseWriter, r *http.Request) {
	appID, err := id.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	testType, err := optionalTestType(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	appts, err := h.service.ListAppointments(r.Context(), appID, testType)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"appointments": httputil.NonNil(appts)})
}

func (h *Handler) HandleCountTrials(w http.ResponseWriter, r *http.Request) {
	appID, err := id.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	testType, err := id.ParseTestTypeID(r.URL.Query().Get("test_type_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	trials, err := h.service.CountTrials(r.Context(), appID, testType)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TrialsResponse{TestTypeID: testType, Trials: trials})
}

func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	appID, err := id.ParseApplicationID(chi.URLParam(r, "applicationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	passed, err := h.service.PassedTestCount(ctx, appID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	all, err := h.service.HasPassedAllRequiredTests(ctx, appID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ProgressResponse{PassedTests: passed, AllTestsPassed: all})
}

func (h *Handler) HandleGetAppointment(w http.ResponseWriter, r *http.Request) {
	apptID, err := id.ParseAppointmentID(chi.URLParam(r, "appointmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	appt, err := h.service.GetAppointment(r.Context(), apptID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, appt)
}

func (h *Handler) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	apptID, err := id.ParseAppointmentID(chi.URLParam(r, "appointmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	test, err := h.service.GetResult(r.Context(), apptID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, test)
}

func (h *Handler) HandleListTestTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListTestTypes(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"test_types": httputil.NonNil(types)})
}

func optionalTestType(r *http.Request) (id.TestTypeID, error) {
	raw := r.URL.Query().Get("test_type_id")
	if raw == "" {
		return 0, nil
	}
	return id.ParseTestTypeID(raw)
}
