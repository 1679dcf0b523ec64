package handler

import (
	"time"

	intlmodels "licensing/internal/international/models"
	"licensing/internal/license/models"
	"licensing/internal/license/service"
	id "licensing/pkg/domain"
	"licensing/pkg/platform/httputil"
)

// LicenseResponse is a local license with its status at request time.
type LicenseResponse struct {
	*models.License
	Status models.Status `json:"status"`
}

func FromLicense(l *models.License, now time.Time) LicenseResponse {
	return LicenseResponse{License: l, Status: l.Status(now)}
}

// DetainResponse reports the open detain of a license, if any.
type DetainResponse struct {
	Detained bool           `json:"detained"`
	Detain   *models.Detain `json:"detain,omitempty"`
}

// DetainedResponse is returned when a license is detained.
type DetainedResponse struct {
	DetainID id.DetainID `json:"detain_id"`
}

// HistoryEntry is one license of either kind in a driver's history.
type HistoryEntry struct {
	Kind           models.Kind   `json:"kind"`
	ID             int64         `json:"id"`
	Status         models.Status `json:"status"`
	IssueDate      time.Time     `json:"issue_date"`
	ExpirationDate time.Time     `json:"expiration_date"`
}

// HistoryResponse lists a driver's licenses, local first.
type HistoryResponse struct {
	DriverID      id.DriverID           `json:"driver_id"`
	Licenses      []HistoryEntry        `json:"licenses"`
	Local         []*models.License     `json:"local"`
	International []*intlmodels.License `json:"international"`
}

func FromHistory(h *service.History, now time.Time) HistoryResponse {
	resp := HistoryResponse{
		DriverID:      h.DriverID,
		Licenses:      make([]HistoryEntry, 0, len(h.Local)+len(h.International)),
		Local:         httputil.NonNil(h.Local),
		International: httputil.NonNil(h.International),
	}
	for _, v := range h.Variants() {
		entry := HistoryEntry{Kind: v.Kind(), Status: v.Status(now)}
		switch l := v.(type) {
		case *models.License:
			entry.ID, entry.IssueDate, entry.ExpirationDate = int64(l.ID), l.IssueDate, l.ExpirationDate
		case *intlmodels.License:
			entry.ID, entry.IssueDate, entry.ExpirationDate = int64(l.ID), l.IssueDate, l.ExpirationDate
		}
		resp.Licenses = append(resp.Licenses, entry)
	}
	return resp
}
