package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/Dan9191/tax-ledger/internal/export"
	"github.com/Dan9191/tax-ledger/internal/models"
	"github.com/Dan9191/tax-ledger/internal/service"
)

type Handler struct {
	svc  *service.Service
	auth *service.Authenticator
	log  *logrus.Logger
}

// NewHandler creates the HTTP handlers. auth may be nil when operator login is disabled.
func NewHandler(svc *service.Service, auth *service.Authenticator, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, auth: auth, log: log}
}

// insertRequest is the JSON body of /insert
type insertRequest struct {
	Company     string      `json:"company"`
	Amount      json.Number `json:"amount"`
	PaymentDate string      `json:"payment_date"`
	Status      string      `json:"status"`
	DueDate     string      `json:"due_date"`
	TaxRate     json.Number `json:"tax_rate"`
}

type listResponse struct {
	Records  []models.PaymentRecord `json:"records"`
	DueDates []string               `json:"due_dates"`
}

type summaryResponse struct {
	HTML string `json:"html"`
	*models.Summary
}

type errorResponse struct {
	Error  string             `json:"error"`
	Kind   string             `json:"kind"`
	Fields models.FieldErrors `json:"fields,omitempty"`
}

// Submit creates a record from the ledger page form and returns to the ledger
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, badRequest(err))
		return
	}
	input := models.PaymentInput{
		Company:     r.PostForm.Get("company"),
		Amount:      r.PostForm.Get("amount"),
		PaymentDate: r.PostForm.Get("paymentDate"),
		Status:      r.PostForm.Get("status"),
		DueDate:     r.PostForm.Get("dueDate"),
		TaxRate:     r.PostForm.Get("taxRate"),
	}
	if _, err := h.svc.Create(r.Context(), input); err != nil {
		h.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Insert creates a record from a JSON body
func (h *Handler) Insert(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, badRequest(err))
		return
	}
	record, err := h.svc.Create(r.Context(), models.PaymentInput{
		Company:     req.Company,
		Amount:      req.Amount.String(),
		PaymentDate: req.PaymentDate,
		Status:      req.Status,
		DueDate:     req.DueDate,
		TaxRate:     req.TaxRate.String(),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// Index returns the full ledger and this year's due dates
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := listResponse{Records: records}
	for _, d := range h.svc.DueDates() {
		resp.DueDates = append(resp.DueDates, d.Display())
	}
	writeJSON(w, http.StatusOK, resp)
}

// Summary returns the aggregated records of one due date with a rendered table
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summarize(r.Context(), r.URL.Query().Get("dueDate"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	html, err := renderSummaryTable(summary)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{HTML: html, Summary: summary})
}

// Update replaces a record from the edit form
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, badRequest(err))
		return
	}
	id, err := parseID(r.PostForm.Get("editId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	input := models.PaymentInput{
		Company:     r.PostForm.Get("editCompany"),
		Amount:      r.PostForm.Get("editAmount"),
		PaymentDate: r.PostForm.Get("editPaymentDate"),
		Status:      r.PostForm.Get("editStatus"),
		DueDate:     r.PostForm.Get("editDueDate"),
		TaxRate:     r.PostForm.Get("editTaxRate"),
	}
	if _, err := h.svc.Update(r.Context(), id, input); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Delete removes the record named by the id query parameter
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ExportLedger downloads the ledger as an XLSX workbook
func (h *Handler) ExportLedger(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.xlsx"`)
	if err := export.WriteLedgerXLSX(w, records); err != nil {
		h.log.WithError(err).Error("Failed to export ledger")
	}
}

// ExportSummary downloads the summary of one due date as XML
func (h *Handler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summarize(r.Context(), r.URL.Query().Get("dueDate"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="summary-%s.xml"`, summary.DueDate))
	if err := export.WriteSummaryXML(w, summary); err != nil {
		h.log.WithError(err).Error("Failed to export summary")
	}
}

// Login exchanges the operator password for a bearer token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		http.Error(w, "Not implemented", http.StatusNotImplemented)
		return
	}

	var password string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, r, badRequest(err))
			return
		}
		password = req.Password
	} else {
		password = r.FormValue("password")
	}

	token, err := h.auth.Login(password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Health reports that the process is serving
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseID(raw string) (int64, error) {
	id, err := cast.ToInt64E(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, &service.Error{
			Kind: service.ErrValidation,
			Op:   "parse id",
			Err:  models.FieldErrors{{Field: "id", Reason: fmt.Sprintf("%q is not a record id", raw)}},
		}
	}
	return id, nil
}

func badRequest(err error) error {
	return &service.Error{Kind: service.ErrValidation, Op: "decode request", Err: err}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, service.ErrValidation):
		status, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, service.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrUnauthorized):
		status, kind = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrStore):
		kind = "store"
	}

	resp := errorResponse{Error: err.Error(), Kind: kind}
	var fields models.FieldErrors
	if errors.As(err, &fields) {
		resp.Fields = fields
	}
	if status >= http.StatusInternalServerError {
		h.log.WithError(err).Errorf("%s %s failed", r.Method, r.URL.Path)
		resp.Error = "internal error"
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
