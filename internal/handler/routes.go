package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/tax-ledger/internal/middleware"
)

// NewRouter wires every route. Mutating routes require an operator token when h has an authenticator.
func NewRouter(h *Handler, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	// Public routes
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/summary", h.Summary).Methods(http.MethodGet)
	r.HandleFunc("/export/ledger.xlsx", h.ExportLedger).Methods(http.MethodGet)
	r.HandleFunc("/export/summary.xml", h.ExportSummary).Methods(http.MethodGet)

	// Mutating routes
	writes := r.PathPrefix("/").Subrouter()
	if h.auth != nil {
		writes.Use(middleware.AuthMiddleware(h.auth))
	}
	writes.HandleFunc("/submit", h.Submit).Methods(http.MethodPost)
	writes.HandleFunc("/insert", h.Insert).Methods(http.MethodPost)
	writes.HandleFunc("/update", h.Update).Methods(http.MethodPost)
	writes.HandleFunc("/delete", h.Delete).Methods(http.MethodDelete)

	return r
}
