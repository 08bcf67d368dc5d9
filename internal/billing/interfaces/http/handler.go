package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"rollcall-billing/internal/audit"
	"rollcall-billing/internal/auth"
	billingapp "rollcall-billing/internal/billing/application"
	billing "rollcall-billing/internal/billing/domain"
	"rollcall-billing/internal/billing/interfaces"
	"rollcall-billing/internal/observability/metrics"
)

// Handler serves billing run and report routes.
type Handler struct {
	service     *billingapp.BillingService
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(service *billingapp.BillingService, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("billing handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles billing routes under /api/v1/billing.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/billing/generate" && r.Method == http.MethodPost:
		h.handleGenerate(w, r)
	case r.URL.Path == "/api/v1/billing/generate-last" && r.Method == http.MethodPost:
		h.handleGenerateLast(w, r)
	case r.URL.Path == "/api/v1/billing/report" && r.Method == http.MethodGet:
		h.handleReport(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type generateResponse struct {
	Generated    bool    `json:"generated"`
	Period       string  `json:"period,omitempty"`
	TotalPlayers int     `json:"totalPlayers"`
	TotalRevenue float64 `json:"totalRevenue"`
	Reason       string  `json:"reason,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month int `json:"month"`
		Year  int `json:"year"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
	}

	report, err := h.service.Generate(r.Context(), req.Month, req.Year)
	h.respondRun(w, r, "billing.generate", report, err, req.Month, req.Year)
}

func (h *Handler) handleGenerateLast(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GenerateLastMonth(r.Context())
	h.respondRun(w, r, "billing.generate_last", report, err, 0, 0)
}

func (h *Handler) respondRun(w http.ResponseWriter, r *http.Request, action string, report *billing.MonthlyReport, err error, month, year int) {
	if errors.Is(err, billing.ErrNoAttendanceData) {
		writeJSON(w, http.StatusOK, generateResponse{Generated: false, Reason: "no attendance data"})
		return
	}
	if errors.Is(err, billing.ErrInvalidMonth) || errors.Is(err, billing.ErrInvalidYear) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "billing run failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Generated:    true,
		Period:       report.Period.Label(),
		TotalPlayers: report.TotalPlayers,
		TotalRevenue: report.TotalRevenue,
	})
	h.logAudit(r, action, report.Period.Label(), map[string]any{
		"month": month,
		"year":  year,
	})
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	month, err := intQuery(r, "month")
	if err != nil {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}
	year, err := intQuery(r, "year")
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	report, err := h.service.Preview(r.Context(), month, year)
	if errors.Is(err, billing.ErrNoAttendanceData) {
		http.Error(w, "no attendance data", http.StatusNotFound)
		return
	}
	if errors.Is(err, billing.ErrInvalidMonth) || errors.Is(err, billing.ErrInvalidYear) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "report build failed", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		writeJSON(w, http.StatusOK, reportJSON(report))
		metrics.IncReportExport("json", metrics.ResultSuccess)
	case "xlsx":
		data, err := interfaces.BuildReportXLSX(report)
		if err != nil {
			metrics.IncReportExport("xlsx", metrics.ResultError)
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Period.Label()+".xlsx"))
		_, _ = w.Write(data)
		metrics.IncReportExport("xlsx", metrics.ResultSuccess)
	case "pdf":
		data, err := interfaces.BuildReportPDF(report)
		if err != nil {
			metrics.IncReportExport("pdf", metrics.ResultError)
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Period.Label()+".pdf"))
		_, _ = w.Write(data)
		metrics.IncReportExport("pdf", metrics.ResultSuccess)
	default:
		http.Error(w, "unknown format", http.StatusBadRequest)
	}
}

type lineItemJSON struct {
	PlayerName  string  `json:"playerName"`
	Clinic      string  `json:"clinic"`
	Status      string  `json:"status"`
	Sessions    int     `json:"sessions"`
	TotalCharge float64 `json:"totalCharge"`
	SiblingFlag bool    `json:"siblingFlag"`
}

type reportResponse struct {
	Period       string         `json:"period"`
	Items        []lineItemJSON `json:"items"`
	TotalPlayers int            `json:"totalPlayers"`
	TotalRevenue float64        `json:"totalRevenue"`
}

func reportJSON(report *billing.MonthlyReport) reportResponse {
	items := make([]lineItemJSON, 0, len(report.Items))
	for _, item := range report.Items {
		items = append(items, lineItemJSON{
			PlayerName:  item.PlayerName,
			Clinic:      item.Clinic,
			Status:      item.Status.DisplayName(),
			Sessions:    item.Sessions,
			TotalCharge: item.TotalCharge,
			SiblingFlag: item.SiblingFlag,
		})
	}
	return reportResponse{
		Period:       report.Period.Label(),
		Items:        items,
		TotalPlayers: report.TotalPlayers,
		TotalRevenue: report.TotalRevenue,
	}
}

func (h *Handler) logAudit(r *http.Request, action, resourceID string, metadata map[string]any) {
	if h.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(metadata)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "billing_report",
		ResourceID:   resourceID,
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func intQuery(r *http.Request, key string) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
