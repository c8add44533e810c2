package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"billfold/internal/core"
	"billfold/internal/log"
)

// handleHome renders the dashboard: the expense entry form, the account
// dropdown, and this month's spend.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	st := s.sessions.Load(w, r)
	st.EnsureDefaults()
	v := st.Render()

	now := time.Now()
	spend := st.MonthSpend(now.Year(), now.Month())

	// The date field shows the retained value after a failed submit,
	// otherwise today.
	date := v.LastDate
	if date == "" {
		date = core.Today(now).String()
	}

	data := struct {
		Errors            []string
		Success           string
		Date              string
		Amount            string
		Accounts          []core.Account
		ExpenseCategories []core.Category
		IncomeCategories  []core.Category
		MonthSpend        string
	}{
		Errors:     v.Errors,
		Success:    v.Success,
		Date:       date,
		Amount:     v.LastAmount,
		Accounts:   v.Accounts,
		MonthSpend: core.FormatAmount(spend),
	}
	for _, c := range v.Categories {
		if c.Type == core.Expense {
			data.ExpenseCategories = append(data.ExpenseCategories, c)
		} else {
			data.IncomeCategories = append(data.IncomeCategories, c)
		}
	}

	if err := s.templates.ExecuteTemplate(w, "homepage.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Homepage template execution failed", "error", err, "template", "homepage.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.startedAt).String(),
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(health)
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.sessions == nil {
		checks["sessions"] = "failed: session store not configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["sessions"] = map[string]interface{}{
			"active": s.sessions.Len(),
			"status": "ok",
		}
	}

	checks["rate_limiter"] = map[string]interface{}{
		"active_clients": s.rateLimiter.activeClients(),
		"status":         "ok",
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}

	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(response)
}

// handleMetrics provides application metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	totalTransactions := atomic.LoadInt64(&s.appMetrics.totalTransactions)
	activeSessions := s.sessions.Len()
	activeClients := s.rateLimiter.activeClients()
	uptime := time.Since(s.appMetrics.startedAt)

	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "# HELP transactions_total Total number of transactions recorded\n")
	fmt.Fprintf(w, "# TYPE transactions_total counter\n")
	fmt.Fprintf(w, "transactions_total %d\n\n", totalTransactions)

	fmt.Fprintf(w, "# HELP sessions_active Currently live sessions\n")
	fmt.Fprintf(w, "# TYPE sessions_active gauge\n")
	fmt.Fprintf(w, "sessions_active %d\n\n", activeSessions)

	fmt.Fprintf(w, "# HELP active_rate_limit_clients Currently tracked rate limit clients\n")
	fmt.Fprintf(w, "# TYPE active_rate_limit_clients gauge\n")
	fmt.Fprintf(w, "active_rate_limit_clients %d\n\n", activeClients)

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n\n", uptime.Seconds())
}
