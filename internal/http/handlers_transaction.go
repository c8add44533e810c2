package http

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"billfold/internal/core"
	"billfold/internal/log"
)

// handleAddTransaction records a transaction against the named account.
// Validation accumulates across fields instead of stopping at the first
// failure, so the user sees every problem at once. All outcomes redirect
// back to the dashboard; feedback travels through the session.
func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())
	st := s.sessions.Load(w, r)
	st.EnsureDefaults()

	if err := r.ParseForm(); err != nil {
		logger.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		st.SetErrors([]string{"The submitted form could not be read."})
		redirect(w, r, "/")
		return
	}

	dateStr := strings.TrimSpace(r.Form.Get("date"))
	amountStr := strings.TrimSpace(r.Form.Get("amount"))
	categoryName := sanitizeInput(r.Form.Get("category"))
	note := sanitizeInput(r.Form.Get("note"))
	typeStr := strings.TrimSpace(r.Form.Get("type"))
	accountName := sanitizeInput(r.Form.Get("account"))

	now := time.Now()
	var errs []string

	if dateStr == "" {
		errs = append(errs, core.ErrEmptyDate.Error())
	} else if date, err := core.ParseDate(dateStr); err != nil {
		errs = append(errs, err.Error())
	} else if err := core.ValidateNotFuture(date, now); err != nil {
		errs = append(errs, err.Error())
	}

	if amountStr == "" {
		errs = append(errs, core.ErrEmptyAmount.Error())
	} else if _, err := core.ParseAmount(amountStr); err != nil {
		errs = append(errs, err.Error())
	}

	switch core.TxnType(typeStr) {
	case core.Expense, core.Income:
	default:
		errs = append(errs, core.ErrInvalidType.Error())
	}

	if len(errs) == 0 {
		txn, err := core.NewTransaction(core.TransactionDetails{
			Date:     dateStr,
			Amount:   amountStr,
			Category: categoryName,
			Note:     note,
			Type:     typeStr,
		}, now)
		if err != nil {
			errs = append(errs, err.Error())
		} else if err := st.RecordTransaction(accountName, txn); err != nil {
			errs = append(errs, err.Error())
		}
	}

	st.SetErrors(errs)
	if len(errs) > 0 {
		st.RememberEntry(dateStr, amountStr)
		logger.WarnContext(r.Context(), "Transaction rejected", "errors", len(errs), "account", accountName)
	} else {
		st.SetSuccess("The transaction has been added successfully.")
		st.ClearEntry()
		atomic.AddInt64(&s.appMetrics.totalTransactions, 1)
		logger.InfoContext(r.Context(), "Transaction recorded",
			"account", accountName,
			"category", categoryName,
			"type", typeStr)
	}

	redirect(w, r, "/")
}

// handleTransactions lists expense transactions across all accounts,
// optionally bucketed to this or the previous calendar month.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	st := s.sessions.Load(w, r)
	st.EnsureDefaults()
	v := st.Render()

	now := time.Now()
	period := strings.TrimSpace(r.URL.Query().Get("period"))

	list := st.Expenses()
	switch period {
	case "this_month":
		list = core.FilterMonth(list, now.Year(), now.Month())
	case "previous_month":
		y, m := core.PreviousMonth(now)
		list = core.FilterMonth(list, y, m)
	}

	type row struct {
		Date     string
		Amount   string
		Category string
		Note     string
	}
	data := struct {
		Errors  []string
		Success string
		Period  string
		Rows    []row
	}{
		Errors:  v.Errors,
		Success: v.Success,
		Period:  period,
	}
	for _, t := range list {
		data.Rows = append(data.Rows, row{
			Date:     t.Date.String(),
			Amount:   core.FormatAmount(t.Amount),
			Category: t.Category,
			Note:     t.Note,
		})
	}

	if err := s.templates.ExecuteTemplate(w, "transactions.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Transactions template execution failed", "error", err, "template", "transactions.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleIncome renders the income entry form. It posts to the same
// transaction endpoint with type set to income.
func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	st := s.sessions.Load(w, r)
	st.EnsureDefaults()
	v := st.Render()

	date := v.LastDate
	if date == "" {
		date = core.Today(time.Now()).String()
	}

	data := struct {
		Errors           []string
		Success          string
		Date             string
		Amount           string
		Accounts         []core.Account
		IncomeCategories []core.Category
	}{
		Errors:   v.Errors,
		Success:  v.Success,
		Date:     date,
		Amount:   v.LastAmount,
		Accounts: v.Accounts,
	}
	for _, c := range v.Categories {
		if c.Type == core.Income {
			data.IncomeCategories = append(data.IncomeCategories, c)
		}
	}

	if err := s.templates.ExecuteTemplate(w, "income.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Income template execution failed", "error", err, "template", "income.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
