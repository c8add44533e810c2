package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"billfold/internal/core"
	"billfold/internal/log"
)

// handleAccounts lists accounts with their balances and the add form.
func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	st := s.sessions.Load(w, r)
	st.EnsureDefaults()
	v := st.Render()

	type row struct {
		ID           string
		Name         string
		Balance      string
		Transactions int
	}
	data := struct {
		Errors  []string
		Success string
		Rows    []row
	}{
		Errors:  v.Errors,
		Success: v.Success,
	}
	for _, a := range v.Accounts {
		data.Rows = append(data.Rows, row{
			ID:           a.ID,
			Name:         a.Name,
			Balance:      core.FormatAmount(a.Balance),
			Transactions: len(a.Transactions),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "accounts.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Accounts template execution failed", "error", err, "template", "accounts.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleAddAccount creates an account with an optional opening balance.
func (s *Server) handleAddAccount(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())
	st := s.sessions.Load(w, r)
	st.EnsureDefaults()

	if err := r.ParseForm(); err != nil {
		logger.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		st.SetErrors([]string{"The submitted form could not be read."})
		redirect(w, r, "/accounts")
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	balanceStr := strings.TrimSpace(r.Form.Get("balance"))

	var errs []string
	balance := decimal.Zero
	if balanceStr != "" {
		b, err := core.ParseAmount(balanceStr)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			balance = b
		}
	}

	if len(errs) == 0 {
		if err := st.AddAccount(name, balance); err != nil {
			errs = append(errs, err.Error())
		}
	}

	st.SetErrors(errs)
	if len(errs) == 0 {
		st.SetSuccess("Account has been added successfully.")
		logger.InfoContext(r.Context(), "Account created", "account", name)
	}
	redirect(w, r, "/accounts")
}

// handleEditAccountForm renders the edit form for one account.
func (s *Server) handleEditAccountForm(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	st := s.sessions.Load(w, r)
	st.EnsureDefaults()

	a, ok := st.Account(r.PathValue("id"))
	if !ok {
		st.SetErrors([]string{"Account not found."})
		redirect(w, r, "/accounts")
		return
	}
	v := st.Render()

	data := struct {
		Errors  []string
		ID      string
		Name    string
		Balance string
	}{
		Errors:  v.Errors,
		ID:      a.ID,
		Name:    a.Name,
		Balance: core.FormatAmount(a.Balance),
	}

	if err := s.templates.ExecuteTemplate(w, "edit_account.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Edit account template execution failed", "error", err, "template", "edit_account.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleEditAccount renames an account and moves its balance. A balance
// change is recorded as an adjustment transaction, never a bare overwrite.
func (s *Server) handleEditAccount(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())
	st := s.sessions.Load(w, r)
	st.EnsureDefaults()

	if err := r.ParseForm(); err != nil {
		logger.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		st.SetErrors([]string{"The submitted form could not be read."})
		redirect(w, r, "/accounts")
		return
	}

	id := r.PathValue("id")
	name := sanitizeInput(r.Form.Get("name"))
	balanceStr := strings.TrimSpace(r.Form.Get("balance"))

	var errs []string
	a, ok := st.Account(id)
	if !ok {
		st.SetErrors([]string{"Account not found."})
		redirect(w, r, "/accounts")
		return
	}

	balance := a.Balance
	if balanceStr != "" {
		b, err := core.ParseAmount(balanceStr)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			balance = b
		}
	}

	if len(errs) == 0 {
		if err := st.UpdateAccount(id, name, balance, time.Now()); err != nil {
			errs = append(errs, err.Error())
		}
	}

	st.SetErrors(errs)
	if len(errs) > 0 {
		redirect(w, r, "/edit/account/"+id)
		return
	}
	st.SetSuccess("Account has been updated successfully.")
	logger.InfoContext(r.Context(), "Account updated", "account", name)
	redirect(w, r, "/accounts")
}

// handleDeleteAccount removes an account and its transactions.
func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())
	st := s.sessions.Load(w, r)
	st.EnsureDefaults()

	name, err := st.DeleteAccount(r.PathValue("id"))
	if err != nil {
		st.SetErrors([]string{err.Error()})
		redirect(w, r, "/accounts")
		return
	}

	st.SetErrors(nil)
	st.SetSuccess(fmt.Sprintf("Account %s has been successfully deleted.", name))
	logger.InfoContext(r.Context(), "Account deleted", "account", name)
	redirect(w, r, "/accounts")
}
