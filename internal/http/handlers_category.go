package http

import (
	"fmt"
	"net/http"
	"strings"

	"billfold/internal/core"
	"billfold/internal/log"
)

// handleCategories lists categories grouped by type, with the add form.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	st := s.sessions.Load(w, r)
	st.EnsureDefaults()
	v := st.Render()

	data := struct {
		Errors            []string
		Success           string
		ExpenseCategories []core.Category
		IncomeCategories  []core.Category
	}{
		Errors:  v.Errors,
		Success: v.Success,
	}
	for _, c := range v.Categories {
		if c.Type == core.Expense {
			data.ExpenseCategories = append(data.ExpenseCategories, c)
		} else {
			data.IncomeCategories = append(data.IncomeCategories, c)
		}
	}

	if err := s.templates.ExecuteTemplate(w, "categories.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Categories template execution failed", "error", err, "template", "categories.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleAddCategory creates a category of the selected type.
func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())
	st := s.sessions.Load(w, r)
	st.EnsureDefaults()

	if err := r.ParseForm(); err != nil {
		logger.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		st.SetErrors([]string{"The submitted form could not be read."})
		redirect(w, r, "/categories")
		return
	}

	icon := sanitizeInput(r.Form.Get("icon"))
	name := sanitizeInput(r.Form.Get("name"))
	typ := core.Expense
	if strings.TrimSpace(r.Form.Get("type")) == string(core.Income) {
		typ = core.Income
	}

	if err := st.AddCategory(icon, name, typ); err != nil {
		st.SetErrors([]string{err.Error()})
		redirect(w, r, "/categories")
		return
	}

	st.SetErrors(nil)
	st.SetSuccess("A new category has been created.")
	logger.InfoContext(r.Context(), "Category created", "category", name, "type", string(typ))
	redirect(w, r, "/categories")
}

// handleEditCategoryForm renders the rename form for one category.
func (s *Server) handleEditCategoryForm(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	st := s.sessions.Load(w, r)
	st.EnsureDefaults()

	c, ok := st.Category(r.PathValue("id"))
	if !ok {
		st.SetErrors([]string{"Category not found."})
		redirect(w, r, "/categories")
		return
	}
	v := st.Render()

	data := struct {
		Errors []string
		ID     string
		Icon   string
		Name   string
		Type   string
	}{
		Errors: v.Errors,
		ID:     c.ID,
		Icon:   c.Icon,
		Name:   c.Name,
		Type:   string(c.Type),
	}

	if err := s.templates.ExecuteTemplate(w, "edit_category.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Edit category template execution failed", "error", err, "template", "edit_category.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleEditCategory renames a category.
func (s *Server) handleEditCategory(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())
	st := s.sessions.Load(w, r)
	st.EnsureDefaults()

	if err := r.ParseForm(); err != nil {
		logger.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		st.SetErrors([]string{"The submitted form could not be read."})
		redirect(w, r, "/categories")
		return
	}

	id := r.PathValue("id")
	name := sanitizeInput(r.Form.Get("name"))

	if err := st.UpdateCategory(id, name); err != nil {
		st.SetErrors([]string{err.Error()})
		redirect(w, r, "/edit/category/"+id)
		return
	}

	st.SetErrors(nil)
	st.SetSuccess("Category has been updated successfully.")
	logger.InfoContext(r.Context(), "Category updated", "category", name)
	redirect(w, r, "/categories")
}

// handleDeleteCategory removes a category. Transactions keep the category
// name they were recorded with.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())
	st := s.sessions.Load(w, r)
	st.EnsureDefaults()

	name, err := st.DeleteCategory(r.PathValue("id"))
	if err != nil {
		st.SetErrors([]string{err.Error()})
		redirect(w, r, "/categories")
		return
	}

	st.SetErrors(nil)
	st.SetSuccess(fmt.Sprintf("Category %s has been successfully deleted.", name))
	logger.InfoContext(r.Context(), "Category deleted", "category", name)
	redirect(w, r, "/categories")
}
