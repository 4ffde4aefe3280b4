package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/inventory-dashboard/internal/auth"
	"github.com/rogerio-castellano/inventory-dashboard/internal/eventlog"
	models "github.com/rogerio-castellano/inventory-dashboard/internal/models"
	repo "github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"go.uber.org/zap"
)

func toCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{Id: c.ID, Name: c.Name, Description: c.Description}
}

// CreateCategoryHandler godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body CategoryRequest true "Category to add"
// @Success 201 {object} CategoryResponse
// @Failure 400 {array} ValidationError
// @Failure 409 {string} string "Name already used"
// @Failure 500 {string} string "Internal error"
// @Router /categories [post]
func (s *Server) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateCategory(req); len(validationErrors) > 0 {
		s.respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	created, err := s.categoryRepo.Create(r.Context(), models.Category{Name: req.Name, Description: req.Description})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not create category: category name duplicated", http.StatusConflict)
			return
		}
		s.logger.Error("could not create category", zap.String("name", req.Name), zap.Error(err))
		http.Error(w, "could not create category", http.StatusInternalServerError)
		return
	}

	s.recordMutation(r.Context(), eventlog.NewEvent(eventlog.ActionCreate, eventlog.EntityCategory,
		created.ID, created.Name, auth.UsernameFromContext(r.Context())))

	s.respond(w, http.StatusCreated, toCategoryResponse(created))
}

// GetCategoriesHandler godoc
// @Summary List all categories
// @Tags categories
// @Produce json
// @Success 200 {array} CategoryResponse
// @Failure 500 {string} string "Internal error"
// @Router /categories [get]
func (s *Server) GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := s.source.Categories(r.Context())
	if err != nil {
		s.logger.Error("could not fetch categories", zap.Error(err))
		http.Error(w, "could not fetch categories", http.StatusInternalServerError)
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = toCategoryResponse(c)
	}
	s.respond(w, http.StatusOK, response)
}

// DeleteCategoryHandler godoc
// @Summary Delete a category
// @Description Fails with 409 while products still reference the category.
// @Tags categories
// @Param id path int true "Category ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Category in use"
// @Failure 500 {string} string "Internal error"
// @Router /categories/{id} [delete]
// @Security BearerAuth
func (s *Server) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	category, err := s.categoryRepo.GetByID(r.Context(), id)
	if err == nil {
		err = s.categoryRepo.Delete(r.Context(), id)
	}
	switch {
	case err == nil:
	case errors.Is(err, repo.ErrCategoryNotFound):
		http.Error(w, "category not found", http.StatusNotFound)
		return
	case errors.Is(err, repo.ErrCategoryInUse):
		http.Error(w, "category is still used by products", http.StatusConflict)
		return
	default:
		s.logger.Error("could not delete category", zap.Int("id", id), zap.Error(err))
		http.Error(w, "could not delete category", http.StatusInternalServerError)
		return
	}

	s.recordMutation(r.Context(), eventlog.NewEvent(eventlog.ActionDelete, eventlog.EntityCategory,
		id, category.Name, auth.UsernameFromContext(r.Context())))
	w.WriteHeader(http.StatusNoContent)
}
