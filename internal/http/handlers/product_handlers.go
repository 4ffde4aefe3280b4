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

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:         p.ID,
		Name:       p.Name,
		Quantity:   p.Quantity,
		UnitPrice:  p.UnitPrice,
		CategoryID: p.CategoryID,
	}
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the inventory. The category must exist.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ValidationError
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Internal error"
// @Router /products [post]
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateProduct(req); len(validationErrors) > 0 {
		s.respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	product := models.Product{
		Name:       req.Name,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		CategoryID: req.CategoryID,
	}
	created, err := s.productRepo.Create(r.Context(), product)
	if err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			s.respond(w, http.StatusBadRequest, []ValidationError{
				{Field: "CategoryID", Description: "Category does not exist"},
			})
			return
		}
		s.logger.Error("could not create product", zap.String("name", req.Name), zap.Error(err))
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	s.recordMutation(r.Context(), eventlog.NewEvent(eventlog.ActionCreate, eventlog.EntityProduct,
		created.ID, created.Name, auth.UsernameFromContext(r.Context())))

	s.respond(w, http.StatusCreated, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List all products as stored, without category enrichment
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := s.source.Products(r.Context())
	if err != nil {
		s.logger.Error("could not fetch products", zap.Error(err))
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	s.respond(w, http.StatusOK, response)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func (s *Server) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := s.productRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		s.logger.Error("could not fetch product", zap.Int("id", id), zap.Error(err))
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	s.respond(w, http.StatusOK, toProductResponse(product))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
// @Security BearerAuth
func (s *Server) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	// Looked up first so the event log can name what was removed.
	product, err := s.productRepo.GetByID(r.Context(), id)
	if err == nil {
		err = s.productRepo.Delete(r.Context(), id)
	}
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		s.logger.Error("could not delete product", zap.Int("id", id), zap.Error(err))
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}

	s.recordMutation(r.Context(), eventlog.NewEvent(eventlog.ActionDelete, eventlog.EntityProduct,
		id, product.Name, auth.UsernameFromContext(r.Context())))
	w.WriteHeader(http.StatusNoContent)
}
