package property

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dhruv/estate-hub/backend/internal/middleware"
	"github.com/dhruv/estate-hub/backend/internal/models"
)

// PropertyStore defines the interface for listing persistence.
type PropertyStore interface {
	ListAvailable(ctx context.Context) ([]models.Property, error)
	GetByID(ctx context.Context, id string) (*models.Property, error)
	ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]models.Property, error)
	Create(ctx context.Context, sellerID primitive.ObjectID, input models.PropertyInput) (*models.Property, error)
	Update(ctx context.Context, id string, sellerID primitive.ObjectID, patch models.PropertyPatch) (*models.Property, error)
	Delete(ctx context.Context, id string, sellerID primitive.ObjectID) error
	AppendImages(ctx context.Context, id string, sellerID primitive.ObjectID, urls []string) (*models.Property, error)
}

// Handler holds listing HTTP handlers. Auth and role checks happen in
// middleware before any of these run.
type Handler struct {
	props PropertyStore
}

func NewHandler(props PropertyStore) *Handler {
	return &Handler{props: props}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeValidation(w http.ResponseWriter, verr *models.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"message": "Validation failed",
		"error":   strings.Join(verr.Fields, ", "),
	})
}

// List returns every available listing for browsing buyers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	props, err := h.props.ListAvailable(r.Context())
	if err != nil {
		log.Printf("list properties: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if props == nil {
		props = []models.Property{}
	}
	writeJSON(w, http.StatusOK, map[string][]models.Property{"properties": props})
}

// Get returns a single listing of any status.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	prop, err := h.props.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, models.ErrPropertyNotFound) {
		writeMessage(w, http.StatusNotFound, "Property not found")
		return
	}
	if err != nil {
		log.Printf("get property: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]*models.Property{"property": prop})
}

// SellerList returns the caller's own listings regardless of status.
func (h *Handler) SellerList(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	props, err := h.props.ListBySeller(r.Context(), user.ID)
	if err != nil {
		log.Printf("list seller properties: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if props == nil {
		props = []models.Property{}
	}
	writeJSON(w, http.StatusOK, map[string][]models.Property{"properties": props})
}

// Create persists a new listing owned by the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var input models.PropertyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prop, err := h.props.Create(r.Context(), user.ID, input)
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		writeValidation(w, verr)
		return
	}
	if err != nil {
		log.Printf("create property: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Property created successfully",
		"property": prop,
	})
}

// Update applies a partial update to one of the caller's listings. A
// listing that is absent or owned by someone else produces the same
// 404; existence is never confirmed to non-owners.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var patch models.PropertyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prop, err := h.props.Update(r.Context(), chi.URLParam(r, "id"), user.ID, patch)
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		writeValidation(w, verr)
		return
	}
	if errors.Is(err, models.ErrPropertyNotFound) {
		writeMessage(w, http.StatusNotFound, "Property not found or unauthorized")
		return
	}
	if err != nil {
		log.Printf("update property: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Property updated successfully",
		"property": prop,
	})
}

// Delete removes one of the caller's listings, with the same collapsed
// 404 as Update.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	err := h.props.Delete(r.Context(), chi.URLParam(r, "id"), user.ID)
	if errors.Is(err, models.ErrPropertyNotFound) {
		writeMessage(w, http.StatusNotFound, "Property not found or unauthorized")
		return
	}
	if err != nil {
		log.Printf("delete property: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeMessage(w, http.StatusOK, "Property deleted successfully")
}

// addImagesRequest is the JSON body for the image-append route. Images
// hold URLs only; bytes go from the client straight to the CDN.
type addImagesRequest struct {
	Images []string `json:"images"`
}

// AddImages appends image URLs to one of the caller's listings.
func (h *Handler) AddImages(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req addImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Images) == 0 {
		writeMessage(w, http.StatusBadRequest, "No images provided")
		return
	}

	prop, err := h.props.AppendImages(r.Context(), chi.URLParam(r, "id"), user.ID, req.Images)
	if errors.Is(err, models.ErrNoImages) {
		writeMessage(w, http.StatusBadRequest, "No images provided")
		return
	}
	if errors.Is(err, models.ErrPropertyNotFound) {
		writeMessage(w, http.StatusNotFound, "Property not found or unauthorized")
		return
	}
	if err != nil {
		log.Printf("add property images: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Images added successfully",
		"property": prop,
	})
}
