package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/dhruv/estate-hub/backend/internal/middleware"
	"github.com/dhruv/estate-hub/backend/internal/models"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	Create(ctx context.Context, user models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Health reports whether the backing store is reachable.
type Health interface {
	Connected() bool
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	db     Health
	users  UserStore
	tokens *TokenManager
}

func NewHandler(db Health, users UserStore, tokens *TokenManager) *Handler {
	return &Handler{db: db, users: users, tokens: tokens}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// authResponse is the body returned by signup and login.
type authResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

// Signup creates a user, hashes the password, and returns a fresh
// bearer token alongside the public user fields.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if !h.db.Connected() {
		writeMessage(w, http.StatusServiceUnavailable, "Database not available. Please set up MongoDB to use authentication features.")
		return
	}

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Role must be buyer or seller")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	user, err := h.users.Create(r.Context(), models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
		Phone:    req.Phone,
	})
	if errors.Is(err, models.ErrDuplicateEmail) {
		writeMessage(w, http.StatusConflict, "User already exists with this email")
		return
	}
	if err != nil {
		log.Printf("signup: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex())
	if err != nil {
		log.Printf("signup token: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Message: "User created successfully",
		Token:   token,
		User:    user.Public(),
	})
}

// Login verifies credentials and returns a fresh bearer token. A
// missing user and a wrong password produce the same response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.db.Connected() {
		writeMessage(w, http.StatusServiceUnavailable, "Database not available. Please set up MongoDB to use authentication features.")
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex())
	if err != nil {
		log.Printf("login token: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Public(),
	})
}

// Profile returns the caller's user record without the password hash.
// Identity resolution happens in the auth middleware.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]models.PublicUser{"user": user.Public()})
}
