package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/auth"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/models"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	users  repository.UserRepo
	tokens auth.Scheme
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, tokens auth.Scheme) *AuthHandler {
	return &AuthHandler{users: ur, tokens: tokens}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// dummyHash keeps the unknown-email login path doing one bcrypt comparison,
// the same cost as the wrong-password path.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, "Email, password, and name are required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Email:        normalizeEmail(req.Email),
		Name:         req.Name,
		PasswordHash: string(hash),
	}

	if _, err := h.users.CreateUser(r.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			writeError(w, "Email already exists", http.StatusBadRequest)
			return
		}
		writeStorageError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"success": true,
		"user":    userPayload{ID: user.ID, Email: user.Email, Name: user.Name},
		"token":   token,
		"message": "User created successfully",
	}, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), normalizeEmail(req.Email))
	if err != nil {
		writeStorageError(w, err)
		return
	}

	// Unknown email and wrong password are indistinguishable to the caller.
	hash := dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil || user == nil {
		writeError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"success": true,
		"user":    userPayload{ID: user.ID, Email: user.Email, Name: user.Name},
		"token":   token,
		"message": "Login successful",
	}, http.StatusOK)
}
