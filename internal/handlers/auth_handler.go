package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"chit-backend/internal/models"
	"chit-backend/internal/repositories"
	"chit-backend/internal/services"
	"chit-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.AuthService
}

func NewAuthHandler(s *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: s}
}

// Register handles staff registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	staff, err := h.Service.Register(r.Context(), &req)
	if errors.Is(err, services.ErrMissingFields) {
		utils.Error(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		utils.Error(w, http.StatusBadRequest, "Email already exists")
		return
	}
	if err != nil {
		log.Printf("[Auth] register failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.JSON(w, http.StatusCreated, models.RegisterResponse{
		Success: true,
		Message: "Registered successfully!",
		UserID:  staff.ID,
	})
}

// Login handles staff authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.Service.Login(r.Context(), &req)
	if errors.Is(err, services.ErrMissingFields) {
		utils.Error(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if errors.Is(err, services.ErrInvalidCredentials) {
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		log.Printf("[Auth] login failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.JSON(w, http.StatusOK, models.LoginResponse{
		Success: true,
		Message: "Login successful!",
		Token:   token,
	})
}
