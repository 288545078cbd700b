package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/aegis-auth/aegis-server/internal/logger"
	"github.com/aegis-auth/aegis-server/internal/model"
	"github.com/aegis-auth/aegis-server/internal/service"
)

// maxUploadSize bounds enrollment image uploads.
const maxUploadSize = 8 << 20

// AuthService defines registration, login and profile operations.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, error)
	RegisterWithFace(ctx context.Context, params service.RegisterFaceParams) (model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	LoginWithFace(ctx context.Context, image []byte) (string, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	EnrollmentPhoto(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type registerRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Country      string `json:"country"`
	AgreeToTerms bool   `json:"agree_to_terms"`
	Password     string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Country      string    `json:"country"`
	AgreeToTerms bool      `json:"agree_to_terms"`
	FaceEnrolled bool      `json:"face_enrolled"`
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Country:      user.Country,
		AgreeToTerms: user.AgreeToTerms,
		FaceEnrolled: len(user.FaceEncoding) > 0,
	}
}

// Register handles POST /auth/register with a JSON body.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	h.logger.Debug("Auth handler: processing registration request",
		"email", req.Email)

	user, err := h.authService.Register(r.Context(), service.RegisterParams{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Country:      req.Country,
		AgreeToTerms: req.AgreeToTerms,
		Password:     req.Password,
	})
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// Login handles POST /auth/login with a JSON body.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// Status only; never log which check rejected the attempt.
		h.logger.Info("Auth handler: login failed",
			"email", req.Email)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// RegisterFace handles POST /auth/register-face with a multipart form
// carrying profile fields and a face_image file.
func (h *Auth) RegisterFace(w http.ResponseWriter, r *http.Request) {
	params, image, err := parseFaceForm(r, true)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	h.logger.Debug("Auth handler: processing face registration request",
		"email", params.Email)

	user, err := h.authService.RegisterWithFace(r.Context(), service.RegisterFaceParams{
		RegisterParams: params,
		Image:          image,
	})
	if err != nil {
		h.logger.Error("Auth handler: face registration failed",
			"email", params.Email,
			"error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// LoginFace handles POST /auth/login-face with a multipart face_image.
func (h *Auth) LoginFace(w http.ResponseWriter, r *http.Request) {
	_, image, err := parseFaceForm(r, false)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	token, err := h.authService.LoginWithFace(r.Context(), image)
	if err != nil {
		h.logger.Info("Auth handler: face login failed")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me handles GET /auth/me for an authenticated user.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization"})
		return
	}

	user, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Photo handles GET /auth/me/photo, streaming the caller's archived
// enrollment photo.
func (h *Auth) Photo(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization"})
		return
	}

	photo, err := h.authService.EnrollmentPhoto(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	defer photo.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	if _, err := io.Copy(w, photo); err != nil {
		h.logger.Error("Auth handler: failed to stream enrollment photo",
			"user_id", userID,
			"error", err.Error())
	}
}

// parseFaceForm reads the multipart form shared by the face endpoints.
// Profile fields are only required for registration. The terms flag arrives
// as the strings "true"/"false", matching what browser form posts send.
func parseFaceForm(r *http.Request, withProfile bool) (service.RegisterParams, []byte, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return service.RegisterParams{}, nil, errInvalidForm
	}

	file, _, err := r.FormFile("face_image")
	if err != nil {
		return service.RegisterParams{}, nil, errMissingImage
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		return service.RegisterParams{}, nil, errInvalidForm
	}

	if !withProfile {
		return service.RegisterParams{}, image, nil
	}

	params := service.RegisterParams{
		FirstName:    r.FormValue("first_name"),
		LastName:     r.FormValue("last_name"),
		Email:        r.FormValue("email"),
		Country:      r.FormValue("country"),
		AgreeToTerms: strings.EqualFold(r.FormValue("agree_to_terms"), "true"),
		Password:     r.FormValue("password"),
	}

	return params, image, nil
}
