package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/studenthq/enroll/internal/blobstore"
	"github.com/studenthq/enroll/internal/service"
	"github.com/studenthq/enroll/internal/transport/http/middleware"
	"github.com/studenthq/enroll/pkg/validator"
)

// maxRequestBody leaves headroom over the 10 MB file limit for the
// multipart framing and text fields.
const maxRequestBody = 12 << 20

type AuthHandler struct {
	authService *service.AuthService
	blobs       blobstore.Store
	log         *slog.Logger
}

func NewAuthHandler(authService *service.AuthService, blobs blobstore.Store, log *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, blobs: blobs, log: log}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	if err := r.ParseMultipartForm(maxRequestBody); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid multipart form")
		return
	}

	name := r.FormValue("name")
	dob := r.FormValue("dob")
	email := r.FormValue("email")
	country := r.FormValue("country")
	password := r.FormValue("password")

	if errs := validator.ValidateSignup(name, dob, email, country, password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	dateOfBirth, err := time.Parse(validator.DOBLayout, dob)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Date of birth must be in YYYY-MM-DD format")
		return
	}

	var photoKey *string
	file, header, err := r.FormFile("profilePhoto")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// Photo is optional.
	case err != nil:
		writeError(w, http.StatusBadRequest, "UPLOAD_ERROR", "Could not read uploaded file")
		return
	default:
		defer file.Close()
		key, err := h.blobs.Save(r.Context(), "profilePhoto", header.Filename, file)
		if err != nil {
			if errors.Is(err, blobstore.ErrTooLarge) {
				writeError(w, http.StatusBadRequest, "UPLOAD_ERROR", "File exceeds the 10 MB limit")
				return
			}
			h.log.Error("storing profile photo", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
			return
		}
		photoKey = &key
	}

	resp, err := h.authService.Register(r.Context(), service.RegisterInput{
		Name:        name,
		DateOfBirth: dateOfBirth,
		Email:       email,
		Country:     country,
		Password:    password,
		PhotoKey:    photoKey,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "DUPLICATE_EMAIL", "Email is already registered")
		} else {
			h.log.Error("signup failed", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	h.log.Info("student registered", "email", email)
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if errs := validator.ValidateSignin(input.Email, input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	resp, err := h.authService.Login(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		} else {
			h.log.Error("signin failed", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Me returns the authenticated student's own profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetStudentID(r.Context())

	student, err := h.authService.Profile(r.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Student not found")
		} else {
			h.log.Error("profile lookup failed", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, student)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"code":   "VALIDATION_ERROR",
			"fields": errs,
		},
	})
}
