// Copyright (c) 2026 CityInfo API. All rights reserved.

package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dagore-Avanade/cityinfo/internal/platform/apperr"
	requestutil "github.com/Dagore-Avanade/cityinfo/internal/platform/request"
	"github.com/Dagore-Avanade/cityinfo/internal/platform/respond"
	"github.com/Dagore-Avanade/cityinfo/internal/platform/validate"
)

// Handler exposes the authentication endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the auth HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the authentication endpoints on a chi sub-router.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", h.handleLogin)
	router.Post("/signup", h.handleSignup)

	return router
}

// handleLogin authenticates a user and returns a bearer token.
//
// POST /api/v1/auth/login
func (h *Handler) handleLogin(writer http.ResponseWriter, request *http.Request) {
	var creds Credentials
	if err := requestutil.DecodeJSON(request, &creds); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("username", creds.Username).
		Required("password", creds.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := h.service.Authenticate(request.Context(), creds.Username, creds.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

// handleSignup registers a new account and returns a bearer token.
//
// POST /api/v1/auth/signup
//
// # Wire Contract
//
// On success the response is identical in shape to a successful login. On
// policy failure the body is {"code":1,"message":<policy text>}; on a taken
// username it is {"code":2,"message":"User already exists."}. Both are 400.
func (h *Handler) handleSignup(writer http.ResponseWriter, request *http.Request) {
	var creds Credentials
	if err := requestutil.DecodeJSON(request, &creds); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := h.service.Register(request.Context(), creds)
	if err != nil {
		switch {
		case errors.Is(err, ErrWeakPassword):
			respond.RegistrationError(writer, RegistrationCodeWeakPassword, PasswordPolicyMessage)
		case errors.Is(err, ErrUserExists):
			respond.RegistrationError(writer, RegistrationCodeUserExists, ErrUserExists.Error())
		case apperr.IsAppError(err):
			respond.Error(writer, request, err)
		default:
			respond.Error(writer, request, apperr.Internal(err))
		}
		return
	}

	respond.OK(writer, session)
}
