package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"gamestore/domain"
	"gamestore/internal/auth/usecase"
	"gamestore/internal/service/apierror"
	"gamestore/internal/service/logger"
	"gamestore/internal/service/middleware"
	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"html"
	"net/http"
	"time"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	usecase   usecase.AuthUsecase
	jwtToken  middleware.JwtTokenService
	sanitizer *bluemonday.Policy
}

func NewAuthHandler(usecase usecase.AuthUsecase, jwtToken middleware.JwtTokenService) *AuthHandler {
	return &AuthHandler{
		usecase:   usecase,
		jwtToken:  jwtToken,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (h *AuthHandler) SignUpGamer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received SignUpGamer request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	var req domain.GamerSignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.AccessLogger.Warn("Failed to decode request body", zap.String("request_id", requestID), zap.Error(err))
		h.handleError(w, fmt.Errorf("%w: malformed body", domain.ErrInvalidInput), requestID)
		return
	}

	req.Username = h.plainText(req.Username)
	req.Email = h.plainText(req.Email)
	req.FirstName = h.plainText(req.FirstName)
	req.LastName = h.plainText(req.LastName)
	req.BirthDate = h.plainText(req.BirthDate)

	gamer, err := h.usecase.RegisterGamer(ctx, req)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, gamer, requestID)
	logger.AccessLogger.Info("Completed SignUpGamer request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusCreated),
	)
}

func (h *AuthHandler) SignInGamer(w http.ResponseWriter, r *http.Request) {
	h.signIn(w, r, "SignInGamer", h.usecase.LoginGamer)
}

func (h *AuthHandler) SignInStaff(w http.ResponseWriter, r *http.Request) {
	h.signIn(w, r, "SignInStaff", h.usecase.LoginStaff)
}

type loginFunc func(ctx context.Context, username, password string) (domain.Principal, error)

func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request, name string, login loginFunc) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received "+name+" request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	if r.Header.Get(middleware.TokenHeader) != "" {
		logger.AccessLogger.Warn("jwt_token already exists", zap.String("request_id", requestID))
		h.handleError(w, fmt.Errorf("%w: jwt_token already exists", domain.ErrInvalidInput), requestID)
		return
	}

	var creds domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		logger.AccessLogger.Warn("Failed to decode request body", zap.String("request_id", requestID), zap.Error(err))
		h.handleError(w, fmt.Errorf("%w: malformed body", domain.ErrInvalidInput), requestID)
		return
	}

	creds.Username = h.plainText(creds.Username)

	principal, err := login(ctx, creds.Username, creds.Password)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	token, err := h.jwtToken.Create(principal, time.Now().Add(tokenTTL).Unix())
	if err != nil {
		logger.AccessLogger.Error("Failed to create JWT token", zap.String("request_id", requestID), zap.Error(err))
		h.handleError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"token": token}, requestID)
	logger.AccessLogger.Info("Completed "+name+" request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *AuthHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received CreateStaff request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	principal, err := middleware.PrincipalFromRequest(r, h.jwtToken)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	var req domain.StaffCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleError(w, fmt.Errorf("%w: malformed body", domain.ErrInvalidInput), requestID)
		return
	}
	req.Username = h.plainText(req.Username)
	req.Email = h.plainText(req.Email)

	staff, err := h.usecase.CreateStaff(ctx, principal, req)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, staff, requestID)
	logger.AccessLogger.Info("Completed CreateStaff request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusCreated),
	)
}

func (h *AuthHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received ListRoles request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	principal, err := middleware.PrincipalFromRequest(r, h.jwtToken)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	roles, err := h.usecase.ListRoles(ctx, principal)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, roles, requestID)
	logger.AccessLogger.Info("Completed ListRoles request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *AuthHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received DeleteRole request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	principal, err := middleware.PrincipalFromRequest(r, h.jwtToken)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	if err := h.usecase.DeleteRole(ctx, principal, mux.Vars(r)["id"]); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	logger.AccessLogger.Info("Completed DeleteRole request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusNoContent),
	)
}

// plainText strips markup and returns the remaining text unescaped.
func (h *AuthHandler) plainText(s string) string {
	return html.UnescapeString(h.sanitizer.Sanitize(s))
}

func (h *AuthHandler) writeJSON(w http.ResponseWriter, status int, body interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.AccessLogger.Error("Failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

func (h *AuthHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	status := apierror.Status(err)
	if status >= http.StatusInternalServerError {
		logger.AccessLogger.Error("Handling error", zap.String("request_id", requestID), zap.Error(err))
	} else {
		logger.AccessLogger.Warn("Handling error", zap.String("request_id", requestID), zap.Error(err))
	}

	h.writeJSON(w, status, map[string]string{"error": apierror.Message(err)}, requestID)
}
