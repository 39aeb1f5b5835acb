package controller

import (
	"encoding/json"
	"fmt"
	"gamestore/domain"
	"gamestore/internal/catalog/usecase"
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

type CatalogHandler struct {
	usecase   usecase.CatalogUsecase
	jwtToken  middleware.JwtTokenService
	sanitizer *bluemonday.Policy
}

func NewCatalogHandler(usecase usecase.CatalogUsecase, jwtToken middleware.JwtTokenService) *CatalogHandler {
	return &CatalogHandler{
		usecase:   usecase,
		jwtToken:  jwtToken,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (h *CatalogHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	start, requestID := h.received(r, "ListGames")
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	games, err := h.usecase.ListGames(ctx)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, games, requestID)
	h.completed("ListGames", start, requestID, http.StatusOK)
}

func (h *CatalogHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	start, requestID := h.received(r, "GetGame")
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	game, err := h.usecase.GetGame(ctx, mux.Vars(r)["id"])
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, game, requestID)
	h.completed("GetGame", start, requestID, http.StatusOK)
}

func (h *CatalogHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	start, requestID := h.received(r, "CreateGame")
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	principal, err := middleware.PrincipalFromRequest(r, h.jwtToken)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	req, err := h.decodeGame(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	game, err := h.usecase.CreateGame(ctx, principal, req)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, game, requestID)
	h.completed("CreateGame", start, requestID, http.StatusCreated)
}

func (h *CatalogHandler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	start, requestID := h.received(r, "UpdateGame")
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	principal, err := middleware.PrincipalFromRequest(r, h.jwtToken)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	req, err := h.decodeGame(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	game, err := h.usecase.UpdateGame(ctx, principal, mux.Vars(r)["id"], req)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, game, requestID)
	h.completed("UpdateGame", start, requestID, http.StatusOK)
}

func (h *CatalogHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	start, requestID := h.received(r, "DeleteGame")
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	principal, err := middleware.PrincipalFromRequest(r, h.jwtToken)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	if err := h.usecase.DeleteGame(ctx, principal, mux.Vars(r)["id"]); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	h.completed("DeleteGame", start, requestID, http.StatusNoContent)
}

func (h *CatalogHandler) decodeGame(r *http.Request) (domain.GameRequest, error) {
	var req domain.GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("%w: malformed game body", domain.ErrInvalidInput)
	}
	req.Title = h.plainText(req.Title)
	req.Genre = h.plainText(req.Genre)
	req.Description = h.plainText(req.Description)
	return req, nil
}

// plainText strips markup and returns the remaining text unescaped,
// so "Assassin's Creed & Co" is stored as typed.
func (h *CatalogHandler) plainText(s string) string {
	return html.UnescapeString(h.sanitizer.Sanitize(s))
}

func (h *CatalogHandler) received(r *http.Request, name string) (time.Time, string) {
	requestID := middleware.GetRequestID(r.Context())
	logger.AccessLogger.Info("Received "+name+" request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)
	return time.Now(), requestID
}

func (h *CatalogHandler) completed(name string, start time.Time, requestID string, status int) {
	logger.AccessLogger.Info("Completed "+name+" request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", status),
	)
}

func (h *CatalogHandler) writeJSON(w http.ResponseWriter, status int, body interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.AccessLogger.Error("Failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

func (h *CatalogHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	status := apierror.Status(err)
	if status >= http.StatusInternalServerError {
		logger.AccessLogger.Error("Handling error", zap.String("request_id", requestID), zap.Error(err))
	} else {
		logger.AccessLogger.Warn("Handling error", zap.String("request_id", requestID), zap.Error(err))
	}

	h.writeJSON(w, status, map[string]string{"error": apierror.Message(err)}, requestID)
}
