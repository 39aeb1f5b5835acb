package controller

import (
	"encoding/json"
	"fmt"
	"gamestore/domain"
	"gamestore/internal/purchase/usecase"
	"gamestore/internal/service/apierror"
	"gamestore/internal/service/logger"
	"gamestore/internal/service/middleware"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"net/http"
	"time"
)

type PurchaseHandler struct {
	usecase  usecase.PurchaseUsecase
	jwtToken middleware.JwtTokenService
}

func NewPurchaseHandler(usecase usecase.PurchaseUsecase, jwtToken middleware.JwtTokenService) *PurchaseHandler {
	return &PurchaseHandler{
		usecase:  usecase,
		jwtToken: jwtToken,
	}
}

func (h *PurchaseHandler) BuyGame(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()
	logger.AccessLogger.Info("Received BuyGame request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	principal, err := middleware.PrincipalFromRequest(r, h.jwtToken)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	receipt, err := h.usecase.BuyGame(ctx, principal, mux.Vars(r)["id"])
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, receipt, requestID)
	logger.AccessLogger.Info("Completed BuyGame request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusCreated))
}

func (h *PurchaseHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()
	logger.AccessLogger.Info("Received Deposit request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	principal, err := middleware.PrincipalFromRequest(r, h.jwtToken)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	var data domain.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.handleError(w, fmt.Errorf("%w: amount must be a number", domain.ErrInvalidInput), requestID)
		return
	}

	balance, err := h.usecase.Deposit(ctx, principal, data.Amount)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, domain.WalletResponse{Wallet: balance}, requestID)
	logger.AccessLogger.Info("Completed Deposit request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK))
}

func (h *PurchaseHandler) GetLibrary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()
	logger.AccessLogger.Info("Received GetLibrary request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	principal, err := middleware.PrincipalFromRequest(r, h.jwtToken)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	items, err := h.usecase.GetLibrary(ctx, principal)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, items, requestID)
	logger.AccessLogger.Info("Completed GetLibrary request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK))
}

func (h *PurchaseHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()
	logger.AccessLogger.Info("Received GetWallet request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	principal, err := middleware.PrincipalFromRequest(r, h.jwtToken)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	wallet, err := h.usecase.GetWallet(ctx, principal)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, domain.WalletResponse{Wallet: wallet}, requestID)
	logger.AccessLogger.Info("Completed GetWallet request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK))
}

func (h *PurchaseHandler) writeJSON(w http.ResponseWriter, status int, body interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.AccessLogger.Error("Failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

func (h *PurchaseHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	status := apierror.Status(err)
	if status >= http.StatusInternalServerError {
		logger.AccessLogger.Error("Handling error", zap.String("request_id", requestID), zap.Error(err))
	} else {
		logger.AccessLogger.Warn("Handling error", zap.String("request_id", requestID), zap.Error(err))
	}

	h.writeJSON(w, status, map[string]string{"error": apierror.Message(err)}, requestID)
}
