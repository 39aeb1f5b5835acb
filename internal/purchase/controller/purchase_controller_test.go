package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"gamestore/domain"
	"gamestore/internal/purchase/mocks"
	"gamestore/internal/service/logger"
	"gamestore/internal/service/middleware"
	"github.com/golang-jwt/jwt"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"net/http"
	"net/http/httptest"
	"testing"
)

var gamerClaims = &middleware.SessionClaims{UserId: 1, Kind: domain.KindGamer, StandardClaims: jwt.StandardClaims{ExpiresAt: 86400}}

func gamerPrincipal() domain.Principal {
	return gamerClaims.Principal()
}

func TestBuyGame(t *testing.T) {
	logger.AccessLogger = zap.NewNop()

	t.Run("Success - Game Purchased", func(t *testing.T) {
		mockUsecase := new(mocks.MockPurchaseUsecase)
		mockJWT := new(mocks.MockJwtTokenService)
		h := NewPurchaseHandler(mockUsecase, mockJWT)

		receipt := domain.PurchaseReceipt{
			Purchase:     domain.Purchase{ID: 5, GamerID: 1, GameID: 2, Price: decimal.NewFromInt(75)},
			LibraryEntry: domain.LibraryEntry{ID: 6, GamerID: 1, GameID: 2},
			Wallet:       decimal.NewFromInt(25),
		}
		mockJWT.On("Validate", "valid_token").Return(gamerClaims, nil)
		mockUsecase.On("BuyGame", mock.Anything, gamerPrincipal(), "2").Return(receipt, nil)

		r, w := createTestRequest(http.MethodPost, "/api/games/2/buy", nil)
		r.Header.Set("JWT-Token", "Bearer valid_token")
		r = mux.SetURLVars(r, map[string]string{"id": "2"})

		h.BuyGame(w, r)

		resp := w.Result()
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var body domain.PurchaseReceipt
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, uint(5), body.Purchase.ID)
		assert.True(t, decimal.NewFromInt(25).Equal(body.Wallet))

		t.Cleanup(func() {
			mockUsecase.AssertExpectations(t)
			mockJWT.AssertExpectations(t)
		})
	})

	outcomes := []struct {
		name   string
		err    error
		status int
	}{
		{"Invalid Input", fmt.Errorf("%w: game id must be a positive number", domain.ErrInvalidInput), http.StatusBadRequest},
		{"Not Found", fmt.Errorf("%w: game 2", domain.ErrNotFound), http.StatusNotFound},
		{"Already Owned", fmt.Errorf("%w: game 2", domain.ErrAlreadyOwned), http.StatusConflict},
		{"Insufficient Funds", domain.ErrInsufficientFunds, http.StatusPaymentRequired},
		{"Denied", domain.ErrDenied, http.StatusForbidden},
		{"Infrastructure", errors.New("failed to lock gamer: connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range outcomes {
		t.Run("Failure - "+tt.name, func(t *testing.T) {
			mockUsecase := new(mocks.MockPurchaseUsecase)
			mockJWT := new(mocks.MockJwtTokenService)
			h := NewPurchaseHandler(mockUsecase, mockJWT)

			mockJWT.On("Validate", "valid_token").Return(gamerClaims, nil)
			mockUsecase.On("BuyGame", mock.Anything, gamerPrincipal(), "2").Return(domain.PurchaseReceipt{}, tt.err)

			r, w := createTestRequest(http.MethodPost, "/api/games/2/buy", nil)
			r.Header.Set("JWT-Token", "Bearer valid_token")
			r = mux.SetURLVars(r, map[string]string{"id": "2"})

			h.BuyGame(w, r)

			resp := w.Result()
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
			assert.NotContains(t, body["error"], "connection reset")
		})
	}

	t.Run("Failure - Missing JWT Token", func(t *testing.T) {
		mockUsecase := new(mocks.MockPurchaseUsecase)
		mockJWT := new(mocks.MockJwtTokenService)
		h := NewPurchaseHandler(mockUsecase, mockJWT)

		r, w := createTestRequest(http.MethodPost, "/api/games/2/buy", nil)
		h.BuyGame(w, r)

		resp := w.Result()
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		mockUsecase.AssertNotCalled(t, "BuyGame", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Invalid JWT Token", func(t *testing.T) {
		mockUsecase := new(mocks.MockPurchaseUsecase)
		mockJWT := new(mocks.MockJwtTokenService)
		h := NewPurchaseHandler(mockUsecase, mockJWT)

		mockJWT.On("Validate", "invalid_token").Return(nil, errors.New("invalid token"))

		r, w := createTestRequest(http.MethodPost, "/api/games/2/buy", nil)
		r.Header.Set("JWT-Token", "Bearer invalid_token")

		h.BuyGame(w, r)

		resp := w.Result()
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestDeposit(t *testing.T) {
	logger.AccessLogger = zap.NewNop()

	t.Run("Success - Wallet Topped Up", func(t *testing.T) {
		mockUsecase := new(mocks.MockPurchaseUsecase)
		mockJWT := new(mocks.MockJwtTokenService)
		h := NewPurchaseHandler(mockUsecase, mockJWT)

		mockJWT.On("Validate", "valid_token").Return(gamerClaims, nil)
		mockUsecase.On("Deposit", mock.Anything, gamerPrincipal(), mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(10))
		})).Return(decimal.NewFromInt(15), nil)

		r, w := createTestRequest(http.MethodPost, "/api/wallet/deposit", []byte(`{"amount": 10}`))
		r.Header.Set("JWT-Token", "Bearer valid_token")

		h.Deposit(w, r)

		resp := w.Result()
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body domain.WalletResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, decimal.NewFromInt(15).Equal(body.Wallet))
		mockUsecase.AssertExpectations(t)
	})

	t.Run("Failure - Non Numeric Amount", func(t *testing.T) {
		mockUsecase := new(mocks.MockPurchaseUsecase)
		mockJWT := new(mocks.MockJwtTokenService)
		h := NewPurchaseHandler(mockUsecase, mockJWT)

		mockJWT.On("Validate", "valid_token").Return(gamerClaims, nil)

		r, w := createTestRequest(http.MethodPost, "/api/wallet/deposit", []byte(`{"amount": "ten"}`))
		r.Header.Set("JWT-Token", "Bearer valid_token")

		h.Deposit(w, r)

		resp := w.Result()
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockUsecase.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Non Positive Amount", func(t *testing.T) {
		mockUsecase := new(mocks.MockPurchaseUsecase)
		mockJWT := new(mocks.MockJwtTokenService)
		h := NewPurchaseHandler(mockUsecase, mockJWT)

		mockJWT.On("Validate", "valid_token").Return(gamerClaims, nil)
		mockUsecase.On("Deposit", mock.Anything, gamerPrincipal(), mock.Anything).
			Return(decimal.Zero, fmt.Errorf("%w: amount must be greater than 0", domain.ErrInvalidInput))

		r, w := createTestRequest(http.MethodPost, "/api/wallet/deposit", []byte(`{"amount": -5}`))
		r.Header.Set("JWT-Token", "Bearer valid_token")

		h.Deposit(w, r)

		resp := w.Result()
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetLibrary(t *testing.T) {
	logger.AccessLogger = zap.NewNop()

	mockUsecase := new(mocks.MockPurchaseUsecase)
	mockJWT := new(mocks.MockJwtTokenService)
	h := NewPurchaseHandler(mockUsecase, mockJWT)

	items := []domain.LibraryItem{{GameID: 2, Title: "Doom"}}
	mockJWT.On("Validate", "valid_token").Return(gamerClaims, nil)
	mockUsecase.On("GetLibrary", mock.Anything, gamerPrincipal()).Return(items, nil)

	r, w := createTestRequest(http.MethodGet, "/api/library", nil)
	r.Header.Set("JWT-Token", "Bearer valid_token")

	h.GetLibrary(w, r)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body []domain.LibraryItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body, 1)
	assert.Equal(t, "Doom", body[0].Title)
}

func TestGetWallet(t *testing.T) {
	logger.AccessLogger = zap.NewNop()

	t.Run("Success", func(t *testing.T) {
		mockUsecase := new(mocks.MockPurchaseUsecase)
		mockJWT := new(mocks.MockJwtTokenService)
		h := NewPurchaseHandler(mockUsecase, mockJWT)

		mockJWT.On("Validate", "valid_token").Return(gamerClaims, nil)
		mockUsecase.On("GetWallet", mock.Anything, gamerPrincipal()).Return(decimal.RequireFromString("42.5"), nil)

		r, w := createTestRequest(http.MethodGet, "/api/wallet", nil)
		r.Header.Set("JWT-Token", "Bearer valid_token")

		h.GetWallet(w, r)

		resp := w.Result()
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Failure - Staff Denied", func(t *testing.T) {
		mockUsecase := new(mocks.MockPurchaseUsecase)
		mockJWT := new(mocks.MockJwtTokenService)
		h := NewPurchaseHandler(mockUsecase, mockJWT)

		staffClaims := &middleware.SessionClaims{UserId: 3, Kind: domain.KindStaff, Role: "admin"}
		mockJWT.On("Validate", "staff_token").Return(staffClaims, nil)
		mockUsecase.On("GetWallet", mock.Anything, staffClaims.Principal()).Return(decimal.Zero, domain.ErrDenied)

		r, w := createTestRequest(http.MethodGet, "/api/wallet", nil)
		r.Header.Set("JWT-Token", "Bearer staff_token")

		h.GetWallet(w, r)

		resp := w.Result()
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func createTestRequest(method, url string, body []byte) (*http.Request, *httptest.ResponseRecorder) {
	r := httptest.NewRequest(method, url, bytes.NewReader(body))
	w := httptest.NewRecorder()
	return r, w
}
