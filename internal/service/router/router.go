package router

import (
	auth "gamestore/internal/auth/controller"
	catalog "gamestore/internal/catalog/controller"
	purchase "gamestore/internal/purchase/controller"
	"github.com/gorilla/mux"
)

func SetUpRoutes(authHandler *auth.AuthHandler, catalogHandler *catalog.CatalogHandler, purchaseHandler *purchase.PurchaseHandler) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/sign-up/gamer", authHandler.SignUpGamer).Methods("POST") // Register gamer
	api.HandleFunc("/auth/sign-in/gamer", authHandler.SignInGamer).Methods("POST") // Gamer token
	api.HandleFunc("/auth/sign-in/staff", authHandler.SignInStaff).Methods("POST") // Staff token with role
	api.HandleFunc("/staff", authHandler.CreateStaff).Methods("POST")              // Admin only
	api.HandleFunc("/roles", authHandler.ListRoles).Methods("GET")
	api.HandleFunc("/roles/{id}", authHandler.DeleteRole).Methods("DELETE") // Soft delete

	api.HandleFunc("/games", catalogHandler.ListGames).Methods("GET")
	api.HandleFunc("/games", catalogHandler.CreateGame).Methods("POST")
	api.HandleFunc("/games/{id}", catalogHandler.GetGame).Methods("GET")
	api.HandleFunc("/games/{id}", catalogHandler.UpdateGame).Methods("PUT")
	api.HandleFunc("/games/{id}", catalogHandler.DeleteGame).Methods("DELETE")

	api.HandleFunc("/games/{id}/buy", purchaseHandler.BuyGame).Methods("POST") // Buy game with wallet
	api.HandleFunc("/library", purchaseHandler.GetLibrary).Methods("GET")
	api.HandleFunc("/wallet", purchaseHandler.GetWallet).Methods("GET")
	api.HandleFunc("/wallet/deposit", purchaseHandler.Deposit).Methods("POST")
	return router
}
