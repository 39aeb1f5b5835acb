package main

import (
	"fmt"
	authController "gamestore/internal/auth/controller"
	authRepository "gamestore/internal/auth/repository"
	authUsecase "gamestore/internal/auth/usecase"
	catalogController "gamestore/internal/catalog/controller"
	catalogRepository "gamestore/internal/catalog/repository"
	catalogUsecase "gamestore/internal/catalog/usecase"
	purchaseController "gamestore/internal/purchase/controller"
	purchaseRepository "gamestore/internal/purchase/repository"
	purchaseUsecase "gamestore/internal/purchase/usecase"
	"gamestore/internal/service/lock"
	"gamestore/internal/service/logger"
	"gamestore/internal/service/middleware"
	"gamestore/internal/service/router"
	"github.com/joho/godotenv"
	"log"
	"net/http"
	"os"
)

func main() {
	_ = godotenv.Load()

	if err := logger.InitLoggers(); err != nil {
		log.Fatalf("Failed to initialize loggers: %v", err)
	}
	defer func() {
		err := logger.SyncLoggers()
		if err != nil {
			log.Printf("Failed to sync loggers: %v", err)
		}
	}()

	db := middleware.DbConnect()
	jwtToken, err := middleware.NewJwtToken(os.Getenv("JWT_SECRET"))
	if err != nil {
		log.Fatalf("Failed to create JWT token: %v", err)
	}

	locker := lock.NewNoopLocker()
	if redisClient := middleware.InitRedis(); redisClient != nil {
		defer redisClient.Close()
		locker = lock.NewRedisLocker(redisClient, 0)
	}

	authRepository := authRepository.NewAuthRepository(db)
	authUseCase := authUsecase.NewAuthUsecase(authRepository)
	authHandler := authController.NewAuthHandler(authUseCase, jwtToken)

	catalogRepository := catalogRepository.NewCatalogRepository(db)
	catalogUseCase := catalogUsecase.NewCatalogUsecase(catalogRepository)
	catalogHandler := catalogController.NewCatalogHandler(catalogUseCase, jwtToken)

	ledgerRepository := purchaseRepository.NewLedgerRepository(db)
	purchaseUseCase := purchaseUsecase.NewPurchaseUsecase(ledgerRepository, locker)
	purchaseHandler := purchaseController.NewPurchaseHandler(purchaseUseCase, jwtToken)

	mainRouter := router.SetUpRoutes(authHandler, catalogHandler, purchaseHandler)
	mainRouter.Use(middleware.RequestIDMiddleware)
	mainRouter.Use(middleware.RateLimitMiddleware)
	http.Handle("/", middleware.EnableCORS(mainRouter))
	fmt.Printf("Starting HTTP server on adress %s\n", os.Getenv("BACKEND_URL"))
	if err := http.ListenAndServe(os.Getenv("BACKEND_URL"), nil); err != nil {
		fmt.Printf("Error on starting server: %s", err)
	}
}
