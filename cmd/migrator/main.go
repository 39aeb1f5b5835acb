package main

import (
	"fmt"
	"gamestore/domain"
	"gamestore/internal/service/dsn"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"log"
)

var defaultRoles = []string{"admin", "manager", "editor"}

func migrate() (err error) {
	_ = godotenv.Load()
	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		return err
	}
	err = db.AutoMigrate(&domain.Role{}, &domain.Staff{}, &domain.Gamer{}, &domain.Game{}, &domain.Purchase{}, &domain.LibraryEntry{})
	if err != nil {
		return err
	}
	fmt.Println("Database migrated")

	for _, name := range defaultRoles {
		role := domain.Role{Name: name}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
	}
	fmt.Println("Roles seeded")
	return nil
}

func main() {
	err := migrate()
	if err != nil {
		log.Fatal(err)
	}
}
