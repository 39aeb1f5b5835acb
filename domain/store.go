package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// moneyScale is the number of decimal places kept by the NUMERIC money and percent columns.
const moneyScale = 2

var hundred = decimal.NewFromInt(100)

type Game struct {
	ID              uint            `gorm:"primaryKey;column:id" json:"id"`
	Title           string          `gorm:"type:varchar(30);unique;not null;column:title" json:"title"`
	Genre           string          `gorm:"type:varchar(50);column:genre" json:"genre"`
	Description     string          `gorm:"type:varchar(70);column:description" json:"description"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null;check:price >= 0;column:price" json:"price"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0;column:discount_percent" json:"discountPercent"`
	FinalPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0;column:final_price" json:"finalPrice"`
	Amount          int             `gorm:"not null;default:0;column:amount" json:"amount"`
	DeletedAt       gorm.DeletedAt  `gorm:"index;column:deleted_at" json:"-"`
}

// BeforeSave keeps the cached final price in step with price and discount.
// Both are rounded to the column scale first so the cached value matches the stored row.
func (g *Game) BeforeSave(tx *gorm.DB) error {
	g.Price = g.Price.Round(moneyScale)
	g.DiscountPercent = g.DiscountPercent.Round(moneyScale)
	g.FinalPrice = FinalPrice(g.Price, g.DiscountPercent)
	return nil
}

// FinalPrice returns price minus the floored discount amount,
// e.g. 59.99 at 25% is 59.99 - floor(14.9975) = 45.99.
func FinalPrice(price, discountPercent decimal.Decimal) decimal.Decimal {
	discount := price.Mul(discountPercent).Div(hundred).Floor()
	return price.Sub(discount)
}

type Purchase struct {
	ID        uint            `gorm:"primaryKey;column:id" json:"id"`
	GamerID   uint            `gorm:"not null;index;column:gamer_id" json:"gamerID"`
	GameID    uint            `gorm:"not null;index;column:game_id" json:"gameID"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null;column:price" json:"price"`
	CreatedAt time.Time       `gorm:"column:created_at" json:"createdAt"`
}

type LibraryEntry struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	GamerID   uint      `gorm:"not null;column:gamer_id;index:idx_library_gamer_game,unique" json:"gamerID"`
	GameID    uint      `gorm:"not null;column:game_id;index:idx_library_gamer_game,unique" json:"gameID"`
	CreatedAt time.Time `gorm:"column:created_at" json:"addedAt"`
}

type GameRequest struct {
	Title           string          `json:"title"`
	Genre           string          `json:"genre"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Amount          int             `json:"amount"`
}

type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type PurchaseReceipt struct {
	Purchase     Purchase        `json:"purchase"`
	LibraryEntry LibraryEntry    `json:"libraryEntry"`
	Wallet       decimal.Decimal `json:"wallet"`
}

type LibraryItem struct {
	GameID  uint      `json:"gameID"`
	Title   string    `json:"title"`
	AddedAt time.Time `json:"addedAt"`
}

type WalletResponse struct {
	Wallet decimal.Decimal `json:"wallet"`
}

type CatalogRepository interface {
	ListGames(ctx context.Context) ([]Game, error)
	GetGame(ctx context.Context, gameID uint) (*Game, error)
	CreateGame(ctx context.Context, game *Game) error
	UpdateGame(ctx context.Context, gameID uint, req GameRequest) (*Game, error)
	SoftDeleteGame(ctx context.Context, gameID uint) error
}

// LedgerStore persists wallets, purchases and library entries.
// Everything done through the LedgerTx handed to fn commits or rolls back together.
type LedgerStore interface {
	WithinTransaction(ctx context.Context, fn func(tx LedgerTx) error) error
	GetLibrary(ctx context.Context, gamerID uint) ([]LibraryItem, error)
	GetWallet(ctx context.Context, gamerID uint) (decimal.Decimal, error)
}

type LedgerTx interface {
	// GetGame returns ErrNotFound for missing or soft-deleted games.
	GetGame(gameID uint) (*Game, error)
	// LockGamer loads the gamer and holds its row until the transaction ends.
	LockGamer(gamerID uint) (*Gamer, error)
	LibraryEntryExists(gamerID, gameID uint) (bool, error)
	UpdateWallet(gamerID uint, balance decimal.Decimal) error
	InsertPurchase(gamerID, gameID uint, price decimal.Decimal) (*Purchase, error)
	// InsertLibraryEntry returns ErrAlreadyOwned when the (gamer, game) pair exists.
	InsertLibraryEntry(gamerID, gameID uint) (*LibraryEntry, error)
}
