package usecase

import (
	"context"
	"fmt"
	"gamestore/domain"
	"github.com/shopspring/decimal"
	"maps"
	"sync"
	"time"
)

// memoryLedger serialises every transaction behind one mutex, the way the
// gamer row lock does in Postgres, and restores its state when fn fails.
type memoryLedger struct {
	mu                sync.Mutex
	games             map[uint]domain.Game
	gamers            map[uint]domain.Gamer
	purchases         []domain.Purchase
	library           map[[2]uint]domain.LibraryEntry
	nextID            uint
	failLibraryInsert error
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		games:   make(map[uint]domain.Game),
		gamers:  make(map[uint]domain.Gamer),
		library: make(map[[2]uint]domain.LibraryEntry),
		nextID:  1,
	}
}

func (m *memoryLedger) addGamer(id uint, wallet string) {
	m.gamers[id] = domain.Gamer{ID: id, Username: fmt.Sprintf("gamer%d", id), Wallet: decimal.RequireFromString(wallet)}
}

func (m *memoryLedger) addGame(id uint, price, discount string) {
	game := domain.Game{
		ID:              id,
		Title:           fmt.Sprintf("game%d", id),
		Price:           decimal.RequireFromString(price),
		DiscountPercent: decimal.RequireFromString(discount),
	}
	_ = game.BeforeSave(nil)
	m.games[id] = game
}

func (m *memoryLedger) wallet(gamerID uint) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamers[gamerID].Wallet
}

func (m *memoryLedger) purchaseCount(gamerID, gameID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, p := range m.purchases {
		if p.GamerID == gamerID && p.GameID == gameID {
			count++
		}
	}
	return count
}

func (m *memoryLedger) owns(gamerID, gameID uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.library[[2]uint{gamerID, gameID}]
	return ok
}

func (m *memoryLedger) WithinTransaction(ctx context.Context, fn func(tx domain.LedgerTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	gamers := maps.Clone(m.gamers)
	library := maps.Clone(m.library)
	purchases := len(m.purchases)
	nextID := m.nextID

	if err := fn(&memoryTx{m: m}); err != nil {
		m.gamers = gamers
		m.library = library
		m.purchases = m.purchases[:purchases]
		m.nextID = nextID
		return err
	}
	return nil
}

func (m *memoryLedger) GetLibrary(ctx context.Context, gamerID uint) ([]domain.LibraryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]domain.LibraryItem, 0)
	for key, entry := range m.library {
		if key[0] == gamerID {
			items = append(items, domain.LibraryItem{GameID: key[1], Title: m.games[key[1]].Title, AddedAt: entry.CreatedAt})
		}
	}
	return items, nil
}

func (m *memoryLedger) GetWallet(ctx context.Context, gamerID uint) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gamer, ok := m.gamers[gamerID]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	return gamer.Wallet, nil
}

type memoryTx struct {
	m *memoryLedger
}

func (t *memoryTx) GetGame(gameID uint) (*domain.Game, error) {
	game, ok := t.m.games[gameID]
	if !ok || game.DeletedAt.Valid {
		return nil, fmt.Errorf("%w: game %d", domain.ErrNotFound, gameID)
	}
	return &game, nil
}

func (t *memoryTx) LockGamer(gamerID uint) (*domain.Gamer, error) {
	gamer, ok := t.m.gamers[gamerID]
	if !ok {
		return nil, fmt.Errorf("%w: gamer %d", domain.ErrNotFound, gamerID)
	}
	return &gamer, nil
}

func (t *memoryTx) LibraryEntryExists(gamerID, gameID uint) (bool, error) {
	_, ok := t.m.library[[2]uint{gamerID, gameID}]
	return ok, nil
}

func (t *memoryTx) UpdateWallet(gamerID uint, balance decimal.Decimal) error {
	gamer, ok := t.m.gamers[gamerID]
	if !ok {
		return domain.ErrNotFound
	}
	if balance.IsNegative() {
		return fmt.Errorf("check constraint: wallet >= 0")
	}
	gamer.Wallet = balance
	t.m.gamers[gamerID] = gamer
	return nil
}

func (t *memoryTx) InsertPurchase(gamerID, gameID uint, price decimal.Decimal) (*domain.Purchase, error) {
	purchase := domain.Purchase{ID: t.m.nextID, GamerID: gamerID, GameID: gameID, Price: price, CreatedAt: time.Now()}
	t.m.nextID++
	t.m.purchases = append(t.m.purchases, purchase)
	return &purchase, nil
}

func (t *memoryTx) InsertLibraryEntry(gamerID, gameID uint) (*domain.LibraryEntry, error) {
	if t.m.failLibraryInsert != nil {
		return nil, t.m.failLibraryInsert
	}
	key := [2]uint{gamerID, gameID}
	if _, ok := t.m.library[key]; ok {
		return nil, fmt.Errorf("%w: game %d", domain.ErrAlreadyOwned, gameID)
	}
	entry := domain.LibraryEntry{ID: t.m.nextID, GamerID: gamerID, GameID: gameID, CreatedAt: time.Now()}
	t.m.nextID++
	t.m.library[key] = entry
	return &entry, nil
}
