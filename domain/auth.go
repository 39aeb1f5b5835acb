package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PrincipalKind string

const (
	KindGamer PrincipalKind = "gamer"
	KindStaff PrincipalKind = "staff"
)

// Principal is the caller resolved from a bearer token.
// RoleName is only set for staff.
type Principal struct {
	ID            uint
	Authenticated bool
	Kind          PrincipalKind
	RoleName      string
}

// MaxWallet is the largest balance a NUMERIC(12,2) wallet column can hold.
var MaxWallet = decimal.RequireFromString("9999999999.99")

type Gamer struct {
	ID        uint            `gorm:"primaryKey;column:id" json:"id"`
	Username  string          `gorm:"type:varchar(50);unique;not null;column:username" json:"username"`
	Email     string          `gorm:"type:varchar(255);unique;not null;column:email" json:"email"`
	Password  string          `gorm:"type:varchar(255);not null;column:password" json:"-"`
	FirstName string          `gorm:"type:varchar(50);column:first_name" json:"firstName"`
	LastName  string          `gorm:"type:varchar(150);column:last_name" json:"lastName"`
	BirthDate time.Time       `gorm:"type:date;column:birth_date" json:"birthDate"`
	Wallet    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0;check:wallet >= 0;column:wallet" json:"wallet"`
	DeletedAt gorm.DeletedAt  `gorm:"index;column:deleted_at" json:"-"`
}

type Role struct {
	ID        uint           `gorm:"primaryKey;column:id" json:"id"`
	Name      string         `gorm:"type:varchar(20);unique;not null;column:name" json:"name"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:deleted_at" json:"-"`
}

type Staff struct {
	ID        uint           `gorm:"primaryKey;column:id" json:"id"`
	Username  string         `gorm:"type:varchar(50);unique;not null;column:username" json:"username"`
	Email     string         `gorm:"type:varchar(255);column:email" json:"email"`
	Password  string         `gorm:"type:varchar(255);not null;column:password" json:"-"`
	RoleID    uint           `gorm:"not null;column:role_id" json:"roleID"`
	Role      Role           `gorm:"foreignKey:RoleID;references:ID" json:"role"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:deleted_at" json:"-"`
}

// Staff rows live in the "staff" table rather than the pluralised default.
func (Staff) TableName() string {
	return "staff"
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type GamerSignUpRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"`
}

type StaffCreateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   uint   `json:"roleID"`
}

type AuthRepository interface {
	CreateGamer(ctx context.Context, gamer *Gamer) error
	GetGamerByUsername(ctx context.Context, username string) (*Gamer, error)
	CreateStaff(ctx context.Context, staff *Staff) error
	GetStaffByUsername(ctx context.Context, username string) (*Staff, error)
	ListRoles(ctx context.Context) ([]Role, error)
	SoftDeleteRole(ctx context.Context, roleID uint) error
}
