package models

import (
	"time"

	"gorm.io/datatypes"
)

// ============================================================
// Auth & Staff
// ============================================================

// User represents users table
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	Role      string     `gorm:"size:20;not null;default:'tata';index" json:"role"`
	Phone     string     `gorm:"size:30" json:"phone"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// UserSummary is the reduced user view embedded in other records
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"userId"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	RevokedAt *time.Time `gorm:"index" json:"revokedAt"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(rt.ExpiresAt)
}

// ============================================================
// Children
// ============================================================

// Guardian is the parent contact stored inline on a child
type Guardian struct {
	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:30;not null" json:"phone"`
	Email   string `gorm:"size:100" json:"email,omitempty"`
	Address string `gorm:"size:255" json:"address,omitempty"`
}

// Child represents children table
type Child struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	FirstName      string         `gorm:"size:100;not null" json:"firstName"`
	LastName       string         `gorm:"size:100;not null" json:"lastName"`
	DateOfBirth    datatypes.Date `gorm:"not null" json:"dateOfBirth"`
	Class          string         `gorm:"size:20;not null;index" json:"class"`
	PaymentMode    string         `gorm:"size:20;not null" json:"paymentMode"`
	Parent         Guardian       `gorm:"embedded;embeddedPrefix:parent_" json:"parent"`
	IsActive       bool           `gorm:"default:true;index" json:"isActive"`
	EnrollmentDate time.Time      `json:"enrollmentDate"`
	Notes          string         `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Child) TableName() string {
	return "children"
}

// FullName returns "FirstName LastName"
func (c *Child) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ============================================================
// Payments
// ============================================================

// Payment represents payments table. Rows are immutable after creation
// except for Status.
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ChildID       uint      `gorm:"not null;index" json:"childId"`
	Amount        int64     `gorm:"not null" json:"amount"`
	PaymentDate   time.Time `gorm:"not null;index" json:"paymentDate"`
	PaymentMethod string    `gorm:"size:20;not null" json:"paymentMethod"`
	Type          string    `gorm:"size:20;not null;index" json:"type"`
	Period        *string   `gorm:"size:10" json:"period,omitempty"`
	ReceiptNumber string    `gorm:"size:64;uniqueIndex;not null" json:"receiptNumber"`
	Status        string    `gorm:"size:20;not null;default:'Payé';index" json:"status"`
	RecordedByID  uint      `gorm:"not null" json:"recordedById"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relations
	Child      *Child `gorm:"foreignKey:ChildID" json:"child,omitempty"`
	RecordedBy *User  `gorm:"foreignKey:RecordedByID" json:"recordedBy,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// ============================================================
// Menus
// ============================================================

// Meal is one day's three servings
type Meal struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Snack     string `json:"snack"`
}

// WeekMeals holds the meals from Monday to Saturday
type WeekMeals struct {
	Monday    Meal `json:"monday"`
	Tuesday   Meal `json:"tuesday"`
	Wednesday Meal `json:"wednesday"`
	Thursday  Meal `json:"thursday"`
	Friday    Meal `json:"friday"`
	Saturday  Meal `json:"saturday"`
}

// Menu represents menus table
type Menu struct {
	ID            uint                          `gorm:"primaryKey" json:"id"`
	WeekStartDate time.Time                     `gorm:"not null;index" json:"weekStartDate"`
	WeekEndDate   time.Time                     `gorm:"not null" json:"weekEndDate"`
	Meals         datatypes.JSONType[WeekMeals] `json:"meals"`
	CreatedByID   uint                          `gorm:"not null" json:"createdById"`
	IsActive      bool                          `gorm:"default:true" json:"isActive"`
	CreatedAt     time.Time                     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time                     `gorm:"autoUpdateTime" json:"updatedAt"`

	CreatedBy *User `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
}

func (Menu) TableName() string {
	return "menus"
}

// ============================================================
// Attendance
// ============================================================

// Attendance represents attendances table, one row per child and day
type Attendance struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ChildID      uint           `gorm:"not null;uniqueIndex:idx_attendance_child_date" json:"childId"`
	Date         datatypes.Date `gorm:"not null;uniqueIndex:idx_attendance_child_date;index" json:"date"`
	CheckInTime  time.Time      `gorm:"not null" json:"checkInTime"`
	CheckOutTime *time.Time     `json:"checkOutTime"`
	RecordedByID uint           `gorm:"not null" json:"recordedById"`
	Notes        string         `gorm:"type:text" json:"notes"`
	Status       string         `gorm:"size:20;not null;default:'Présent'" json:"status"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`

	Child      *Child `gorm:"foreignKey:ChildID" json:"child,omitempty"`
	RecordedBy *User  `gorm:"foreignKey:RecordedByID" json:"recordedBy,omitempty"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// All lists every model for AutoMigrate
func All() []interface{} {
	return []interface{}{
		&User{},
		&RefreshToken{},
		&Child{},
		&Payment{},
		&Menu{},
		&Attendance{},
	}
}
