package repositories

import "gorm.io/gorm"

// NewGormSet wires every repository to db
func NewGormSet(db *gorm.DB) *Set {
	return &Set{
		Users:         NewUserRepository(db),
		RefreshTokens: NewRefreshTokenRepository(db),
		Children:      NewChildRepository(db),
		Payments:      NewPaymentRepository(db),
		Menus:         NewMenuRepository(db),
		Attendance:    NewAttendanceRepository(db),
	}
}
