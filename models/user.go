package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	FirstName  string `gorm:"size:64;not null" json:"firstName"`
	MiddleName string `gorm:"size:64" json:"middleName"`
	LastName   string `gorm:"size:64;not null" json:"lastName"`
	Email      string `gorm:"size:128;uniqueIndex;not null" json:"email"`
	Address    string `gorm:"size:255" json:"address"`
	ContactNo  string `gorm:"size:32" json:"contactNo"`
	IsAdmin    bool   `gorm:"default:false" json:"isAdmin"`

	// Never serialized; set through SetPassword only.
	Password string `gorm:"size:128;not null" json:"-"`
}

func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
