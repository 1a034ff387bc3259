package model

import "time"

// User 作者/读者账号
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(254)" json:"email,omitempty"`
	FirstName string    `gorm:"type:varchar(150)" json:"first_name,omitempty"`
	LastName  string    `gorm:"type:varchar(150)" json:"last_name,omitempty"`
	Password  string    `gorm:"type:varchar(128);not null" json:"-"`
	CreatedAt time.Time `json:"date_joined"`
}

func (User) TableName() string { return "users" }

// FullName 返回 "名 姓"，为空时回落到用户名
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}
