package model

import "time"

// previewLen String() 截取的字符数
const previewLen = 15

// Post 帖子；作者删除时级联删除，分组删除时 group_id 置空
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"not null;index:idx_post_pub_date" json:"pub_date"`
	AuthorID uint      `gorm:"not null;index:idx_post_author" json:"author_id"`
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	GroupID  *uint     `gorm:"index:idx_post_group" json:"group_id"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	Image    string    `gorm:"type:varchar(100)" json:"image"`
}

func (Post) TableName() string { return "posts" }

func (p Post) String() string { return preview(p.Text) }

func preview(s string) string {
	r := []rune(s)
	if len(r) > previewLen {
		return string(r[:previewLen])
	}
	return s
}
