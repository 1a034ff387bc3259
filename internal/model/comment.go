package model

import "time"

// Comment 帖子评论，帖子或作者删除时级联删除
type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PostID   uint      `gorm:"not null;index:idx_comment_post" json:"post_id"`
	Post     *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID uint      `gorm:"not null;index:idx_comment_author" json:"author_id"`
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Created  time.Time `gorm:"not null" json:"created"`
}

func (Comment) TableName() string { return "comments" }

func (c Comment) String() string { return preview(c.Text) }
