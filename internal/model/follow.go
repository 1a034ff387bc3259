package model

// Follow 关注关系（User 关注 Author）
type Follow struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	UserID   uint  `gorm:"not null;uniqueIndex:unique_follower;index:idx_follow_user" json:"user_id"`
	User     *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID uint  `gorm:"not null;uniqueIndex:unique_follower;index:idx_follow_author" json:"author_id"`
	Author   *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	// 复合唯一键，避免重复关注
	// unique_follower = (user_id, author_id)
}

func (Follow) TableName() string { return "follows" }

// All 返回需要迁移的全部模型（有外键依赖的排在后面）
func All() []interface{} {
	return []interface{}{&User{}, &Group{}, &Post{}, &Comment{}, &Follow{}}
}
