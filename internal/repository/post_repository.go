package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
)

// PostFilter 列表过滤条件，零值表示全部帖子
type PostFilter struct {
	GroupID *uint
	// AuthorID 只取该作者的帖子
	AuthorID *uint
	// FollowerID 只取该用户关注的作者的帖子
	FollowerID *uint
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id uint) (*model.Post, error)
	// Update 覆盖 text/group_id/image，pub_date 不变
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uint) error
	// List 按 pub_date DESC, id DESC 排序，返回窗口内的帖子与总数
	List(ctx context.Context, filter PostFilter, offset, limit int) ([]*model.Post, int64, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Omit("Author", "Group").Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).
		Model(&model.Post{ID: post.ID}).
		Select("text", "group_id", "image").
		Updates(map[string]any{"text": post.Text, "group_id": post.GroupID, "image": post.Image}).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, offset, limit int) ([]*model.Post, int64, error) {
	var total int64
	if err := filter.apply(r.db, r.db.WithContext(ctx).Model(&model.Post{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := []*model.Post{}
	if int64(offset) >= total {
		return posts, total, nil
	}
	err := filter.apply(r.db, r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("author_id = ?", authorID).Count(&cnt).Error
	return cnt, err
}

func (f PostFilter) apply(db, q *gorm.DB) *gorm.DB {
	if f.GroupID != nil {
		q = q.Where("posts.group_id = ?", *f.GroupID)
	}
	if f.AuthorID != nil {
		q = q.Where("posts.author_id = ?", *f.AuthorID)
	}
	if f.FollowerID != nil {
		followed := db.Model(&model.Follow{}).Select("author_id").Where("user_id = ?", *f.FollowerID)
		q = q.Where("posts.author_id IN (?)", followed)
	}
	return q
}
