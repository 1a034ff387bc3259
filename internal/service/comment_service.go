package service

import (
	"context"
	"fmt"
	"time"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
)

type CommentService interface {
	// Add 任何已登录用户都可以评论
	Add(ctx context.Context, postID uint, author *model.User, form CommentForm) (*model.Comment, error)
}

type commentService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	now      func() time.Time
}

func NewCommentService(posts repository.PostRepository, comments repository.CommentRepository) CommentService {
	return &commentService{posts: posts, comments: comments, now: time.Now}
}

func (s *commentService) Add(ctx context.Context, postID uint, author *model.User, form CommentForm) (*model.Comment, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, notFound(err)
	}
	if err := ValidateComment(&form); err != nil {
		return nil, err
	}
	c := &model.Comment{PostID: postID, AuthorID: author.ID, Text: form.Text, Created: s.now()}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	c.Author = author
	return c, nil
}
