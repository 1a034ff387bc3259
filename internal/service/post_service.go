package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/storage"
	"github.com/d60-Lab/yatube/pkg/logger"
)

// PostDetail 帖子详情页数据
type PostDetail struct {
	Post        *model.Post      `json:"post"`
	Comments    []*model.Comment `json:"comments"`
	AuthorPosts int64            `json:"author_posts_count"`
}

// PostService 帖子写操作与详情
type PostService interface {
	Create(ctx context.Context, author *model.User, form PostForm) (*model.Post, error)
	Edit(ctx context.Context, postID uint, editor *model.User, form PostForm) (*model.Post, error)
	GetForEdit(ctx context.Context, postID uint, editor *model.User) (*model.Post, error)
	Detail(ctx context.Context, postID uint) (*PostDetail, error)
	ListGroups(ctx context.Context) ([]*model.Group, error)
}

type postService struct {
	posts    repository.PostRepository
	groups   repository.GroupRepository
	comments repository.CommentRepository
	images   storage.ImageStore
	now      func() time.Time
}

func NewPostService(posts repository.PostRepository, groups repository.GroupRepository, comments repository.CommentRepository, images storage.ImageStore) PostService {
	return &postService{posts: posts, groups: groups, comments: comments, images: images, now: time.Now}
}

func (s *postService) Create(ctx context.Context, author *model.User, form PostForm) (*model.Post, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}
	if err := s.validate(ctx, &form); err != nil {
		return nil, err
	}
	image, err := s.saveImage(ctx, form.Image)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Text:     form.Text,
		PubDate:  s.now(),
		AuthorID: author.ID,
		GroupID:  form.GroupID,
		Image:    image,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		_ = s.images.Delete(ctx, image)
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.reload(ctx, post.ID)
}

func (s *postService) Edit(ctx context.Context, postID uint, editor *model.User, form PostForm) (*model.Post, error) {
	post, err := s.GetForEdit(ctx, postID, editor)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, &form); err != nil {
		return nil, err
	}
	image, err := s.saveImage(ctx, form.Image)
	if err != nil {
		return nil, err
	}

	old := post.Image
	switch {
	case image != "":
		post.Image = image
	case form.ClearImage:
		post.Image = ""
	}
	post.Text = form.Text
	post.GroupID = form.GroupID

	if err := s.posts.Update(ctx, post); err != nil {
		_ = s.images.Delete(ctx, image)
		return nil, fmt.Errorf("update post %d: %w", postID, err)
	}
	if old != "" && old != post.Image {
		if err := s.images.Delete(ctx, old); err != nil {
			logger.Warn("remove replaced image failed", zap.String("image", old), zap.Error(err))
		}
	}
	return s.reload(ctx, post.ID)
}

// GetForEdit 只有作者本人可以编辑
func (s *postService) GetForEdit(ctx context.Context, postID uint, editor *model.User) (*model.Post, error) {
	if editor == nil {
		return nil, ErrUnauthenticated
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, notFound(err)
	}
	if post.AuthorID != editor.ID {
		return nil, ErrForbidden
	}
	return post, nil
}

func (s *postService) Detail(ctx context.Context, postID uint) (*PostDetail, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, notFound(err)
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	count, err := s.posts.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("count author posts: %w", err)
	}
	return &PostDetail{Post: post, Comments: comments, AuthorPosts: count}, nil
}

func (s *postService) ListGroups(ctx context.Context) ([]*model.Group, error) {
	return s.groups.List(ctx)
}

func (s *postService) validate(ctx context.Context, form *PostForm) error {
	if err := ValidatePost(form); err != nil {
		return err
	}
	if form.GroupID == nil {
		return nil
	}
	if _, err := s.groups.GetByID(ctx, *form.GroupID); err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return fieldError("group", "Select a valid choice")
		}
		return err
	}
	return nil
}

func (s *postService) saveImage(ctx context.Context, up *Upload) (string, error) {
	if up == nil || up.Content == nil {
		return "", nil
	}
	name, err := s.images.Save(ctx, up.Filename, up.Content)
	if errors.Is(err, storage.ErrNotImage) {
		return "", fieldError("image", "Upload a valid image")
	}
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return name, nil
}

func (s *postService) reload(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return post, nil
}
