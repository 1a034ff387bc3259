package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/paginator"
)

type PostPage = paginator.Page[*model.Post]

type GroupFeed struct {
	Group *model.Group `json:"group"`
	Page  PostPage     `json:"page_obj"`
}

// ProfileFeed 作者主页：帖子与计数
type ProfileFeed struct {
	Author         *model.User `json:"author"`
	PostCount      int64       `json:"posts_count"`
	FollowerCount  int64       `json:"followers_count"`
	FollowingCount int64       `json:"following_count"`
	Following      bool        `json:"following"`
	Page           PostPage    `json:"page_obj"`
}

// FeedService 各类帖子列表，均按 pub_date 倒序分页
type FeedService interface {
	ListAll(ctx context.Context, page int) (PostPage, error)
	ListGroup(ctx context.Context, slug string, page int) (*GroupFeed, error)
	ListAuthor(ctx context.Context, username string, viewer *model.User, page int) (*ProfileFeed, error)
	ListFollowed(ctx context.Context, viewer *model.User, page int) (PostPage, error)
}

type feedService struct {
	posts    repository.PostRepository
	groups   repository.GroupRepository
	users    repository.UserRepository
	follows  repository.FollowRepository
	pageSize int
}

func NewFeedService(posts repository.PostRepository, groups repository.GroupRepository, users repository.UserRepository, follows repository.FollowRepository, pageSize int) FeedService {
	if pageSize < 1 {
		pageSize = 10
	}
	return &feedService{posts: posts, groups: groups, users: users, follows: follows, pageSize: pageSize}
}

func (s *feedService) ListAll(ctx context.Context, page int) (PostPage, error) {
	return s.paginate(ctx, repository.PostFilter{}, page)
}

func (s *feedService) ListGroup(ctx context.Context, slug string, page int) (*GroupFeed, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err)
	}
	p, err := s.paginate(ctx, repository.PostFilter{GroupID: &group.ID}, page)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: group, Page: p}, nil
}

func (s *feedService) ListAuthor(ctx context.Context, username string, viewer *model.User, page int) (*ProfileFeed, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err)
	}
	p, err := s.paginate(ctx, repository.PostFilter{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, err
	}
	feed := &ProfileFeed{Author: author, PostCount: p.Total, Page: p}
	if feed.FollowerCount, err = s.follows.CountFollowers(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	if feed.FollowingCount, err = s.follows.CountFollowing(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("count following: %w", err)
	}
	if viewer != nil {
		if feed.Following, err = s.follows.Exists(ctx, viewer.ID, author.ID); err != nil {
			return nil, fmt.Errorf("check following: %w", err)
		}
	}
	return feed, nil
}

func (s *feedService) ListFollowed(ctx context.Context, viewer *model.User, page int) (PostPage, error) {
	if viewer == nil {
		return PostPage{}, ErrUnauthenticated
	}
	return s.paginate(ctx, repository.PostFilter{FollowerID: &viewer.ID}, page)
}

func (s *feedService) paginate(ctx context.Context, filter repository.PostFilter, page int) (PostPage, error) {
	if page < 1 {
		page = 1
	}
	items, total, err := s.posts.List(ctx, filter, paginator.Offset(page, s.pageSize), s.pageSize)
	if err != nil {
		return PostPage{}, fmt.Errorf("list posts: %w", err)
	}
	return paginator.New(items, page, s.pageSize, total), nil
}
