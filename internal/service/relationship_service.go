package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/logger"
)

// RelationshipService 关系链服务
type RelationshipService interface {
	// Follow 重复关注是幂等成功
	Follow(ctx context.Context, follower *model.User, authorUsername string) error
	// Unfollow 没有关注关系时也返回成功
	Unfollow(ctx context.Context, follower *model.User, authorUsername string) error
}

type relationshipService struct {
	users      repository.UserRepository
	followRepo repository.FollowRepository
	allowSelf  bool
}

func NewRelationshipService(users repository.UserRepository, followRepo repository.FollowRepository, allowSelf bool) RelationshipService {
	return &relationshipService{users: users, followRepo: followRepo, allowSelf: allowSelf}
}

func (s *relationshipService) Follow(ctx context.Context, follower *model.User, authorUsername string) error {
	if follower == nil {
		return ErrUnauthenticated
	}
	author, err := s.users.GetByUsername(ctx, authorUsername)
	if err != nil {
		return notFound(err)
	}
	if author.ID == follower.ID {
		if !s.allowSelf {
			return ErrFollowSelf
		}
		logger.Warn("user follows themselves", zap.String("user", follower.Username))
	}
	created, err := s.followRepo.Create(ctx, follower.ID, author.ID)
	if err != nil {
		return fmt.Errorf("follow %s: %w", authorUsername, err)
	}
	if !created {
		logger.Debug("already following", zap.Uint("user", follower.ID), zap.Uint("author", author.ID))
	}
	return nil
}

func (s *relationshipService) Unfollow(ctx context.Context, follower *model.User, authorUsername string) error {
	if follower == nil {
		return ErrUnauthenticated
	}
	author, err := s.users.GetByUsername(ctx, authorUsername)
	if err != nil {
		return notFound(err)
	}
	if err := s.followRepo.Delete(ctx, follower.ID, author.ID); err != nil {
		return fmt.Errorf("unfollow %s: %w", authorUsername, err)
	}
	return nil
}
