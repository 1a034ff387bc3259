package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/internal/storage"
	"github.com/d60-Lab/yatube/pkg/database"
	"github.com/d60-Lab/yatube/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

// seed 生成演示数据：GROUPS 个分组、USERS 个用户、每人 POSTS 篇帖子以及随机关注关系
func main() {
	cfg := must(config.Load())
	mustDo(logger.Init(cfg.Log.Level, "console"))
	defer func() { _ = logger.Sync() }()

	db := must(database.InitDB(cfg))
	defer func() { _ = database.Close(db) }()
	mustDo(database.Migrate(db))

	groups := envInt("GROUPS", 3)
	users := envInt("USERS", 10)
	posts := envInt("POSTS", 5)
	ctx := context.Background()

	groupRepo := repository.NewGroupRepository(db)
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	userSvc := service.NewUserService(userRepo)
	postSvc := service.NewPostService(postRepo, groupRepo, commentRepo, storage.NewLocalImageStore(cfg.Media.Root, cfg.Media.URLPrefix))
	relSvc := service.NewRelationshipService(userRepo, followRepo, cfg.Follow.AllowSelf)

	groupIDs := make([]uint, 0, groups)
	for i := 0; i < groups; i++ {
		slug := fmt.Sprintf("group-%d", i+1)
		g, err := groupRepo.GetBySlug(ctx, slug)
		if err != nil {
			g = &model.Group{Title: fmt.Sprintf("Group %d", i+1), Slug: slug, Description: "Seeded group " + slug}
			mustDo(groupRepo.Create(ctx, g))
		}
		groupIDs = append(groupIDs, g.ID)
	}

	authors := make([]*model.User, 0, users)
	for i := 0; i < users; i++ {
		username := fmt.Sprintf("user%03d", i+1)
		u, err := userSvc.Signup(ctx, service.SignupForm{
			Username: username,
			Password: "password123",
			Email:    username + "@example.com",
		})
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			u = must(userRepo.GetByUsername(ctx, username))
		} else if err != nil {
			panic(err)
		}
		authors = append(authors, u)
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0
	for _, author := range authors {
		for j := 0; j < posts; j++ {
			form := service.PostForm{Text: fmt.Sprintf("Post %d by %s", j+1, author.Username)}
			if len(groupIDs) > 0 && rnd.Intn(2) == 0 {
				gid := groupIDs[rnd.Intn(len(groupIDs))]
				form.GroupID = &gid
			}
			must(postSvc.Create(ctx, author, form))
			created++
		}
	}

	follows := 0
	for _, u := range authors {
		for _, a := range authors {
			if u.ID == a.ID || rnd.Intn(3) != 0 {
				continue
			}
			mustDo(relSvc.Follow(ctx, u, a.Username))
			follows++
		}
	}

	logger.Info("seed done",
		zap.Int("groups", len(groupIDs)),
		zap.Int("users", len(authors)),
		zap.Int("posts", created),
		zap.Int("follows", follows))
}
