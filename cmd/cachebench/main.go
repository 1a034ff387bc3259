package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/api"
	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/cache"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/internal/storage"
	"github.com/d60-Lab/yatube/pkg/database"
)

// nopStore 每次都未命中，用作无缓存基线
type nopStore struct{}

func (nopStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (nopStore) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nopStore) Clear(context.Context) error { return nil }

type scenarioResult struct {
	durations []time.Duration
	hits      int
	bytes     int64
}

func main() {
	ctx := context.Background()

	postCount := envInt("POSTS", 5000)
	reqCount := envInt("REQUESTS", 3000)

	dir := must(os.MkdirTemp("", "cachebench"))
	defer os.RemoveAll(dir)
	dsn := "file:" + filepath.Join(dir, "bench.db") + "?_foreign_keys=1"
	db := must(gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}))
	mustDo(database.Migrate(db))

	fmt.Println("Setting up test data...")
	authors := make([]model.User, 50)
	for i := range authors {
		authors[i] = model.User{Username: fmt.Sprintf("author%02d", i), Password: "p"}
	}
	mustDo(db.CreateInBatches(&authors, 50).Error)

	base := time.Now().Add(-time.Duration(postCount) * time.Minute)
	rows := make([]model.Post, postCount)
	for i := range rows {
		rows[i] = model.Post{
			Text:     fmt.Sprintf("post #%d", i),
			PubDate:  base.Add(time.Duration(i) * time.Minute),
			AuthorID: authors[i%len(authors)].ID,
		}
	}
	mustDo(db.CreateInBatches(&rows, 500).Error)
	fmt.Printf("Test data ready: %d posts by %d authors\n", postCount, len(authors))

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.ReleaseMode},
		Cache:  config.CacheConfig{IndexTTL: 20 * time.Second},
		Posts:  config.PostsConfig{PageSize: 10},
		Auth:   config.AuthConfig{CookieName: "token", LoginURL: "/auth/login/"},
	}
	reqs := makeRequests(reqCount, postCount/cfg.Posts.PageSize+1)

	stores := []struct {
		name  string
		store cache.Store
	}{
		{"No cache", nopStore{}},
		{"Memory cache", cache.NewMemory()},
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			panic(fmt.Sprintf("Failed to connect to Redis at %s: %v", addr, err))
		}
		stores = append(stores, struct {
			name  string
			store cache.Store
		}{"Redis cache", cache.NewRedis(client, "cachebench:")})
	}

	fmt.Printf("\nHome feed latency (%d req, %d posts, page size %d, ttl %s)\n",
		reqCount, postCount, cfg.Posts.PageSize, cfg.Cache.IndexTTL)
	for _, s := range stores {
		mustDo(s.store.Clear(ctx))
		res := runScenario(newRouter(cfg, db, s.store), reqs)
		fmt.Printf("%-14s avg=%v p95=%v p99=%v hits=%d/%d served=%s\n",
			s.name, avg(res.durations), pct(res.durations, 0.95), pct(res.durations, 0.99),
			res.hits, len(reqs), formatBytes(res.bytes),
		)
	}
}

func newRouter(cfg *config.Config, db *gorm.DB, pages cache.Store) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	images := storage.NewLocalImageStore(os.TempDir(), "")

	svc := handler.Services{
		Feed:         service.NewFeedService(postRepo, groupRepo, userRepo, followRepo, cfg.Posts.PageSize),
		Posts:        service.NewPostService(postRepo, groupRepo, commentRepo, images),
		Comments:     service.NewCommentService(postRepo, commentRepo),
		Relationship: service.NewRelationshipService(userRepo, followRepo, true),
		Users:        service.NewUserService(userRepo),
	}
	tokens := auth.NewTokenManager("bench", time.Hour)
	h := handler.NewHandler(svc, tokens, images, handler.Options{CookieName: cfg.Auth.CookieName, LoginURL: cfg.Auth.LoginURL})
	return api.NewRouter(api.Deps{Config: cfg, Handler: h, Tokens: tokens, Users: svc.Users, Pages: pages})
}

func runScenario(r *gin.Engine, paths []string) scenarioResult {
	fmt.Print("  Running benchmark...")
	res := scenarioResult{durations: make([]time.Duration, 0, len(paths))}
	for _, p := range paths {
		req := httptest.NewRequest(http.MethodGet, p, nil)
		w := httptest.NewRecorder()
		start := time.Now()
		r.ServeHTTP(w, req)
		res.durations = append(res.durations, time.Since(start))
		if w.Code != http.StatusOK {
			panic(fmt.Sprintf("GET %s: status %d", p, w.Code))
		}
		if w.Header().Get("X-Cache") == "HIT" {
			res.hits++
		}
		res.bytes += int64(w.Body.Len())
	}
	fmt.Println(" done")
	return res
}

// makeRequests 大部分请求落在首页，少量翻到深页
func makeRequests(n, pages int) []string {
	out := make([]string, n)
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < n; i++ {
		page := 1
		if rnd.Float64() > 0.72 {
			page = 2 + rnd.Intn(pages)
		}
		out[i] = "/?page=" + strconv.Itoa(page)
	}
	return out
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func avg(vs []time.Duration) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range vs {
		sum += v
	}
	return sum / time.Duration(len(vs))
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), vs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

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
