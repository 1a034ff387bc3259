package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/testutil"
)

func TestPostRepository_ListOrderAndFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	leo := testutil.CreateUser(t, db, "leo")
	anna := testutil.CreateUser(t, db, "anna")
	g := testutil.CreateGroup(t, db, "novels")

	base := time.Now().Add(-time.Hour)
	p1 := testutil.CreatePost(t, db, leo, g, "first", base)
	p2 := testutil.CreatePost(t, db, anna, nil, "second", base.Add(time.Minute))
	// 相同 pub_date 时按 id 倒序
	p3 := testutil.CreatePost(t, db, leo, g, "third", base.Add(time.Minute))

	all, total, err := repo.List(ctx, PostFilter{}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{p3.ID, p2.ID, p1.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})
	require.NotNil(t, all[0].Author)
	assert.Equal(t, "leo", all[0].Author.Username)
	require.NotNil(t, all[0].Group)
	assert.Equal(t, "novels", all[0].Group.Slug)

	inGroup, total, err := repo.List(ctx, PostFilter{GroupID: &g.ID}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, p3.ID, inGroup[0].ID)

	byAnna, total, err := repo.List(ctx, PostFilter{AuthorID: &anna.ID}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, p2.ID, byAnna[0].ID)

	cnt, err := repo.CountByAuthor(ctx, leo.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, cnt)
}

func TestPostRepository_ListWindow(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	leo := testutil.CreateUser(t, db, "leo")
	for i := 0; i < 13; i++ {
		testutil.CreatePost(t, db, leo, nil, "post", time.Time{})
	}

	page, total, err := repo.List(ctx, PostFilter{}, 10, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 13, total)
	assert.Len(t, page, 3)

	page, _, err = repo.List(ctx, PostFilter{}, 20, 10)
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestPostRepository_FollowerFeed(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	reader := testutil.CreateUser(t, db, "reader")
	leo := testutil.CreateUser(t, db, "leo")
	anna := testutil.CreateUser(t, db, "anna")
	followed := testutil.CreatePost(t, db, leo, nil, "followed", time.Time{})
	testutil.CreatePost(t, db, anna, nil, "not followed", time.Time{})

	_, err := follows.Create(ctx, reader.ID, leo.ID)
	require.NoError(t, err)

	feed, total, err := repo.List(ctx, PostFilter{FollowerID: &reader.ID}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, feed, 1)
	assert.Equal(t, followed.ID, feed[0].ID)
}

func TestPostRepository_UpdateKeepsPubDate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	leo := testutil.CreateUser(t, db, "leo")
	g := testutil.CreateGroup(t, db, "novels")
	pub := time.Now().Add(-24 * time.Hour).Truncate(time.Second)
	p := testutil.CreatePost(t, db, leo, g, "old", pub)

	require.NoError(t, repo.Update(ctx, &model.Post{ID: p.ID, Text: "new", GroupID: nil, Image: "posts/x.gif"}))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Text)
	assert.Nil(t, got.GroupID)
	assert.Equal(t, "posts/x.gif", got.Image)
	assert.True(t, pub.Equal(got.PubDate), "pub_date changed: %s -> %s", pub, got.PubDate)
}

func TestPostRepository_DeleteRemovesComments(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()
	leo := testutil.CreateUser(t, db, "leo")
	p := testutil.CreatePost(t, db, leo, nil, "text", time.Time{})
	require.NoError(t, comments.Create(ctx, &model.Comment{PostID: p.ID, AuthorID: leo.ID, Text: "c", Created: time.Now()}))

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.Zero(t, testutil.Count(t, db, &model.Comment{}))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), gorm.ErrRecordNotFound)

	_, err := repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGroupRepository_DeleteNullsPostGroup(t *testing.T) {
	db := testutil.NewDB(t)
	groups := NewGroupRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()
	leo := testutil.CreateUser(t, db, "leo")
	g := testutil.CreateGroup(t, db, "novels")
	p := testutil.CreatePost(t, db, leo, g, "text", time.Time{})

	require.NoError(t, groups.Delete(ctx, g.ID))

	got, err := posts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.GroupID)
	assert.Nil(t, got.Group)

	_, err = groups.GetBySlug(ctx, "novels")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGroupRepository_List(t *testing.T) {
	db := testutil.NewDB(t)
	groups := NewGroupRepository(db)
	ctx := context.Background()
	require.NoError(t, groups.Create(ctx, &model.Group{Title: "B", Slug: "b"}))
	require.NoError(t, groups.Create(ctx, &model.Group{Title: "A", Slug: "a"}))

	list, err := groups.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Slug)

	assert.Error(t, groups.Create(ctx, &model.Group{Title: "dup", Slug: "a"}), "slug must be unique")
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	comments := NewCommentRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	leo := testutil.CreateUser(t, db, "leo")
	anna := testutil.CreateUser(t, db, "anna")
	leoPost := testutil.CreatePost(t, db, leo, nil, "leo's", time.Time{})
	annaPost := testutil.CreatePost(t, db, anna, nil, "anna's", time.Time{})
	now := time.Now()
	require.NoError(t, comments.Create(ctx, &model.Comment{PostID: leoPost.ID, AuthorID: anna.ID, Text: "on leo", Created: now}))
	require.NoError(t, comments.Create(ctx, &model.Comment{PostID: annaPost.ID, AuthorID: leo.ID, Text: "by leo", Created: now}))
	require.NoError(t, comments.Create(ctx, &model.Comment{PostID: annaPost.ID, AuthorID: anna.ID, Text: "stays", Created: now}))
	_, err := follows.Create(ctx, anna.ID, leo.ID)
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, leo.ID))

	assert.EqualValues(t, 1, testutil.Count(t, db, &model.Post{}))
	assert.EqualValues(t, 1, testutil.Count(t, db, &model.Comment{}))
	assert.Zero(t, testutil.Count(t, db, &model.Follow{}))
	_, err = users.GetByUsername(ctx, "leo")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, users.Delete(ctx, leo.ID), gorm.ErrRecordNotFound)
}

func TestFollowRepository_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	follows := NewFollowRepository(db)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")

	created, err := follows.Create(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = follows.Create(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.EqualValues(t, 1, testutil.Count(t, db, &model.Follow{}))

	ok, err := follows.Exists(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := follows.CountFollowers(ctx, b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = follows.CountFollowing(ctx, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, follows.Delete(ctx, a.ID, b.ID))
	require.NoError(t, follows.Delete(ctx, a.ID, b.ID))
	ok, err = follows.Exists(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCommentRepository_ListNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	comments := NewCommentRepository(db)
	ctx := context.Background()
	leo := testutil.CreateUser(t, db, "leo")
	p := testutil.CreatePost(t, db, leo, nil, "text", time.Time{})
	now := time.Now()
	require.NoError(t, comments.Create(ctx, &model.Comment{PostID: p.ID, AuthorID: leo.ID, Text: "old", Created: now.Add(-time.Minute)}))
	require.NoError(t, comments.Create(ctx, &model.Comment{PostID: p.ID, AuthorID: leo.ID, Text: "new", Created: now}))

	list, err := comments.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Text)
	assert.Equal(t, "leo", list[0].Author.Username)

	n, err := comments.CountByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
