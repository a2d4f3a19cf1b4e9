package service

import (
	"context"
	"encoding/base64"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/unisolve/backend/internal/model"
	"github.com/unisolve/backend/internal/repository"
	"github.com/unisolve/backend/internal/storage"
)

type fakeStorage struct {
	uploads []struct {
		filename string
		data     []byte
	}
	err error
}

func (f *fakeStorage) Upload(_ context.Context, filename string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, struct {
		filename string
		data     []byte
	}{filename, data})

	return "https://img.example.com/" + filename, nil
}

func newPostService(t *testing.T) (*PostService, *fakeStorage, repository.PostRepository, repository.CommentRepository) {
	t.Helper()

	database := newTestDB(t)
	userRepo := repository.NewUserRepository(database)
	postRepo := repository.NewPostRepository(database)
	commentRepo := repository.NewCommentRepository(database)

	seedUser(t, userRepo, "u1")

	store := &fakeStorage{}
	return NewPostService(postRepo, commentRepo, store), store, postRepo, commentRepo
}

func TestPostCreate(t *testing.T) {
	t.Parallel()

	t.Run("without image", func(t *testing.T) {
		svc, store, repo, _ := newPostService(t)

		id, err := svc.Create(context.Background(), "u1", CreatePostInput{
			Title:   "how do I",
			Content: "do the thing",
		})
		require.NoError(t, err)
		require.NotZero(t, id)
		require.Empty(t, store.uploads)

		post, err := repo.ByID(id)
		require.NoError(t, err)
		require.Equal(t, "u1", post.AuthorID)
		require.Nil(t, post.ImageURL)
		require.False(t, post.IsPrivate)
	})

	t.Run("with image file", func(t *testing.T) {
		svc, store, repo, _ := newPostService(t)

		id, err := svc.Create(context.Background(), "u1", CreatePostInput{
			IsPrivate:     true,
			Title:         "broken build",
			Content:       "see screenshot",
			ImageFile:     strings.NewReader("png-bytes"),
			ImageFilename: "screenshot.png",
		})
		require.NoError(t, err)

		require.Len(t, store.uploads, 1)
		require.Equal(t, "screenshot.png", store.uploads[0].filename)
		require.Equal(t, []byte("png-bytes"), store.uploads[0].data)

		post, err := repo.ByID(id)
		require.NoError(t, err)
		require.NotNil(t, post.ImageURL)
		require.Equal(t, "https://img.example.com/screenshot.png", *post.ImageURL)
		require.True(t, post.IsPrivate)
	})

	t.Run("with base64 image and data-uri prefix", func(t *testing.T) {
		svc, store, _, _ := newPostService(t)

		encoded := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
		_, err := svc.Create(context.Background(), "u1", CreatePostInput{
			Title:       "camera",
			Content:     "photo attached",
			ImageBase64: "data:image/jpeg;base64," + encoded,
		})
		require.NoError(t, err)

		require.Len(t, store.uploads, 1)
		require.Equal(t, "image_camera.jpg", store.uploads[0].filename)
		require.Equal(t, []byte("jpeg-bytes"), store.uploads[0].data)
	})

	t.Run("malformed base64", func(t *testing.T) {
		svc, _, _, _ := newPostService(t)

		_, err := svc.Create(context.Background(), "u1", CreatePostInput{
			Title:       "t",
			Content:     "c",
			ImageBase64: "%%not-base64%%",
		})
		require.ErrorIs(t, err, ErrInvalidBase64)
	})

	t.Run("failed upload aborts the post", func(t *testing.T) {
		svc, store, repo, _ := newPostService(t)
		store.err = &storage.UploadError{StatusCode: 500, Details: "disk full"}

		_, err := svc.Create(context.Background(), "u1", CreatePostInput{
			Title:         "t",
			Content:       "c",
			ImageFile:     strings.NewReader("x"),
			ImageFilename: "x.png",
		})
		var uploadErr *storage.UploadError
		require.ErrorAs(t, err, &uploadErr)

		posts, err := repo.ByAuthor("u1")
		require.NoError(t, err)
		require.Empty(t, posts)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _, _, _ := newPostService(t)

		_, err := svc.Create(context.Background(), "u1", CreatePostInput{Title: "", Content: "c"})
		require.ErrorIs(t, err, ErrMissingField)
	})
}

func TestPostListings(t *testing.T) {
	t.Parallel()

	svc, _, repo, _ := newPostService(t)

	base := time.Now().Add(-time.Hour)
	mk := func(title string, private bool, at time.Time) int64 {
		id, err := repo.Create(&model.Post{
			IsPrivate: private,
			AuthorID:  "u1",
			Title:     title,
			Content:   "body",
			CreatedAt: at,
		})
		require.NoError(t, err)
		return id
	}

	mk("old public", false, base)
	mk("private", true, base.Add(time.Minute))
	mk("new public", false, base.Add(2*time.Minute))

	t.Run("community hides private posts, newest first", func(t *testing.T) {
		posts, err := svc.Community()
		require.NoError(t, err)
		require.Len(t, posts, 2)
		require.Equal(t, "new public", posts[0].Title)
		require.Equal(t, "old public", posts[1].Title)
	})

	t.Run("history includes private posts", func(t *testing.T) {
		posts, err := svc.History("u1")
		require.NoError(t, err)
		require.Len(t, posts, 3)
		require.Equal(t, "new public", posts[0].Title)
	})

	t.Run("get unknown post", func(t *testing.T) {
		_, err := svc.Get(99999)
		require.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestCommentTree(t *testing.T) {
	t.Parallel()

	svc, _, postRepo, commentRepo := newPostService(t)

	postID, err := postRepo.Create(&model.Post{
		AuthorID:  "u1",
		Title:     "threaded",
		Content:   "body",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	mk := func(content string, parentID *int64, at time.Time) int64 {
		id, err := commentRepo.Create(&model.Comment{
			PostID:    postID,
			AuthorID:  "u1",
			Content:   content,
			CreatedAt: at,
			ParentID:  parentID,
		})
		require.NoError(t, err)
		return id
	}

	a := mk("A", nil, base)
	mk("B", &a, base.Add(time.Minute))
	c := mk("C", nil, base.Add(2*time.Minute))
	mk("D", &c, base.Add(3*time.Minute))

	nodes, count, err := svc.CommentTree(postID)
	require.NoError(t, err)
	require.Equal(t, 4, count)
	require.Len(t, nodes, 2)

	require.Equal(t, "A", nodes[0].Content)
	require.Len(t, nodes[0].Replies, 1)
	require.Equal(t, "B", nodes[0].Replies[0].Content)

	require.Equal(t, "C", nodes[1].Content)
	require.Len(t, nodes[1].Replies, 1)
	require.Equal(t, "D", nodes[1].Replies[0].Content)
}
