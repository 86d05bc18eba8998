package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/threadhouse/threadhouse/internal/model"
	"github.com/threadhouse/threadhouse/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func createTestUser(t *testing.T, st *Store, username string) model.User {
	t.Helper()
	user := model.User{
		Username:     username,
		PasswordHash: []byte("not-a-real-hash"),
		CreatedAt:    time.Now(),
	}
	id, err := st.CreateUser(context.Background(), &user)
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	user.ID = id
	return user
}

func createTestTopic(t *testing.T, st *Store, author model.User, urlName string) model.Topic {
	t.Helper()
	now := time.Now()
	topic := model.Topic{
		Title:       "Topic " + urlName,
		Description: "Test topic",
		URLName:     urlName,
		CreatedAt:   now,
		UpdatedAt:   now,
		Author:      author.Author(),
	}
	id, err := st.CreateTopic(context.Background(), &topic)
	if err != nil {
		t.Fatalf("create topic %s: %v", urlName, err)
	}
	topic.ID = id
	return topic
}

func createTestPost(t *testing.T, st *Store, author model.User, topic model.Topic, title string) model.Post {
	t.Helper()
	now := time.Now()
	post := model.Post{
		Title:     title,
		Content:   "Content of " + title,
		TopicID:   topic.ID,
		CreatedAt: now,
		UpdatedAt: now,
		Author:    author.Author(),
	}
	id, err := st.CreatePost(context.Background(), &post)
	if err != nil {
		t.Fatalf("create post %s: %v", title, err)
	}
	post.ID = id
	return post
}

func TestTopicLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")

	topic := createTestTopic(t, st, alice, "go")

	got, err := st.GetTopicBySlug(ctx, "go")
	if err != nil {
		t.Fatalf("get topic: %v", err)
	}
	if got.ID != topic.ID {
		t.Fatalf("expected id %d, got %d", topic.ID, got.ID)
	}
	if got.Author.Username != "alice" {
		t.Fatalf("expected author alice, got %q", got.Author.Username)
	}

	got.Description = "Updated description"
	got.UpdatedAt = time.Now()
	if err := st.UpdateTopic(ctx, &got); err != nil {
		t.Fatalf("update topic: %v", err)
	}
	updated, _ := st.GetTopicBySlug(ctx, "go")
	if updated.Description != "Updated description" {
		t.Fatalf("description not updated: %q", updated.Description)
	}

	if err := st.DeleteTopic(ctx, topic.ID); err != nil {
		t.Fatalf("delete topic: %v", err)
	}
	if _, err := st.GetTopicBySlug(ctx, "go"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDuplicateURLName(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")

	createTestTopic(t, st, alice, "go")
	second := createTestTopic(t, st, alice, "rust")

	now := time.Now()
	dup := model.Topic{
		Title:       "Go again",
		Description: "Duplicate slug",
		URLName:     "go",
		CreatedAt:   now,
		UpdatedAt:   now,
		Author:      alice.Author(),
	}
	if _, err := st.CreateTopic(ctx, &dup); !errors.Is(err, store.ErrDuplicateURLName) {
		t.Fatalf("expected ErrDuplicateURLName on create, got %v", err)
	}

	second.URLName = "go"
	second.UpdatedAt = time.Now()
	if err := st.UpdateTopic(ctx, &second); !errors.Is(err, store.ErrDuplicateURLName) {
		t.Fatalf("expected ErrDuplicateURLName on update, got %v", err)
	}
}

func TestDuplicateUsername(t *testing.T) {
	st := newTestStore(t)
	createTestUser(t, st, "alice")

	dup := model.User{Username: "alice", PasswordHash: []byte("x"), CreatedAt: time.Now()}
	if _, err := st.CreateUser(context.Background(), &dup); !errors.Is(err, store.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestCascadeDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")

	topic := createTestTopic(t, st, alice, "go")
	post := createTestPost(t, st, alice, topic, "First post")

	now := time.Now()
	comment := model.Comment{
		Title:     "Re: First post",
		Content:   "A comment",
		PostID:    post.ID,
		CreatedAt: now,
		UpdatedAt: now,
		Author:    alice.Author(),
	}
	commentID, err := st.CreateComment(ctx, &comment)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := st.DeleteTopic(ctx, topic.ID); err != nil {
		t.Fatalf("delete topic: %v", err)
	}
	if _, err := st.GetPost(ctx, post.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("post should be gone with its topic, got %v", err)
	}
	if _, err := st.GetComment(ctx, commentID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("comment should be gone with its topic, got %v", err)
	}
}

func TestCascadeOnFreshConnection(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")
	topic := createTestTopic(t, st, alice, "go")
	post := createTestPost(t, st, alice, topic, "First post")

	// Pin the pool's only connection so the delete below runs on a
	// freshly opened one, which must also enforce foreign keys.
	conn, err := st.db.Conn(ctx)
	if err != nil {
		t.Fatalf("pin connection: %v", err)
	}
	defer conn.Close()

	if err := st.DeleteTopic(ctx, topic.ID); err != nil {
		t.Fatalf("delete topic: %v", err)
	}
	if _, err := st.GetPost(ctx, post.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("post should cascade on topic delete, got %v", err)
	}
}

func TestParentTitles(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")

	topic := createTestTopic(t, st, alice, "go")
	post := createTestPost(t, st, alice, topic, "First post")

	gotPost, err := st.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if gotPost.TopicTitle != topic.Title {
		t.Fatalf("expected topic title %q, got %q", topic.Title, gotPost.TopicTitle)
	}

	now := time.Now()
	comment := model.Comment{
		Title:     "Re",
		Content:   "c",
		PostID:    post.ID,
		CreatedAt: now,
		UpdatedAt: now,
		Author:    alice.Author(),
	}
	id, err := st.CreateComment(ctx, &comment)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	gotComment, err := st.GetComment(ctx, id)
	if err != nil {
		t.Fatalf("get comment: %v", err)
	}
	if gotComment.PostTitle != post.Title {
		t.Fatalf("expected post title %q, got %q", post.Title, gotComment.PostTitle)
	}
}

func TestPostOrdering(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")
	topic := createTestTopic(t, st, alice, "go")

	first := createTestPost(t, st, alice, topic, "Older")
	second := createTestPost(t, st, alice, topic, "Newer")

	// Default ordering is most recent first.
	posts, err := st.ListPostsByTopic(ctx, topic.ID, store.ListOpts{})
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != second.ID {
		t.Fatalf("expected newest post first, got id %d", posts[0].ID)
	}

	posts, err = st.ListPostsByTopic(ctx, topic.ID, store.ListOpts{Ordering: "id"})
	if err != nil {
		t.Fatalf("list posts ascending: %v", err)
	}
	if posts[0].ID != first.ID {
		t.Fatalf("expected oldest post first with ordering=id, got id %d", posts[0].ID)
	}

	// Unknown ordering fields fall back to the default.
	posts, err = st.ListPostsByTopic(ctx, topic.ID, store.ListOpts{Ordering: "score; DROP TABLE posts"})
	if err != nil {
		t.Fatalf("list posts bogus ordering: %v", err)
	}
	if posts[0].ID != second.ID {
		t.Fatalf("bogus ordering should use the default, got id %d", posts[0].ID)
	}
}

func TestTopicDefaultOrdering(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")

	a := createTestTopic(t, st, alice, "a-topic")
	createTestTopic(t, st, alice, "b-topic")

	topics, err := st.ListTopics(ctx, store.ListOpts{})
	if err != nil {
		t.Fatalf("list topics: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(topics))
	}
	// Topics default to ascending id.
	if topics[0].ID != a.ID {
		t.Fatalf("expected first created topic first, got id %d", topics[0].ID)
	}

	topics, err = st.ListTopics(ctx, store.ListOpts{Ordering: "-id"})
	if err != nil {
		t.Fatalf("list topics descending: %v", err)
	}
	if topics[0].ID == a.ID {
		t.Fatalf("expected reversed order with ordering=-id")
	}
}
