package httpapp_test

import (
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/threadhouse/threadhouse/internal/auth"
	"github.com/threadhouse/threadhouse/internal/client"
	"github.com/threadhouse/threadhouse/internal/config"
	httpapp "github.com/threadhouse/threadhouse/internal/http"
	"github.com/threadhouse/threadhouse/internal/store/sqlite"
)

// TestEndToEnd drives a real server over TCP through the client package:
// register, create the whole topic/post/comment chain, read it back, then
// tear it down.
func TestEndToEnd(t *testing.T) {
	st, err := sqlite.Open("file:e2e_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	cfg := config.Config{Addr: ":0", TokenTTL: time.Hour}
	authSvc := auth.NewService(st, cfg.TokenTTL)
	server := httpapp.NewServer(st, authSvc, cfg)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	httpServer := &http.Server{Handler: server}
	go func() {
		_ = httpServer.Serve(listener)
	}()
	defer httpServer.Close()

	baseURL := "http://" + listener.Addr().String()

	c := client.New(baseURL)
	author, err := c.Register("e2e-user", "e2e-password")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !c.IsAuthenticated() {
		t.Fatal("client should hold a valid token after register")
	}

	topic, err := c.CreateTopic("E2E Topic", "Made by the e2e test", "e2e")
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	if topic.Author.ID != author.ID {
		t.Fatalf("topic author mismatch: %+v", topic.Author)
	}

	post, err := c.CreatePost("e2e", "E2E Post", "Hello from the e2e test")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.TopicTitle != "E2E Topic" {
		t.Fatalf("expected parent title on post, got %q", post.TopicTitle)
	}

	comment, err := c.CreateComment("e2e", post.ID, "Re: E2E Post", "First!")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	comments, err := c.ListComments("e2e", post.ID, "")
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if comments.Count != 1 || comments.Results[0].ID != comment.ID {
		t.Fatalf("unexpected comment listing: %+v", comments)
	}

	updated, err := c.UpdatePost("e2e", post.ID, map[string]string{"title": "E2E Post v2"})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if updated.Title != "E2E Post v2" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}

	if err := c.DeleteTopic("e2e"); err != nil {
		t.Fatalf("delete topic: %v", err)
	}
	if _, err := c.GetPost("e2e", post.ID); err == nil {
		t.Fatal("post should be gone after topic delete")
	}
}
