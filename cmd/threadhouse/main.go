package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/threadhouse/threadhouse/internal/auth"
	"github.com/threadhouse/threadhouse/internal/client"
	"github.com/threadhouse/threadhouse/internal/config"
	httpapp "github.com/threadhouse/threadhouse/internal/http"
	"github.com/threadhouse/threadhouse/internal/store/sqlite"
)

// CLIConfig holds the CLI client configuration persisted to disk.
type CLIConfig struct {
	BaseURL  string `json:"base_url"`
	Username string `json:"username"`
	Token    string `json:"token"`
	TokenExp string `json:"token_expires"`
}

func main() {
	if len(os.Args) < 2 {
		runServer()
		return
	}

	cmd := os.Args[1]

	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		printUsage()
		return
	}

	if cmd == "-v" || cmd == "--version" || cmd == "version" {
		fmt.Println("threadhouse v0.1.0")
		return
	}

	if strings.HasPrefix(cmd, "-") {
		runServer()
		return
	}

	args := os.Args[2:]

	switch cmd {
	case "server", "serve":
		runServer()
	case "register":
		cmdRegister(args)
	case "login", "auth":
		cmdLogin(args)
	case "topic":
		cmdTopic(args)
	case "post", "submit":
		cmdPost(args)
	case "comment":
		cmdComment(args)
	case "delete", "rm":
		cmdDelete(args)
	case "read", "list":
		cmdRead(args)
	case "status", "whoami":
		cmdStatus(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`threadhouse - Nested discussion forum

Usage: threadhouse <command> [options]

Quick Start:
  threadhouse register --user alice --password s3cr3tpass
  threadhouse topic --title "Go" --slug go --description "All things Go"
  threadhouse post --topic go --title "Hello" --content "First post"

Client Commands:
  register            Create an account and authenticate
  login               Obtain a fresh token (when the old one expires)
  topic               Create a topic
  post                Post under a topic
  comment             Comment on a post
  delete              Delete your own topic, post or comment
  read                Browse topics, posts and comments
  status              Show current config and token status

Server:
  server              Start the Threadhouse server (default if no command)

Examples:
  threadhouse topic --title "Go" --slug go --description "All things Go"
  threadhouse post --topic go --title "Generics" --content "Finally."
  threadhouse comment --topic go --post 3 --title "Re: Generics" --content "+1"
  threadhouse read                                  # List topics
  threadhouse read --topic go                       # List posts in a topic
  threadhouse read --topic go --post 3              # View post with comments
  threadhouse delete --topic go --post 3

Environment Variables (server):
  THREADHOUSE_ADDR        Listen address (default: :8080)
  THREADHOUSE_DB          Database path (default: threadhouse.db)
  THREADHOUSE_TOKEN_TTL   Token lifetime (default: 24h)`)
}

// ============================================================================
// SERVER
// ============================================================================

func runServer() {
	cfg := config.Load()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer store.Close()

	authSvc := auth.NewService(store, cfg.TokenTTL)
	server := httpapp.NewServer(store, authSvc, cfg)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("threadhouse listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
}

// ============================================================================
// CLIENT COMMANDS
// ============================================================================

func cmdRegister(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	user := fs.String("user", "", "Username (required)")
	password := fs.String("password", "", "Password, at least 8 characters (required)")
	url := fs.String("url", "http://localhost:8080", "Threadhouse server URL")
	fs.Parse(args)

	if *user == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Error: --user and --password are required")
		fmt.Fprintln(os.Stderr, "Usage: threadhouse register --user <name> --password <password>")
		os.Exit(1)
	}

	c := client.New(strings.TrimSuffix(*url, "/"))
	author, err := c.Register(*user, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := CLIConfig{
		BaseURL:  c.BaseURL,
		Username: author.Username,
		Token:    c.Token,
		TokenExp: c.TokenExp.Format(time.RFC3339),
	}
	if err := saveCLIConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Registered '%s' (user %d)\n", author.Username, author.ID)
	fmt.Printf("✓ Authenticated (expires %s)\n", cfg.TokenExp)
}

func cmdLogin(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	user := fs.String("user", "", "Username (defaults to the saved one)")
	password := fs.String("password", "", "Password (required)")
	url := fs.String("url", "", "Threadhouse server URL (defaults to the saved one)")
	fs.Parse(args)

	cfg, _ := loadCLIConfig()
	if *user != "" {
		cfg.Username = *user
	}
	if *url != "" {
		cfg.BaseURL = strings.TrimSuffix(*url, "/")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Error: --user and --password are required")
		os.Exit(1)
	}

	c := client.New(cfg.BaseURL)
	if err := c.Login(cfg.Username, *password); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg.Token = c.Token
	cfg.TokenExp = c.TokenExp.Format(time.RFC3339)
	if err := saveCLIConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Authenticated as '%s'\n", cfg.Username)
	fmt.Printf("  Expires: %s\n", cfg.TokenExp)
}

func cmdTopic(args []string) {
	fs := flag.NewFlagSet("topic", flag.ExitOnError)
	title := fs.String("title", "", "Topic title (required)")
	slug := fs.String("slug", "", "URL name, unique slug (required)")
	description := fs.String("description", "", "Short description (required)")
	fs.Parse(args)

	if *title == "" || *slug == "" || *description == "" {
		fmt.Fprintln(os.Stderr, "Error: --title, --slug and --description are required")
		os.Exit(1)
	}

	c, err := loadAuthenticatedClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	topic, err := c.CreateTopic(*title, *description, *slug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Created topic: %s\n", topic.Title)
	fmt.Printf("  URL name: %s\n", topic.URLName)
}

func cmdPost(args []string) {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	topic := fs.String("topic", "", "Topic url_name (required)")
	title := fs.String("title", "", "Post title (required)")
	content := fs.String("content", "", "Post content (required)")
	fs.Parse(args)

	if *topic == "" || *title == "" || *content == "" {
		fmt.Fprintln(os.Stderr, "Error: --topic, --title and --content are required")
		os.Exit(1)
	}

	c, err := loadAuthenticatedClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	post, err := c.CreatePost(*topic, *title, *content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Posted: %s\n", post.Title)
	fmt.Printf("  ID: %d\n", post.ID)
}

func cmdComment(args []string) {
	fs := flag.NewFlagSet("comment", flag.ExitOnError)
	topic := fs.String("topic", "", "Topic url_name (required)")
	postID := fs.Int64("post", 0, "Post ID (required)")
	title := fs.String("title", "", "Comment title (required)")
	content := fs.String("content", "", "Comment content (required)")
	fs.Parse(args)

	if *topic == "" || *postID == 0 || *title == "" || *content == "" {
		fmt.Fprintln(os.Stderr, "Error: --topic, --post, --title and --content are required")
		os.Exit(1)
	}

	c, err := loadAuthenticatedClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	comment, err := c.CreateComment(*topic, *postID, *title, *content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Commented on post %d\n", *postID)
	fmt.Printf("  ID: %d\n", comment.ID)
}

func cmdDelete(args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	topic := fs.String("topic", "", "Topic url_name (required)")
	postID := fs.Int64("post", 0, "Post ID")
	commentID := fs.Int64("comment", 0, "Comment ID")
	fs.Parse(args)

	if *topic == "" {
		fmt.Fprintln(os.Stderr, "Error: --topic is required")
		fmt.Fprintln(os.Stderr, "Usage: threadhouse delete --topic <slug> [--post <id> [--comment <id>]]")
		os.Exit(1)
	}
	if *commentID != 0 && *postID == 0 {
		fmt.Fprintln(os.Stderr, "Error: --comment requires --post")
		os.Exit(1)
	}

	c, err := loadAuthenticatedClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *commentID != 0:
		err = c.DeleteComment(*topic, *postID, *commentID)
	case *postID != 0:
		err = c.DeletePost(*topic, *postID)
	default:
		err = c.DeleteTopic(*topic)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *commentID != 0:
		fmt.Printf("✓ Deleted comment %d\n", *commentID)
	case *postID != 0:
		fmt.Printf("✓ Deleted post %d\n", *postID)
	default:
		fmt.Printf("✓ Deleted topic '%s'\n", *topic)
	}
}

func cmdRead(args []string) {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	topic := fs.String("topic", "", "Browse one topic's posts")
	postID := fs.Int64("post", 0, "View a post with its comments")
	ordering := fs.String("ordering", "", "Order by id, title, created_at or updated_at (prefix with - for descending)")
	fs.Parse(args)

	cfg, _ := loadCLIConfig()
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	c := client.New(baseURL)

	if *postID != 0 {
		if *topic == "" {
			fmt.Fprintln(os.Stderr, "Error: --post requires --topic")
			os.Exit(1)
		}
		post, err := c.GetPost(*topic, *postID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\n%s\n", post.Title)
		fmt.Printf("  Topic: %s | By: %s | %s\n", post.TopicTitle, post.Author.Username, post.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("\n  %s\n", post.Content)

		comments, err := c.ListComments(*topic, *postID, *ordering)
		if err == nil && comments.Count > 0 {
			fmt.Printf("\n  --- Comments (%d) ---\n", comments.Count)
			for _, comment := range comments.Results {
				fmt.Printf("  [%d] %s: %s\n", comment.ID, comment.Author.Username, comment.Content)
			}
		}
		return
	}

	if *topic != "" {
		posts, err := c.ListPosts(*topic, *ordering)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\nPosts in %s (%d)\n\n", *topic, posts.Count)
		for _, p := range posts.Results {
			fmt.Printf("#%d %s\n", p.ID, p.Title)
			fmt.Printf("   By %s | %s\n\n", p.Author.Username, p.CreatedAt.Format("2006-01-02 15:04"))
		}
		return
	}

	topics, err := c.ListTopics(*ordering)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nTopics (%d)\n\n", topics.Count)
	for _, t := range topics.Results {
		fmt.Printf("%s (%s)\n", t.Title, t.URLName)
		fmt.Printf("   %s | By %s\n\n", t.Description, t.Author.Username)
	}
}

func cmdStatus(args []string) {
	cfg, err := loadCLIConfig()
	if err != nil {
		fmt.Println("Status: Not initialized")
		fmt.Println("\nRun: threadhouse register --user <name> --password <password>")
		return
	}

	fmt.Printf("User:   %s\n", cfg.Username)
	fmt.Printf("Server: %s\n", cfg.BaseURL)

	if cfg.Token == "" {
		fmt.Println("Token:  Not authenticated")
		fmt.Println("\nRun: threadhouse login --password <password>")
	} else {
		exp, _ := time.Parse(time.RFC3339, cfg.TokenExp)
		if time.Now().After(exp) {
			fmt.Println("Token:  Expired")
			fmt.Println("\nRun: threadhouse login --password <password>")
		} else {
			fmt.Printf("Token:  Valid until %s\n", cfg.TokenExp)
		}
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func cliConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".threadhouse", "config.json")
}

func loadCLIConfig() (CLIConfig, error) {
	data, err := os.ReadFile(cliConfigPath())
	if err != nil {
		return CLIConfig{}, errors.New("not initialized")
	}
	var cfg CLIConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, err
	}
	return cfg, nil
}

func saveCLIConfig(cfg CLIConfig) error {
	path := cliConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, _ := json.MarshalIndent(cfg, "", "  ")
	return os.WriteFile(path, data, 0600)
}

func loadAuthenticatedClient() (*client.Client, error) {
	cfg, err := loadCLIConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Token == "" {
		return nil, errors.New("not authenticated - run 'threadhouse login'")
	}
	if cfg.TokenExp != "" {
		exp, _ := time.Parse(time.RFC3339, cfg.TokenExp)
		if time.Now().After(exp) {
			return nil, errors.New("token expired - run 'threadhouse login'")
		}
	}

	c := client.New(cfg.BaseURL)
	c.Token = cfg.Token
	c.TokenExp, _ = time.Parse(time.RFC3339, cfg.TokenExp)
	return c, nil
}
