package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/threadhouse/threadhouse/internal/client"
	"github.com/threadhouse/threadhouse/internal/model"
)

var users = []struct {
	name     string
	password string
}{
	{"alice", "correct-horse-battery"},
	{"bob", "hunter2hunter2"},
	{"carol", "p4ssw0rd-carol"},
	{"dave", "dave-digs-forums"},
	{"erin", "erin-was-here-1"},
}

var topics = []struct {
	title       string
	slug        string
	description string
}{
	{"Go", "go", "The Go programming language"},
	{"Databases", "databases", "Storage engines, schemas, queries"},
	{"Distributed Systems", "distsys", "Consensus, replication, failure"},
	{"Show & Tell", "show-and-tell", "Things you built"},
	{"Meta", "meta", "About this forum"},
}

var posts = []struct {
	topic   string
	title   string
	content string
}{
	{"go", "Error wrapping patterns", "How do you structure error wrapping across package boundaries? fmt.Errorf with %w everywhere feels noisy."},
	{"go", "Generics two years in", "Now that generics have settled, where do they actually pull their weight in your codebases?"},
	{"databases", "SQLite in production", "We run SQLite behind a single-writer API server and it has been rock solid. Ask me anything."},
	{"databases", "Migrations without downtime", "Expand-contract has worked well for us. Curious what everyone else does."},
	{"distsys", "Raft is simpler than you think", "Most of the difficulty is in the edges: snapshots, membership change, and client sessions."},
	{"show-and-tell", "A forum backend in a weekend", "Nested topics, posts and comments with token auth. Happy to share the schema."},
	{"meta", "Ordering parameters", "You can pass ?ordering=-created_at on any listing. Handy for digests."},
}

var comments = []struct {
	title   string
	content string
}{
	{"Agreed", "This matches my experience exactly."},
	{"Counterpoint", "We tried this and went back. The edge cases bit us."},
	{"Numbers?", "Has anyone benchmarked this? Would love to see latency figures."},
	{"Follow-up", "Would read a longer write-up on this."},
	{"Nice", "Clean approach. Thanks for sharing."},
	{"Question", "How does this behave under concurrent writers?"},
	{"Same here", "We landed on the same design independently."},
	{"Caveat", "Worth noting this only holds for small datasets."},
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Threadhouse server URL")
	flag.Parse()

	log.Printf("Seeding forum at %s...\n", *baseURL)

	var clients []*client.Client
	for _, u := range users {
		c := client.New(*baseURL)
		if _, err := c.Register(u.name, u.password); err != nil {
			// Already seeded? Fall back to login.
			if loginErr := c.Login(u.name, u.password); loginErr != nil {
				log.Fatalf("register %s: %v", u.name, err)
			}
		}
		log.Printf("✓ User ready: %s", u.name)
		clients = append(clients, c)
	}

	for _, t := range topics {
		idx := rand.Intn(len(clients))
		if _, err := clients[idx].CreateTopic(t.title, t.description, t.slug); err != nil {
			log.Printf("✗ Failed to create topic %s: %v", t.slug, err)
			continue
		}
		log.Printf("✓ Topic: %s (by %s)", t.slug, users[idx].name)
	}

	var created []*model.Post
	for _, p := range posts {
		idx := rand.Intn(len(clients))
		post, err := clients[idx].CreatePost(p.topic, p.title, p.content)
		if err != nil {
			log.Printf("✗ Failed to post: %v", err)
			continue
		}
		created = append(created, post)
		log.Printf("✓ Post #%d: %s (by %s)", post.ID, post.Title, users[idx].name)

		// Small delay to spread out created_at times
		time.Sleep(50 * time.Millisecond)
	}

	postTopic := map[int64]string{}
	for i, p := range posts {
		if i < len(created) {
			postTopic[created[i].ID] = p.topic
		}
	}

	for _, post := range created {
		numComments := rand.Intn(4) + 1
		for i := 0; i < numComments; i++ {
			idx := rand.Intn(len(clients))
			c := comments[rand.Intn(len(comments))]

			comment, err := clients[idx].CreateComment(postTopic[post.ID], post.ID, c.title, c.content)
			if err != nil {
				log.Printf("✗ Failed to comment: %v", err)
				continue
			}
			log.Printf("✓ Comment #%d on post #%d (by %s)", comment.ID, post.ID, users[idx].name)
		}
	}

	fmt.Println("\n=== Seed Complete ===")
	fmt.Printf("Users:  %d\n", len(users))
	fmt.Printf("Topics: %d\n", len(topics))
	fmt.Printf("Posts:  %d\n", len(created))
	fmt.Println("\nView at:", *baseURL)
}
