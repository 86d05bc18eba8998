package model

import "time"

type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Author is the public projection of a User embedded in
// topic/post/comment representations.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (u User) Author() Author {
	return Author{ID: u.ID, Username: u.Username}
}

// Topic is the root of the nesting hierarchy, addressed by its
// url_name slug rather than its numeric id.
type Topic struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      Author    `json:"author"`
	Description string    `json:"description"`
	URLName     string    `json:"url_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t Topic) OwnerID() int64 { return t.Author.ID }

// Post belongs to exactly one Topic. TopicTitle carries the parent's
// title for serialization; TopicID is the actual reference.
type Post struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	TopicID    int64     `json:"-"`
	TopicTitle string    `json:"topic"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Author     Author    `json:"author"`
}

func (p Post) OwnerID() int64 { return p.Author.ID }

// Comment belongs to exactly one Post.
type Comment struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	PostID    int64     `json:"-"`
	PostTitle string    `json:"post"`
	Author    Author    `json:"author"`
}

func (c Comment) OwnerID() int64 { return c.Author.ID }

type Token struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}
