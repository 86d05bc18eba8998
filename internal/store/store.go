package store

import (
	"context"
	"errors"

	"github.com/threadhouse/threadhouse/internal/model"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateURLName  = errors.New("url_name already taken")
	ErrDuplicateUsername = errors.New("username already taken")
)

// ListOpts controls collection ordering. Ordering is a field name with an
// optional leading "-" for descending, validated against the resource's
// whitelist; an empty or unknown value falls back to the resource default.
type ListOpts struct {
	Ordering string
}

type Store interface {
	TopicStore
	PostStore
	CommentStore
	UserStore
	TokenStore
	Close() error
}

type TopicStore interface {
	CreateTopic(ctx context.Context, topic *model.Topic) (int64, error)
	GetTopicBySlug(ctx context.Context, urlName string) (model.Topic, error)
	ListTopics(ctx context.Context, opts ListOpts) ([]model.Topic, error)
	UpdateTopic(ctx context.Context, topic *model.Topic) error
	DeleteTopic(ctx context.Context, id int64) error
}

type PostStore interface {
	CreatePost(ctx context.Context, post *model.Post) (int64, error)
	GetPost(ctx context.Context, id int64) (model.Post, error)
	ListPostsByTopic(ctx context.Context, topicID int64, opts ListOpts) ([]model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id int64) error
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) (int64, error)
	GetComment(ctx context.Context, id int64) (model.Comment, error)
	ListCommentsByPost(ctx context.Context, postID int64, opts ListOpts) ([]model.Comment, error)
	UpdateComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, id int64) error
}

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) (int64, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
}

type TokenStore interface {
	CreateToken(ctx context.Context, token model.Token) error
	GetToken(ctx context.Context, token string) (model.Token, error)
}
