// Package scope resolves the parent chain encoded in nested resource paths
// (topic slug, then post id) into loaded entities, so handlers operate on
// collections already restricted to the right parent.
package scope

import (
	"context"

	"github.com/threadhouse/threadhouse/internal/model"
	"github.com/threadhouse/threadhouse/internal/store"
)

type Resolver struct {
	store store.Store
}

func NewResolver(st store.Store) *Resolver {
	return &Resolver{store: st}
}

// ResolveTopic looks up the topic named by the path's slug segment.
// Returns store.ErrNotFound when no topic has that url_name.
func (r *Resolver) ResolveTopic(ctx context.Context, urlName string) (model.Topic, error) {
	return r.store.GetTopicBySlug(ctx, urlName)
}

// ResolvePost resolves the two-level chain topic slug -> post id. A post
// that exists but lives under a different topic than the path names is
// treated as absent: the path is the public contract, and honoring it
// prevents reads across topic boundaries.
func (r *Resolver) ResolvePost(ctx context.Context, urlName string, postID int64) (model.Topic, model.Post, error) {
	topic, err := r.store.GetTopicBySlug(ctx, urlName)
	if err != nil {
		return model.Topic{}, model.Post{}, err
	}
	post, err := r.store.GetPost(ctx, postID)
	if err != nil {
		return model.Topic{}, model.Post{}, err
	}
	if post.TopicID != topic.ID {
		return model.Topic{}, model.Post{}, store.ErrNotFound
	}
	return topic, post, nil
}

// ResolveComment resolves the full chain topic slug -> post id -> comment
// id, with the same strict parent check at each level.
func (r *Resolver) ResolveComment(ctx context.Context, urlName string, postID, commentID int64) (model.Comment, error) {
	_, post, err := r.ResolvePost(ctx, urlName, postID)
	if err != nil {
		return model.Comment{}, err
	}
	comment, err := r.store.GetComment(ctx, commentID)
	if err != nil {
		return model.Comment{}, err
	}
	if comment.PostID != post.ID {
		return model.Comment{}, store.ErrNotFound
	}
	return comment, nil
}
