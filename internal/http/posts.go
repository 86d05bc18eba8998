package httpapp

import (
	"errors"
	"net/http"
	"time"

	"github.com/threadhouse/threadhouse/internal/model"
	"github.com/threadhouse/threadhouse/internal/perm"
)

// handleListPosts godoc
//
//	@Summary		List posts under a topic
//	@Description	Most recent first unless an ordering parameter overrides it.
//	@Tags			Posts
//	@Produce		json
//	@Param			topic		path		string	true	"Topic url_name"
//	@Param			ordering	query		string	false	"Order by id, title, created_at or updated_at; prefix with - for descending"
//	@Success		200			{object}	listResponse
//	@Failure		404			{object}	map[string]string
//	@Router			/topics/{topic}/posts/ [get]
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request, urlName string) {
	topic, err := s.resolver.ResolveTopic(r.Context(), urlName)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	posts, err := s.store.ListPostsByTopic(r.Context(), topic.ID, listOpts(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	writeJSON(w, http.StatusOK, listResponse{Count: len(posts), Results: posts})
}

// handleCreatePost godoc
//
//	@Summary		Create a post under a topic
//	@Description	The topic comes from the path and the author from the credential; neither is accepted from the body.
//	@Tags			Posts
//	@Accept			json
//	@Produce		json
//	@Param			topic	path		string	true	"Topic url_name"
//	@Param			post	body		object	true	"title and content"
//	@Success		201		{object}	model.Post
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/topics/{topic}/posts/ [post]
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request, urlName string) {
	identity := s.identity(r)
	if err := perm.RequireIdentity(r.Method, identity); err != nil {
		writePermError(w, err)
		return
	}

	topic, err := s.resolver.ResolveTopic(r.Context(), urlName)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}
	if err := validateTitle(req.Title); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := validateContent(req.Content); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	now := time.Unix(time.Now().Unix(), 0)
	post := model.Post{
		Title:      req.Title,
		Content:    req.Content,
		TopicID:    topic.ID,
		TopicTitle: topic.Title,
		CreatedAt:  now,
		UpdatedAt:  now,
		Author:     model.Author{ID: identity.UserID, Username: identity.Username},
	}
	id, err := s.store.CreatePost(r.Context(), &post)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	post.ID = id
	writeJSON(w, http.StatusCreated, post)
}

// handleGetPost godoc
//
//	@Summary	Retrieve a post
//	@Tags		Posts
//	@Produce	json
//	@Param		topic	path		string	true	"Topic url_name"
//	@Param		post	path		int		true	"Post id"
//	@Success	200		{object}	model.Post
//	@Failure	404		{object}	map[string]string
//	@Router		/topics/{topic}/posts/{post}/ [get]
func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request, urlName, postSeg string) {
	postID, ok := parseID(postSeg)
	if !ok {
		notFound(w)
		return
	}
	_, post, err := s.resolver.ResolvePost(r.Context(), urlName, postID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// handleUpdatePost godoc
//
//	@Summary		Update a post
//	@Description	Partial update; only the author may modify a post. PUT and PATCH behave identically.
//	@Tags			Posts
//	@Accept			json
//	@Produce		json
//	@Param			topic	path		string	true	"Topic url_name"
//	@Param			post	path		int		true	"Post id"
//	@Param			fields	body		object	true	"Any of title, content"
//	@Success		200		{object}	model.Post
//	@Failure		401		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/topics/{topic}/posts/{post}/ [patch]
func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request, urlName, postSeg string) {
	identity := s.identity(r)
	if err := perm.RequireIdentity(r.Method, identity); err != nil {
		writePermError(w, err)
		return
	}

	postID, ok := parseID(postSeg)
	if !ok {
		notFound(w)
		return
	}
	_, post, err := s.resolver.ResolvePost(r.Context(), urlName, postID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if err := perm.Check(r.Method, identity, post); err != nil {
		writePermError(w, err)
		return
	}

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if err := validateTitle(post.Title); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := validateContent(post.Content); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	post.UpdatedAt = time.Unix(time.Now().Unix(), 0)
	if err := s.store.UpdatePost(r.Context(), &post); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// handleDeletePost godoc
//
//	@Summary		Delete a post
//	@Description	Only the author may delete a post. Its comments are deleted with it.
//	@Tags			Posts
//	@Param			topic	path	string	true	"Topic url_name"
//	@Param			post	path	int		true	"Post id"
//	@Success		204
//	@Failure		401	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/topics/{topic}/posts/{post}/ [delete]
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request, urlName, postSeg string) {
	identity := s.identity(r)
	if err := perm.RequireIdentity(r.Method, identity); err != nil {
		writePermError(w, err)
		return
	}

	postID, ok := parseID(postSeg)
	if !ok {
		notFound(w)
		return
	}
	_, post, err := s.resolver.ResolvePost(r.Context(), urlName, postID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if err := perm.Check(r.Method, identity, post); err != nil {
		writePermError(w, err)
		return
	}

	if err := s.store.DeletePost(r.Context(), post.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
