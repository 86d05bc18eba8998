package httpapp

import (
	"errors"
	"net/http"
	"time"

	"github.com/threadhouse/threadhouse/internal/model"
	"github.com/threadhouse/threadhouse/internal/perm"
)

// handleListComments godoc
//
//	@Summary		List comments under a post
//	@Description	Most recent first unless an ordering parameter overrides it.
//	@Tags			Comments
//	@Produce		json
//	@Param			topic		path		string	true	"Topic url_name"
//	@Param			post		path		int		true	"Post id"
//	@Param			ordering	query		string	false	"Order by id, title, created_at or updated_at; prefix with - for descending"
//	@Success		200			{object}	listResponse
//	@Failure		404			{object}	map[string]string
//	@Router			/topics/{topic}/posts/{post}/comments/ [get]
func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request, urlName, postSeg string) {
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
	comments, err := s.store.ListCommentsByPost(r.Context(), post.ID, listOpts(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	writeJSON(w, http.StatusOK, listResponse{Count: len(comments), Results: comments})
}

// handleCreateComment godoc
//
//	@Summary		Create a comment under a post
//	@Description	The post comes from the path and the author from the credential; neither is accepted from the body.
//	@Tags			Comments
//	@Accept			json
//	@Produce		json
//	@Param			topic	path		string	true	"Topic url_name"
//	@Param			post	path		int		true	"Post id"
//	@Param			comment	body		object	true	"title and content"
//	@Success		201		{object}	model.Comment
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/topics/{topic}/posts/{post}/comments/ [post]
func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request, urlName, postSeg string) {
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
	comment := model.Comment{
		Title:     req.Title,
		Content:   req.Content,
		PostID:    post.ID,
		PostTitle: post.Title,
		CreatedAt: now,
		UpdatedAt: now,
		Author:    model.Author{ID: identity.UserID, Username: identity.Username},
	}
	id, err := s.store.CreateComment(r.Context(), &comment)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	comment.ID = id
	writeJSON(w, http.StatusCreated, comment)
}

// handleGetComment godoc
//
//	@Summary	Retrieve a comment
//	@Tags		Comments
//	@Produce	json
//	@Param		topic	path		string	true	"Topic url_name"
//	@Param		post	path		int		true	"Post id"
//	@Param		comment	path		int		true	"Comment id"
//	@Success	200		{object}	model.Comment
//	@Failure	404		{object}	map[string]string
//	@Router		/topics/{topic}/posts/{post}/comments/{comment}/ [get]
func (s *Server) handleGetComment(w http.ResponseWriter, r *http.Request, urlName, postSeg, commentSeg string) {
	postID, ok := parseID(postSeg)
	if !ok {
		notFound(w)
		return
	}
	commentID, ok := parseID(commentSeg)
	if !ok {
		notFound(w)
		return
	}
	comment, err := s.resolver.ResolveComment(r.Context(), urlName, postID, commentID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// handleUpdateComment godoc
//
//	@Summary		Update a comment
//	@Description	Partial update; only the author may modify a comment. PUT and PATCH behave identically.
//	@Tags			Comments
//	@Accept			json
//	@Produce		json
//	@Param			topic	path		string	true	"Topic url_name"
//	@Param			post	path		int		true	"Post id"
//	@Param			comment	path		int		true	"Comment id"
//	@Param			fields	body		object	true	"Any of title, content"
//	@Success		200		{object}	model.Comment
//	@Failure		401		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/topics/{topic}/posts/{post}/comments/{comment}/ [patch]
func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request, urlName, postSeg, commentSeg string) {
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
	commentID, ok := parseID(commentSeg)
	if !ok {
		notFound(w)
		return
	}
	comment, err := s.resolver.ResolveComment(r.Context(), urlName, postID, commentID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if err := perm.Check(r.Method, identity, comment); err != nil {
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
		comment.Title = *req.Title
	}
	if req.Content != nil {
		comment.Content = *req.Content
	}
	if err := validateTitle(comment.Title); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := validateContent(comment.Content); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	comment.UpdatedAt = time.Unix(time.Now().Unix(), 0)
	if err := s.store.UpdateComment(r.Context(), &comment); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// handleDeleteComment godoc
//
//	@Summary		Delete a comment
//	@Tags			Comments
//	@Param			topic	path	string	true	"Topic url_name"
//	@Param			post	path	int		true	"Post id"
//	@Param			comment	path	int		true	"Comment id"
//	@Success		204
//	@Failure		401	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/topics/{topic}/posts/{post}/comments/{comment}/ [delete]
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request, urlName, postSeg, commentSeg string) {
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
	commentID, ok := parseID(commentSeg)
	if !ok {
		notFound(w)
		return
	}
	comment, err := s.resolver.ResolveComment(r.Context(), urlName, postID, commentID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if err := perm.Check(r.Method, identity, comment); err != nil {
		writePermError(w, err)
		return
	}

	if err := s.store.DeleteComment(r.Context(), comment.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
