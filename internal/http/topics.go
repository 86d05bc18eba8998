package httpapp

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/threadhouse/threadhouse/internal/model"
	"github.com/threadhouse/threadhouse/internal/perm"
)

const (
	maxTitleLen       = 80
	maxDescriptionLen = 140
	maxURLNameLen     = 30
	maxContentLen     = 1000
)

// slugPattern matches the url_name charset: letters, digits, hyphen and
// underscore.
var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Length limits count characters, not bytes.
func validateTitle(title string) error {
	if title == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return fmt.Errorf("title must be at most %d characters", maxTitleLen)
	}
	return nil
}

func validateContent(content string) error {
	if content == "" {
		return errors.New("content is required")
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return fmt.Errorf("content must be at most %d characters", maxContentLen)
	}
	return nil
}

func validateTopic(topic model.Topic) error {
	if err := validateTitle(topic.Title); err != nil {
		return err
	}
	if topic.Description == "" {
		return errors.New("description is required")
	}
	if utf8.RuneCountInString(topic.Description) > maxDescriptionLen {
		return fmt.Errorf("description must be at most %d characters", maxDescriptionLen)
	}
	if topic.URLName == "" {
		return errors.New("url_name is required")
	}
	if utf8.RuneCountInString(topic.URLName) > maxURLNameLen {
		return fmt.Errorf("url_name must be at most %d characters", maxURLNameLen)
	}
	if !slugPattern.MatchString(topic.URLName) {
		return errors.New("url_name may only contain letters, numbers, hyphens and underscores")
	}
	return nil
}

// handleListTopics godoc
//
//	@Summary		List topics
//	@Tags			Topics
//	@Produce		json
//	@Param			ordering	query		string	false	"Order by id, title, created_at or updated_at; prefix with - for descending"
//	@Success		200			{object}	listResponse
//	@Router			/topics/ [get]
func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.store.ListTopics(r.Context(), listOpts(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if topics == nil {
		topics = []model.Topic{}
	}
	writeJSON(w, http.StatusOK, listResponse{Count: len(topics), Results: topics})
}

// handleCreateTopic godoc
//
//	@Summary		Create a topic
//	@Description	The authenticated user becomes the topic's author; any author field in the body is ignored.
//	@Tags			Topics
//	@Accept			json
//	@Produce		json
//	@Param			topic	body		object	true	"title, description and url_name"
//	@Success		201		{object}	model.Topic
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/topics/ [post]
func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)
	if err := perm.RequireIdentity(r.Method, identity); err != nil {
		writePermError(w, err)
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URLName     string `json:"url_name"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	// Whole seconds, matching what the store persists, so the create
	// response is identical to every later read.
	now := time.Unix(time.Now().Unix(), 0)
	topic := model.Topic{
		Title:       req.Title,
		Description: req.Description,
		URLName:     req.URLName,
		CreatedAt:   now,
		UpdatedAt:   now,
		Author:      model.Author{ID: identity.UserID, Username: identity.Username},
	}
	if err := validateTopic(topic); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id, err := s.store.CreateTopic(r.Context(), &topic)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	topic.ID = id
	writeJSON(w, http.StatusCreated, topic)
}

// handleGetTopic godoc
//
//	@Summary	Retrieve a topic by its url_name
//	@Tags		Topics
//	@Produce	json
//	@Param		topic	path		string	true	"Topic url_name"
//	@Success	200		{object}	model.Topic
//	@Failure	404		{object}	map[string]string
//	@Router		/topics/{topic}/ [get]
func (s *Server) handleGetTopic(w http.ResponseWriter, r *http.Request, urlName string) {
	topic, err := s.resolver.ResolveTopic(r.Context(), urlName)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

// handleUpdateTopic godoc
//
//	@Summary		Update a topic
//	@Description	Partial update; only the author may modify a topic. PUT and PATCH behave identically.
//	@Tags			Topics
//	@Accept			json
//	@Produce		json
//	@Param			topic	path		string	true	"Topic url_name"
//	@Param			fields	body		object	true	"Any of title, description, url_name"
//	@Success		200		{object}	model.Topic
//	@Failure		401		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/topics/{topic}/ [patch]
func (s *Server) handleUpdateTopic(w http.ResponseWriter, r *http.Request, urlName string) {
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
	if err := perm.Check(r.Method, identity, topic); err != nil {
		writePermError(w, err)
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		URLName     *string `json:"url_name"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}
	if req.Title != nil {
		topic.Title = *req.Title
	}
	if req.Description != nil {
		topic.Description = *req.Description
	}
	if req.URLName != nil {
		topic.URLName = *req.URLName
	}
	if err := validateTopic(topic); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	topic.UpdatedAt = time.Unix(time.Now().Unix(), 0)
	if err := s.store.UpdateTopic(r.Context(), &topic); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

// handleDeleteTopic godoc
//
//	@Summary		Delete a topic
//	@Description	Only the author may delete a topic. Its posts and their comments are deleted with it.
//	@Tags			Topics
//	@Param			topic	path	string	true	"Topic url_name"
//	@Success		204
//	@Failure		401	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/topics/{topic}/ [delete]
func (s *Server) handleDeleteTopic(w http.ResponseWriter, r *http.Request, urlName string) {
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
	if err := perm.Check(r.Method, identity, topic); err != nil {
		writePermError(w, err)
		return
	}

	if err := s.store.DeleteTopic(r.Context(), topic.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
