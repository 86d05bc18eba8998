// Package client provides a Go client for the Threadhouse API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/threadhouse/threadhouse/internal/model"
)

// Client is a Threadhouse API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
	TokenExp   time.Time
}

// New creates a new Threadhouse client.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// List is the envelope every collection endpoint returns.
type List[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// Register creates a new account and stores its first token on the client.
func (c *Client) Register(username, password string) (model.Author, error) {
	resp, err := c.doRequest(http.MethodPost, "/auth/register/", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return model.Author{}, err
	}
	defer resp.Body.Close()

	var result struct {
		User      model.Author `json:"user"`
		Token     string       `json:"token"`
		ExpiresAt time.Time    `json:"expires_at"`
	}
	if err := decode(resp, http.StatusCreated, &result); err != nil {
		return model.Author{}, err
	}
	c.Token = result.Token
	c.TokenExp = result.ExpiresAt
	return result.User, nil
}

// Login obtains a bearer token and stores it on the client.
func (c *Client) Login(username, password string) error {
	resp, err := c.doRequest(http.MethodPost, "/auth/login/", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := decode(resp, http.StatusOK, &result); err != nil {
		return err
	}
	c.Token = result.Token
	c.TokenExp = result.ExpiresAt
	return nil
}

// IsAuthenticated returns true if the client has an unexpired token.
func (c *Client) IsAuthenticated() bool {
	return c.Token != "" && time.Now().Before(c.TokenExp)
}

// ListTopics fetches all topics. ordering may be empty for the default.
func (c *Client) ListTopics(ordering string) (List[model.Topic], error) {
	return listResource[model.Topic](c, "/topics/", ordering)
}

// CreateTopic creates a topic owned by the authenticated user.
func (c *Client) CreateTopic(title, description, urlName string) (*model.Topic, error) {
	resp, err := c.doRequest(http.MethodPost, "/topics/", map[string]string{
		"title":       title,
		"description": description,
		"url_name":    urlName,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var topic model.Topic
	if err := decode(resp, http.StatusCreated, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// GetTopic fetches one topic by its url_name.
func (c *Client) GetTopic(urlName string) (*model.Topic, error) {
	resp, err := c.doRequest(http.MethodGet, "/topics/"+urlName+"/", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var topic model.Topic
	if err := decode(resp, http.StatusOK, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// UpdateTopic applies a partial update. fields maps writable field names
// (title, description, url_name) to their new values.
func (c *Client) UpdateTopic(urlName string, fields map[string]string) (*model.Topic, error) {
	resp, err := c.doRequest(http.MethodPatch, "/topics/"+urlName+"/", fields)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var topic model.Topic
	if err := decode(resp, http.StatusOK, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// DeleteTopic deletes a topic and everything under it.
func (c *Client) DeleteTopic(urlName string) error {
	return c.deleteResource("/topics/" + urlName + "/")
}

// ListPosts fetches the posts under a topic.
func (c *Client) ListPosts(topic, ordering string) (List[model.Post], error) {
	return listResource[model.Post](c, "/topics/"+topic+"/posts/", ordering)
}

// CreatePost creates a post under a topic.
func (c *Client) CreatePost(topic, title, content string) (*model.Post, error) {
	resp, err := c.doRequest(http.MethodPost, "/topics/"+topic+"/posts/", map[string]string{
		"title":   title,
		"content": content,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var post model.Post
	if err := decode(resp, http.StatusCreated, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPost fetches one post within its topic.
func (c *Client) GetPost(topic string, postID int64) (*model.Post, error) {
	resp, err := c.doRequest(http.MethodGet, postPath(topic, postID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var post model.Post
	if err := decode(resp, http.StatusOK, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies a partial update (title, content).
func (c *Client) UpdatePost(topic string, postID int64, fields map[string]string) (*model.Post, error) {
	resp, err := c.doRequest(http.MethodPatch, postPath(topic, postID), fields)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var post model.Post
	if err := decode(resp, http.StatusOK, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post and its comments.
func (c *Client) DeletePost(topic string, postID int64) error {
	return c.deleteResource(postPath(topic, postID))
}

// ListComments fetches the comments under a post.
func (c *Client) ListComments(topic string, postID int64, ordering string) (List[model.Comment], error) {
	return listResource[model.Comment](c, postPath(topic, postID)+"comments/", ordering)
}

// CreateComment creates a comment under a post.
func (c *Client) CreateComment(topic string, postID int64, title, content string) (*model.Comment, error) {
	resp, err := c.doRequest(http.MethodPost, postPath(topic, postID)+"comments/", map[string]string{
		"title":   title,
		"content": content,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var comment model.Comment
	if err := decode(resp, http.StatusCreated, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetComment fetches one comment within its post.
func (c *Client) GetComment(topic string, postID, commentID int64) (*model.Comment, error) {
	resp, err := c.doRequest(http.MethodGet, commentPath(topic, postID, commentID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var comment model.Comment
	if err := decode(resp, http.StatusOK, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment applies a partial update (title, content).
func (c *Client) UpdateComment(topic string, postID, commentID int64, fields map[string]string) (*model.Comment, error) {
	resp, err := c.doRequest(http.MethodPatch, commentPath(topic, postID, commentID), fields)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var comment model.Comment
	if err := decode(resp, http.StatusOK, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment deletes a comment.
func (c *Client) DeleteComment(topic string, postID, commentID int64) error {
	return c.deleteResource(commentPath(topic, postID, commentID))
}

func postPath(topic string, postID int64) string {
	return fmt.Sprintf("/topics/%s/posts/%d/", topic, postID)
}

func commentPath(topic string, postID, commentID int64) string {
	return fmt.Sprintf("/topics/%s/posts/%d/comments/%d/", topic, postID, commentID)
}

func listResource[T any](c *Client, path, ordering string) (List[T], error) {
	if ordering != "" {
		path += "?ordering=" + ordering
	}
	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return List[T]{}, err
	}
	defer resp.Body.Close()

	var list List[T]
	if err := decode(resp, http.StatusOK, &list); err != nil {
		return List[T]{}, err
	}
	return list, nil
}

func (c *Client) deleteResource(path string) error {
	resp, err := c.doRequest(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete failed (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// doRequest performs an HTTP request, attaching the bearer token when set.
func (c *Client) doRequest(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return c.HTTPClient.Do(req)
}

func decode(resp *http.Response, want int, dest any) error {
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != want {
		return fmt.Errorf("request failed (%d): %s", resp.StatusCode, string(respBody))
	}
	return json.Unmarshal(respBody, dest)
}
