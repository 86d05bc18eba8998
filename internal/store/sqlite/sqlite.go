package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/threadhouse/threadhouse/internal/model"
	"github.com/threadhouse/threadhouse/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	// foreign_keys goes through the DSN so the driver sets it on every
	// pooled connection, not just the first one that runs a PRAGMA.
	// Cascade deletes depend on it.
	if strings.Contains(path, "?") {
		path += "&_pragma=foreign_keys(1)"
	} else {
		path += "?_pragma=foreign_keys(1)"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// migrations is an ordered list of SQL migrations.
// Each migration runs exactly once, tracked by schema_version table.
var migrations = []string{
	// Migration 1: Initial schema
	`
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	password_hash BLOB NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username);

CREATE TABLE IF NOT EXISTS topics (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	url_name TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	author_id INTEGER NOT NULL,
	FOREIGN KEY(author_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_topics_url_name ON topics(url_name);

CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	topic_id INTEGER NOT NULL,
	author_id INTEGER NOT NULL,
	FOREIGN KEY(topic_id) REFERENCES topics(id) ON DELETE CASCADE,
	FOREIGN KEY(author_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_posts_topic_id ON posts(topic_id);

CREATE TABLE IF NOT EXISTS comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	post_id INTEGER NOT NULL,
	author_id INTEGER NOT NULL,
	FOREIGN KEY(post_id) REFERENCES posts(id) ON DELETE CASCADE,
	FOREIGN KEY(author_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);

CREATE TABLE IF NOT EXISTS auth_tokens (
	token TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL,
	expires_at INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);
`,
	// Future migrations go here:
	// Migration 2: `ALTER TABLE ...`,
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return err
	}

	var currentVersion int
	row := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`)
	if err := row.Scan(&currentVersion); err != nil {
		return err
	}

	for i := currentVersion; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, i+1); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", i+1, err)
		}
	}

	return nil
}

// orderingColumns are the fields a client may order by. The ordering
// parameter uses the field name with an optional leading "-".
var orderingColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// orderClause builds an ORDER BY expression for the given table alias from a
// client ordering value, falling back to def when the value is empty or not
// whitelisted.
func orderClause(alias string, ordering, def string) string {
	value := strings.TrimSpace(ordering)
	if value == "" {
		value = def
	}
	dir := "ASC"
	if strings.HasPrefix(value, "-") {
		dir = "DESC"
		value = value[1:]
	}
	col, ok := orderingColumns[value]
	if !ok {
		return orderClause(alias, "", def)
	}
	return fmt.Sprintf("%s.%s %s", alias, col, dir)
}

func (s *Store) CreateTopic(ctx context.Context, topic *model.Topic) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO topics (title, description, url_name, created_at, updated_at, author_id)
VALUES (?, ?, ?, ?, ?, ?)
`, topic.Title, topic.Description, topic.URLName, topic.CreatedAt.Unix(), topic.UpdatedAt.Unix(), topic.Author.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, store.ErrDuplicateURLName
		}
		return 0, err
	}
	return res.LastInsertId()
}

const topicColumns = `t.id, t.title, t.description, t.url_name, t.created_at, t.updated_at, t.author_id, u.username`

func (s *Store) GetTopicBySlug(ctx context.Context, urlName string) (model.Topic, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+topicColumns+`
FROM topics t
LEFT JOIN users u ON u.id = t.author_id
WHERE t.url_name = ?
LIMIT 1
`, urlName)
	return scanTopic(row)
}

func (s *Store) ListTopics(ctx context.Context, opts store.ListOpts) ([]model.Topic, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+topicColumns+`
FROM topics t
LEFT JOIN users u ON u.id = t.author_id
ORDER BY `+orderClause("t", opts.Ordering, "id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []model.Topic
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}

func (s *Store) UpdateTopic(ctx context.Context, topic *model.Topic) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE topics SET title = ?, description = ?, url_name = ?, updated_at = ?
WHERE id = ?
`, topic.Title, topic.Description, topic.URLName, topic.UpdatedAt.Unix(), topic.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateURLName
		}
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTopic(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreatePost(ctx context.Context, post *model.Post) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO posts (title, content, created_at, updated_at, topic_id, author_id)
VALUES (?, ?, ?, ?, ?, ?)
`, post.Title, post.Content, post.CreatedAt.Unix(), post.UpdatedAt.Unix(), post.TopicID, post.Author.ID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const postColumns = `p.id, p.title, p.content, p.created_at, p.updated_at, p.topic_id, t.title, p.author_id, u.username`

func (s *Store) GetPost(ctx context.Context, id int64) (model.Post, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+postColumns+`
FROM posts p
LEFT JOIN topics t ON t.id = p.topic_id
LEFT JOIN users u ON u.id = p.author_id
WHERE p.id = ?
LIMIT 1
`, id)
	return scanPost(row)
}

func (s *Store) ListPostsByTopic(ctx context.Context, topicID int64, opts store.ListOpts) ([]model.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+postColumns+`
FROM posts p
LEFT JOIN topics t ON t.id = p.topic_id
LEFT JOIN users u ON u.id = p.author_id
WHERE p.topic_id = ?
ORDER BY `+orderClause("p", opts.Ordering, "-id"), topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (s *Store) UpdatePost(ctx context.Context, post *model.Post) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE posts SET title = ?, content = ?, updated_at = ?
WHERE id = ?
`, post.Title, post.Content, post.UpdatedAt.Unix(), post.ID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeletePost(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO comments (title, content, created_at, updated_at, post_id, author_id)
VALUES (?, ?, ?, ?, ?, ?)
`, comment.Title, comment.Content, comment.CreatedAt.Unix(), comment.UpdatedAt.Unix(), comment.PostID, comment.Author.ID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const commentColumns = `c.id, c.title, c.content, c.created_at, c.updated_at, c.post_id, p.title, c.author_id, u.username`

func (s *Store) GetComment(ctx context.Context, id int64) (model.Comment, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+commentColumns+`
FROM comments c
LEFT JOIN posts p ON p.id = c.post_id
LEFT JOIN users u ON u.id = c.author_id
WHERE c.id = ?
LIMIT 1
`, id)
	return scanComment(row)
}

func (s *Store) ListCommentsByPost(ctx context.Context, postID int64, opts store.ListOpts) ([]model.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+commentColumns+`
FROM comments c
LEFT JOIN posts p ON p.id = c.post_id
LEFT JOIN users u ON u.id = c.author_id
WHERE c.post_id = ?
ORDER BY `+orderClause("c", opts.Ordering, "-id"), postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (s *Store) UpdateComment(ctx context.Context, comment *model.Comment) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE comments SET title = ?, content = ?, updated_at = ?
WHERE id = ?
`, comment.Title, comment.Content, comment.UpdatedAt.Unix(), comment.ID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO users (username, password_hash, created_at)
VALUES (?, ?, ?)
`, user.Username, user.PasswordHash, user.CreatedAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, store.ErrDuplicateUsername
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) GetUser(ctx context.Context, id int64) (model.User, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at
FROM users
WHERE id = ?
`, id)
	return scanUser(row)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at
FROM users
WHERE username = ?
`, username)
	return scanUser(row)
}

func (s *Store) CreateToken(ctx context.Context, token model.Token) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO auth_tokens (token, user_id, expires_at, created_at)
VALUES (?, ?, ?, ?)
`, token.Token, token.UserID, token.ExpiresAt.Unix(), time.Now().Unix())
	return err
}

func (s *Store) GetToken(ctx context.Context, token string) (model.Token, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT token, user_id, expires_at
FROM auth_tokens
WHERE token = ?
`, token)
	var t model.Token
	var expires int64
	if err := row.Scan(&t.Token, &t.UserID, &expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Token{}, store.ErrNotFound
		}
		return model.Token{}, err
	}
	t.ExpiresAt = time.Unix(expires, 0)
	return t, nil
}

type scanner interface{ Scan(dest ...any) error }

func scanTopic(row scanner) (model.Topic, error) {
	var t model.Topic
	var created, updated int64
	var username sql.NullString
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.URLName, &created, &updated, &t.Author.ID, &username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Topic{}, store.ErrNotFound
		}
		return model.Topic{}, err
	}
	if username.Valid {
		t.Author.Username = username.String
	}
	t.CreatedAt = time.Unix(created, 0)
	t.UpdatedAt = time.Unix(updated, 0)
	return t, nil
}

func scanPost(row scanner) (model.Post, error) {
	var p model.Post
	var created, updated int64
	var topicTitle sql.NullString
	var username sql.NullString
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &created, &updated, &p.TopicID, &topicTitle, &p.Author.ID, &username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Post{}, store.ErrNotFound
		}
		return model.Post{}, err
	}
	if topicTitle.Valid {
		p.TopicTitle = topicTitle.String
	}
	if username.Valid {
		p.Author.Username = username.String
	}
	p.CreatedAt = time.Unix(created, 0)
	p.UpdatedAt = time.Unix(updated, 0)
	return p, nil
}

func scanComment(row scanner) (model.Comment, error) {
	var c model.Comment
	var created, updated int64
	var postTitle sql.NullString
	var username sql.NullString
	if err := row.Scan(&c.ID, &c.Title, &c.Content, &created, &updated, &c.PostID, &postTitle, &c.Author.ID, &username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Comment{}, store.ErrNotFound
		}
		return model.Comment{}, err
	}
	if postTitle.Valid {
		c.PostTitle = postTitle.String
	}
	if username.Valid {
		c.Author.Username = username.String
	}
	c.CreatedAt = time.Unix(created, 0)
	c.UpdatedAt = time.Unix(updated, 0)
	return c, nil
}

func scanUser(row scanner) (model.User, error) {
	var u model.User
	var created int64
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, store.ErrNotFound
		}
		return model.User{}, err
	}
	u.CreatedAt = time.Unix(created, 0)
	return u, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "PRIMARY KEY")
}
