package httpapp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/threadhouse/threadhouse/internal/auth"
	"github.com/threadhouse/threadhouse/internal/config"
	"github.com/threadhouse/threadhouse/internal/perm"
	"github.com/threadhouse/threadhouse/internal/scope"
	"github.com/threadhouse/threadhouse/internal/store"

	_ "github.com/threadhouse/threadhouse/docs" // swagger docs

	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

type Server struct {
	store    store.Store
	auth     *auth.Service
	resolver *scope.Resolver
	cfg      config.Config
}

func NewServer(st store.Store, authSvc *auth.Service, cfg config.Config) *Server {
	return &Server{
		store:    st,
		auth:     authSvc,
		resolver: scope.NewResolver(st),
		cfg:      cfg,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/swagger/") {
		httpSwagger.WrapHandler.ServeHTTP(w, r)
		return
	}

	segments := splitPath(r.URL.Path)

	switch {
	case len(segments) == 1 && segments[0] == "health-check":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleHealthCheck(w, r)

	case len(segments) == 1 && segments[0] == "api-docs.json":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.serveOpenAPIJSON(w, r)

	case len(segments) == 2 && segments[0] == "auth" && segments[1] == "register":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleRegister(w, r)

	case len(segments) == 2 && segments[0] == "auth" && segments[1] == "login":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleLogin(w, r)

	case len(segments) == 1 && segments[0] == "topics":
		switch r.Method {
		case http.MethodGet:
			s.handleListTopics(w, r)
		case http.MethodPost:
			s.handleCreateTopic(w, r)
		default:
			methodNotAllowed(w)
		}

	case len(segments) == 2 && segments[0] == "topics":
		s.dispatchDetail(w, r,
			func() { s.handleGetTopic(w, r, segments[1]) },
			func() { s.handleUpdateTopic(w, r, segments[1]) },
			func() { s.handleDeleteTopic(w, r, segments[1]) },
		)

	case len(segments) == 3 && segments[0] == "topics" && segments[2] == "posts":
		switch r.Method {
		case http.MethodGet:
			s.handleListPosts(w, r, segments[1])
		case http.MethodPost:
			s.handleCreatePost(w, r, segments[1])
		default:
			methodNotAllowed(w)
		}

	case len(segments) == 4 && segments[0] == "topics" && segments[2] == "posts":
		s.dispatchDetail(w, r,
			func() { s.handleGetPost(w, r, segments[1], segments[3]) },
			func() { s.handleUpdatePost(w, r, segments[1], segments[3]) },
			func() { s.handleDeletePost(w, r, segments[1], segments[3]) },
		)

	case len(segments) == 5 && segments[0] == "topics" && segments[2] == "posts" && segments[4] == "comments":
		switch r.Method {
		case http.MethodGet:
			s.handleListComments(w, r, segments[1], segments[3])
		case http.MethodPost:
			s.handleCreateComment(w, r, segments[1], segments[3])
		default:
			methodNotAllowed(w)
		}

	case len(segments) == 6 && segments[0] == "topics" && segments[2] == "posts" && segments[4] == "comments":
		s.dispatchDetail(w, r,
			func() { s.handleGetComment(w, r, segments[1], segments[3], segments[5]) },
			func() { s.handleUpdateComment(w, r, segments[1], segments[3], segments[5]) },
			func() { s.handleDeleteComment(w, r, segments[1], segments[3], segments[5]) },
		)

	default:
		notFound(w)
	}
}

// dispatchDetail routes a detail path to retrieve/update/delete. PUT shares
// the partial-update handler with PATCH.
func (s *Server) dispatchDetail(w http.ResponseWriter, r *http.Request, get, update, del func()) {
	switch r.Method {
	case http.MethodGet:
		get()
	case http.MethodPatch, http.MethodPut:
		update()
	case http.MethodDelete:
		del()
	default:
		methodNotAllowed(w)
	}
}

// handleHealthCheck godoc
//
//	@Summary		Liveness probe
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	map[string]string	"Constant success payload"
//	@Router			/health-check/ [get]
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) serveOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write([]byte(doc))
}

// identity resolves the request's bearer credential to an authenticated
// identity, or nil for anonymous (absent, malformed, expired or unknown
// token). The permission policy decides what anonymous may do.
func (s *Server) identity(r *http.Request) *perm.Identity {
	header := r.Header.Get("Authorization")
	var bearer string
	switch {
	case strings.HasPrefix(header, "Bearer "):
		bearer = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	case strings.HasPrefix(header, "Token "):
		// Older clients send "Token" instead of "Bearer".
		bearer = strings.TrimSpace(strings.TrimPrefix(header, "Token "))
	default:
		return nil
	}
	identity, err := s.auth.Authenticate(r.Context(), bearer)
	if err != nil {
		return nil
	}
	return &identity
}

type listResponse struct {
	Count   int `json:"count"`
	Results any `json:"results"`
}

func listOpts(r *http.Request) store.ListOpts {
	return store.ListOpts{Ordering: r.URL.Query().Get("ordering")}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// writePermError maps policy errors to their status codes.
func writePermError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, perm.ErrAuthRequired):
		writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, perm.ErrForbidden):
		writeError(w, http.StatusForbidden, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

// writeStoreError maps store lookup failures; everything unexpected is a 500.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		notFound(w)
	case errors.Is(err, store.ErrDuplicateURLName), errors.Is(err, store.ErrDuplicateUsername):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func readJSON(body io.ReadCloser, dest any) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(dest)
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, errors.New("not found"))
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func parseID(value string) (int64, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
