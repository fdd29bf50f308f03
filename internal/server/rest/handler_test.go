package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secret"

type stubUsers struct {
	mu    sync.Mutex
	users map[string]string
	order []string
	err   error
}

func newStubUsers() *stubUsers { return &stubUsers{users: map[string]string{}} }

func (s *stubUsers) Register(_ context.Context, email, password string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if email == "" || password == "" {
		return nil, common.ErrInvalidInput
	}
	if _, ok := s.users[email]; ok {
		return nil, common.ErrEmailTaken
	}
	s.users[email] = password
	s.order = append(s.order, email)
	return &models.User{ID: "id-" + email, Email: email, PasswordHash: "hash"}, nil
}

func (s *stubUsers) Login(_ context.Context, email, password string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	pw, ok := s.users[email]
	s.mu.Unlock()
	if !ok || pw != password {
		return "", common.ErrInvalidCredentials
	}
	return auth.GenerateToken(email, "id-"+email, []byte(testSecret), 24*time.Hour)
}

func (s *stubUsers) ListEmails(context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.order...), nil
}

func newTestRouter(us UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(logging.Nop{}, us, []byte(testSecret), []string{"http://localhost:5173"})
}

func do(t *testing.T, r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScenario_SignupLoginList(t *testing.T) {
	r := newTestRouter(newStubUsers())

	w := do(t, r, http.MethodPost, "/signup", `{"email":"a@x.com","password":"pw1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"User registered successfully"}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/login", `{"email":"a@x.com","password":"pw1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "Logged in successfully", login.Message)
	require.NotEmpty(t, login.Token)

	w = do(t, r, http.MethodGet, "/users", "", map[string]string{"Authorization": "Bearer " + login.Token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"email":"a@x.com"}]`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "pw1")

	w = do(t, r, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestSignup_EmailTaken(t *testing.T) {
	r := newTestRouter(newStubUsers())

	w := do(t, r, http.MethodPost, "/signup", `{"email":"a@x.com","password":"pw1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/signup", `{"email":"a@x.com","password":"pw2"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Email already in use"}`, w.Body.String())
}

func TestSignup_BadInput(t *testing.T) {
	r := newTestRouter(newStubUsers())

	w := do(t, r, http.MethodPost, "/signup", `{"email":""}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid input")

	w = do(t, r, http.MethodPost, "/signup", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"invalid request body"}`, w.Body.String())
}

func TestLogin_FailuresAreIdentical(t *testing.T) {
	r := newTestRouter(newStubUsers())

	w := do(t, r, http.MethodPost, "/signup", `{"email":"a@x.com","password":"pw1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPw := do(t, r, http.MethodPost, "/login", `{"email":"a@x.com","password":"nope"}`, nil)
	unknown := do(t, r, http.MethodPost, "/login", `{"email":"ghost@x.com","password":"pw1"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, wrongPw.Code, unknown.Code)
	assert.True(t, bytes.Equal(wrongPw.Body.Bytes(), unknown.Body.Bytes()))
	assert.JSONEq(t, `{"message":"Invalid email or password"}`, unknown.Body.String())
}

func TestListUsers_Guard(t *testing.T) {
	r := newTestRouter(newStubUsers())

	expired, err := auth.GenerateToken("a@x.com", "u1", []byte(testSecret), -time.Minute)
	require.NoError(t, err)
	foreign, err := auth.GenerateToken("a@x.com", "u1", []byte("other"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"no token segment", "Bearer", http.StatusUnauthorized},
		{"other scheme", "Basic YTpi", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusForbidden},
		{"expired token", "Bearer " + expired, http.StatusForbidden},
		{"wrong secret", "Bearer " + foreign, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var headers map[string]string
			if tt.header != "" {
				headers = map[string]string{"Authorization": tt.header}
			}
			w := do(t, r, http.MethodGet, "/users", "", headers)
			assert.Equal(t, tt.want, w.Code)
			assert.Empty(t, w.Body.String())
		})
	}
}

func TestListUsers_EmptyStore(t *testing.T) {
	r := newTestRouter(newStubUsers())

	tok, err := auth.GenerateToken("a@x.com", "u1", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	w := do(t, r, http.MethodGet, "/users", "", map[string]string{"Authorization": "Bearer " + tok})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestStoreErrors_AreBare500(t *testing.T) {
	us := newStubUsers()
	us.err = common.ErrStoreUnavailable
	r := newTestRouter(us)

	w := do(t, r, http.MethodPost, "/signup", `{"email":"a@x.com","password":"pw1"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(t, r, http.MethodPost, "/login", `{"email":"a@x.com","password":"pw1"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())

	tok, err := auth.GenerateToken("a@x.com", "u1", []byte(testSecret), time.Hour)
	require.NoError(t, err)
	w = do(t, r, http.MethodGet, "/users", "", map[string]string{"Authorization": "Bearer " + tok})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestLoginPageAndHealth(t *testing.T) {
	r := newTestRouter(newStubUsers())

	w := do(t, r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `<form id="login-form">`)

	w = do(t, r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(newStubUsers())

	w := do(t, r, http.MethodGet, "/healthz", "", nil)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	w = do(t, r, http.MethodGet, "/healthz", "", map[string]string{requestIDHeader: "req-1"})
	assert.Equal(t, "req-1", w.Header().Get(requestIDHeader))
}

func TestCORS(t *testing.T) {
	r := newTestRouter(newStubUsers())

	w := do(t, r, http.MethodOptions, "/login", "", map[string]string{
		"Origin":                        "http://localhost:5173",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Less(t, w.Code, 300)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(t, r, http.MethodOptions, "/login", "", map[string]string{
		"Origin":                        "http://evil.example",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	r := newTestRouter(panicUsers{newStubUsers()})

	w := do(t, r, http.MethodPost, "/login", `{"email":"a@x.com","password":"pw1"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type panicUsers struct{ *stubUsers }

func (panicUsers) Login(context.Context, string, string) (string, error) { panic("boom") }
