package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"storeit/storage-api/model"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeStore is an in-memory ObjectStore. Error fields make individual
// operations fail on demand.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string

	putErr error
	getErr error
	delErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects: map[string][]byte{},
		types:   map[string]string{},
	}
}

func (f *fakeStore) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = b
	f.types[key] = contentType
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (io.ReadCloser, int64, string, error) {
	if f.getErr != nil {
		return nil, 0, "", f.getErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.objects[key]
	if !ok {
		return nil, 0, "", fmt.Errorf("no such key %q", key)
	}

	return io.NopCloser(bytes.NewReader(b)), int64(len(b)), f.types[key], nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	if f.delErr != nil {
		return f.delErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	delete(f.types, key)
	return nil
}

func (f *fakeStore) contentType(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.types[key]
}

func (f *fakeStore) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// fakeMailer records dispatched codes instead of talking to SMTP.
type fakeMailer struct {
	mu    sync.Mutex
	codes []string
	to    []string
	err   error
}

func (m *fakeMailer) SendOTP(code, sendTo string) error {
	if m.err != nil {
		return m.err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes = append(m.codes, code)
	m.to = append(m.to, sendTo)
	return nil
}

func (m *fakeMailer) lastCode(t *testing.T) string {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.codes, "no OTP mail was sent")
	return m.codes[len(m.codes)-1]
}

func newTestAPI(t *testing.T) (*API, *fakeStore, *fakeMailer) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	viper.Set("upload.max_size", int64(50)<<20)
	viper.Set("storage.max_usage", int64(2)<<30)
	viper.Set("aws.bucket", "test-bucket")
	viper.Set("app.endpoint_url", "http://localhost:8080")
	viper.Set("app.project_id", "storeit")
	viper.Set("app.avatar_url", "/assets/images/avatar-placeholder.png")
	viper.Set("host.ssl.enabled", false)
	viper.Set("session.ttl_hours", 1)
	viper.Set("otp.ttl_minutes", 10)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.User{}, model.File{}, model.Session{}, model.OTPToken{}))

	store := newFakeStore()
	mailer := &fakeMailer{}

	a := &API{
		DB:    db,
		Store: store,
		Mail:  mailer,
		Cache: newResponseCache(time.Minute),
	}
	a.registerRoutes()

	return a, store, mailer
}

func doJSON(a *API, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// login walks the whole OTP flow for the given email and returns the
// session cookie.
func login(t *testing.T, a *API, m *fakeMailer, fullName, email string) *http.Cookie {
	t.Helper()

	w := doJSON(a, http.MethodPost, "/api/auth/sign-up", gin.H{
		"fullName": fullName,
		"email":    email,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	accountID, _ := decodeBody(t, w)["accountId"].(string)
	require.NotEmpty(t, accountID)

	w = doJSON(a, http.MethodPost, "/api/auth/verify", gin.H{
		"accountId": accountID,
		"password":  m.lastCode(t),
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == "storeit_session" && c.Value != "" {
			return c
		}
	}

	t.Fatal("no session cookie set")
	return nil
}

// upload pushes a file through the multipart endpoint.
func upload(t *testing.T, a *API, cookie *http.Cookie, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}
