package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/artconnect/artconnect-api/internal/config"
	"github.com/artconnect/artconnect-api/internal/imaging"
	"github.com/artconnect/artconnect-api/internal/model"
	"github.com/artconnect/artconnect-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	artistToken   = "artist-token"
	customerToken = "customer-token"
)

type stubAuth struct {
	registerErr error
	loginErr    error
	loggedOut   string
}

func (s *stubAuth) Register(_ context.Context, in *model.UserRegister) (*model.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &model.User{ID: "new-user", Fullname: in.Fullname, Email: in.Email, Type: in.Type}, nil
}

func (s *stubAuth) Login(_ context.Context, in *model.UserLogin) (*model.LoginResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &model.LoginResponse{Message: "Login successful", Token: artistToken, UserID: "artist-1"}, nil
}

func (s *stubAuth) Logout(_ context.Context, userID string) {
	s.loggedOut = userID
}

func (s *stubAuth) ValidateToken(token string) (*service.Claims, error) {
	switch token {
	case artistToken:
		return &service.Claims{UserID: "artist-1", UserType: model.UserTypeArtist}, nil
	case customerToken:
		return &service.Claims{UserID: "customer-1", UserType: model.UserTypeCustomer}, nil
	}
	return nil, service.ErrInvalidToken
}

type stubUsers struct {
	err     error
	upload  imaging.Upload
	order   *model.OrderCreate
	toggled []string
}

func (s *stubUsers) GetDetails(_ context.Context, id string) (*model.UserDetails, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.UserDetails{User: model.User{ID: id}}, nil
}

func (s *stubUsers) UpdateImage(_ context.Context, id string, upload imaging.Upload) (*model.ImageUploadResponse, error) {
	s.upload = upload
	if s.err != nil {
		return nil, s.err
	}
	return &model.ImageUploadResponse{Message: "Image updated successfully", Image: "aW1n"}, nil
}

func (s *stubUsers) ToggleFavorite(_ context.Context, userID, itemID, itemType string) (bool, error) {
	s.toggled = []string{userID, itemID, itemType}
	return true, s.err
}

func (s *stubUsers) GetFavorites(context.Context, string) (*model.Favorites, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Favorites{Arts: []model.Art{}, Events: []model.Event{}}, nil
}

func (s *stubUsers) ToggleFollow(_ context.Context, userID, artistID string) (bool, error) {
	s.toggled = []string{userID, artistID}
	return false, s.err
}

func (s *stubUsers) CompleteOrder(_ context.Context, in *model.OrderCreate) (*model.Order, error) {
	s.order = in
	if s.err != nil {
		return nil, s.err
	}
	return &model.Order{ID: "order-1", UserID: in.UserID, ItemID: in.ItemID, ItemType: in.ItemType}, nil
}

type stubArts struct {
	err       error
	artistID  string
	created   *model.ArtCreate
	uploads   []imaging.Upload
	filter    model.ListFilter
	available *bool
}

func (s *stubArts) Create(_ context.Context, artistID string, in *model.ArtCreate, uploads []imaging.Upload) (*model.Art, []model.ImageReport, error) {
	s.artistID, s.created, s.uploads = artistID, in, uploads
	if s.err != nil {
		return nil, nil, s.err
	}
	return &model.Art{ID: "art-1", Title: in.Title, ArtistID: artistID}, make([]model.ImageReport, len(uploads)), nil
}

func (s *stubArts) List(_ context.Context, filter model.ListFilter) ([]model.Art, error) {
	s.filter = filter
	return []model.Art{{ID: "art-1"}}, s.err
}

func (s *stubArts) Get(_ context.Context, id string) (*model.Art, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Art{ID: id}, nil
}

func (s *stubArts) SetAvailability(_ context.Context, userID, id string, available bool) (*model.Art, error) {
	s.artistID, s.available = userID, &available
	if s.err != nil {
		return nil, s.err
	}
	return &model.Art{ID: id, IsAvailable: available}, nil
}

type stubEvents struct {
	err     error
	created *model.EventCreate
	uploads []imaging.Upload
}

func (s *stubEvents) Create(_ context.Context, artistID string, in *model.EventCreate, uploads []imaging.Upload) (*model.Event, []model.ImageReport, error) {
	s.created, s.uploads = in, uploads
	if s.err != nil {
		return nil, nil, s.err
	}
	return &model.Event{ID: "event-1", Title: in.Title, ArtistID: artistID, Date: in.Date, Time: in.Time}, nil, nil
}

func (s *stubEvents) List(context.Context, model.ListFilter) ([]model.Event, error) {
	return []model.Event{}, s.err
}

func (s *stubEvents) Get(_ context.Context, id string) (*model.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Event{ID: id}, nil
}

func (s *stubEvents) SetAvailability(_ context.Context, _ string, id string, available bool) (*model.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Event{ID: id, IsAvailable: available}, nil
}

type testServer struct {
	router http.Handler
	auth   *stubAuth
	users  *stubUsers
	arts   *stubArts
	events *stubEvents
}

func testConfig() *config.Config {
	return &config.Config{
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
		Upload: config.UploadConfig{MaxFiles: 3, MaxFileSize: 1 << 20},
		Redis:  config.RedisConfig{CacheTTL: time.Minute, CachePrefix: "test"},
	}
}

func newTestServer(cfg *config.Config) *testServer {
	s := &testServer{
		auth:   &stubAuth{},
		users:  &stubUsers{},
		arts:   &stubArts{},
		events: &stubEvents{},
	}
	s.router = NewRouter(RouterDeps{
		Auth:   s.auth,
		Users:  s.users,
		Arts:   s.arts,
		Events: s.events,
		Config: cfg,
		Logger: zap.NewNop(),
	})
	return s
}

func (s *testServer) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type formFile struct {
	name string
	data []byte
}

func multipartRequest(t *testing.T, path string, fields map[string]string, field string, files []formFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(field, f.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write(f.data)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

var errStore = errors.New("connection refused")
