package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/artconnect/artconnect-api/internal/imaging"
	"github.com/artconnect/artconnect-api/internal/model"
)

type fakeUsers struct {
	mu   sync.Mutex
	byID map[string]*model.User
	fail error
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*model.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) UpdateImage(_ context.Context, id, image string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	u.Image = image
	return true, nil
}

func (f *fakeUsers) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.User{}
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeArts struct {
	mu   sync.Mutex
	byID map[string]*model.Art
}

func newFakeArts(arts ...*model.Art) *fakeArts {
	f := &fakeArts{byID: map[string]*model.Art{}}
	for _, a := range arts {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeArts) Create(_ context.Context, art *model.Art) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *art
	f.byID[art.ID] = &cp
	return nil
}

func (f *fakeArts) GetByID(_ context.Context, id string) (*model.Art, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeArts) List(_ context.Context, filter model.ListFilter) ([]model.Art, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Art{}
	for _, a := range f.byID {
		if a.IsAvailable && (filter.Category == "" || a.Category == filter.Category) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeArts) ListByArtist(_ context.Context, artistID string) ([]model.Art, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Art{}
	for _, a := range f.byID {
		if a.ArtistID == artistID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeArts) ListByIDs(_ context.Context, ids []string) ([]model.Art, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Art{}
	for _, id := range ids {
		if a, ok := f.byID[id]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeArts) SetAvailability(_ context.Context, id string, available bool) (*model.Art, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	a.IsAvailable = available
	cp := *a
	return &cp, nil
}

func (f *fakeArts) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

type fakeEvents struct {
	mu   sync.Mutex
	byID map[string]*model.Event
}

func newFakeEvents(events ...*model.Event) *fakeEvents {
	f := &fakeEvents{byID: map[string]*model.Event{}}
	for _, e := range events {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEvents) Create(_ context.Context, event *model.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *event
	f.byID[event.ID] = &cp
	return nil
}

func (f *fakeEvents) GetByID(_ context.Context, id string) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeEvents) List(_ context.Context, _ model.ListFilter) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Event{}
	for _, e := range f.byID {
		if e.IsAvailable {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEvents) ListByArtist(_ context.Context, artistID string) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Event{}
	for _, e := range f.byID {
		if e.ArtistID == artistID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEvents) ListByIDs(_ context.Context, ids []string) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Event{}
	for _, id := range ids {
		if e, ok := f.byID[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEvents) SetAvailability(_ context.Context, id string, available bool) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	e.IsAvailable = available
	cp := *e
	return &cp, nil
}

func (f *fakeEvents) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

type fakeSocial struct {
	mu        sync.Mutex
	favorites []model.FavoriteRef
	favOwner  []string
	follows   map[string]map[string]bool
	users     *fakeUsers
}

func newFakeSocial(users *fakeUsers) *fakeSocial {
	return &fakeSocial{follows: map[string]map[string]bool{}, users: users}
}

func (f *fakeSocial) ToggleFavorite(_ context.Context, userID, itemID, itemType string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, ref := range f.favorites {
		if f.favOwner[i] == userID && ref.ItemID == itemID && ref.ItemType == itemType {
			f.favorites = append(f.favorites[:i], f.favorites[i+1:]...)
			f.favOwner = append(f.favOwner[:i], f.favOwner[i+1:]...)
			return false, nil
		}
	}
	f.favorites = append(f.favorites, model.FavoriteRef{ItemID: itemID, ItemType: itemType})
	f.favOwner = append(f.favOwner, userID)
	return true, nil
}

func (f *fakeSocial) ListFavorites(_ context.Context, userID string) ([]model.FavoriteRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.FavoriteRef{}
	for i, ref := range f.favorites {
		if f.favOwner[i] == userID {
			out = append(out, ref)
		}
	}
	return out, nil
}

func (f *fakeSocial) ToggleFollow(_ context.Context, userID, artistID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.follows[userID] == nil {
		f.follows[userID] = map[string]bool{}
	}
	if f.follows[userID][artistID] {
		delete(f.follows[userID], artistID)
		return false, nil
	}
	f.follows[userID][artistID] = true
	return true, nil
}

func (f *fakeSocial) ListFollowed(ctx context.Context, userID string) ([]model.User, error) {
	f.mu.Lock()
	ids := []string{}
	for id := range f.follows[userID] {
		ids = append(ids, id)
	}
	f.mu.Unlock()
	return f.users.ListByIDs(ctx, ids)
}

type fakeOrders struct {
	mu     sync.Mutex
	orders []model.Order
}

func (f *fakeOrders) Create(_ context.Context, order *model.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrders) ListArtIDs(_ context.Context, userID string) ([]string, error) {
	return f.ids(userID, model.ItemTypeArt), nil
}

func (f *fakeOrders) ListEventIDs(_ context.Context, userID string) ([]string, error) {
	return f.ids(userID, model.ItemTypeEvent), nil
}

func (f *fakeOrders) ids(userID, itemType string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []string{}
	for _, o := range f.orders {
		if o.UserID == userID && o.ItemType == itemType {
			out = append(out, o.ItemID)
		}
	}
	return out
}

// stubCompressor returns one fixed result per upload, or err
type stubCompressor struct {
	err     error
	batches int
	allowed []string
}

func (s *stubCompressor) ValidateFilename(name string) error {
	return imaging.ValidateFilename(name, s.allowed)
}

func (s *stubCompressor) Compress(_ context.Context, data []byte, p imaging.Profile) (*imaging.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &imaging.Result{Data: data, SizeBytes: len(data), QualityUsed: p.InitialQuality, Attempts: 1}, nil
}

func (s *stubCompressor) CompressBatch(ctx context.Context, uploads []imaging.Upload, p imaging.Profile) ([]*imaging.Result, error) {
	s.batches++
	out := make([]*imaging.Result, len(uploads))
	for i, u := range uploads {
		r, err := s.Compress(ctx, u.Data, p)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

type published struct {
	topic   string
	key     string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, published{topic: topic, key: key, payload: payload})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type countingCache struct {
	flushes int
	err     error
}

func (c *countingCache) Flush(context.Context) error {
	c.flushes++
	return c.err
}

var errBoom = errors.New("boom")
