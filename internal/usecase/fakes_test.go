package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/internal/domain/service"
	"campusmarket/pkg/errors"
)

// memStore backs every in-memory repository so transactions can span collections.
type memStore struct {
	mu          sync.Mutex
	products    map[string]*entity.Product
	users       map[string]*entity.User
	carts       map[string]*entity.Cart
	orders      map[string]*entity.Order
	feedback    map[string]*entity.Feedback
	nextID      int
	failCommits error
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*entity.Product{},
		users:    map[string]*entity.User{},
		carts:    map[string]*entity.Cart{},
		orders:   map[string]*entity.Order{},
		feedback: map[string]*entity.Feedback{},
	}
}

func (s *memStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	c.Images = append([]string(nil), p.Images...)
	return &c
}

func copyCart(cart *entity.Cart) *entity.Cart {
	c := *cart
	c.Items = append([]entity.CartItem{}, cart.Items...)
	return &c
}

func copyOrder(o *entity.Order) *entity.Order {
	c := *o
	return &c
}

type memProductRepo struct{ s *memStore }

func (r memProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = r.s.id("product")
	}
	r.s.products[p.ID] = copyProduct(p)
	return nil
}

func (r memProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	return copyProduct(p), nil
}

func (r memProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]*entity.Product{}
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out[id] = copyProduct(p)
		}
	}
	return out, nil
}

func (r memProductRepo) List(ctx context.Context, filter entity.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	r.s.mu.Lock()
	var matched []*entity.Product
	for _, p := range r.s.products {
		if filter.Matches(p) {
			matched = append(matched, copyProduct(p))
		}
	}
	r.s.mu.Unlock()

	entity.SortProducts(matched, filter.Sort)
	total := int64(len(matched))
	if offset >= len(matched) {
		return []*entity.Product{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r memProductRepo) ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.SellerID == sellerID {
			out = append(out, copyProduct(p))
		}
	}
	return out, nil
}

func (r memProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return errors.NotFound("Product", nil)
	}
	r.s.products[p.ID] = copyProduct(p)
	return nil
}

func (r memProductRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

func (r memProductRepo) IncrementViews(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	p.Views++
	return copyProduct(p), nil
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *u
	r.s.users[u.ID] = &c
	return nil
}

func (r memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	c := *u
	return &c, nil
}

func (r memUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]*entity.User{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			c := *u
			out[id] = &c
		}
	}
	return out, nil
}

func (r memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r memUserRepo) Update(ctx context.Context, u *entity.User) error {
	return r.Create(ctx, u)
}

type memCartRepo struct{ s *memStore }

func (r memCartRepo) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.carts[userID]
	if !ok {
		return nil, errors.NotFound("Cart", nil)
	}
	return copyCart(c), nil
}

func (r memCartRepo) Save(ctx context.Context, cart *entity.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.carts[cart.UserID] = copyCart(cart)
	return nil
}

type memOrderRepo struct{ s *memStore }

func (r memOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return copyOrder(o), nil
}

func (r memOrderRepo) list(match func(o *entity.Order) bool) []*entity.Order {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.s.orders {
		if match(o) {
			out = append(out, copyOrder(o))
		}
	}
	return out
}

func (r memOrderRepo) ListByBuyerID(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	return r.list(func(o *entity.Order) bool { return o.BuyerID == buyerID }), nil
}

func (r memOrderRepo) ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Order, error) {
	return r.list(func(o *entity.Order) bool { return o.SellerID == sellerID }), nil
}

type memFeedbackRepo struct{ s *memStore }

func (r memFeedbackRepo) Create(ctx context.Context, f *entity.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *f
	r.s.feedback[f.ID] = &c
	return nil
}

func (r memFeedbackRepo) GetByID(ctx context.Context, id string) (*entity.Feedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.feedback[id]
	if !ok {
		return nil, errors.NotFound("Feedback", nil)
	}
	c := *f
	return &c, nil
}

func (r memFeedbackRepo) filter(match func(f *entity.Feedback) bool) []*entity.Feedback {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Feedback
	for _, f := range r.s.feedback {
		if match(f) {
			c := *f
			out = append(out, &c)
		}
	}
	return out
}

func (r memFeedbackRepo) List(ctx context.Context) ([]*entity.Feedback, error) {
	return r.filter(func(*entity.Feedback) bool { return true }), nil
}

func (r memFeedbackRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Feedback, error) {
	return r.filter(func(f *entity.Feedback) bool { return f.UserID == userID }), nil
}

func (r memFeedbackRepo) ListRecentPositive(ctx context.Context, minRating, limit int) ([]*entity.Feedback, error) {
	out := r.filter(func(f *entity.Feedback) bool { return f.Rating >= minRating && !f.IsAnonymous })
	sortFeedbackNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memFeedbackRepo) Update(ctx context.Context, f *entity.Feedback) error {
	return r.Create(ctx, f)
}

func (r memFeedbackRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.feedback, id)
	return nil
}

// memTransactor stages writes and applies them only when fn succeeds.
type memTransactor struct{ s *memStore }

type memTx struct {
	s        *memStore
	products map[string]string
	orders   map[string]*entity.Order
	cleared  []string
	wrote    bool
}

func (t memTransactor) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	tx := &memTx{s: t.s, products: map[string]string{}, orders: map[string]*entity.Order{}}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.s.failCommits != nil {
		return t.s.failCommits
	}
	for id, status := range tx.products {
		if p, ok := t.s.products[id]; ok {
			p.Status = status
		}
	}
	for id, o := range tx.orders {
		t.s.orders[id] = o
	}
	for _, userID := range tx.cleared {
		cart, ok := t.s.carts[userID]
		if !ok {
			cart = entity.NewCart(userID)
			t.s.carts[userID] = cart
		}
		cart.Clear()
	}
	return nil
}

func (tx *memTx) read() error {
	if tx.wrote {
		return fmt.Errorf("read after write in transaction")
	}
	return nil
}

func (tx *memTx) GetProduct(id string) (*entity.Product, error) {
	if err := tx.read(); err != nil {
		return nil, err
	}
	return memProductRepo{tx.s}.GetByID(context.Background(), id)
}

func (tx *memTx) GetOrder(id string) (*entity.Order, error) {
	if err := tx.read(); err != nil {
		return nil, err
	}
	return memOrderRepo{tx.s}.GetByID(context.Background(), id)
}

func (tx *memTx) SetProductStatus(id, status string) error {
	tx.wrote = true
	tx.products[id] = status
	return nil
}

func (tx *memTx) CreateOrder(o *entity.Order) error {
	tx.wrote = true
	tx.orders[o.ID] = copyOrder(o)
	return nil
}

func (tx *memTx) UpdateOrder(o *entity.Order) error {
	return tx.CreateOrder(o)
}

func (tx *memTx) ClearCart(userID string) error {
	tx.wrote = true
	tx.cleared = append(tx.cleared, userID)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []service.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(ctx context.Context, event service.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type memFeedbackCache struct {
	items       map[int][]entity.Testimonial
	invalidated int
}

func newMemFeedbackCache() *memFeedbackCache {
	return &memFeedbackCache{items: map[int][]entity.Testimonial{}}
}

func (c *memFeedbackCache) GetRecent(ctx context.Context, limit int) ([]entity.Testimonial, bool, error) {
	items, ok := c.items[limit]
	return items, ok, nil
}

func (c *memFeedbackCache) SetRecent(ctx context.Context, limit int, items []entity.Testimonial) error {
	c.items[limit] = items
	return nil
}

func (c *memFeedbackCache) InvalidateRecent(ctx context.Context) error {
	c.items = map[int][]entity.Testimonial{}
	c.invalidated++
	return nil
}

type memFileService struct {
	deleted []string
}

func (f *memFileService) UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error) {
	return "https://storage.example/" + folder + "/file", nil
}

func (f *memFileService) DeleteFile(ctx context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func (f *memFileService) Close() error { return nil }

// fakeAuth issues "token:<uid>" tokens for known email/password pairs.
type fakeAuth struct {
	passwords map[string]string
	uids      map[string]string
	next      int
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{passwords: map[string]string{}, uids: map[string]string{}}
}

func (a *fakeAuth) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	a.next++
	uid := fmt.Sprintf("uid-%d", a.next)
	a.passwords[email] = password
	a.uids[email] = uid
	return uid, nil
}

func (a *fakeAuth) SignIn(ctx context.Context, email, password string) (string, error) {
	if p, ok := a.passwords[email]; !ok || p != password {
		return "", fmt.Errorf("INVALID_LOGIN_CREDENTIALS")
	}
	return "token:" + a.uids[email], nil
}

func (a *fakeAuth) VerifyToken(ctx context.Context, token string) (string, error) {
	if !strings.HasPrefix(token, "token:") {
		return "", fmt.Errorf("invalid token")
	}
	return strings.TrimPrefix(token, "token:"), nil
}

func (a *fakeAuth) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	for email, id := range a.uids {
		if id == uid {
			a.passwords[email] = newPassword
			return nil
		}
	}
	return fmt.Errorf("no user %s", uid)
}
