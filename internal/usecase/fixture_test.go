package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"campusmarket/internal/domain/entity"
)

type fixture struct {
	store *memStore

	products *ProductUseCase
	carts    *CartUseCase
	orders   *OrderUseCase
	feedback *FeedbackUseCase

	events *recordingPublisher
	files  *memFileService
	cache  *memFeedbackCache
}

func newFixture(t *testing.T, strictTransitions bool) *fixture {
	t.Helper()

	s := newMemStore()
	f := &fixture{
		store:  s,
		events: &recordingPublisher{},
		files:  &memFileService{},
		cache:  newMemFeedbackCache(),
	}

	f.products = NewProductUseCase(memProductRepo{s}, memUserRepo{s}, f.files)
	f.carts = NewCartUseCase(memCartRepo{s}, memProductRepo{s}, memUserRepo{s})
	f.orders = NewOrderUseCase(memOrderRepo{s}, memProductRepo{s}, memUserRepo{s}, memTransactor{s}, f.events, strictTransitions)
	f.feedback = NewFeedbackUseCase(memFeedbackRepo{s}, memUserRepo{s}, f.cache)

	return f
}

func (f *fixture) seedUser(t *testing.T, id, name, role string) *entity.User {
	t.Helper()
	u := &entity.User{ID: id, Name: name, Email: id + "@campus.edu", Role: role}
	require.NoError(t, memUserRepo{f.store}.Create(context.Background(), u))
	return u
}

func (f *fixture) seedProduct(t *testing.T, sellerID, title string, price float64) *entity.Product {
	t.Helper()
	view, err := f.products.CreateProduct(context.Background(), sellerID, CreateProductInput{
		Title:       title,
		Description: title + " in good shape",
		Price:       price,
		Category:    "Books",
		Condition:   "Good",
	}, nil)
	require.NoError(t, err)
	return view.Product
}

func (f *fixture) product(t *testing.T, id string) *entity.Product {
	t.Helper()
	p, err := memProductRepo{f.store}.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func meeting() entity.MeetingDetails {
	return entity.MeetingDetails{
		Location: "Library",
		Date:     time.Now().Add(24 * time.Hour),
		TimeSlot: "10:00 AM - 11:00 AM",
	}
}
