package app

import (
	"context"
	"errors"
	"testing"

	"github.com/storelane/shopcore/internal/cart/domain"
)

type fakeCartRepo struct {
	items  map[int64]domain.CartItem // keyed by cart item id
	nextID int64
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: map[int64]domain.CartItem{}}
}

func (r *fakeCartRepo) List(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	var out []domain.CartItem
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeCartRepo) GetByProduct(ctx context.Context, userID, productID int64) (domain.CartItem, error) {
	for _, it := range r.items {
		if it.UserID == userID && it.ProductID == productID {
			return it, nil
		}
	}
	return domain.CartItem{}, ErrItemNotFound
}

func (r *fakeCartRepo) Upsert(ctx context.Context, userID, productID, quantity int64) (domain.CartItem, error) {
	for id, it := range r.items {
		if it.UserID == userID && it.ProductID == productID {
			it.Quantity += quantity
			r.items[id] = it
			return it, nil
		}
	}
	r.nextID++
	it := domain.CartItem{ID: r.nextID, UserID: userID, ProductID: productID, Quantity: quantity}
	r.items[it.ID] = it
	return it, nil
}

func (r *fakeCartRepo) SetQuantity(ctx context.Context, userID, productID, quantity int64) (domain.CartItem, error) {
	for id, it := range r.items {
		if it.UserID == userID && it.ProductID == productID {
			it.Quantity = quantity
			r.items[id] = it
			return it, nil
		}
	}
	return domain.CartItem{}, ErrItemNotFound
}

func (r *fakeCartRepo) Remove(ctx context.Context, userID, cartItemID int64) error {
	it, ok := r.items[cartItemID]
	if !ok || it.UserID != userID {
		return ErrItemNotFound
	}
	delete(r.items, cartItemID)
	return nil
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc := NewService(newFakeCartRepo())
		for _, qty := range []int64{0, -3} {
			if _, err := svc.AddItem(ctx, 1, 10, qty); !errors.Is(err, ErrBadQuantity) {
				t.Fatalf("quantity %d: expected ErrBadQuantity, got %v", qty, err)
			}
		}
	})

	t.Run("repeated add accumulates onto one row", func(t *testing.T) {
		repo := newFakeCartRepo()
		svc := NewService(repo)

		if _, err := svc.AddItem(ctx, 1, 10, 2); err != nil {
			t.Fatalf("first add failed: %v", err)
		}
		it, err := svc.AddItem(ctx, 1, 10, 3)
		if err != nil {
			t.Fatalf("second add failed: %v", err)
		}
		if it.Quantity != 5 {
			t.Fatalf("expected quantity 5, got %d", it.Quantity)
		}
		items, _ := svc.ListItems(ctx, 1)
		if len(items) != 1 {
			t.Fatalf("expected a single row, got %d", len(items))
		}
	})

	t.Run("rows are scoped per user", func(t *testing.T) {
		repo := newFakeCartRepo()
		svc := NewService(repo)

		if _, err := svc.AddItem(ctx, 1, 10, 2); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if _, err := svc.AddItem(ctx, 2, 10, 4); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		it, err := svc.GetItemByProduct(ctx, 2, 10)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if it.Quantity != 4 {
			t.Fatalf("expected quantity 4, got %d", it.Quantity)
		}
	})
}

func TestSetItemQuantity(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCartRepo()
	svc := NewService(repo)

	if _, err := svc.SetItemQuantity(ctx, 1, 10, 0); !errors.Is(err, ErrBadQuantity) {
		t.Fatalf("expected ErrBadQuantity, got %v", err)
	}
	if _, err := svc.SetItemQuantity(ctx, 1, 10, 3); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound for absent row, got %v", err)
	}

	if _, err := svc.AddItem(ctx, 1, 10, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	it, err := svc.SetItemQuantity(ctx, 1, 10, 7)
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if it.Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", it.Quantity)
	}
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCartRepo()
	svc := NewService(repo)

	added, err := svc.AddItem(ctx, 1, 10, 2)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// Another user cannot remove it.
	if err := svc.RemoveItem(ctx, 2, added.ID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound for foreign row, got %v", err)
	}

	if err := svc.RemoveItem(ctx, 1, added.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	items, _ := svc.ListItems(ctx, 1)
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d rows", len(items))
	}
}
