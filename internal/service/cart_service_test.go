package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type memoryCartRepo struct {
	carts map[string]models.Cart
	saves int
}

func newMemoryCartRepo() *memoryCartRepo {
	return &memoryCartRepo{carts: map[string]models.Cart{}}
}

func (r *memoryCartRepo) GetByUser(_ context.Context, userID string) (*models.Cart, error) {
	cart, ok := r.carts[userID]
	if !ok {
		return nil, nil
	}
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	return &cart, nil
}

func (r *memoryCartRepo) Save(_ context.Context, cart *models.Cart) error {
	r.saves++
	stored := *cart
	stored.Items = append([]models.CartItem(nil), cart.Items...)
	r.carts[cart.UserID] = stored
	return nil
}

type cartProductRepoStub struct {
	products map[uint]models.Product
}

func (r cartProductRepoStub) List(context.Context, repository.ProductListFilter) ([]models.Product, error) {
	return nil, nil
}

func (r cartProductRepoStub) GetByID(_ context.Context, id uint) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r cartProductRepoStub) ListByIDs(_ context.Context, ids []uint) ([]models.Product, error) {
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r cartProductRepoStub) Create(context.Context, *models.Product) error { return nil }

func (r cartProductRepoStub) Updates(context.Context, uint, map[string]interface{}) error {
	return nil
}

func (r cartProductRepoStub) Delete(context.Context, uint) error { return nil }

func (r cartProductRepoStub) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (r cartProductRepoStub) WithTx(*gorm.DB) repository.ProductRepository { return r }

func newCartServiceForTest(products ...models.Product) (*CartService, *memoryCartRepo) {
	catalog := cartProductRepoStub{products: map[uint]models.Product{}}
	for _, p := range products {
		catalog.products[p.ID] = p
	}
	carts := newMemoryCartRepo()
	svc := NewCartService(carts, catalog)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, carts
}

func sampleProduct(id uint, name string) models.Product {
	return models.Product{
		ID:          id,
		Name:        name,
		Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsAvailable: true,
	}
}

func intPtr(v int) *int { return &v }

func TestCartGetViewWithoutCartReturnsEmptyView(t *testing.T) {
	svc, _ := newCartServiceForTest()
	view, err := svc.GetView(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get view failed: %v", err)
	}
	b, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal view failed: %v", err)
	}
	if string(b) != `{"userId":"u1","items":[]}` {
		t.Fatalf("unexpected empty view: %s", string(b))
	}
}

func TestCartAddItemMergesSameProduct(t *testing.T) {
	svc, carts := newCartServiceForTest(sampleProduct(1, "Mouse"))
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, AddCartItemInput{UserID: "u1", ProductID: 1, Quantity: intPtr(2)}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	view, err := svc.AddItem(ctx, AddCartItemInput{UserID: "u1", ProductID: 1, Quantity: intPtr(3)})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("want single merged line got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 5 {
		t.Fatalf("want quantity 5 got %d", view.Items[0].Quantity)
	}
	if stored := carts.carts["u1"]; len(stored.Items) != 1 || stored.Items[0].Quantity != 5 {
		t.Fatalf("stored cart not merged: %+v", stored.Items)
	}
	if view.CreatedAt == nil || view.UpdatedAt == nil {
		t.Fatalf("existing cart view should carry timestamps")
	}
}

func TestCartAddItemMergeOverflowRejected(t *testing.T) {
	svc, carts := newCartServiceForTest(sampleProduct(1, "Mouse"))
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, AddCartItemInput{UserID: "u1", ProductID: 1, Quantity: intPtr(math.MaxInt)}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	savesBefore := carts.saves

	_, err := svc.AddItem(ctx, AddCartItemInput{UserID: "u1", ProductID: 1, Quantity: intPtr(2)})
	if !errors.Is(err, ErrCartQuantityTooLarge) {
		t.Fatalf("want ErrCartQuantityTooLarge got %v", err)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("overflow should be an invalid argument, got %v", err)
	}
	if carts.saves != savesBefore {
		t.Fatalf("rejected merge must not be saved")
	}
	if stored := carts.carts["u1"]; stored.Items[0].Quantity != math.MaxInt {
		t.Fatalf("stored quantity changed: %d", stored.Items[0].Quantity)
	}
}

func TestCartAddItemDefaultsQuantityToOne(t *testing.T) {
	svc, _ := newCartServiceForTest(sampleProduct(1, "Mouse"))
	view, err := svc.AddItem(context.Background(), AddCartItemInput{UserID: "u1", ProductID: 1})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if view.Items[0].Quantity != 1 {
		t.Fatalf("want default quantity 1 got %d", view.Items[0].Quantity)
	}
}

func TestCartAddItemValidation(t *testing.T) {
	svc, carts := newCartServiceForTest(sampleProduct(1, "Mouse"))
	ctx := context.Background()

	cases := []struct {
		name  string
		input AddCartItemInput
		want  error
	}{
		{name: "missing user", input: AddCartItemInput{ProductID: 1}, want: ErrCartAddFieldsRequired},
		{name: "missing product", input: AddCartItemInput{UserID: "u1"}, want: ErrCartAddFieldsRequired},
		{name: "zero quantity", input: AddCartItemInput{UserID: "u1", ProductID: 1, Quantity: intPtr(0)}, want: ErrInvalidQuantity},
		{name: "unknown product", input: AddCartItemInput{UserID: "u1", ProductID: 99}, want: ErrProductNotFound},
	}
	for _, tc := range cases {
		_, err := svc.AddItem(ctx, tc.input)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, err)
		}
	}
	if !errors.Is(ErrProductNotFound, ErrNotFound) {
		t.Fatalf("product not found should classify as not found")
	}
	if carts.saves != 0 {
		t.Fatalf("rejected adds must not persist, saves=%d", carts.saves)
	}
}

func TestCartSetItemQuantity(t *testing.T) {
	svc, _ := newCartServiceForTest(sampleProduct(1, "Mouse"), sampleProduct(2, "Pad"))
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, AddCartItemInput{UserID: "u1", ProductID: 1, Quantity: intPtr(2)}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, AddCartItemInput{UserID: "u1", ProductID: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	view, err := svc.SetItemQuantity(ctx, "u1", 1, 7)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if view.Items[0].Quantity != 7 {
		t.Fatalf("want overwritten quantity 7 got %d", view.Items[0].Quantity)
	}

	view, err = svc.SetItemQuantity(ctx, "u1", 1, 0)
	if err != nil {
		t.Fatalf("set zero quantity failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].ProductID != 2 {
		t.Fatalf("zero quantity should remove the line, got %+v", view.Items)
	}

	view, err = svc.SetItemQuantity(ctx, "u1", 2, -3)
	if err != nil {
		t.Fatalf("set negative quantity failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("negative quantity should remove the line")
	}
}

func TestCartSetItemQuantityNotFoundDoesNotMutate(t *testing.T) {
	svc, carts := newCartServiceForTest(sampleProduct(1, "Mouse"))
	ctx := context.Background()

	if _, err := svc.SetItemQuantity(ctx, "ghost", 1, 2); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("want ErrCartNotFound got %v", err)
	}

	if _, err := svc.AddItem(ctx, AddCartItemInput{UserID: "u1", ProductID: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	savesBefore := carts.saves
	_, err := svc.SetItemQuantity(ctx, "u1", 42, 0)
	if !errors.Is(err, ErrCartItemNotFound) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrCartItemNotFound got %v", err)
	}
	if carts.saves != savesBefore {
		t.Fatalf("unknown item must not trigger a save")
	}
	if stored := carts.carts["u1"]; len(stored.Items) != 1 || stored.Items[0].ProductID != 1 {
		t.Fatalf("cart mutated on unknown item: %+v", stored.Items)
	}
}

func TestCartRemoveItem(t *testing.T) {
	svc, _ := newCartServiceForTest(sampleProduct(1, "Mouse"))
	ctx := context.Background()

	if _, err := svc.RemoveItem(ctx, "u1", 1); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("want ErrCartNotFound got %v", err)
	}
	if _, err := svc.AddItem(ctx, AddCartItemInput{UserID: "u1", ProductID: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.RemoveItem(ctx, "u1", 5); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("want ErrCartItemNotFound got %v", err)
	}
	view, err := svc.RemoveItem(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("want empty items got %+v", view.Items)
	}
}

func TestCartClear(t *testing.T) {
	svc, carts := newCartServiceForTest(sampleProduct(1, "Mouse"))
	ctx := context.Background()

	if _, err := svc.Clear(ctx, "u1"); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("want ErrCartNotFound got %v", err)
	}
	if _, err := svc.AddItem(ctx, AddCartItemInput{UserID: "u1", ProductID: 1, Quantity: intPtr(4)}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	result, err := svc.Clear(ctx, "u1")
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	b, _ := json.Marshal(result)
	if string(b) != `{"message":"Cart cleared successfully","userId":"u1","items":[]}` {
		t.Fatalf("unexpected clear payload: %s", string(b))
	}
	if stored := carts.carts["u1"]; len(stored.Items) != 0 {
		t.Fatalf("stored cart should be empty, got %+v", stored.Items)
	}
}

func TestCartViewUsesPlaceholderForDeletedProduct(t *testing.T) {
	svc, carts := newCartServiceForTest(sampleProduct(1, "Mouse"))
	carts.carts["u1"] = models.Cart{
		UserID: "u1",
		Items:  []models.CartItem{{ProductID: 1, Quantity: 1}, {ProductID: 77, Quantity: 2}},
	}

	view, err := svc.GetView(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get view failed: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("want 2 lines got %d", len(view.Items))
	}
	if p, ok := view.Items[0].Product.(*models.Product); !ok || p.Name != "Mouse" {
		t.Fatalf("first line should resolve to the product, got %#v", view.Items[0].Product)
	}
	b, err := json.Marshal(view.Items[1].Product)
	if err != nil {
		t.Fatalf("marshal placeholder failed: %v", err)
	}
	if string(b) != `{"name":"Product no longer available","price":"0.00","imageUrl":null}` {
		t.Fatalf("unexpected placeholder: %s", string(b))
	}
	if view.Items[1].Quantity != 2 {
		t.Fatalf("placeholder line should keep its quantity")
	}
}

func TestCartSaveStampsTimestamps(t *testing.T) {
	svc, carts := newCartServiceForTest(sampleProduct(1, "Mouse"))
	ctx := context.Background()
	first := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }
	if _, err := svc.AddItem(ctx, AddCartItemInput{UserID: "u1", ProductID: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	later := first.Add(48 * time.Hour)
	svc.now = func() time.Time { return later }
	if _, err := svc.AddItem(ctx, AddCartItemInput{UserID: "u1", ProductID: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	stored := carts.carts["u1"]
	if !stored.CreatedAt.Equal(first) || !stored.UpdatedAt.Equal(later) {
		t.Fatalf("unexpected timestamps created=%v updated=%v", stored.CreatedAt, stored.UpdatedAt)
	}
}
