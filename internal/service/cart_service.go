package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/storefront-api/internal/constants"
	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
)

// UnavailableProduct 商品已删除时返回的占位信息
type UnavailableProduct struct {
	Name     string       `json:"name"`
	Price    models.Money `json:"price"`
	ImageURL *string      `json:"imageUrl"`
}

// CartItemView 购物车条目视图，Product 为 *models.Product 或 UnavailableProduct
type CartItemView struct {
	ProductID uint        `json:"productId"`
	Quantity  int         `json:"quantity"`
	Product   interface{} `json:"product"`
}

// CartView 购物车聚合视图
type CartView struct {
	UserID    string         `json:"userId"`
	Items     []CartItemView `json:"items"`
	CreatedAt *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt *time.Time     `json:"updatedAt,omitempty"`
}

// ClearCartResult 清空购物车的确认信息
type ClearCartResult struct {
	Message string         `json:"message"`
	UserID  string         `json:"userId"`
	Items   []CartItemView `json:"items"`
}

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	UserID    string
	ProductID uint
	Quantity  *int
}

// CartService 购物车聚合服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

// GetView 获取购物车视图，购物车不存在时返回空视图
func (s *CartService) GetView(ctx context.Context, userID string) (*CartView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrCartUserRequired
	}
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, userID, cart)
}

// AddItem 加入商品，同一商品合并数量
func (s *CartService) AddItem(ctx context.Context, input AddCartItemInput) (*CartView, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" || input.ProductID == 0 {
		return nil, ErrCartAddFieldsRequired
	}
	quantity := constants.CartDefaultQuantity
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	if idx := cart.FindItem(input.ProductID); idx >= 0 {
		existing := cart.Items[idx].Quantity
		if quantity > math.MaxInt-existing {
			return nil, ErrCartQuantityTooLarge
		}
		cart.Items[idx].Quantity = existing + quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{ProductID: input.ProductID, Quantity: quantity})
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.buildView(ctx, userID, cart)
}

// SetItemQuantity 设置条目数量，数量不大于 0 时移除条目
func (s *CartService) SetItemQuantity(ctx context.Context, userID string, productID uint, quantity int) (*CartView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || productID == 0 {
		return nil, ErrCartUpdateFieldsRequired
	}
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	idx := cart.FindItem(productID)
	if idx < 0 {
		return nil, ErrCartItemNotFound
	}

	if quantity <= 0 {
		cart.RemoveItemAt(idx)
	} else {
		cart.Items[idx].Quantity = quantity
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.buildView(ctx, userID, cart)
}

// RemoveItem 移除条目
func (s *CartService) RemoveItem(ctx context.Context, userID string, productID uint) (*CartView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrCartUserRequired
	}
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	idx := cart.FindItem(productID)
	if idx < 0 {
		return nil, ErrCartItemNotFound
	}
	cart.RemoveItemAt(idx)

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.buildView(ctx, userID, cart)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, userID string) (*ClearCartResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrCartUserRequired
	}
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	cart.Items = []models.CartItem{}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return &ClearCartResult{
		Message: "Cart cleared successfully",
		UserID:  userID,
		Items:   []CartItemView{},
	}, nil
}

func (s *CartService) save(ctx context.Context, cart *models.Cart) error {
	cart.Touch(s.now().UTC())
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		logger.Errorw("cart_save_failed", "user_id", cart.UserID, "error", err)
		return err
	}
	logger.Debugw("cart_saved", "user_id", cart.UserID, "item_count", len(cart.Items))
	return nil
}

// buildView 批量解析商品，已删除的商品以占位信息代替
func (s *CartService) buildView(ctx context.Context, userID string, cart *models.Cart) (*CartView, error) {
	view := &CartView{UserID: userID, Items: []CartItemView{}}
	if cart == nil {
		return view, nil
	}
	createdAt := cart.CreatedAt
	updatedAt := cart.UpdatedAt
	view.CreatedAt = &createdAt
	view.UpdatedAt = &updatedAt
	if len(cart.Items) == 0 {
		return view, nil
	}

	ids := make([]uint, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, item := range cart.Items {
		line := CartItemView{ProductID: item.ProductID, Quantity: item.Quantity}
		if product, ok := byID[item.ProductID]; ok {
			line.Product = product
		} else {
			line.Product = UnavailableProduct{
				Name:  constants.CartUnavailableProductName,
				Price: models.ZeroMoney(),
			}
		}
		view.Items = append(view.Items, line)
	}
	return view, nil
}
