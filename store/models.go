package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/shopnest/backend/auth"
)

// User is the account model. Cart and wishlist live on the user document the
// way the storefront persists them, serialized as JSON columns. The password
// hash never leaves the store: it is excluded from every JSON payload.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID     `bun:"id,pk,type:uuid" json:"id"`
	Username     string        `bun:"username,notnull,unique" json:"username"`
	FullName     string        `bun:"full_name" json:"fullName,omitempty"`
	Email        string        `bun:"email,notnull,unique" json:"email"`
	PasswordHash string        `bun:"password_hash,notnull" json:"-"`
	Phone        string        `bun:"phone" json:"phone,omitempty"`
	Address      string        `bun:"address" json:"address,omitempty"`
	Role         auth.UserRole `bun:"user_role,notnull" json:"role"`
	Cart         []CartItem    `bun:"cart,type:jsonb" json:"cart"`
	Wishlist     []Product     `bun:"wishlist,type:jsonb" json:"wishlist"`
	CreatedAt    time.Time     `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt    time.Time     `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt,omitempty"`
}

// CartItem is a product selection inside a user's cart.
type CartItem struct {
	Product      Product `json:"product"`
	Quantity     int     `json:"quantity"`
	SelectedSize string  `json:"selectedSize,omitempty"`
}

// Product is a catalog entry.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:prd"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description" json:"description,omitempty"`
	Price       float64   `bun:"price,notnull" json:"price"`
	Category    string    `bun:"category,notnull" json:"category"`
	SubCategory string    `bun:"sub_category" json:"subCategory,omitempty"`
	Gender      string    `bun:"gender" json:"gender,omitempty"`
	Sizes       []string  `bun:"sizes,type:jsonb" json:"sizes"`
	ImageURL    string    `bun:"image_url" json:"imageUrl,omitempty"`
	Images      []string  `bun:"images,type:jsonb" json:"images,omitempty"`
	Stock       int       `bun:"stock" json:"stock"`
}

// OrderStatus tracks an order through fulfillment.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// IsValid checks the status against the closed set.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

// Order is a placed order with a denormalized item snapshot, so later catalog
// edits do not rewrite order history.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:ord"`

	ID          uuid.UUID   `bun:"id,pk,type:uuid" json:"id"`
	UserID      uuid.UUID   `bun:"user_id,notnull,type:uuid" json:"userId"`
	Username    string      `bun:"username" json:"username,omitempty"`
	Items       []OrderItem `bun:"items,type:jsonb" json:"items"`
	TotalAmount float64     `bun:"total_amount,notnull" json:"totalAmount"`
	Status      OrderStatus `bun:"status,notnull" json:"status"`
	OrderDate   time.Time   `bun:"order_date,notnull" json:"orderDate"`
}

// OrderItem is a line inside an order.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Size        string  `json:"size,omitempty"`
}
