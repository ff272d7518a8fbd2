package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/shopnest/backend/auth"
	"github.com/shopnest/backend/config"
	"github.com/shopnest/backend/store"
)

// Server wires the fiber app, the token guard, and the route policy.
type Server struct {
	app    *fiber.App
	cfg    *config.Config
	logger auth.Logger
}

// Options carries the collaborators the HTTP layer needs.
type Options struct {
	Config *config.Config
	Repo   store.RepositoryManager
	Auther *auth.Auther
	Logger auth.Logger
}

// New builds the app with middleware and routes registered. The guard runs
// on every request and never rejects; the policy layer after it owns the
// 401 decisions.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = auth.DefaultLogger()
	}

	app := fiber.New(fiber.Config{
		AppName:      "shopnest",
		ErrorHandler: NewErrorHandler(logger),
		ReadTimeout:  opts.Config.ReadTimeout,
		WriteTimeout: opts.Config.WriteTimeout,
		IdleTimeout:  opts.Config.IdleTimeout,
	})

	contextKey := opts.Config.Auth.GetContextKey()

	app.Use(auth.TokenGuard(auth.GuardConfig{
		Validator:  opts.Auther.TokenService(),
		ContextKey: contextKey,
		AuthScheme: opts.Config.Auth.GetAuthScheme(),
		Logger:     logger,
	}))

	policy := auth.NewRoutePolicy().
		Declare("/api/auth/**", auth.Public).
		Declare("/api/products/**", auth.Public).
		Declare("/api/admin/**", auth.IdentityRequired)
	app.Use(policy.Enforce(contextKey))

	registerRoutes(app, opts, logger)

	return &Server{app: app, cfg: opts.Config, logger: logger}
}

// App exposes the fiber app, mostly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP until Shutdown is called.
func (s *Server) Listen() error {
	s.logger.Info("http server listening on %s", s.cfg.Address)
	return s.app.Listen(s.cfg.Address)
}

// Shutdown drains in-flight requests before returning.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, opts Options, logger auth.Logger) {
	authCtrl := NewAuthController(opts.Repo, opts.Auther, logger)
	userCtrl := NewUserController(opts.Repo, logger)
	productCtrl := NewProductController(opts.Repo)
	orderCtrl := NewOrderController(opts.Repo, logger)
	adminCtrl := NewAdminController(opts.Repo, logger)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authCtrl.Register)
	authGroup.Post("/login", authCtrl.Login)

	products := api.Group("/products")
	products.Get("/", productCtrl.List)
	products.Get("/category/:category", productCtrl.ListByCategory)
	products.Get("/:id", productCtrl.Get)

	users := api.Group("/users")
	users.Put("/:id", userCtrl.UpdateProfile)
	users.Post("/:id/change-password", userCtrl.ChangePassword)
	users.Get("/:id/cart", userCtrl.GetCart)
	users.Post("/:id/cart", userCtrl.UpdateCart)
	users.Get("/:id/wishlist", userCtrl.GetWishlist)
	users.Post("/:id/wishlist", userCtrl.UpdateWishlist)

	// Diagnostics endpoint kept from the storefront's debugging surface.
	api.Get("/test/users", adminCtrl.ListUsers)

	orders := api.Group("/orders")
	orders.Post("/", orderCtrl.Create)
	orders.Get("/", orderCtrl.List)
	orders.Get("/user/:userId", orderCtrl.ListByUser)

	admin := api.Group("/admin")
	admin.Get("/stats", adminCtrl.Stats)
	admin.Delete("/stats/sales", adminCtrl.ResetSales)
	admin.Delete("/stats/orders", adminCtrl.ResetNewOrders)
	admin.Get("/users", adminCtrl.ListUsers)
	admin.Get("/orders", adminCtrl.ListOrders)
	admin.Put("/orders/:id/status", adminCtrl.UpdateOrderStatus)
	admin.Get("/products", adminCtrl.ListProducts)
	admin.Post("/products", adminCtrl.CreateProduct)
	admin.Put("/products/:id", adminCtrl.UpdateProduct)
	admin.Delete("/products/:id", adminCtrl.DeleteProduct)
}
