package httpapi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/shopnest/backend/auth"
	"github.com/shopnest/backend/store"
)

// AdminController is the management surface for catalog, orders, accounts,
// and the dashboard stats. Access control for this surface is
// authentication only. Any logged-in account can reach it, which mirrors
// the storefront's behavior; see DESIGN.md for the recorded gap.
type AdminController struct {
	repo   store.RepositoryManager
	logger auth.Logger
}

func NewAdminController(repo store.RepositoryManager, logger auth.Logger) *AdminController {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &AdminController{repo: repo, logger: logger}
}

func parseProductID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.New("invalid product id", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}
	return id, nil
}

// ListProducts mirrors the public catalog for the management screens.
func (ctrl *AdminController) ListProducts(c *fiber.Ctx) error {
	products, err := ctrl.repo.Products().List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (ctrl *AdminController) CreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	product := &store.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Gender:      req.Gender,
		Sizes:       req.Sizes,
		ImageURL:    req.ImageURL,
		Images:      req.Images,
		Stock:       req.Stock,
	}

	created, err := ctrl.repo.Products().Create(c.UserContext(), product)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(created)
}

func (ctrl *AdminController) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	product, err := ctrl.repo.Products().GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.SubCategory = req.SubCategory
	product.Gender = req.Gender
	product.Sizes = req.Sizes
	product.ImageURL = req.ImageURL
	product.Images = req.Images
	product.Stock = req.Stock

	updated, err := ctrl.repo.Products().Update(c.UserContext(), product)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (ctrl *AdminController) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	if err := ctrl.repo.Products().Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func (ctrl *AdminController) ListOrders(c *fiber.Ctx) error {
	orders, err := ctrl.repo.Orders().List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

func (ctrl *AdminController) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errors.New("invalid order id", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	order, err := ctrl.repo.Orders().UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}

	ctrl.logger.Info("order %s moved to %s", order.ID, order.Status)

	return c.JSON(order)
}

func (ctrl *AdminController) ListUsers(c *fiber.Ctx) error {
	users, err := ctrl.repo.Users().List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalUsers     int           `json:"totalUsers"`
	TotalProducts  int           `json:"totalProducts"`
	NewOrders      int           `json:"newOrders"`
	TotalSales     float64       `json:"totalSales"`
	RecentActivity []store.Order `json:"recentActivity"`
}

// Stats aggregates the dashboard counters. New orders are the pending ones;
// sales exclude cancelled orders.
func (ctrl *AdminController) Stats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	totalUsers, err := ctrl.repo.Users().Count(ctx)
	if err != nil {
		return err
	}

	totalProducts, err := ctrl.repo.Products().Count(ctx)
	if err != nil {
		return err
	}

	newOrders, err := ctrl.repo.Orders().CountByStatus(ctx, store.OrderPending)
	if err != nil {
		return err
	}

	totalSales, err := ctrl.repo.Orders().TotalSales(ctx)
	if err != nil {
		return err
	}

	recent, err := ctrl.repo.Orders().ListRecent(ctx, 5)
	if err != nil {
		return err
	}

	return c.JSON(DashboardStats{
		TotalUsers:     totalUsers,
		TotalProducts:  totalProducts,
		NewOrders:      newOrders,
		TotalSales:     totalSales,
		RecentActivity: recent,
	})
}

// ResetSales removes every order that counts toward the sales total, which
// zeroes the dashboard figure while keeping cancelled history.
func (ctrl *AdminController) ResetSales(c *fiber.Ctx) error {
	deleted, err := ctrl.repo.Orders().DeleteNonCancelled(c.UserContext())
	if err != nil {
		return err
	}

	ctrl.logger.Info("sales reset, %d orders removed", deleted)

	return c.JSON(fiber.Map{"deleted": deleted})
}

// ResetNewOrders clears the pending queue.
func (ctrl *AdminController) ResetNewOrders(c *fiber.Ctx) error {
	deleted, err := ctrl.repo.Orders().DeletePending(c.UserContext())
	if err != nil {
		return err
	}

	ctrl.logger.Info("pending orders reset, %d orders removed", deleted)

	return c.JSON(fiber.Map{"deleted": deleted})
}
