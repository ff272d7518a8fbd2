package httpapi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/shopnest/backend/auth"
	"github.com/shopnest/backend/store"
)

// OrderController handles checkout and per-user order history.
type OrderController struct {
	repo   store.RepositoryManager
	logger auth.Logger
}

func NewOrderController(repo store.RepositoryManager, logger auth.Logger) *OrderController {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &OrderController{repo: repo, logger: logger}
}

// Create places an order for the user named in the body. New orders always
// start pending with the placement timestamp stamped server side.
func (ctrl *OrderController) Create(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	user, err := ctrl.repo.Users().GetByID(c.UserContext(), req.UserID)
	if err != nil {
		return err
	}

	order := &store.Order{
		UserID:      user.ID,
		Username:    user.Username,
		Items:       req.Items,
		TotalAmount: req.TotalAmount,
	}

	created, err := ctrl.repo.Orders().Create(c.UserContext(), order)
	if err != nil {
		return err
	}

	ctrl.logger.Info("order %s placed by %s total=%.2f", created.ID, user.Email, created.TotalAmount)

	return c.Status(http.StatusCreated).JSON(created)
}

// ListByUser returns the order history for one user, newest first.
func (ctrl *OrderController) ListByUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return errors.New("invalid user id", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	orders, err := ctrl.repo.Orders().ListByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// List returns every order on record.
func (ctrl *OrderController) List(c *fiber.Ctx) error {
	orders, err := ctrl.repo.Orders().List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}
