package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/shopnest/backend/store"
)

// ProductController serves the public catalog. Catalog writes live on the
// admin surface only.
type ProductController struct {
	repo store.RepositoryManager
}

func NewProductController(repo store.RepositoryManager) *ProductController {
	return &ProductController{repo: repo}
}

// List returns the full catalog.
func (ctrl *ProductController) List(c *fiber.Ctx) error {
	products, err := ctrl.repo.Products().List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// ListByCategory returns the products of one category.
func (ctrl *ProductController) ListByCategory(c *fiber.Ctx) error {
	products, err := ctrl.repo.Products().ListByCategory(c.UserContext(), c.Params("category"))
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (ctrl *ProductController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errors.New("invalid product id", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	product, err := ctrl.repo.Products().GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}
