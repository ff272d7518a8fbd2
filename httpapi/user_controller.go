package httpapi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/shopnest/backend/auth"
	"github.com/shopnest/backend/store"
)

// UserController owns profile, password, cart, and wishlist operations.
type UserController struct {
	repo   store.RepositoryManager
	logger auth.Logger
}

func NewUserController(repo store.RepositoryManager, logger auth.Logger) *UserController {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &UserController{repo: repo, logger: logger}
}

func parseUserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.New("invalid user id", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}
	return id, nil
}

// UpdateProfile replaces the mutable account fields. A username or email
// move onto a value another account holds is rejected as a duplicate.
func (ctrl *UserController) UpdateProfile(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	users := ctrl.repo.Users()

	user, err := users.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	if req.Username != user.Username {
		taken, err := users.ExistsByUsername(c.UserContext(), req.Username)
		if err != nil {
			return err
		}
		if taken {
			return auth.ErrDuplicateHandle
		}
	}

	if req.Email != user.Email {
		taken, err := users.ExistsByEmail(c.UserContext(), req.Email)
		if err != nil {
			return err
		}
		if taken {
			return auth.ErrDuplicateIdentifier
		}
	}

	user.Username = req.Username
	user.FullName = req.FullName
	user.Email = req.Email
	user.Phone = req.Phone
	user.Address = req.Address

	updated, err := users.Update(c.UserContext(), user)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// ChangePassword swaps the stored hash after verifying the current secret.
// A wrong current password reads the same as a failed login.
func (ctrl *UserController) ChangePassword(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	users := ctrl.repo.Users()

	user, err := users.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	if err := auth.ComparePasswordAndHash(req.CurrentPassword, user.PasswordHash); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	if err := users.UpdatePasswordHash(c.UserContext(), id, hash); err != nil {
		return err
	}

	ctrl.logger.Info("password changed for user %s", user.Email)

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

func (ctrl *UserController) GetCart(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	user, err := ctrl.repo.Users().GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	if user.Cart == nil {
		user.Cart = []store.CartItem{}
	}
	return c.JSON(user.Cart)
}

// UpdateCart replaces the whole cart. The storefront sends the full cart as
// a bare JSON array on every change, so there is no per-item merge.
func (ctrl *UserController) UpdateCart(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var items []store.CartItem
	if err := c.BodyParser(&items); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	users := ctrl.repo.Users()

	user, err := users.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	if items == nil {
		items = []store.CartItem{}
	}
	user.Cart = items

	updated, err := users.Update(c.UserContext(), user)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(updated.Cart)
}

func (ctrl *UserController) GetWishlist(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	user, err := ctrl.repo.Users().GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	if user.Wishlist == nil {
		user.Wishlist = []store.Product{}
	}
	return c.JSON(user.Wishlist)
}

func (ctrl *UserController) UpdateWishlist(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var items []store.Product
	if err := c.BodyParser(&items); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	users := ctrl.repo.Users()

	user, err := users.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	if items == nil {
		items = []store.Product{}
	}
	user.Wishlist = items

	updated, err := users.Update(c.UserContext(), user)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(updated.Wishlist)
}
