package httpapi

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/shopnest/backend/auth"
	"github.com/shopnest/backend/store"
)

// AuthController owns registration and login. Password hashing happens here
// on the way into the store; verification is delegated to the authenticator.
type AuthController struct {
	repo   store.RepositoryManager
	auther auth.Authenticator
	logger auth.Logger
}

func NewAuthController(repo store.RepositoryManager, auther auth.Authenticator, logger auth.Logger) *AuthController {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &AuthController{repo: repo, auther: auther, logger: logger}
}

// Register creates an account. Username and email are checked for
// duplicates independently, and both checks run before any write so a
// failed registration never leaves a partial record behind.
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	role, ok := auth.ParseRole(req.Role)
	if !ok {
		return auth.ErrUnknownRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	user := &store.User{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         role,
	}
	if id, err := hashid.NewUUID(req.Email); err == nil {
		user.ID = id
	} else {
		user.ID = uuid.New()
	}

	err = ctrl.repo.RunInTx(c.UserContext(), nil, func(ctx context.Context, tx bun.Tx) error {
		users := ctrl.repo.Users()

		handleTaken, err := users.ExistsByUsernameTx(ctx, tx, req.Username)
		if err != nil {
			return err
		}
		identifierTaken, err := users.ExistsByEmailTx(ctx, tx, req.Email)
		if err != nil {
			return err
		}

		if handleTaken {
			return auth.ErrDuplicateHandle
		}
		if identifierTaken {
			return auth.ErrDuplicateIdentifier
		}

		_, err = users.CreateTx(ctx, tx, user)
		return err
	})
	if err != nil {
		return err
	}

	ctrl.logger.Info("registered account %s role=%s", user.Email, user.Role)

	return c.Status(http.StatusCreated).JSON(user)
}

// Login verifies credentials and mints a token. All credential failures
// come back identical so callers cannot probe which part was wrong.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	token, _, err := ctrl.auther.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	user, err := ctrl.repo.Users().GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to load account after login")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}
