package authentication

import (
	"errors"
	"time"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/config"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/database"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/helpers"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type signUpInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Image    string `json:"image"`
}

type signInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// issueJwtToken generates a JWT token for authenticated guests.
func issueJwtToken(user *models.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)

	claims["sub"] = user.ID.String()
	claims["name"] = user.Name
	claims["picture"] = user.Image
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(30 * 24 * time.Hour).Unix()

	secretKey := config.Config("JWT_SECRET")
	return token.SignedString([]byte(secretKey))
}

// SignUp handles guest registration.
func SignUp(c *fiber.Ctx) error {
	db := database.DB
	body := new(signUpInput)

	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to hash password", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     body.Name,
		Email:    body.Email,
		Image:    body.Image,
		Password: string(hashedPwd),
	}

	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helpers.HandleError(c, fiber.StatusConflict, "Este e-mail já está cadastrado", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to create user account", err)
	}

	token, err := issueJwtToken(&user)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to generate token", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusCreated, "Account created successfully", fiber.Map{"token": token})
}

// SignIn handles guest authentication.
func SignIn(c *fiber.Ctx) error {
	db := database.DB
	body := new(signInInput)

	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	user := new(models.User)
	if result := db.Where("email = ?", body.Email).First(user); result.Error != nil {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid login credentials", result.Error)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid login credentials", err)
	}

	token, err := issueJwtToken(user)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to generate token", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Sign-in successful", fiber.Map{"token": token})
}
