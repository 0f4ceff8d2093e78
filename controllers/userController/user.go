package userController

import (
	"fmt"
	"log"
	"strings"

	"cardagency/config"
	"cardagency/dashboard"
	"cardagency/database"
	"cardagency/identity"
	"cardagency/middleware"
	"cardagency/models"
	"cardagency/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// The /api/* handlers keep the wire contract of the original serverless
// endpoints: bare {"error": ...} / {"success": true} bodies, method
// checked inside the handler.

// authorizeCaller resolves the bearer token to a profile row and checks
// its role. Returns the caller, or a status code and error message.
func authorizeCaller(c *fiber.Ctx) (*models.User, int, string) {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fiber.StatusUnauthorized, "Missing or invalid token"
	}
	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.StatusUnauthorized, "Missing or invalid token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.StatusUnauthorized, "Missing or invalid token"
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fiber.StatusUnauthorized, "Missing or invalid token"
	}

	var caller models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&caller).Error; err != nil {
		return nil, fiber.StatusUnauthorized, "Unauthorized: No user profile found"
	}

	if caller.Role != models.RoleAdmin && caller.Role != models.RoleModerator {
		return nil, fiber.StatusForbidden, "Forbidden: Insufficient permissions"
	}

	return &caller, 0, ""
}

// CreateUser provisions an identity-provider account then inserts the
// profile row. Duplicate emails are left to the provider to reject; its
// message is reported verbatim.
func CreateUser(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": "Method not allowed"})
	}

	if _, code, msg := authorizeCaller(c); code != 0 {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}

	var body struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Role      string `json:"role"`
		BankCodes []struct {
			Bank string `json:"bank"`
			Code string `json:"code"`
		} `json:"bank_codes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if body.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing email"})
	}
	if body.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing password"})
	}
	if body.Role != models.RoleAdmin && body.Role != models.RoleModerator && body.Role != models.RoleAgent {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role"})
	}

	// Identity-provider account first; a duplicate email fails here.
	if _, err := identity.CreateAccount(body.Email, body.Password); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(body.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process password"})
	}

	newUser := models.User{
		Name:     body.Name,
		Email:    body.Email,
		Role:     body.Role,
		Password: string(hashedPassword),
	}
	for i, bc := range body.BankCodes {
		newUser.BankCodes = append(newUser.BankCodes, models.BankCode{
			Bank:     bc.Bank,
			Code:     bc.Code,
			Position: i,
		})
	}

	if err := store.New(database.Database.Db).CreateUser(&newUser); err != nil {
		// Account exists but the profile insert failed; the orphan sweep
		// picks these up.
		log.Printf("Error saving user profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	newUser.Password = ""
	dashboard.App.PutUser(newUser)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// DeleteUser removes the identity-provider account and then the profile
// row. If the provider delete fails the profile is left untouched.
func DeleteUser(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": "Method not allowed"})
	}

	if _, code, msg := authorizeCaller(c); code != 0 {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}

	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil || body.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing email"})
	}

	var target models.User
	if err := database.Database.Db.Where("email = ?", body.Email).First(&target).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	// Identity-provider account first. On failure the profile row stays;
	// no compensation is attempted here.
	if err := identity.DeleteAccountByEmail(body.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := store.New(database.Database.Db).DeleteUser(body.Email); err != nil {
		log.Printf("Error deleting user profile %s: %v", body.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	dashboard.App.DropUser(body.Email)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// GetAllUsers returns every profile row, newest first.
func GetAllUsers(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodGet {
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": "Method not allowed"})
	}

	if _, code, msg := authorizeCaller(c); code != 0 {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}

	users, err := store.New(database.Database.Db).ListUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	for i := range users {
		users[i].Password = ""
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})
}

// UpdateUser is the dashboard's edit path: name, role and bank codes
// only, keyed by email. Email and password are immutable here.
func UpdateUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserUpdate").(*UpdateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	bankCodes := make([]models.BankCode, 0, len(reqData.BankCodes))
	for i, bc := range reqData.BankCodes {
		bankCodes = append(bankCodes, models.BankCode{
			Bank:     bc.Bank,
			Code:     bc.Code,
			Position: i,
		})
	}

	user, err := store.New(database.Database.Db).UpdateUser(reqData.Email, reqData.Name, reqData.Role, bankCodes)
	if err != nil {
		if store.IsNotFound(err) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		log.Printf("Error updating user %s: %v", reqData.Email, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	user.Password = ""
	dashboard.App.PutUser(*user)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully.", user)
}

// UpdateUserRequest is the validated body for the dashboard edit path.
type UpdateUserRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	BankCodes []struct {
		Bank string `json:"bank"`
		Code string `json:"code"`
	} `json:"bank_codes"`
}
