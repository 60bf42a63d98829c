package middleware

import (
	config "github.com/peerevalpro/peer_review/configs"
	"github.com/peerevalpro/peer_review/review"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// CurrentCaller rebuilds the authenticated principal from the JWT claims.
// Role-sensitive handlers go through this so the role check happens once,
// at the operation entry.
func CurrentCaller(c *fiber.Ctx) review.Caller {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)

	id, _ := uuid.Parse(claims["user_id"].(string))
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return review.Caller{ID: id, Username: username, Role: role}
}

func InstructorRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentCaller(c).IsInstructor() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"detail": "Forbidden: instructor access required",
			})
		}
		return c.Next()
	}
}

func StudentRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentCaller(c).IsStudent() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"detail": "Forbidden: student access required",
			})
		}
		return c.Next()
	}
}
