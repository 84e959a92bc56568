package handlers

import "github.com/gofiber/fiber/v2"

// Me returns the claims of the current user's token.
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]string
// @Router /me [get]
func Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	userEmail := c.Locals("userEmail").(string)
	role, _ := c.Locals("userRole").(string)
	return c.JSON(fiber.Map{
		"uid":   userID,
		"email": userEmail,
		"role":  role,
	})
}
