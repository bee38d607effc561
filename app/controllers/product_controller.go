package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/confeitapro/confeitapro/app/models"
	"github.com/confeitapro/confeitapro/app/repository"
	"github.com/confeitapro/confeitapro/internal/pkg/statistics"
)

type productRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// HandleListProducts returns the user's products.
func HandleListProducts(c *fiber.Ctx) error {
	products, err := repository.GetGlobalFactory().GetProductRepository().ListByUserID(currentUserID(c))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load products")
	}
	return c.JSON(fiber.Map{"products": products})
}

// HandleGetProduct returns one product of the user.
func HandleGetProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid product id")
	}

	product, err := repository.GetGlobalFactory().GetProductRepository().GetByID(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Product not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load product")
	}

	return c.JSON(product)
}

// HandleCreateProduct creates a product for the user.
func HandleCreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Malformed JSON body")
	}

	product := &models.Product{
		UserID: currentUserID(c),
		Name:   strings.TrimSpace(req.Name),
		Price:  req.Price,
	}
	if err := product.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	if err := repository.GetGlobalFactory().GetProductRepository().Create(product); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create product")
	}
	statistics.InvalidateUserStats(product.UserID)

	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates a product of the user.
func HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid product id")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Malformed JSON body")
	}

	repo := repository.GetGlobalFactory().GetProductRepository()
	product, err := repo.GetByID(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Product not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load product")
	}

	product.Name = strings.TrimSpace(req.Name)
	product.Price = req.Price
	if err := product.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	if err := repo.Update(product); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update product")
	}

	return c.JSON(product)
}

// HandleDeleteProduct soft deletes a product of the user. Existing orders
// keep their denormalized line items.
func HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid product id")
	}

	err = repository.GetGlobalFactory().GetProductRepository().Delete(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Product not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete product")
	}
	statistics.InvalidateUserStats(currentUserID(c))

	return c.JSON(fiber.Map{"ok": true})
}
