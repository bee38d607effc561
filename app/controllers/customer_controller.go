package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/confeitapro/confeitapro/app/models"
	"github.com/confeitapro/confeitapro/app/repository"
	"github.com/confeitapro/confeitapro/internal/pkg/statistics"
)

type customerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// HandleListCustomers returns the user's customers, optionally filtered by
// a search query.
func HandleListCustomers(c *fiber.Ctx) error {
	userID := currentUserID(c)
	repo := repository.GetGlobalFactory().GetCustomerRepository()

	var (
		customers []models.Customer
		err       error
	)
	if query := strings.TrimSpace(c.Query("q")); query != "" {
		customers, err = repo.Search(userID, query)
	} else {
		customers, err = repo.ListByUserID(userID)
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load customers")
	}

	return c.JSON(fiber.Map{"customers": customers})
}

// HandleGetCustomer returns one customer of the user.
func HandleGetCustomer(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid customer id")
	}

	customer, err := repository.GetGlobalFactory().GetCustomerRepository().GetByID(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Customer not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load customer")
	}

	return c.JSON(customer)
}

// HandleCreateCustomer creates a customer for the user.
func HandleCreateCustomer(c *fiber.Ctx) error {
	var req customerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Malformed JSON body")
	}

	customer := &models.Customer{
		UserID: currentUserID(c),
		Name:   strings.TrimSpace(req.Name),
		Phone:  strings.TrimSpace(req.Phone),
	}
	if err := customer.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	if err := repository.GetGlobalFactory().GetCustomerRepository().Create(customer); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create customer")
	}
	statistics.InvalidateUserStats(customer.UserID)

	return c.Status(fiber.StatusCreated).JSON(customer)
}

// HandleUpdateCustomer updates a customer of the user.
func HandleUpdateCustomer(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid customer id")
	}

	var req customerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Malformed JSON body")
	}

	repo := repository.GetGlobalFactory().GetCustomerRepository()
	customer, err := repo.GetByID(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Customer not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load customer")
	}

	customer.Name = strings.TrimSpace(req.Name)
	customer.Phone = strings.TrimSpace(req.Phone)
	if err := customer.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	if err := repo.Update(customer); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update customer")
	}

	return c.JSON(customer)
}

// HandleDeleteCustomer soft deletes a customer of the user.
func HandleDeleteCustomer(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid customer id")
	}

	err = repository.GetGlobalFactory().GetCustomerRepository().Delete(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Customer not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete customer")
	}
	statistics.InvalidateUserStats(currentUserID(c))

	return c.JSON(fiber.Map{"ok": true})
}
