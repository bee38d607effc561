package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/confeitapro/confeitapro/app/models"
	"github.com/confeitapro/confeitapro/app/repository"
	"github.com/confeitapro/confeitapro/internal/pkg/statistics"
)

type orderRequest struct {
	CustomerID   uint               `json:"customer_id"`
	Items        []models.OrderItem `json:"items"`
	DeliveryDate string             `json:"delivery_date"`
	Notes        string             `json:"notes"`
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

type orderResponse struct {
	*models.Order
	Items []models.OrderItem `json:"items"`
}

func toOrderResponse(order *models.Order) (orderResponse, error) {
	items, err := order.Items()
	if err != nil {
		return orderResponse{}, err
	}
	return orderResponse{Order: order, Items: items}, nil
}

// HandleListOrders returns the user's orders, optionally filtered by status.
func HandleListOrders(c *fiber.Ctx) error {
	status := strings.TrimSpace(c.Query("status"))
	if status != "" && !models.IsValidOrderStatus(status) {
		return jsonError(c, fiber.StatusBadRequest, "invalid_status", "Unknown order status")
	}

	orders, err := repository.GetGlobalFactory().GetOrderRepository().ListByUserID(currentUserID(c), status)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load orders")
	}

	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		resp, err := toOrderResponse(&orders[i])
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to decode order items")
		}
		out = append(out, resp)
	}
	return c.JSON(fiber.Map{"orders": out})
}

// HandleGetOrder returns one order of the user.
func HandleGetOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid order id")
	}

	order, err := repository.GetGlobalFactory().GetOrderRepository().GetByID(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Order not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load order")
	}

	resp, err := toOrderResponse(order)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to decode order items")
	}
	return c.JSON(resp)
}

// HandleCreateOrder creates an order for the user. The total is computed
// from the submitted lines, never taken from the client.
func HandleCreateOrder(c *fiber.Ctx) error {
	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Malformed JSON body")
	}

	userID := currentUserID(c)

	// The customer must belong to the same user.
	if _, err := repository.GetGlobalFactory().GetCustomerRepository().GetByID(userID, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusUnprocessableEntity, "unknown_customer", "Customer not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load customer")
	}

	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid_delivery_date", "Delivery date must be YYYY-MM-DD")
	}

	order := &models.Order{
		UserID:       userID,
		CustomerID:   req.CustomerID,
		DeliveryDate: deliveryDate,
		Status:       models.OrderStatusPending,
		Notes:        req.Notes,
	}
	if err := order.SetItems(req.Items); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid_items", err.Error())
	}

	if err := repository.GetGlobalFactory().GetOrderRepository().Create(order); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create order")
	}
	statistics.InvalidateUserStats(userID)

	resp, err := toOrderResponse(order)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to decode order items")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleUpdateOrderStatus moves an order to a new status.
func HandleUpdateOrderStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid order id")
	}

	var req orderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Malformed JSON body")
	}
	if !models.IsValidOrderStatus(req.Status) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid_status", "Unknown order status")
	}

	err = repository.GetGlobalFactory().GetOrderRepository().UpdateStatus(currentUserID(c), id, req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Order not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update order")
	}
	statistics.InvalidateUserStats(currentUserID(c))

	return c.JSON(fiber.Map{"ok": true, "status": req.Status})
}

// HandleDeleteOrder soft deletes an order of the user.
func HandleDeleteOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid order id")
	}

	err = repository.GetGlobalFactory().GetOrderRepository().Delete(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Order not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete order")
	}
	statistics.InvalidateUserStats(currentUserID(c))

	return c.JSON(fiber.Map{"ok": true})
}
