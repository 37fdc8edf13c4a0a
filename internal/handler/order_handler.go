package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles order requests
type OrderHandler struct {
	service service.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	role, err := getAuthUserRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	orders, err := h.service.ListOrders(c.Request.Context(), userID, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	role, err := getAuthUserRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// UpdateOrder accepts quantity (owner, while the order is PENDING) and/or
// status (admin only) in one request, like the storefront UI sends them
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	role, err := getAuthUserRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Quantity == nil && req.Status == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update: provide quantity or status"})
		return
	}

	orderID := c.Param("id")
	var order *model.Order

	if req.Quantity != nil {
		order, err = h.service.UpdateOrderQuantity(c.Request.Context(), orderID, userID, *req.Quantity)
		if err != nil {
			writeServiceError(c, err)
			return
		}
	}
	if req.Status != nil {
		order, err = h.service.UpdateOrderStatus(c.Request.Context(), orderID, role, *req.Status)
		if err != nil {
			writeServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	role, err := getAuthUserRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.DeleteOrder(c.Request.Context(), c.Param("id"), userID, role); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

// RegisterOrderRoutes registers order routes, all behind authentication
func (h *OrderHandler) RegisterOrderRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	orders := rg.Group("/orders", authMW)
	{
		orders.GET("", h.ListOrders)
		orders.POST("", h.PlaceOrder)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
	}
}
