package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sallatna/sallatna-backend/internal/pkg/errors"
	"github.com/sallatna/sallatna-backend/internal/requestdata"
	"github.com/sallatna/sallatna-backend/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GET /api/orders
func (oh *OrderHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apperrors.New(apperrors.ErrUnauthorized, "Not authenticated"))
		return
	}

	orders, err := oh.orderService.ListOrders(c.Request.Context(), rd.UserID, rd.Role)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// POST /api/orders
func (oh *OrderHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apperrors.New(apperrors.ErrUnauthorized, "Not authenticated"))
		return
	}

	var req struct {
		FamilyID    int64  `json:"familyId"`
		TotalAmount string `json:"totalAmount"`
		Items       []struct {
			ProductID int64  `json:"productId"`
			Quantity  int    `json:"quantity"`
			Price     string `json:"price"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	input := services.CreateOrderInput{
		FamilyID:    req.FamilyID,
		TotalAmount: req.TotalAmount,
	}
	for _, it := range req.Items {
		input.Items = append(input.Items, services.CreateOrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	// The customer id always comes from the session, never the body.
	order, err := oh.orderService.CreateOrder(c.Request.Context(), rd.UserID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// PATCH /api/orders/:id/status (family role only)
func (oh *OrderHandler) UpdateStatus(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apperrors.New(apperrors.ErrUnauthorized, "Not authenticated"))
		return
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if bErr := c.ShouldBindJSON(&req); bErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	order, uErr := oh.orderService.UpdateOrderStatus(c.Request.Context(), rd.UserID, orderID, req.Status)
	if uErr != nil {
		RespondError(c, uErr)
		return
	}
	c.JSON(http.StatusOK, order)
}
