package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sallatna/sallatna-backend/internal/pkg/errors"
	"github.com/sallatna/sallatna-backend/internal/requestdata"
	"github.com/sallatna/sallatna-backend/internal/services"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /api/products
func (ph *ProductHandler) List(c *gin.Context) {
	products, err := ph.productService.ListProducts(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /api/products/:id
func (ph *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	product, pErr := ph.productService.GetProduct(c.Request.Context(), id)
	if pErr != nil {
		RespondError(c, pErr)
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /api/products (family role only)
func (ph *ProductHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apperrors.New(apperrors.ErrUnauthorized, "Not authenticated"))
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       string `json:"price"`
		ImageURL    string `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	product, err := ph.productService.CreateProduct(c.Request.Context(), rd.UserID, services.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}
