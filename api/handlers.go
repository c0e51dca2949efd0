package api

import (
	"net/http"
	"path"
	"time"

	"github.com/commercestore/commercestore/cart"
	"github.com/commercestore/commercestore/delivery"
	"github.com/commercestore/commercestore/internal/errors"
	"github.com/commercestore/commercestore/internal/model"
	"github.com/commercestore/commercestore/internal/server"
	"github.com/commercestore/commercestore/order"
	"github.com/commercestore/commercestore/product"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const Prefix = "/api/v1"

func (s *service) AbortWithError(ctx *gin.Context, err error) {
	s.logger.Error(err)
	res := ER(err)
	ctx.AbortWithStatusJSON(res.Code, res)
}

func correlationID(ctx *gin.Context) model.CorrelationID {
	return model.CorrelationID(ctx.GetString(server.CorrelationIDKey))
}

func (s *service) HTTPHandler() http.Handler {
	handler := gin.New()
	handler.Use(gin.Recovery())

	handler.Use(server.CORSHandler())
	handler.Use(server.LoggerHandler(s.logger, time.RFC3339, true))
	handler.Use(server.CorrelationIDHandler())
	handler.NoRoute(server.NotFoundHandler)
	handler.GET("/", s.RootHandler)

	api := handler.Group(Prefix)
	api.GET("/carts/:id", s.GetCartHandler)
	api.POST("/carts/items", s.AddCartItemHandler)
	api.PUT("/carts/:id/items/:sku", s.UpdateCartItemHandler)
	api.DELETE("/carts/:id/items/:sku", s.RemoveCartItemHandler)

	api.GET("/orders/:id", s.GetOrderHandler)
	api.POST("/orders", s.CreateOrderHandler)
	api.POST("/orders/:id/complete", s.CompleteOrderHandler)
	api.POST("/orders/:id/cancel", s.CancelOrderHandler)

	api.GET("/products/:id", s.GetProductHandler)
	api.POST("/products", s.CreateProductHandler)
	api.PUT("/products/:id", s.UpdateProductHandler)

	api.GET("/deliveries/:id", s.GetDeliveryHandler)
	api.POST("/deliveries", s.CreateDeliveryHandler)
	api.POST("/deliveries/:id/complete", s.CompleteDeliveryHandler)

	return handler
}

func (s *service) GetCartHandler(ctx *gin.Context) {
	const op errors.Op = "api/service.GetCartHandler"

	customerID := model.CustomerID(ctx.Query("customer_id"))
	cartID := model.CartID(ctx.Param("id"))

	if agg, err := s.carts.GetCart(ctx, customerID, cartID); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, err)
	} else {
		ctx.JSON(http.StatusOK, agg)
	}
}

type addCartItemForm struct {
	CartID     *model.CartID    `json:"cart_id"`
	CustomerID model.CustomerID `json:"customer_id" binding:"required"`
	SKU        model.SKU        `json:"sku" binding:"required"`
	Quantity   model.Quantity   `json:"quantity"`
}

func (s *service) AddCartItemHandler(ctx *gin.Context) {
	const op errors.Op = "api/service.AddCartItemHandler"

	var form addCartItemForm
	if err := ctx.ShouldBind(&form); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, errors.E(op, errors.Invalid, err))
		return
	}

	cmd := cart.NewAddItemToCart(correlationID(ctx), form.CartID, form.CustomerID, form.SKU, form.Quantity, time.Now().UTC())

	if agg, err := s.carts.AddItem(ctx, cmd); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, err)
	} else {
		location := path.Join(Prefix, "carts", string(agg.ID))
		ctx.Header("Location", location)
		ctx.JSON(http.StatusCreated, agg)
	}
}

type updateCartItemForm struct {
	CustomerID model.CustomerID `json:"customer_id" binding:"required"`
	Quantity   model.Quantity   `json:"quantity"`
}

func (s *service) UpdateCartItemHandler(ctx *gin.Context) {
	const op errors.Op = "api/service.UpdateCartItemHandler"

	var form updateCartItemForm
	if err := ctx.ShouldBind(&form); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, errors.E(op, errors.Invalid, err))
		return
	}

	cartID := model.CartID(ctx.Param("id"))
	sku := model.SKU(ctx.Param("sku"))
	cmd := cart.NewUpdateCartItem(correlationID(ctx), cartID, sku, form.Quantity, time.Now().UTC())

	if agg, err := s.carts.UpdateItem(ctx, form.CustomerID, cmd); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, err)
	} else {
		ctx.JSON(http.StatusOK, agg)
	}
}

func (s *service) RemoveCartItemHandler(ctx *gin.Context) {
	const op errors.Op = "api/service.RemoveCartItemHandler"

	customerID := model.CustomerID(ctx.Query("customer_id"))
	cartID := model.CartID(ctx.Param("id"))
	sku := model.SKU(ctx.Param("sku"))
	cmd := cart.NewRemoveItemFromCart(correlationID(ctx), cartID, sku, time.Now().UTC())

	if agg, err := s.carts.RemoveItem(ctx, customerID, cmd); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, err)
	} else {
		ctx.JSON(http.StatusOK, agg)
	}
}

func (s *service) GetOrderHandler(ctx *gin.Context) {
	const op errors.Op = "api/service.GetOrderHandler"

	customerID := model.CustomerID(ctx.Query("customer_id"))
	orderID := model.OrderID(ctx.Param("id"))

	if agg, err := s.orders.GetOrder(ctx, customerID, orderID); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, err)
	} else {
		ctx.JSON(http.StatusOK, agg)
	}
}

type createOrderForm struct {
	OrderID    *model.OrderID   `json:"order_id"`
	CustomerID model.CustomerID `json:"customer_id" binding:"required"`
	Total      decimal.Decimal  `json:"total"`
}

func (s *service) CreateOrderHandler(ctx *gin.Context) {
	const op errors.Op = "api/service.CreateOrderHandler"

	var form createOrderForm
	if err := ctx.ShouldBind(&form); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, errors.E(op, errors.Invalid, err))
		return
	}

	cmd := order.NewCreateOrder(correlationID(ctx), form.OrderID, form.CustomerID, form.Total, time.Now().UTC())

	if agg, err := s.orders.CreateOrder(ctx, cmd); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, err)
	} else {
		location := path.Join(Prefix, "orders", string(agg.ID))
		ctx.Header("Location", location)
		ctx.JSON(http.StatusCreated, agg)
	}
}

type orderActionForm struct {
	CustomerID model.CustomerID `json:"customer_id" binding:"required"`
}

func (s *service) CompleteOrderHandler(ctx *gin.Context) {
	const op errors.Op = "api/service.CompleteOrderHandler"

	var form orderActionForm
	if err := ctx.ShouldBind(&form); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, errors.E(op, errors.Invalid, err))
		return
	}

	orderID := model.OrderID(ctx.Param("id"))
	cmd := order.NewCompleteOrder(correlationID(ctx), time.Now().UTC())

	if agg, err := s.orders.CompleteOrder(ctx, form.CustomerID, orderID, cmd); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, err)
	} else {
		ctx.JSON(http.StatusOK, agg)
	}
}

func (s *service) CancelOrderHandler(ctx *gin.Context) {
	const op errors.Op = "api/service.CancelOrderHandler"

	var form orderActionForm
	if err := ctx.ShouldBind(&form); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, errors.E(op, errors.Invalid, err))
		return
	}

	orderID := model.OrderID(ctx.Param("id"))
	cmd := order.NewCancelOrder(correlationID(ctx), time.Now().UTC())

	if agg, err := s.orders.CancelOrder(ctx, form.CustomerID, orderID, cmd); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, err)
	} else {
		ctx.JSON(http.StatusOK, agg)
	}
}

func (s *service) GetProductHandler(ctx *gin.Context) {
	const op errors.Op = "api/service.GetProductHandler"

	productID := model.ProductID(ctx.Param("id"))

	if agg, err := s.products.GetProduct(ctx, productID); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, err)
	} else {
		ctx.JSON(http.StatusOK, agg)
	}
}

type createProductForm struct {
	ProductID *model.ProductID `json:"product_id"`
	Name      string           `json:"name" binding:"required"`
	Price     decimal.Decimal  `json:"price"`
}

func (s *service) CreateProductHandler(ctx *gin.Context) {
	const op errors.Op = "api/service.CreateProductHandler"

	var form createProductForm
	if err := ctx.ShouldBind(&form); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, errors.E(op, errors.Invalid, err))
		return
	}

	cmd := product.NewCreateProduct(correlationID(ctx), form.ProductID, form.Name, form.Price, time.Now().UTC())

	if agg, err := s.products.CreateProduct(ctx, cmd); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, err)
	} else {
		location := path.Join(Prefix, "products", string(agg.ID))
		ctx.Header("Location", location)
		ctx.JSON(http.StatusCreated, agg)
	}
}

type updateProductForm struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
}

func (s *service) UpdateProductHandler(ctx *gin.Context) {
	const op errors.Op = "api/service.UpdateProductHandler"

	var form updateProductForm
	if err := ctx.ShouldBind(&form); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, errors.E(op, errors.Invalid, err))
		return
	}

	productID := model.ProductID(ctx.Param("id"))
	cmd := product.NewUpdateProduct(correlationID(ctx), productID, form.Name, form.Price, time.Now().UTC())

	if agg, err := s.products.UpdateProduct(ctx, cmd); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, err)
	} else {
		ctx.JSON(http.StatusOK, agg)
	}
}

func (s *service) GetDeliveryHandler(ctx *gin.Context) {
	const op errors.Op = "api/service.GetDeliveryHandler"

	orderID := model.OrderID(ctx.Query("order_id"))
	deliveryID := model.DeliveryID(ctx.Param("id"))

	if agg, err := s.deliveries.GetDelivery(ctx, orderID, deliveryID); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, err)
	} else {
		ctx.JSON(http.StatusOK, agg)
	}
}

type createDeliveryForm struct {
	DeliveryID *model.DeliveryID `json:"delivery_id"`
	OrderID    model.OrderID     `json:"order_id" binding:"required"`
	Address    string            `json:"address" binding:"required"`
}

func (s *service) CreateDeliveryHandler(ctx *gin.Context) {
	const op errors.Op = "api/service.CreateDeliveryHandler"

	var form createDeliveryForm
	if err := ctx.ShouldBind(&form); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, errors.E(op, errors.Invalid, err))
		return
	}

	cmd := delivery.NewCreateDelivery(correlationID(ctx), form.DeliveryID, form.OrderID, form.Address, time.Now().UTC())

	if agg, err := s.deliveries.CreateDelivery(ctx, cmd); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, err)
	} else {
		location := path.Join(Prefix, "deliveries", string(agg.ID))
		ctx.Header("Location", location)
		ctx.JSON(http.StatusCreated, agg)
	}
}

type completeDeliveryForm struct {
	OrderID model.OrderID `json:"order_id" binding:"required"`
}

func (s *service) CompleteDeliveryHandler(ctx *gin.Context) {
	const op errors.Op = "api/service.CompleteDeliveryHandler"

	var form completeDeliveryForm
	if err := ctx.ShouldBind(&form); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, errors.E(op, errors.Invalid, err))
		return
	}

	deliveryID := model.DeliveryID(ctx.Param("id"))
	cmd := delivery.NewCompleteDelivery(correlationID(ctx), time.Now().UTC())

	if agg, err := s.deliveries.CompleteDelivery(ctx, form.OrderID, deliveryID, cmd); err != nil {
		s.logger.Error(errors.E(op, err))
		s.AbortWithError(ctx, err)
	} else {
		ctx.JSON(http.StatusOK, agg)
	}
}
