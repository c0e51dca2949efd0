package product

import (
	"time"

	"github.com/commercestore/commercestore/internal/model"
	"github.com/shopspring/decimal"
)

// Product is the versioned snapshot of one catalogue product.
type Product struct {
	ID           model.ProductID `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CreatedOnUTC time.Time       `json:"created_on_utc"`
	UpdatedOnUTC time.Time       `json:"updated_on_utc"`
	MetaData     model.MetaData  `json:"metadata"`
}

func (p Product) AggregateID() model.ID {
	return p.ID.ID()
}

func (p Product) AggregateMeta() model.MetaData {
	return p.MetaData
}

// Command is the closed set of product command variants.
type Command interface {
	model.Command
	isProductCommand()
}

// CreateProduct registers a new catalogue product. A nil ProductID lets
// the handler assign a fresh identity.
type CreateProduct struct {
	model.CommandModel
	ProductID    *model.ProductID `json:"product_id"`
	Name         string           `json:"name"`
	Price        decimal.Decimal  `json:"price"`
	CreatedOnUTC time.Time        `json:"created_on_utc"`
}

func (CreateProduct) isProductCommand() {}

func NewCreateProduct(correlationID model.CorrelationID, productID *model.ProductID, name string, price decimal.Decimal, createdOnUTC time.Time) CreateProduct {
	return CreateProduct{
		CommandModel: model.NewCommandModel(correlationID),
		ProductID:    productID,
		Name:         name,
		Price:        price,
		CreatedOnUTC: createdOnUTC,
	}
}

// UpdateProduct replaces name and price of an existing product.
type UpdateProduct struct {
	model.CommandModel
	ProductID    model.ProductID `json:"product_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	UpdatedOnUTC time.Time       `json:"updated_on_utc"`
}

func (UpdateProduct) isProductCommand() {}

func NewUpdateProduct(correlationID model.CorrelationID, productID model.ProductID, name string, price decimal.Decimal, updatedOnUTC time.Time) UpdateProduct {
	return UpdateProduct{
		CommandModel: model.NewCommandModel(correlationID),
		ProductID:    productID,
		Name:         name,
		Price:        price,
		UpdatedOnUTC: updatedOnUTC,
	}
}

// ProductCreated records that a product entered the catalogue.
type ProductCreated struct {
	model.EventModel
	ProductID    model.ProductID `json:"product_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CreatedOnUTC time.Time       `json:"created_on_utc"`
}

// ProductUpdated records that name and price were replaced.
type ProductUpdated struct {
	model.EventModel
	ProductID    model.ProductID `json:"product_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	UpdatedOnUTC time.Time       `json:"updated_on_utc"`
}
