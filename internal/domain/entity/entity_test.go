package entity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		product entity.Product
		wantErr bool
	}{
		{"válido", entity.Product{Code: "P001", Description: "Laptop"}, false},
		{"sin código", entity.Product{Description: "Laptop"}, true},
		{"sin descripción", entity.Product{Code: "P001"}, true},
		{"código en el límite", entity.Product{Code: strings.Repeat("a", entity.ProductCodeMaxLen), Description: "x"}, false},
		{"código largo", entity.Product{Code: strings.Repeat("a", entity.ProductCodeMaxLen+1), Description: "x"}, true},
		{"descripción larga", entity.Product{Code: "P", Description: strings.Repeat("d", entity.ProductDescriptionMaxLen+1)}, true},
		{"multibyte cuenta runas", entity.Product{Code: strings.Repeat("ñ", entity.ProductCodeMaxLen), Description: "x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWarehouseValidate(t *testing.T) {
	assert.NoError(t, (&entity.Warehouse{Code: "WH-A", Name: "Bodega A"}).Validate())
	assert.Error(t, (&entity.Warehouse{Code: "WH-A"}).Validate())
	assert.Error(t, (&entity.Warehouse{Code: "WH-A", Name: strings.Repeat("n", entity.WarehouseNameMaxLen+1)}).Validate())
}

func TestStockValidate(t *testing.T) {
	assert.NoError(t, (&entity.Stock{ProductID: 1, WarehouseID: 1, Quantity: 0}).Validate())
	assert.Error(t, (&entity.Stock{ProductID: 1, WarehouseID: 1, Quantity: -1}).Validate())
	assert.Error(t, (&entity.Stock{WarehouseID: 1}).Validate())
}

func TestFilters(t *testing.T) {
	p := &entity.Product{Code: "P001"}
	assert.True(t, entity.ProductFilter{}.Match(p))
	assert.True(t, entity.ProductFilter{Codes: []string{"X", "P001"}}.Match(p))
	assert.False(t, entity.ProductFilter{Codes: []string{"X"}}.Match(p))

	s := &entity.Stock{ProductID: 1, WarehouseID: 2}
	assert.True(t, entity.StockFilter{}.Match(s))
	assert.True(t, entity.StockFilter{ProductID: 1}.Match(s))
	assert.True(t, entity.StockFilter{ProductID: 1, WarehouseID: 2}.Match(s))
	assert.False(t, entity.StockFilter{WarehouseID: 3}.Match(s))

	u := &entity.User{Username: "ana"}
	assert.True(t, entity.UserFilter{Username: "ana"}.Match(u))
	assert.False(t, entity.UserFilter{Username: "otro"}.Match(u))
}

func TestBusinessCode(t *testing.T) {
	var c entity.Coded = entity.Warehouse{Code: "WH-A"}
	assert.Equal(t, "WH-A", c.BusinessCode())
}
