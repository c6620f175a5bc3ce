package mapper

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/labstock/internal/domain/entity"
)

func TestStock_FormateaFechas(t *testing.T) {
	exp := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	s := &entity.Stock{ID: 7, ReceptionDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ExpirationDate: &exp, Unit: entity.StockUnitGram}

	got := Stock(s)

	assert.Equal(t, "2024-01-02", got.ReceptionDate)
	assert.Equal(t, lo.ToPtr("2025-03-09"), got.ExpirationDate)
	assert.Equal(t, "G", got.Unit)
}

func TestUser_SinHashYConNombre(t *testing.T) {
	got := User(&entity.User{ID: 1, Username: "jdoe", PasswordHash: "x", FirstName: "John", LastName: "Doe", Profile: entity.ProfileOperator})

	assert.Equal(t, "John Doe", got.DisplayName)
	assert.Equal(t, "Operator", got.ProfileLabel)
	assert.Equal(t, []int64{}, got.WarehouseIDs)
}

func TestProducts_ListaVacia(t *testing.T) {
	assert.Empty(t, Products(nil))
	typ := entity.ProductTypeGlass
	got := Products([]*entity.Product{{ID: 1, Type: &typ}, {ID: 2}})
	assert.Equal(t, "Glass", *got[0].Type)
	assert.Nil(t, got[1].Type)
}
