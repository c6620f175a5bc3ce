package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "John Doe", (&User{FirstName: "John", LastName: "Doe"}).DisplayName())
	assert.Equal(t, "John ", (&User{FirstName: "John"}).DisplayName())
	assert.Equal(t, " Doe", (&User{LastName: "Doe"}).DisplayName())
}

func TestParseEnums(t *testing.T) {
	pt, err := ParseProductType("Chemical")
	require.NoError(t, err)
	assert.Equal(t, ProductTypeChemical, pt)
	_, err = ParseProductType("chemical")
	assert.Error(t, err)

	wt, err := ParseWarehouseType("")
	require.NoError(t, err)
	assert.Equal(t, WarehouseTypeStore, wt)
	wt, err = ParseWarehouseType("Main store")
	require.NoError(t, err)
	assert.Equal(t, WarehouseTypeMain, wt)
	_, err = ParseWarehouseType("Depot")
	assert.Error(t, err)

	u, err := ParseStockUnit("KG")
	require.NoError(t, err)
	assert.Equal(t, "Kilogram", u.Label())
	_, err = ParseStockUnit("LB")
	assert.Error(t, err)

	pk, err := ParseStockPackaging("BTL")
	require.NoError(t, err)
	assert.Equal(t, "Bottle", pk.Label())

	_, err = ParseMovementType("TRANSFER")
	assert.Error(t, err)

	p, err := ParseProfile("")
	require.NoError(t, err)
	assert.Equal(t, ProfileUser, p)
	assert.Equal(t, "Manager", ProfileManager.Label())
	_, err = ParseProfile("ROOT")
	assert.Error(t, err)
}

func TestStock_BelowThresholdAndExpired(t *testing.T) {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	s := &Stock{UnitQuantity: 1, Threshold: DefaultThreshold}
	assert.True(t, s.BelowThreshold())
	assert.False(t, s.ExpiredAt(now))

	s.UnitQuantity = 2
	s.ExpirationDate = &yesterday
	assert.False(t, s.BelowThreshold())
	assert.True(t, s.ExpiredAt(now))
}
