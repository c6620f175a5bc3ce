package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

// tickingClock avanza un segundo en cada lectura.
func tickingClock() func() time.Time {
	t := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func seed(t *testing.T, s *Store) (*entity.Product, *entity.Warehouse, *entity.Stock) {
	t.Helper()
	ctx := context.Background()
	p := &entity.Product{SKU: "ETH-01", Name: "Ethanol"}
	require.NoError(t, s.Products().Create(ctx, p))
	w := &entity.Warehouse{Name: "Central", Location: "B1", Type: entity.WarehouseTypeMain}
	require.NoError(t, s.Warehouses().Create(ctx, w))
	st := &entity.Stock{ProductID: p.ID, WarehouseID: w.ID, UnitQuantity: 5, Threshold: 1}
	require.NoError(t, s.Stocks().Create(ctx, st))
	return p, w, st
}

func TestDeleteProduct_Cascada(t *testing.T) {
	ctx := context.Background()
	s := New()
	p, _, st := seed(t, s)
	m := &entity.StockMovement{StockID: st.ID, Type: entity.MovementTypeIn, Quantity: 5}
	require.NoError(t, s.Movements().Create(ctx, m))

	require.NoError(t, s.Products().Delete(ctx, p.ID))

	got, err := s.Stocks().GetByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	mov, err := s.Movements().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, mov)
	assert.ErrorIs(t, s.Products().Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestDeleteWarehouse_CascadaYQuitaAccesos(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, w, st := seed(t, s)
	u := &entity.User{Username: "op", WarehouseIDs: []int64{w.ID}}
	require.NoError(t, s.Users().Create(ctx, u))

	require.NoError(t, s.Warehouses().Delete(ctx, w.ID))

	got, _ := s.Stocks().GetByID(ctx, st.ID)
	assert.Nil(t, got)
	user, _ := s.Users().GetByID(ctx, u.ID)
	assert.Empty(t, user.WarehouseIDs)
}

func TestTimestamps(t *testing.T) {
	ctx := context.Background()
	s := New(WithClock(tickingClock()))
	_, _, st := seed(t, s)
	created := st.LastUpdated

	m := &entity.StockMovement{StockID: st.ID, Type: entity.MovementTypeOut, Quantity: 1}
	require.NoError(t, s.Movements().Create(ctx, m))
	recorded := m.Timestamp

	// registrar un movimiento no toca el stock
	cur, _ := s.Stocks().GetByID(ctx, st.ID)
	assert.Equal(t, created, cur.LastUpdated)
	assert.Equal(t, 5, cur.UnitQuantity)

	cur.UnitQuantity = 4
	require.NoError(t, s.Stocks().Update(ctx, cur))
	assert.True(t, cur.LastUpdated.After(created))

	again, _ := s.Movements().GetByID(ctx, m.ID)
	assert.Equal(t, recorded, again.Timestamp)
}

func TestUnicidadYReferencias(t *testing.T) {
	ctx := context.Background()
	s := New()
	p, w, _ := seed(t, s)

	assert.ErrorIs(t, s.Products().Create(ctx, &entity.Product{SKU: p.SKU}), domain.ErrDuplicate)
	assert.ErrorIs(t, s.Stocks().Create(ctx, &entity.Stock{ProductID: 99, WarehouseID: w.ID}), domain.ErrNotFound)
	assert.ErrorIs(t, s.Movements().Create(ctx, &entity.StockMovement{StockID: 99}), domain.ErrNotFound)
	require.NoError(t, s.Users().Create(ctx, &entity.User{Username: "a"}))
	assert.ErrorIs(t, s.Users().Create(ctx, &entity.User{Username: "a"}), domain.ErrDuplicate)
}

func TestRun_RollbackEnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	p, w, _ := seed(t, s)
	boom := errors.New("boom")

	err := s.Run(ctx, func(stocks repository.StockRepository, movs repository.StockMovementRepository) error {
		st := &entity.Stock{ProductID: p.ID, WarehouseID: w.ID, UnitQuantity: 3}
		require.NoError(t, stocks.Create(ctx, st))
		require.NoError(t, movs.Create(ctx, &entity.StockMovement{StockID: st.ID, Type: entity.MovementTypeIn, Quantity: 3}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := s.Stocks().List(ctx, repository.StockFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRun_EscriturasConcurrentesSobrevivenAlRollback(t *testing.T) {
	ctx := context.Background()
	s := New()
	seed(t, s)
	done := make(chan error, 1)

	err := s.Run(ctx, func(_ repository.StockRepository, _ repository.StockMovementRepository) error {
		go func() {
			done <- s.Products().Create(ctx, &entity.Product{SKU: "OUT-TX", Name: "Fuera de la tx"})
		}()
		select {
		case err := <-done:
			t.Error("una escritura fuera de la transacción no debe completarse mientras esta corre")
			done <- err
		case <-time.After(20 * time.Millisecond):
		}
		return errors.New("boom")
	})
	require.Error(t, err)
	require.NoError(t, <-done)

	p, err := s.Products().GetBySKU(ctx, "OUT-TX")
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestAlertQueries(t *testing.T) {
	ctx := context.Background()
	s := New()
	p, w, st := seed(t, s)
	store := &entity.Warehouse{Name: "Lab 2", Location: "B2", Type: entity.WarehouseTypeKanban}
	require.NoError(t, s.Warehouses().Create(ctx, store))
	soon := time.Now().Add(24 * time.Hour)
	low := &entity.Stock{ProductID: p.ID, WarehouseID: store.ID, UnitQuantity: 1, Threshold: 2, ExpirationDate: &soon}
	require.NoError(t, s.Stocks().Create(ctx, low))

	below, err := s.Stocks().ListBelowThreshold(ctx, nil)
	require.NoError(t, err)
	require.Len(t, below, 1)
	assert.Equal(t, low.ID, below[0].ID)

	below, _ = s.Stocks().ListBelowThreshold(ctx, &w.ID)
	assert.Empty(t, below)

	exp, _ := s.Stocks().ListExpiringBefore(ctx, time.Now().Add(48*time.Hour))
	assert.Len(t, exp, 1)

	units, _ := s.Stocks().UnitsByProduct(ctx, entity.WarehouseTypeMain)
	assert.Equal(t, map[int64]int{p.ID: st.UnitQuantity}, units)
}
