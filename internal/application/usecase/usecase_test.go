package usecase

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/labstock/internal/application/dto"
	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
	"github.com/jhoicas/labstock/internal/infrastructure/memory"
)

func TestProductUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := NewProductUseCase(store.Products())
	price := decimal.RequireFromString("19.90")

	created, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "PIP-10", Name: "Pipette", Type: lo.ToPtr("Glass"), Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Glass", *created.Type)
	assert.False(t, created.Critical)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "PIP-10", Name: "Other"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Critical: lo.ToPtr(true), Name: lo.ToPtr("Pipette 10ml")})
	require.NoError(t, err)
	assert.True(t, updated.Critical)
	assert.Equal(t, "Pipette 10ml", updated.Name)
	assert.True(t, price.Equal(*updated.Price))

	list, err := uc.List(ctx, dto.ProductListQuery{Critical: lo.ToPtr(true)})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_Validacion(t *testing.T) {
	uc := NewProductUseCase(memory.New().Products())
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: "TOO-LONG-SKU", Name: ""})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"sku": "max", "name": "required"}, verr.Fields)
}

func TestWarehouseUseCase_TipoPorDefecto(t *testing.T) {
	ctx := context.Background()
	uc := NewWarehouseUseCase(memory.New().Warehouses())

	w, err := uc.Create(ctx, dto.CreateWarehouseRequest{Name: "Chem store", Location: "Building C"})
	require.NoError(t, err)
	assert.Equal(t, "Store", w.Type)

	w, err = uc.Update(ctx, w.ID, dto.UpdateWarehouseRequest{Type: lo.ToPtr("Kanban")})
	require.NoError(t, err)
	assert.Equal(t, "Kanban", w.Type)

	_, err = uc.Update(ctx, 999, dto.UpdateWarehouseRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, 999), domain.ErrNotFound)
}

func TestUserUseCase_Create(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	w := &entity.Warehouse{Name: "Main", Location: "B0", Type: entity.WarehouseTypeMain}
	require.NoError(t, store.Warehouses().Create(ctx, w))
	uc := NewUserUseCase(store.Users(), store)

	out, err := uc.Create(ctx, dto.CreateUserRequest{
		Username:     "jdoe",
		Password:     "s3cretpass",
		FirstName:    "John",
		LastName:     "Doe",
		Profile:      "OPE",
		WarehouseIDs: []int64{w.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", out.DisplayName)
	assert.Equal(t, "OPE", out.Profile)
	assert.True(t, out.IsActive)
	assert.Equal(t, []int64{w.ID}, out.WarehouseIDs)

	stored, err := store.Users().GetByUsername(ctx, "jdoe")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cretpass")))

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "jdoe", Password: "another-pass"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "ghost", Password: "whatever1", WarehouseIDs: []int64{42}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	ghost, _ := store.Users().GetByUsername(ctx, "ghost")
	assert.Nil(t, ghost)
}

func TestUserUseCase_Upsert(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := NewUserUseCase(store.Users(), store)

	first, created, err := uc.Upsert(ctx, dto.CreateUserRequest{Username: "admin", Password: "first-pass", Profile: "ADM"})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := uc.Upsert(ctx, dto.CreateUserRequest{Username: "admin", Password: "second-pass", FirstName: "Ada", Profile: "ADM"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ada ", second.DisplayName)

	stored, _ := store.Users().GetByID(ctx, first.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("second-pass")))
}

func TestUserUseCase_SetWarehouses(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	var ids []int64
	for _, name := range []string{"A", "B"} {
		w := &entity.Warehouse{Name: name, Location: "L", Type: entity.WarehouseTypeStore}
		require.NoError(t, store.Warehouses().Create(ctx, w))
		ids = append(ids, w.ID)
	}
	u := &entity.User{Username: "op", Profile: entity.ProfileOperator, IsActive: true}
	require.NoError(t, store.RunUsers(ctx, func(r repository.UserRepository) error { return r.Create(ctx, u) }))
	uc := NewUserUseCase(store.Users(), store)

	out, err := uc.SetWarehouses(ctx, u.ID, dto.SetWarehousesRequest{WarehouseIDs: []int64{ids[1], ids[0], ids[1]}})
	require.NoError(t, err)
	assert.Equal(t, ids, out.WarehouseIDs)

	_, err = uc.SetWarehouses(ctx, 999, dto.SetWarehousesRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
