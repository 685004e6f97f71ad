package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/seed"
)

func TestDemo_CargaCatalogo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	sum, err := seed.Demo(ctx, store)
	require.NoError(t, err)
	assert.False(t, sum.Skipped)
	assert.Equal(t, 5, sum.Items)
	assert.Equal(t, 5, sum.Products)
	assert.Equal(t, 4, sum.Recipes, "el croissant no tiene receta")

	repos := store.Repos()
	products, err := repos.Products.List(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 5)

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	recipes, err := repos.Recipes.ListByProductIDs(ctx, ids)
	require.NoError(t, err)
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			assert.NotEmpty(t, ing.ItemName, "cada línea apunta a un insumo existente")
			assert.True(t, ing.QuantityNeeded.IsPositive())
		}
	}
}

func TestDemo_NoDuplicaSiYaHayInsumos(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	_, err := seed.Demo(ctx, store)
	require.NoError(t, err)

	sum, err := seed.Demo(ctx, store)
	require.NoError(t, err)
	assert.True(t, sum.Skipped)

	items, err := store.Repos().Items.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 5)
}
