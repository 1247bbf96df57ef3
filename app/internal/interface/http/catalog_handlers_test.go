package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func listingIDs(t *testing.T, body map[string]any) []string {
	t.Helper()
	data, ok := body["data"].([]any)
	require.True(t, ok, "data should be an array")
	ids := make([]string, 0, len(data))
	for _, item := range data {
		ids = append(ids, item.(map[string]any)["id"].(string))
	}
	return ids
}

func TestListCategories(t *testing.T) {
	env := setupAPI(t)

	rec := env.do(t, http.MethodGet, "/api/v1/categories", "", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].([]any)
	require.Len(t, data, 2)
	require.Equal(t, "Áo", data[0].(map[string]any)["name"])
}

func TestGetCategory(t *testing.T) {
	env := setupAPI(t)

	rec := env.do(t, http.MethodGet, "/api/v1/categories/2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Quần", decodeBody(t, rec)["name"])

	rec = env.do(t, http.MethodGet, "/api/v1/categories/99", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProducts_NoFilterReturnsEverything(t *testing.T) {
	env := setupAPI(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products", "", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, []string{"1", "2", "3"}, listingIDs(t, body))

	first := body["data"].([]any)[0].(map[string]any)
	require.Equal(t, "120000", first["min_price"])
	require.Equal(t, true, first["has_stock"])
	require.Equal(t, "11", first["default_variant_id"])
	require.Len(t, first["variants"], 2)

	soldOut := body["data"].([]any)[2].(map[string]any)
	require.Equal(t, false, soldOut["has_stock"])
	require.Equal(t, "31", soldOut["default_variant_id"])
}

func TestListProducts_FiltersByCategoryAndInclusiveRange(t *testing.T) {
	env := setupAPI(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products?category_id=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"1", "3"}, listingIDs(t, decodeBody(t, rec)))

	rec = env.do(t, http.MethodGet, "/api/v1/products?min_price=120000&max_price=400000", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"1", "2"}, listingIDs(t, decodeBody(t, rec)))
}

func TestListProducts_CrossedBoundsClampToMax(t *testing.T) {
	env := setupAPI(t)

	// min clamps down to max, so only the 400000 listing matches
	rec := env.do(t, http.MethodGet, "/api/v1/products?min_price=900000&max_price=400000", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"2"}, listingIDs(t, decodeBody(t, rec)))
}

func TestListProducts_InvalidPriceReturns400(t *testing.T) {
	env := setupAPI(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products?min_price=cheap", "", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProducts_VariantFailureKeepsProducts(t *testing.T) {
	env := setupAPI(t)
	env.catalog.variantsErr = errors.New("boom")

	rec := env.do(t, http.MethodGet, "/api/v1/products", "", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	// with no variants every min price is 0, inside the open range
	require.Equal(t, []string{"1", "2", "3"}, listingIDs(t, body))
	first := body["data"].([]any)[0].(map[string]any)
	require.Empty(t, first["variants"])
	require.Nil(t, first["default_variant_id"])
	require.Equal(t, false, first["has_stock"])
}

func TestGetProduct_SelectsFirstVariant(t *testing.T) {
	env := setupAPI(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products/1", "", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, "Áo thun", body["name"])
	require.Equal(t, "11", body["selected_variant_id"])
	require.Len(t, body["variants"], 2)
}

func TestGetProduct_NotFound(t *testing.T) {
	env := setupAPI(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products/999", "", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
