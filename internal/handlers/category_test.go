package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/buildmart/backend/internal/models"
)

func TestCategoryCRUD(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/categories",
		map[string]string{"name": "Waterproofing", "slug": "waterproofing"})
	require.NoError(t, env.C.CreateCategory(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	recPatch, cPatch := env.doJSONRequest(http.MethodPatch, "/api/v1/admin/categories/1",
		map[string]string{"name": "Waterproofing & Sealing", "slug": "waterproofing"})
	cPatch.SetParamNames("id")
	cPatch.SetParamValues("1")
	require.NoError(t, env.C.PatchCategory(cPatch))
	require.Equal(t, http.StatusOK, recPatch.Code)

	recList, cList := env.doJSONRequest(http.MethodGet, "/api/v1/categories", nil)
	require.NoError(t, env.C.GetCategories(cList))
	var list []models.Category
	require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "Waterproofing & Sealing", list[0].Name)
}

func TestDeleteCategoryDetachesProducts(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.DB.Create(&models.Category{ID: 1, Name: "Flooring", Slug: "flooring"}).Error)
	catID := uint(1)
	require.NoError(t, env.DB.Create(&models.Product{ID: 1, Name: "Epoxy Kit", Slug: "epoxy-kit", Price: 850, CategoryID: &catID}).Error)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/admin/categories/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.C.DeleteCategory(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	// The product survives, only its category link goes away.
	var p models.Product
	require.NoError(t, env.DB.First(&p, 1).Error)
	require.Nil(t, p.CategoryID)

	var count int64
	require.NoError(t, env.DB.Model(&models.Category{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestMakeAdmin(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.DB.Create(&models.User{ID: 3, Email: "mona@example.com", PasswordHash: "x", Role: "user"}).Error)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/users/3/make-admin", nil)
	c.SetParamNames("id")
	c.SetParamValues("3")
	require.NoError(t, env.U.MakeAdmin(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.User
	require.NoError(t, env.DB.First(&stored, 3).Error)
	require.Equal(t, "admin", stored.Role)
}
