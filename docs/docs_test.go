package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/gestor-inventario/docs"
)

func TestSwaggerRegistrado(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	for _, path := range []string{
		"/api/auth/login",
		"/api/auth/validate",
		"/api/categories/{id}",
		"/api/products/export",
		"/api/movements/{id}",
		"/api/users",
		"/api/reports/low-stock/export",
	} {
		assert.Contains(t, doc.Paths, path)
	}
	assert.Contains(t, doc.Paths["/api/movements/{id}"], "delete")
}
