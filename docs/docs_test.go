package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/cafe-pos-api/docs"
)

func TestSwagger_Registrado(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc), "el documento debe ser JSON válido")

	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/admin/products/{id}/sell")
	assert.Contains(t, paths, "/api/kiosk/orders")

	console, ok := paths["/api/cashier/orders"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, console, "get", "la consola lista órdenes")
	assert.Contains(t, console, "patch", "la consola cambia el estado")
}
