package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	token, err := jwt.Generate("secret", "u-1", "Ana", "cashier", "cafe-pos", 5)
	require.NoError(t, err)

	id, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, jwt.Identity{UserID: "u-1", Name: "Ana", Role: "cashier"}, id)
}

func TestParse_Rechazos(t *testing.T) {
	token, err := jwt.Generate("secret", "u-1", "Ana", "cashier", "cafe-pos", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", token)
	assert.Error(t, err, "firma incorrecta")

	expired, err := jwt.Generate("secret", "u-1", "Ana", "cashier", "cafe-pos", -1)
	require.NoError(t, err)
	_, err = jwt.Parse("secret", expired)
	assert.Error(t, err, "token vencido")

	_, err = jwt.Generate("", "u-1", "Ana", "cashier", "cafe-pos", 5)
	assert.Error(t, err)
}
