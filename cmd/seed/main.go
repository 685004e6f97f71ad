// seed aplica el esquema en PostgreSQL, carga el catálogo demo de la cafetería
// e imprime tokens JWT de desarrollo para cada rol.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que cmd/api (DATABASE_URL o DB_*, JWT_SECRET).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/seed"
	"github.com/jhoicas/cafe-pos-api/pkg/config"
	"github.com/jhoicas/cafe-pos-api/pkg/jwt"
)

var devUsers = []struct {
	id   string
	name string
	role string
}{
	{"00000000-0000-0000-0000-0000000000a1", "Admin", entity.RoleAdmin},
	{"00000000-0000-0000-0000-0000000000c1", "Cashier", entity.RoleCashier},
	{"00000000-0000-0000-0000-0000000000b1", "Inventory Clerk", entity.RoleInventoryClerk},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Esquema: %v\n", err)
		os.Exit(1)
	}

	sum, err := seed.Demo(ctx, postgres.NewTxRunner(pool))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed: %v\n", err)
		os.Exit(1)
	}
	if sum.Skipped {
		fmt.Println("Ya existen insumos; catálogo demo omitido")
	} else {
		fmt.Printf("Cargados %d insumos, %d productos, %d recetas\n", sum.Items, sum.Products, sum.Recipes)
	}

	if cfg.JWT.Secret == "" {
		fmt.Println("JWT_SECRET vacío: no se generan tokens de desarrollo")
		return
	}
	fmt.Println("Tokens de desarrollo:")
	for _, u := range devUsers {
		tok, err := jwt.Generate(cfg.JWT.Secret, u.id, u.name, u.role, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Token %s: %v\n", u.role, err)
			os.Exit(1)
		}
		fmt.Printf("  %-16s Bearer %s\n", u.role, tok)
	}
}
