// seedsizes puebla el catálogo de tallas de referencia. Idempotente: las
// tallas ya existentes se saltan.
//
// Uso: go run ./cmd/seedsizes
// Lee la conexión de las mismas variables de entorno que el API (DATABASE_URL
// o DB_HOST/DB_PORT/...).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/tienda-stock-api/internal/domain"
	"github.com/jhoicas/tienda-stock-api/internal/domain/entity"
	"github.com/jhoicas/tienda-stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-stock-api/pkg/config"
)

// Catálogo estándar: tallas de ropa más numeración de calzado.
var labels = []string{
	"XS", "S", "M", "L", "XL", "XXL",
	"36", "37", "38", "39", "40", "41", "42", "43", "44",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewSizeRepository(pool)
	created := 0
	for _, label := range labels {
		size := &entity.Size{Label: label}
		if err := repo.Create(size); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			fmt.Fprintf(os.Stderr, "insertar talla %q: %v\n", label, err)
			os.Exit(1)
		}
		created++
	}
	fmt.Printf("tallas insertadas: %d (total catálogo: %d)\n", created, len(labels))
}
