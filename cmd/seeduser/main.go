// seeduser crea o actualiza un usuario (password, perfil y bodegas accesibles).
//
// Uso: go run ./cmd/seeduser -username john -password secret123 -first John -last Doe -profile ADM -warehouses 1,2
// Lee la conexión a PostgreSQL de la misma configuración que cmd/api (DATABASE_URL, DB_HOST, ...).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/labstock/internal/application/dto"
	"github.com/jhoicas/labstock/internal/application/usecase"
	"github.com/jhoicas/labstock/internal/infrastructure/postgres"
	"github.com/jhoicas/labstock/migrations"
	"github.com/jhoicas/labstock/pkg/config"
)

func main() {
	username := flag.String("username", "", "nombre de usuario (máx. 20)")
	password := flag.String("password", "", "password en texto plano (mín. 8)")
	first := flag.String("first", "", "nombre")
	last := flag.String("last", "", "apellido")
	email := flag.String("email", "", "email")
	profile := flag.String("profile", "USR", "perfil: ADM | MAN | OPE | USR")
	warehouses := flag.String("warehouses", "", "ids de bodegas separados por coma")
	inactive := flag.Bool("inactive", false, "crear/dejar el usuario inactivo")
	flag.Parse()

	ids, err := parseIDs(*warehouses)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bodegas: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, migrations.FS); err != nil {
			fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
			os.Exit(1)
		}
	}

	active := !*inactive
	uc := usecase.NewUserUseCase(postgres.NewUserRepository(pool), postgres.NewTxRunner(pool))
	out, created, err := uc.Upsert(ctx, dto.CreateUserRequest{
		Username:     *username,
		Password:     *password,
		FirstName:    *first,
		LastName:     *last,
		Email:        *email,
		Profile:      strings.ToUpper(*profile),
		WarehouseIDs: ids,
		IsActive:     &active,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usuario: %v\n", err)
		os.Exit(1)
	}

	action := "actualizado"
	if created {
		action = "creado"
	}
	fmt.Printf("Usuario %q %s (id=%d, perfil=%s, bodegas=%v)\n", out.Username, action, out.ID, out.ProfileLabel, out.WarehouseIDs)
}

func parseIDs(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("id inválido %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
