// seed siembra los roles, los catálogos base (unidades de medida y tipos de estado)
// y el usuario administrador inicial. Es idempotente.
//
// Uso: go run ./cmd/seed [-catalog catalogos.csv] [-latin1]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jhoicas/roi-admin-api/internal/application/dto"
	"github.com/jhoicas/roi-admin-api/internal/application/usecase"
	"github.com/jhoicas/roi-admin-api/internal/domain"
	"github.com/jhoicas/roi-admin-api/internal/domain/access"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
	"github.com/jhoicas/roi-admin-api/internal/infrastructure/storage"
	"github.com/jhoicas/roi-admin-api/pkg/config"
	"github.com/jhoicas/roi-admin-api/pkg/logger"
	"github.com/jhoicas/roi-admin-api/pkg/textnorm"
)

var defaultRoles = []entity.Role{
	{Name: "Administrador", Slug: access.RoleAdmin, Description: "Acceso total"},
	{Name: "Responsable administrativo y contable", Slug: access.RoleRespAdmContable, Description: "Inventario, productos y catálogos"},
	{Name: "Responsable de TI", Slug: access.RoleRespTI, Description: "Soporte técnico"},
}

var defaultCatalog = []catalogRow{
	{Kind: entity.CatalogUnitMeasure, Item: dto.CatalogItemRequest{Name: "Unidad", Symbol: "und"}},
	{Kind: entity.CatalogUnitMeasure, Item: dto.CatalogItemRequest{Name: "Caja", Symbol: "cj"}},
	{Kind: entity.CatalogUnitMeasure, Item: dto.CatalogItemRequest{Name: "Resma", Symbol: "rsm"}},
	{Kind: entity.CatalogStatusType, Item: dto.CatalogItemRequest{Name: "Activo", Description: "Disponible para movimientos"}},
	{Kind: entity.CatalogStatusType, Item: dto.CatalogItemRequest{Name: "Inactivo", Description: "Descontinuado"}},
}

func main() {
	catalogPath := flag.String("catalog", "", "archivo tipo;nombre;detalle con catálogos adicionales")
	latin1 := flag.Bool("latin1", false, "el archivo de catálogos está en ISO-8859-1")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg.DB, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer backend.Close()

	for i := range defaultRoles {
		role := defaultRoles[i]
		if err := backend.Roles.Upsert(ctx, &role); err != nil {
			log.Fatal().Err(err).Str("slug", role.Slug).Msg("sembrar rol")
		}
	}
	log.Info().Int("roles", len(defaultRoles)).Msg("roles sembrados")

	rows := defaultCatalog
	if *catalogPath != "" {
		f, err := os.Open(*catalogPath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir archivo de catálogos")
		}
		extra, err := readCatalogFile(f, *latin1)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("path", *catalogPath).Msg("leer archivo de catálogos")
		}
		rows = append(rows, extra...)
	}
	created, err := seedCatalog(ctx, usecase.NewCatalogUseCase(backend.Catalogs), rows)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar catálogos")
	}
	log.Info().Int("created", created).Msg("catálogos sembrados")

	if cfg.Seed.AdminPassword == "" {
		log.Warn().Msg("SEED_ADMIN_PASSWORD vacío: no se crea el usuario administrador")
		return
	}
	_, err = usecase.NewUserUseCase(backend.Users).Create(ctx, usecase.CreateUserInput{
		Username: cfg.Seed.AdminUsername,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		Roles:    []string{access.RoleAdmin},
	})
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		log.Info().Str("username", cfg.Seed.AdminUsername).Msg("administrador ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear administrador")
	default:
		log.Info().Str("username", cfg.Seed.AdminUsername).Msg("administrador creado")
	}
}

// seedCatalog crea las filas cuyo nombre aún no existe en su catálogo.
func seedCatalog(ctx context.Context, uc *usecase.CatalogUseCase, rows []catalogRow) (int, error) {
	existing := map[entity.CatalogKind]map[string]bool{}
	created := 0
	for _, row := range rows {
		names, ok := existing[row.Kind]
		if !ok {
			list, err := uc.List(ctx, row.Kind)
			if err != nil {
				return created, err
			}
			names = map[string]bool{}
			for _, it := range list {
				names[it.Name] = true
			}
			existing[row.Kind] = names
		}
		name := textnorm.Clean(row.Item.Name)
		if names[name] {
			continue
		}
		if _, err := uc.Create(ctx, row.Kind, row.Item); err != nil {
			return created, fmt.Errorf("%s %q: %w", row.Kind, name, err)
		}
		names[name] = true
		created++
	}
	return created, nil
}
