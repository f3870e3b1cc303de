package main

import (
	"context"
	"log"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/membership-service/internal/auth"
	"github.com/spec-kit/membership-service/internal/config"
	"github.com/spec-kit/membership-service/internal/domain"
	"github.com/spec-kit/membership-service/internal/observability"
	"github.com/spec-kit/membership-service/internal/persistence"
	"github.com/spec-kit/membership-service/internal/repository"
)

// Seeds the super admin and one org admin per organization. Existing
// accounts are left untouched, so the binary is safe to re-run.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	users := repository.NewUserRepository(pg.PoolHandle())

	superHash, err := auth.HashPassword("admin123", cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}
	if err := users.Upsert(ctx, &domain.UserAuth{
		Email:        "admin@medicare.com",
		PasswordHash: superHash,
		Name:         "Super Admin",
		Role:         domain.RoleSuperAdmin,
	}); err != nil {
		logger.Fatal("failed to seed super admin", zap.Error(err))
	}

	orgs := []string{"Cardiology", "Dermatology", "Emergency Medicine"}
	for _, org := range orgs {
		lower := strings.ReplaceAll(strings.ToLower(org), " ", "")
		hash, err := auth.HashPassword(lower+"admin", cfg.Auth.BcryptCost)
		if err != nil {
			logger.Fatal("failed to hash password", zap.Error(err))
		}

		organization := org
		if err := users.Upsert(ctx, &domain.UserAuth{
			Email:        lower + "@medicare.com",
			PasswordHash: hash,
			Name:         org + " Admin",
			Role:         domain.RoleOrgAdmin,
			Organization: &organization,
		}); err != nil {
			logger.Fatal("failed to seed org admin", zap.String("organization", org), zap.Error(err))
		}
	}

	logger.Info("seed completed successfully", zap.Int("org_admins", len(orgs)))
}
