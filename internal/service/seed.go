package service

import (
	"context"
	"errors"
	"time"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/repository"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Bootstrap credentials for a fresh database. The password should be
// rotated through /me/password right after first login.
const (
	seedAdminName     = "Administrador"
	seedAdminEmail    = "admin@titangym.com"
	seedAdminPassword = "admin123"
)

// SeedAdmin guarantees at least one staff login exists. It only writes
// when the seed email is absent, so restarts are no-ops.
func SeedAdmin(ctx context.Context, userRepo repository.UserRepository) error {
	_, err := userRepo.GetByEmail(ctx, seedAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrHashingFailed
	}

	admin := &domain.User{
		Name:         seedAdminName,
		Email:        seedAdminEmail,
		PasswordHash: string(hashed),
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
	}

	if _, err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// another replica raced us to it
			return nil
		}
		return err
	}
	log.WithField("email", seedAdminEmail).Info("seeded bootstrap admin account")
	return nil
}

// seedSuggestions is the starter feedback set a fresh install shows on
// the dashboard until real customer suggestions arrive.
var seedSuggestions = []domain.Suggestion{
	{CustomerName: "Carlos Mendoza", Text: "Más variedad de clases grupales por la tarde", Category: "Clases"},
	{CustomerName: "Lucía Fernández", Text: "Las duchas necesitan mejor mantenimiento", Category: "Instalaciones"},
	{CustomerName: "Andrés Rojas", Text: "Sería genial tener más discos de 10kg en la zona de peso libre", Category: "Equipamiento"},
}

func SeedSuggestions(ctx context.Context, suggestionRepo repository.SuggestionRepository) error {
	existing, err := suggestionRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	for i, sg := range seedSuggestions {
		sg.Date = now.AddDate(0, 0, -i)
		if _, err := suggestionRepo.Create(ctx, &sg); err != nil {
			return err
		}
	}
	log.WithField("count", len(seedSuggestions)).Info("seeded dashboard suggestions")
	return nil
}
