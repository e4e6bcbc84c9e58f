package mongo

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/banco/cliente-api/internal/core/domain"
)

// seedProducts is the banking product reference data loaded at startup.
var seedProducts = []struct {
	Code        string
	Description string
}{
	{"PZOF", "Plazo Fijo"},
	{"CHEQ", "Cheques"},
	{"TJCREDITO", "Tarjeta de Crédito"},
	{"TJDEBITO", "Tarjeta de Débito"},
	{"CJAHRR", "Caja de Ahorro"},
	{"CTACORR", "Cuenta Corriente"},
	{"PRESTAMO", "Préstamo"},
	{"CA", "Cuenta de Ahorro"},
	{"TC", "Tarjeta Corporativa"},
}

// seedUsers are the bootstrap accounts created when absent. Intended for
// development and first deployment; rotate the passwords in production.
var seedUsers = []struct {
	Username string
	Password string
	Roles    []string
}{
	{"admin", "adminpass", []string{domain.RoleAdmin}},
	{"user", "userpass", []string{domain.RoleUser}},
}

// Seeder loads the role enumeration, bootstrap accounts, and product catalog.
// Every step is idempotent, so it runs unconditionally on each startup.
type Seeder struct {
	roles    *RoleRepository
	users    *UserRepository
	products *ProductRepository
	log      zerolog.Logger
}

func NewSeeder(roles *RoleRepository, users *UserRepository, products *ProductRepository, log zerolog.Logger) *Seeder {
	return &Seeder{roles: roles, users: users, products: products, log: log}
}

// Run seeds roles, users, and products, in that order (users reference roles).
func (s *Seeder) Run(ctx context.Context) error {
	for _, name := range []string{domain.RoleUser, domain.RoleModerator, domain.RoleAdmin} {
		if err := s.roles.Ensure(ctx, name); err != nil {
			return err
		}
		s.log.Info().Str("role", name).Msg("role verified")
	}

	for _, u := range seedUsers {
		if _, err := s.users.FindByUsername(ctx, u.Username); err == nil {
			s.log.Info().Str("username", u.Username).Msg("bootstrap user already exists")
			continue
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := s.users.Create(ctx, &domain.User{
			Username:     u.Username,
			PasswordHash: string(hash),
			Roles:        u.Roles,
		}); err != nil && !errors.Is(err, domain.ErrUserExists) {
			return err
		}
		s.log.Info().Str("username", u.Username).Strs("roles", u.Roles).Msg("bootstrap user created")
	}

	for _, p := range seedProducts {
		if err := s.products.Ensure(ctx, p.Code, p.Description); err != nil {
			return err
		}
	}
	s.log.Info().Int("products", len(seedProducts)).Msg("product catalog verified")

	return nil
}
