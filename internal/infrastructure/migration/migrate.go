package migration

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Migrator aplica as migrações embutidas no binário.
type Migrator struct {
	migrate *migrate.Migrate
	log     zerolog.Logger
}

// New cria o Migrator a partir da connection string postgres://.
func New(databaseURL string, log zerolog.Logger) (*Migrator, error) {
	src, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("abrir migrações embutidas: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, pgx5URL(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("criar instância de migração: %w", err)
	}
	return &Migrator{migrate: m, log: log}, nil
}

// pgx5URL troca o esquema para o driver pgx/v5 do golang-migrate.
func pgx5URL(databaseURL string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(databaseURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, prefix)
		}
	}
	return databaseURL
}

// Up aplica todas as migrações pendentes.
func (m *Migrator) Up() error {
	m.log.Info().Msg("aplicando migrações")
	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.log.Info().Msg("nenhuma migração pendente")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migração up: %w", err)
	}
	return m.logVersion()
}

// Down desfaz todas as migrações.
func (m *Migrator) Down() error {
	m.log.Warn().Msg("desfazendo todas as migrações")
	err := m.migrate.Down()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migração down: %w", err)
	}
	return nil
}

// Steps aplica n migrações (positivo = up, negativo = down).
func (m *Migrator) Steps(n int) error {
	err := m.migrate.Steps(n)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migração steps %d: %w", n, err)
	}
	return m.logVersion()
}

// Version devolve a versão atual e se o banco ficou sujo.
func (m *Migrator) Version() (uint, bool, error) {
	v, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Close libera fonte e conexão.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.migrate.Close()
	return errors.Join(srcErr, dbErr)
}

func (m *Migrator) logVersion() error {
	v, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("ler versão de migração: %w", err)
	}
	m.log.Info().Uint("version", v).Bool("dirty", dirty).Msg("migrações concluídas")
	return nil
}
