package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sgqpro/sgq-api/internal/application/retornados"
	"github.com/sgqpro/sgq-api/internal/domain/entity"
	"github.com/sgqpro/sgq-api/internal/domain/repository"
)

type mockTonerRepo struct{ mock.Mock }

func (m *mockTonerRepo) Create(ctx context.Context, t *entity.Toner) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTonerRepo) GetByID(ctx context.Context, id string) (*entity.Toner, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*entity.Toner)
	return t, args.Error(1)
}

func (m *mockTonerRepo) GetByModelo(ctx context.Context, modelo string) (*entity.Toner, error) {
	args := m.Called(ctx, modelo)
	t, _ := args.Get(0).(*entity.Toner)
	return t, args.Error(1)
}

func (m *mockTonerRepo) Update(ctx context.Context, t *entity.Toner) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTonerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Toner, error) {
	args := m.Called(ctx, limit, offset)
	l, _ := args.Get(0).([]*entity.Toner)
	return l, args.Error(1)
}

func (m *mockTonerRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockRetornadoRepo struct{ mock.Mock }

func (m *mockRetornadoRepo) FetchPage(ctx context.Context, q repository.PageQuery) ([]entity.RetornadoComToner, error) {
	args := m.Called(ctx, q)
	l, _ := args.Get(0).([]entity.RetornadoComToner)
	return l, args.Error(1)
}

func (m *mockRetornadoRepo) Create(ctx context.Context, r *entity.Retornado) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRetornadoRepo) GetByID(ctx context.Context, id string) (*entity.RetornadoComToner, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.RetornadoComToner)
	return r, args.Error(1)
}

func (m *mockRetornadoRepo) Update(ctx context.Context, r *entity.Retornado) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRetornadoRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRetornadoRepo) CountByToner(ctx context.Context, tonerID string) (int, error) {
	args := m.Called(ctx, tonerID)
	return args.Int(0), args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, limit, offset)
	l, _ := args.Get(0).([]*entity.User)
	return l, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// spyInvalidator conta invalidações do relatório.
type spyInvalidator struct{ n int }

func (s *spyInvalidator) Invalidar(context.Context) { s.n++ }

type stubTodos struct {
	regs []retornados.RegistroEnriquecido
	err  error
}

func (s stubTodos) FetchAll(context.Context) ([]retornados.RegistroEnriquecido, error) {
	return s.regs, s.err
}

func ptr(v float64) *float64 { return &v }

func tonerReferencia() *entity.Toner {
	return &entity.Toner{ID: "t1", Modelo: "CF258A", PesoVazio: 60, Gramatura: 540, Capacidade: 1000, ValorPorFolha: 0.08}
}
