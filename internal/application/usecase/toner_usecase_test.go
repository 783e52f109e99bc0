package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sgqpro/sgq-api/internal/application/dto"
	"github.com/sgqpro/sgq-api/internal/application/usecase"
	"github.com/sgqpro/sgq-api/internal/domain"
	"github.com/sgqpro/sgq-api/internal/domain/entity"
)

func TestTonerCreate_DerivaValorPorFolha(t *testing.T) {
	repo := new(mockTonerRepo)
	repo.On("GetByModelo", mock.Anything, "CF258A").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(tn *entity.Toner) bool {
		return tn.Capacidade == 3000 && tn.ValorPorFolha == 0.1
	})).Return(nil)

	uc := usecase.NewTonerUseCase(repo, new(mockRetornadoRepo), nil)
	out, err := uc.Create(context.Background(), dto.CreateTonerRequest{
		Modelo: " CF258A ", PesoVazio: 60, Gramatura: 540, Capacidade: 3000, Preco: decimal.NewFromInt(300),
	})

	require.NoError(t, err)
	assert.Equal(t, "CF258A", out.Modelo)
	assert.InDelta(t, 0.1, out.ValorPorFolha, 1e-12)
	repo.AssertExpectations(t)
}

func TestTonerCreate_ModeloDuplicado(t *testing.T) {
	repo := new(mockTonerRepo)
	repo.On("GetByModelo", mock.Anything, "CF258A").Return(tonerReferencia(), nil)

	uc := usecase.NewTonerUseCase(repo, new(mockRetornadoRepo), nil)
	_, err := uc.Create(context.Background(), dto.CreateTonerRequest{
		Modelo: "CF258A", PesoVazio: 60, Gramatura: 540, Capacidade: 1000, Preco: decimal.NewFromInt(80),
	})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTonerCreate_CapacidadeZeroRejeitada(t *testing.T) {
	uc := usecase.NewTonerUseCase(new(mockTonerRepo), new(mockRetornadoRepo), nil)
	_, err := uc.Create(context.Background(), dto.CreateTonerRequest{Modelo: "X", PesoVazio: 60, Gramatura: 540})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTonerUpdate_RecalculaEInvalidaRelatorio(t *testing.T) {
	repo := new(mockTonerRepo)
	repo.On("GetByID", mock.Anything, "t1").Return(tonerReferencia(), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	spy := &spyInvalidator{}

	uc := usecase.NewTonerUseCase(repo, new(mockRetornadoRepo), spy)
	preco := decimal.NewFromInt(50)
	out, err := uc.Update(context.Background(), "t1", dto.UpdateTonerRequest{Preco: &preco})

	require.NoError(t, err)
	assert.InDelta(t, 0.05, out.ValorPorFolha, 1e-12)
	assert.Equal(t, 1, spy.n)
}

func TestTonerDelete_BloqueadoComRetornados(t *testing.T) {
	repo := new(mockTonerRepo)
	repo.On("GetByID", mock.Anything, "t1").Return(tonerReferencia(), nil)
	ret := new(mockRetornadoRepo)
	ret.On("CountByToner", mock.Anything, "t1").Return(4, nil)

	uc := usecase.NewTonerUseCase(repo, ret, nil)
	err := uc.Delete(context.Background(), "t1")

	assert.ErrorIs(t, err, domain.ErrTonerInUse)
	assert.Contains(t, err.Error(), "4 retornados")
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTonerDelete_SemVinculos(t *testing.T) {
	repo := new(mockTonerRepo)
	repo.On("GetByID", mock.Anything, "t1").Return(tonerReferencia(), nil)
	repo.On("Delete", mock.Anything, "t1").Return(nil)
	ret := new(mockRetornadoRepo)
	ret.On("CountByToner", mock.Anything, "t1").Return(0, nil)

	uc := usecase.NewTonerUseCase(repo, ret, nil)
	require.NoError(t, uc.Delete(context.Background(), "t1"))
	repo.AssertExpectations(t)
}

func TestTonerDelete_FalhaNaContagem(t *testing.T) {
	repo := new(mockTonerRepo)
	repo.On("GetByID", mock.Anything, "t1").Return(tonerReferencia(), nil)
	ret := new(mockRetornadoRepo)
	ret.On("CountByToner", mock.Anything, "t1").Return(0, errors.New("conexão perdida"))

	uc := usecase.NewTonerUseCase(repo, ret, nil)
	err := uc.Delete(context.Background(), "t1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTonerInUse)
}

func TestTonerDelete_Inexistente(t *testing.T) {
	repo := new(mockTonerRepo)
	repo.On("GetByID", mock.Anything, "x").Return(nil, nil)

	uc := usecase.NewTonerUseCase(repo, new(mockRetornadoRepo), nil)
	assert.ErrorIs(t, uc.Delete(context.Background(), "x"), domain.ErrNotFound)
}
