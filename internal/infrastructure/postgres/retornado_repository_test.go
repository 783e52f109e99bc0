package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgqpro/sgq-api/internal/domain"
	"github.com/sgqpro/sgq-api/internal/domain/repository"
)

// captureQuerier guarda o SQL recebido e falha a execução.
type captureQuerier struct {
	sql  string
	args []any
}

var errCaptured = errors.New("capturado")

func (c *captureQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.sql, c.args = sql, args
	return pgconn.CommandTag{}, errCaptured
}

func (c *captureQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.sql, c.args = sql, args
	return nil, errCaptured
}

func (c *captureQuerier) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func TestFetchPage_OrdemEstavelPadrao(t *testing.T) {
	q := &captureQuerier{}
	_, err := NewRetornadoRepository(q).FetchPage(context.Background(), repository.PageQuery{Limit: 1000, Offset: 2000})

	require.ErrorIs(t, err, errCaptured)
	assert.Contains(t, q.sql, "INNER JOIN toners t ON t.id = r.toner_id")
	assert.Contains(t, q.sql, "ORDER BY r.data_registro DESC, r.id DESC LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{1000, 2000}, q.args)
}

func TestFetchPage_SortForaDaListaCaiNoPadrao(t *testing.T) {
	q := &captureQuerier{}
	_, _ = NewRetornadoRepository(q).FetchPage(context.Background(), repository.PageQuery{
		Limit: 10, SortKey: "peso; DROP TABLE retornados", SortDir: "sideways",
	})
	assert.Contains(t, q.sql, "ORDER BY r.data_registro DESC, r.id DESC")
	assert.NotContains(t, q.sql, "DROP")
}

func TestFetchPage_Ascendente(t *testing.T) {
	q := &captureQuerier{}
	_, _ = NewRetornadoRepository(q).FetchPage(context.Background(), repository.PageQuery{
		Limit: 10, SortKey: repository.SortCreatedAt, SortDir: repository.SortAsc,
	})
	assert.Contains(t, q.sql, "ORDER BY r.created_at ASC, r.id ASC")
}

func TestFetchPage_JanelaInvalida(t *testing.T) {
	_, err := NewRetornadoRepository(&captureQuerier{}).FetchPage(context.Background(), repository.PageQuery{Limit: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHasCode(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(nil))
}

func TestIDForaDoFormatoUUIDNaoChegaAoBanco(t *testing.T) {
	ctx := context.Background()
	q := &captureQuerier{}
	rets, toners, users := NewRetornadoRepository(q), NewTonerRepository(q), NewUserRepository(q)

	r, err := rets.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, r)

	tn, err := toners.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, tn)

	u, err := users.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, u)

	assert.ErrorIs(t, rets.Delete(ctx, "abc"), domain.ErrNotFound)
	assert.ErrorIs(t, toners.Delete(ctx, "abc"), domain.ErrNotFound)

	n, err := rets.CountByToner(ctx, "abc")
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Empty(t, q.sql, "nenhuma consulta enviada")
}

func TestIDUUIDSegueParaOBanco(t *testing.T) {
	q := &captureQuerier{}
	err := NewRetornadoRepository(q).Delete(context.Background(), "6f1c2a9e-6a59-4a53-9d3b-0c7c1d2e3f40")

	assert.ErrorIs(t, err, errCaptured)
	assert.Contains(t, q.sql, "DELETE FROM retornados")
}
