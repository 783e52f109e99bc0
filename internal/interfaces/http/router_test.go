package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgqpro/sgq-api/internal/application/analytics"
	"github.com/sgqpro/sgq-api/internal/application/auth"
	"github.com/sgqpro/sgq-api/internal/application/dto"
	"github.com/sgqpro/sgq-api/internal/application/retornados"
	"github.com/sgqpro/sgq-api/internal/application/usecase"
	"github.com/sgqpro/sgq-api/internal/domain"
	"github.com/sgqpro/sgq-api/internal/domain/entity"
	"github.com/sgqpro/sgq-api/internal/domain/repository"
	apphttp "github.com/sgqpro/sgq-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositórios em memória
// ──────────────────────────────────────────────────────────────────────────────

type memToners struct {
	mu   sync.Mutex
	byID map[string]entity.Toner
}

func (m *memToners) Create(_ context.Context, t *entity.Toner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[t.ID] = *t
	return nil
}

func (m *memToners) GetByID(_ context.Context, id string) (*entity.Toner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *memToners) GetByModelo(_ context.Context, modelo string) (*entity.Toner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.byID {
		if strings.EqualFold(t.Modelo, modelo) {
			return &t, nil
		}
	}
	return nil, nil
}

func (m *memToners) Update(ctx context.Context, t *entity.Toner) error { return m.Create(ctx, t) }

func (m *memToners) List(context.Context, int, int) ([]*entity.Toner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Toner
	for _, t := range m.byID {
		out = append(out, &t)
	}
	return out, nil
}

func (m *memToners) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

type memRetornados struct {
	mu     sync.Mutex
	toners *memToners
	rows   []entity.Retornado
	fail   error
	// lento segura a consulta até o contexto expirar
	lento bool
}

func (m *memRetornados) FetchPage(ctx context.Context, q repository.PageQuery) ([]entity.RetornadoComToner, error) {
	if m.lento {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	rows := append([]entity.Retornado(nil), m.rows...)
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].DataRegistro.Equal(rows[j].DataRegistro) {
			return rows[i].DataRegistro.After(rows[j].DataRegistro)
		}
		return rows[i].ID > rows[j].ID
	})
	out := []entity.RetornadoComToner{}
	for i := q.Offset; i < len(rows) && len(out) < q.Limit; i++ {
		t, ok := m.toners.byID[rows[i].TonerID]
		if !ok {
			continue
		}
		out = append(out, entity.RetornadoComToner{Retornado: rows[i], Toner: t})
	}
	return out, nil
}

func (m *memRetornados) Create(_ context.Context, r *entity.Retornado) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, *r)
	return nil
}

func (m *memRetornados) GetByID(_ context.Context, id string) (*entity.RetornadoComToner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			return &entity.RetornadoComToner{Retornado: r, Toner: m.toners.byID[r.TonerID]}, nil
		}
	}
	return nil, nil
}

func (m *memRetornados) Update(_ context.Context, r *entity.Retornado) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == r.ID {
			m.rows[i] = *r
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memRetornados) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memRetornados) CountByToner(_ context.Context, tonerID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.rows {
		if r.TonerID == tonerID {
			n++
		}
	}
	return n, nil
}

type noUsers struct{}

func (noUsers) Create(context.Context, *entity.User) error              { return nil }
func (noUsers) GetByID(context.Context, string) (*entity.User, error)    { return nil, nil }
func (noUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (noUsers) Update(context.Context, *entity.User) error              { return nil }
func (noUsers) List(context.Context, int, int) ([]*entity.User, error)  { return nil, nil }
func (noUsers) Delete(context.Context, string) error                    { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// App completo
// ──────────────────────────────────────────────────────────────────────────────

const testReportKey = "chave-bi-teste"

type testEnv struct {
	app        *fiber.App
	toners     *memToners
	retornados *memRetornados
}

func newTestEnv(t *testing.T, opts ...func(*apphttp.RouterDeps)) *testEnv {
	t.Helper()
	toners := &memToners{byID: map[string]entity.Toner{
		"t1": {ID: "t1", Modelo: "CF258A", Cor: "Preto", PesoVazio: 60, Gramatura: 540, Capacidade: 1000,
			Preco: decimal.NewFromInt(80), ValorPorFolha: 0.08},
	}}
	rets := &memRetornados{toners: toners}
	log := zerolog.Nop()

	fetcher := retornados.NewFetcher(rets, retornados.FetcherOptions{PageSize: 2, Logger: log})
	relatorioUC := retornados.NewRelatorioUseCase(fetcher, nil, time.Minute, time.UTC, log)

	deps := apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(noUsers{}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60}),
		TonerUC:     usecase.NewTonerUseCase(toners, rets, relatorioUC),
		RetornadoUC: usecase.NewRetornadoUseCase(rets, toners, fetcher, relatorioUC, log),
		UserUC:      usecase.NewUserUseCase(noUsers{}),
		DashboardUC: analytics.NewDashboardUseCase(fetcher, time.UTC),
		RelatorioUC: relatorioUC,
		JWTSecret:   testJWTSecret,
		ReportKey:   testReportKey,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return &testEnv{app: app, toners: toners, retornados: rets}
}

func (e *testEnv) do(t *testing.T, method, path, auth string, body string, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestHealth(t *testing.T) {
	resp := newTestEnv(t).do(t, http.MethodGet, "/health", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRetornados_CriarCalculaERelatorioExpoe(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/retornados", tokenForRole(t, "operador"),
		`{"cliente_id":"C-10","toner_id":"00000000-0000-0000-0000-0000000000aa","peso":500,"destino_final":"Estoque"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "toner inexistente")

	// id de toner com formato uuid para passar pela validação
	tn := env.toners.byID["t1"]
	tn.ID = "00000000-0000-0000-0000-000000000011"
	env.toners.byID = map[string]entity.Toner{tn.ID: tn}

	resp = env.do(t, http.MethodPost, "/api/retornados", tokenForRole(t, "operador"),
		`{"cliente_id":"C-10","toner_id":"00000000-0000-0000-0000-000000000011","peso":500,"destino_final":"estoque"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.RetornadoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotNil(t, created.ValorRecuperado)
	assert.Equal(t, 65.19, *created.ValorRecuperado)
	assert.Equal(t, testFilial, created.Filial, "filial padrão vem do token")

	rel := env.do(t, http.MethodGet, "/api/v1/relatorios/retornados", "", "", apphttp.HeaderAPIKey, testReportKey)
	defer rel.Body.Close()
	require.Equal(t, http.StatusOK, rel.StatusCode)

	var body dto.RelatorioResponse
	require.NoError(t, json.NewDecoder(rel.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "CF258A", body.Data[0].Modelo)
	require.NotNil(t, body.Data[0].ValorRecuperado)
	assert.Equal(t, 65.19, *body.Data[0].ValorRecuperado)
}

func TestRelatorio_ChaveInvalida(t *testing.T) {
	env := newTestEnv(t)

	for _, key := range []string{"", "errada"} {
		resp := env.do(t, http.MethodGet, "/api/v1/relatorios/retornados", "", "", apphttp.HeaderAPIKey, key)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.JSONEq(t, `{"success":false,"error":"chave de API ausente ou inválida","total":0,"data":[]}`, string(raw))
	}
}

func TestRelatorio_FalhaNaBuscaNaoDevolveParcial(t *testing.T) {
	env := newTestEnv(t)
	env.retornados.fail = assert.AnError

	resp := env.do(t, http.MethodGet, "/api/v1/relatorios/retornados", "", "", apphttp.HeaderAPIKey, testReportKey)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body dto.RelatorioResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.NotNil(t, body.Data)
	assert.Empty(t, body.Data)
}

func TestRelatorio_FiltroInvalido(t *testing.T) {
	resp := newTestEnv(t).do(t, http.MethodGet, "/api/v1/relatorios/retornados?data_inicio=19-10-2026", "", "",
		apphttp.HeaderAPIKey, testReportKey)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestToners_VisualizadorNaoCadastra(t *testing.T) {
	resp := newTestEnv(t).do(t, http.MethodPost, "/api/toners", tokenForRole(t, "visualizador"),
		`{"modelo":"X","peso_vazio":60,"gramatura":540,"capacidade_folhas":1000,"preco":"80"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestToners_ValidacaoDoCorpo(t *testing.T) {
	resp := newTestEnv(t).do(t, http.MethodPost, "/api/toners", tokenForRole(t, "qualidade"),
		`{"modelo":"","peso_vazio":60,"gramatura":540,"capacidade_folhas":0}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Fields, "Modelo")
	assert.Contains(t, body.Fields, "Capacidade")
}

func TestToners_ExclusaoComRetornadosRetorna409(t *testing.T) {
	env := newTestEnv(t)
	env.retornados.rows = []entity.Retornado{{ID: "r1", TonerID: "t1", Destino: "Estoque", Peso: 500, DataRegistro: time.Now()}}

	resp := env.do(t, http.MethodDelete, "/api/toners/t1", tokenForRole(t, "admin"), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRetornadosTodos_DrenaTodasAsPaginas(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		env.retornados.rows = append(env.retornados.rows, entity.Retornado{
			ID: string(rune('a' + i)), TonerID: "t1", Destino: "Descarte", Peso: 100, DataRegistro: base.AddDate(0, 0, i),
		})
	}

	resp := env.do(t, http.MethodGet, "/api/retornados/todos", tokenForRole(t, "visualizador"), "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total int                     `json:"total"`
		Items []dto.RetornadoResponse `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 5, body.Total, "tamanho de página 2 exige três idas ao banco")
	assert.Equal(t, "e", body.Items[0].ID, "mais recente primeiro")
}

func TestDashboard_Autenticado(t *testing.T) {
	resp := newTestEnv(t).do(t, http.MethodGet, "/api/dashboard/retornados", tokenForRole(t, "visualizador"), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUsuarios_SomenteAdmin(t *testing.T) {
	resp := newTestEnv(t).do(t, http.MethodGet, "/api/usuarios", tokenForRole(t, "qualidade"), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDrenagem_PrazoExpiradoCancelaBusca(t *testing.T) {
	env := newTestEnv(t, func(d *apphttp.RouterDeps) { d.FetchTimeout = 20 * time.Millisecond })
	env.retornados.lento = true

	resp := env.do(t, http.MethodGet, "/api/retornados/todos", tokenForRole(t, "visualizador"), "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "FETCH_CANCELLED", body.Code)

	dash := env.do(t, http.MethodGet, "/api/dashboard/retornados", tokenForRole(t, "visualizador"), "")
	dash.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, dash.StatusCode)

	rel := env.do(t, http.MethodGet, "/api/v1/relatorios/retornados", "", "", apphttp.HeaderAPIKey, testReportKey)
	defer rel.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, rel.StatusCode)

	var relBody dto.RelatorioResponse
	require.NoError(t, json.NewDecoder(rel.Body).Decode(&relBody))
	assert.False(t, relBody.Success)
	assert.Empty(t, relBody.Data)
}
