package retornado

import "strings"

// Destino é a disposição final de uma unidade retornada.
type Destino string

const (
	DestinoEstoque         Destino = "Estoque"
	DestinoEstoqueSemiNovo Destino = "Estoque Semi Novo"
	DestinoGarantia        Destino = "Garantia"
	DestinoDescarte        Destino = "Descarte"
	DestinoUsoInterno      Destino = "Uso Interno"
)

// Destinos lista os destinos aceitos, na ordem usada pelos gráficos.
var Destinos = []Destino{
	DestinoEstoque,
	DestinoEstoqueSemiNovo,
	DestinoGarantia,
	DestinoDescarte,
	DestinoUsoInterno,
}

// ParseDestino normaliza caixa e espaços e devolve o destino canônico.
func ParseDestino(s string) (Destino, bool) {
	norm := strings.Join(strings.Fields(s), " ")
	for _, d := range Destinos {
		if strings.EqualFold(norm, string(d)) {
			return d, true
		}
	}
	return "", false
}

// Estocavel informa se o destino volta ao estoque (com ou sem desconto de semi novo).
func (d Destino) Estocavel() bool {
	return d == DestinoEstoque || d == DestinoEstoqueSemiNovo
}

// Decisao é o resultado da política de destino para um registro.
type Decisao int

const (
	// DecisaoCalcular: destino estocável sem valor armazenado, a calculadora deve rodar.
	DecisaoCalcular Decisao = iota
	// DecisaoManter: já existe valor armazenado (manual, garantia ou calculado antes).
	DecisaoManter
	// DecisaoNaoAplica: destino sem valor recuperável; o valor fica nulo.
	DecisaoNaoAplica
)

func (d Decisao) String() string {
	switch d {
	case DecisaoCalcular:
		return "calcular"
	case DecisaoManter:
		return "manter"
	case DecisaoNaoAplica:
		return "nao_aplica"
	default:
		return "desconhecida"
	}
}

// Decidir aplica a tabela de decisão. Destinos desconhecidos nunca disparam cálculo.
func Decidir(destino string, armazenado *float64) Decisao {
	if armazenado != nil {
		return DecisaoManter
	}
	d, ok := ParseDestino(destino)
	if ok && d.Estocavel() {
		return DecisaoCalcular
	}
	return DecisaoNaoAplica
}
