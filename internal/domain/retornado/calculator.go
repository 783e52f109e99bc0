package retornado

import "math"

// Entrada reúne a medição física e os atributos de referência do toner.
type Entrada struct {
	Peso          float64 // W, gramas medidos
	PesoVazio     float64 // E, gramas do cartucho vazio
	Gramatura     float64 // G, gramas de pó com o toner cheio
	Capacidade    float64 // C, folhas
	ValorPorFolha float64 // V
}

// Resultado do cálculo de valor recuperado.
type Resultado struct {
	Valor float64
	// Calculavel é false quando faltam dados de referência; Valor fica 0.
	Calculavel bool
	// MassaNegativa indica peso medido abaixo do peso vazio (massa truncada em 0).
	MassaNegativa bool
	// AcimaDaGramatura indica fração restante > 1, sinal de dado inconsistente.
	AcimaDaGramatura bool
}

// Calcular converte o peso medido em valor monetário:
//
//	massa  = max(0, W - E)
//	fracao = massa / G
//	folhas = fracao * C
//	valor  = max(0, folhas * V)
//
// Não arredonda; o arredondamento acontece só na apresentação.
func Calcular(in Entrada) Resultado {
	if !finitos(in.Peso, in.PesoVazio, in.Gramatura, in.Capacidade, in.ValorPorFolha) {
		return Resultado{}
	}
	if in.Peso < 0 || in.PesoVazio <= 0 || in.Gramatura <= 0 || in.Capacidade <= 0 || in.ValorPorFolha <= 0 {
		return Resultado{}
	}

	res := Resultado{Calculavel: true}
	massa := in.Peso - in.PesoVazio
	if massa < 0 {
		res.MassaNegativa = true
		massa = 0
	}
	fracao := massa / in.Gramatura
	res.AcimaDaGramatura = fracao > 1

	valor := fracao * in.Capacidade * in.ValorPorFolha
	if valor < 0 || math.IsNaN(valor) || math.IsInf(valor, 0) {
		valor = 0
	}
	res.Valor = valor
	return res
}

// ValorRecuperado é o atalho que devolve só o valor e se ele pôde ser calculado.
func ValorRecuperado(in Entrada) (float64, bool) {
	r := Calcular(in)
	return r.Valor, r.Calculavel
}

// ValorPorFolha divide o preço pela capacidade; capacidade não positiva resulta em 0.
func ValorPorFolha(preco float64, capacidade int) float64 {
	if capacidade <= 0 || math.IsNaN(preco) || math.IsInf(preco, 0) {
		return 0
	}
	return preco / float64(capacidade)
}

func finitos(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
