package retornado

import "github.com/sgqpro/sgq-api/internal/domain/entity"

// Resolucao é o valor final de um retornado depois da política e da calculadora.
type Resolucao struct {
	Valor     *float64
	Decisao   Decisao
	Calculado bool // true quando o valor veio da calculadora nesta resolução
	Resultado Resultado
}

// EntradaDe monta a entrada da calculadora a partir do retornado e do seu toner.
func EntradaDe(r entity.Retornado, t entity.Toner) Entrada {
	return Entrada{
		Peso:          r.Peso,
		PesoVazio:     t.PesoVazio,
		Gramatura:     t.Gramatura,
		Capacidade:    float64(t.Capacidade),
		ValorPorFolha: t.ValorPorFolha,
	}
}

// Resolver decide e, se for o caso, calcula o valor recuperado.
// O valor armazenado nunca é alterado; sem valor e sem cálculo possível o resultado é nil.
func Resolver(r entity.Retornado, t entity.Toner) Resolucao {
	dec := Decidir(r.Destino, r.ValorRecuperado)
	switch dec {
	case DecisaoManter:
		v := *r.ValorRecuperado
		return Resolucao{Valor: &v, Decisao: dec}
	case DecisaoCalcular:
		res := Calcular(EntradaDe(r, t))
		out := Resolucao{Decisao: dec, Resultado: res}
		if res.Calculavel {
			v := res.Valor
			out.Valor = &v
			out.Calculado = true
		}
		return out
	default:
		return Resolucao{Decisao: dec}
	}
}
