package domain

import (
	"time"
)

// Period representa um intervalo de datas inclusivo com granularidade de dia
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriod normaliza as datas para meia-noite e monta o período
func NewPeriod(start, end time.Time) Period {
	return Period{
		Start: truncateToDay(start),
		End:   truncateToDay(end),
	}
}

// Days retorna a quantidade de dias do período (inclusivo nas duas pontas)
func (p Period) Days() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// Contains verifica se a data pertence ao período (granularidade de dia)
func (p Period) Contains(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Previous retorna o período anterior: mesmo tamanho em dias, terminando no
// dia imediatamente anterior ao início do período atual, sem sobreposição e
// sem lacuna.
func (p Period) Previous() Period {
	days := p.Days()
	if days == 0 {
		return p
	}

	end := p.Start.AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(days - 1))

	return Period{Start: start, End: end}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
