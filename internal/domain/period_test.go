package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriod_Days(t *testing.T) {
	tests := []struct {
		name     string
		period   Period
		expected int
	}{
		{
			name:     "Um único dia conta como 1",
			period:   NewPeriod(date(2024, 3, 10), date(2024, 3, 10)),
			expected: 1,
		},
		{
			name:     "Semana cheia conta 7",
			period:   NewPeriod(date(2024, 3, 1), date(2024, 3, 7)),
			expected: 7,
		},
		{
			name:     "Fim antes do início é 0",
			period:   NewPeriod(date(2024, 3, 10), date(2024, 3, 5)),
			expected: 0,
		},
		{
			name:     "Virada de mês",
			period:   NewPeriod(date(2024, 2, 28), date(2024, 3, 2)),
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.period.Days())
		})
	}
}

func TestPeriod_Contains(t *testing.T) {
	period := NewPeriod(date(2024, 3, 1), date(2024, 3, 7))

	assert.True(t, period.Contains(date(2024, 3, 1)))
	assert.True(t, period.Contains(date(2024, 3, 7)))
	assert.True(t, period.Contains(time.Date(2024, 3, 7, 23, 59, 0, 0, time.UTC)))
	assert.False(t, period.Contains(date(2024, 2, 29)))
	assert.False(t, period.Contains(date(2024, 3, 8)))
}

func TestPeriod_Previous(t *testing.T) {
	tests := []struct {
		name          string
		period        Period
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{
			name:          "Semana cheia",
			period:        NewPeriod(date(2024, 3, 8), date(2024, 3, 14)),
			expectedStart: date(2024, 3, 1),
			expectedEnd:   date(2024, 3, 7),
		},
		{
			name:          "Um único dia",
			period:        NewPeriod(date(2024, 3, 1), date(2024, 3, 1)),
			expectedStart: date(2024, 2, 29),
			expectedEnd:   date(2024, 2, 29),
		},
		{
			name:          "Mês de 30 dias atravessando a virada",
			period:        NewPeriod(date(2024, 4, 1), date(2024, 4, 30)),
			expectedStart: date(2024, 3, 2),
			expectedEnd:   date(2024, 3, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := tt.period.Previous()

			assert.Equal(t, tt.expectedStart, previous.Start)
			assert.Equal(t, tt.expectedEnd, previous.End)
			// Propriedades do período anterior: mesmo tamanho, contíguo, sem
			// sobreposição
			assert.Equal(t, tt.period.Days(), previous.Days())
			assert.Equal(t, tt.period.Start.AddDate(0, 0, -1), previous.End)
		})
	}
}

func TestDeltaPercent(t *testing.T) {
	assert.Equal(t, 50.0, DeltaPercent(150, 100))
	assert.Equal(t, -25.0, DeltaPercent(75, 100))
	assert.Equal(t, 0.0, DeltaPercent(100, 100))

	// Anterior zerado nunca vira divisão por zero
	assert.Equal(t, 0.0, DeltaPercent(100, 0))
	assert.Equal(t, 0.0, DeltaPercent(0, 0))
}

func TestProfitSettings_VATFraction(t *testing.T) {
	enabled := &ProfitSettings{VATEnabled: true, VATRate: 10}
	assert.Equal(t, 0.10, enabled.VATFraction())

	disabled := &ProfitSettings{VATEnabled: false, VATRate: 10}
	assert.Equal(t, 0.0, disabled.VATFraction())

	var nilSettings *ProfitSettings
	assert.Equal(t, 0.0, nilSettings.VATFraction())
}

func TestCostKind_Valid(t *testing.T) {
	assert.True(t, CostKindPercentOfRevenue.Valid())
	assert.True(t, CostKindFixedPerOrder.Valid())
	assert.False(t, CostKind("percent_of_orders").Valid())
	assert.False(t, CostKind("").Valid())
}

func TestTotalSpend(t *testing.T) {
	spends := []*PlatformSpend{
		{Platform: PlatformMeta, Spend: 100.50},
		{Platform: PlatformGoogle, Spend: 49.50},
		nil,
	}

	assert.Equal(t, 150.0, TotalSpend(spends))
	assert.Equal(t, 0.0, TotalSpend(nil))
}
