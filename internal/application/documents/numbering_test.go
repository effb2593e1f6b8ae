package documents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-stock/internal/domain"
)

func TestNewNumber_Formato(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	n := newNumber(prefixGoodsReceipt, at)
	assert.Regexp(t, `^GR-20260315-[0-9A-F]{6}$`, n)

	// Dos llamadas no colisionan en la práctica.
	assert.NotEqual(t, n, newNumber(prefixGoodsReceipt, at))
}

func TestUniqueNumber_ReintentaAnteColision(t *testing.T) {
	calls := 0
	exists := func(string) (bool, error) {
		calls++
		return calls == 1, nil // la primera propuesta "ya existe"
	}
	n, err := uniqueNumber(exists, prefixStockIssue, time.Now())
	require.NoError(t, err)
	assert.Regexp(t, `^SI-`, n)
	assert.Equal(t, 2, calls)
}

func TestUniqueNumber_AgotaReintentos(t *testing.T) {
	exists := func(string) (bool, error) { return true, nil }
	_, err := uniqueNumber(exists, prefixCycleCount, time.Now())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
