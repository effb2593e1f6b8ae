package documents

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-stock/internal/domain"
)

// Prefijos de numeración por tipo de documento.
const (
	prefixGoodsReceipt    = "GR"
	prefixStockIssue      = "SI"
	prefixStockTransfer   = "TR"
	prefixStockAdjustment = "ADJ"
	prefixCycleCount      = "CC"
	prefixPurchaseOrder   = "PO"
)

// newNumber genera un consecutivo legible: PREFIJO-AAAAMMDD-SUFIJO.
// El sufijo sale de un UUID; el formato es presentación, la unicidad es
// invariante dura y la garantiza el índice único más el reintento de abajo.
func newNumber(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:6]
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), suffix)
}

// uniqueNumber genera un número y verifica contra el repositorio antes de
// guardar; ante colisión (improbable) reintenta con otro sufijo.
func uniqueNumber(exists func(string) (bool, error), prefix string, now time.Time) (string, error) {
	for i := 0; i < 5; i++ {
		n := newNumber(prefix, now)
		dup, err := exists(n)
		if err != nil {
			return "", err
		}
		if !dup {
			return n, nil
		}
	}
	return "", domain.ErrDuplicate
}
