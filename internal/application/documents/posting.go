package documents

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/erp-stock/internal/application/stock"
	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
	"github.com/jhoicas/erp-stock/pkg/logger"
)

// Poster es el contrato que implementa cada tipo de documento posteable.
// Aporta únicamente su predicado de precondición y su traducción de líneas a
// movimientos; el sobre transaccional vive una sola vez en PostingEngine.
type Poster interface {
	DocumentType() entity.DocumentType
	// PostInTx recarga el documento dentro de la tx con lock exclusivo del
	// encabezado (GetForUpdate). Eso hace el posteo at-most-once: dos posteos
	// concurrentes se serializan sobre el lock y el segundo ve el estado ya
	// sellado. Luego valida la precondición, traduce cada línea activa a
	// movimientos del ledger, sella el encabezado y lo guarda. Cualquier
	// error aborta toda la tx.
	PostInTx(s repository.Stores, docID, actor string, now time.Time) error
	// RecordPostError registra la última falla de negocio sobre el documento,
	// fuera de la transacción ya revertida (best effort).
	RecordPostError(docID, message string)
}

// PostingEngine implementa el protocolo de posteo compartido por los seis
// tipos de documento: validar, luego postear, exactamente una vez, dentro de
// una unidad de trabajo atómica.
type PostingEngine struct {
	tx  stock.TxRunner
	log *logger.Logger
}

// NewPostingEngine construye el motor.
func NewPostingEngine(tx stock.TxRunner, log *logger.Logger) *PostingEngine {
	return &PostingEngine{tx: tx, log: log}
}

// Post ejecuta el posteo de un documento: una transacción, todas las líneas o
// ninguna. Las fallas de negocio se registran en el documento y se devuelven
// como sentinelas; las fallas de infraestructura se propagan envueltas.
func (e *PostingEngine) Post(ctx context.Context, p Poster, docID, actor string) error {
	if docID == "" || actor == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	err := e.tx.Run(ctx, func(s repository.Stores) error {
		return p.PostInTx(s, docID, actor, now)
	})
	if err == nil {
		e.log.Info().
			Str("document_type", string(p.DocumentType())).
			Str("document_id", docID).
			Str("actor", actor).
			Msg("documento posteado")
		return nil
	}
	if IsBusinessError(err) {
		// La tx ya se revirtió; dejamos la causa en el documento para que la
		// capa de presentación la muestre. El documento sigue usable.
		p.RecordPostError(docID, err.Error())
		e.log.Warn().
			Str("document_type", string(p.DocumentType())).
			Str("document_id", docID).
			Err(err).
			Msg("posteo rechazado por regla de negocio")
	} else {
		e.log.Error().
			Str("document_type", string(p.DocumentType())).
			Str("document_id", docID).
			Err(err).
			Msg("posteo fallido")
	}
	return err
}

// IsBusinessError distingue fallas de regla de negocio (recuperables, quedan
// adjuntas al documento) de fallas de infraestructura (se propagan).
func IsBusinessError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrInvalidState,
		domain.ErrNoActiveLines,
		domain.ErrInsufficientStock,
		domain.ErrReservedExceedsOnHand,
		domain.ErrOverReceipt,
		domain.ErrFractionalQuantity,
		domain.ErrBatchRequired,
		domain.ErrBatchNotAllowed,
		domain.ErrBatchProductMismatch,
		domain.ErrLocationNotPickable,
		domain.ErrLocationNotReceivable,
		domain.ErrWarehouseMismatch,
		domain.ErrSameLocation,
		domain.ErrInvalidInput,
		domain.ErrNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
