package entity

// LineStatus es el ciclo de vida de una línea de documento.
// Se modela como estado explícito (no flag booleano) y las vistas filtradas
// (ActiveLines) excluyen las borradas por construcción.
type LineStatus string

const (
	LineStatusActive  LineStatus = "ACTIVE"
	LineStatusDeleted LineStatus = "DELETED"
)
