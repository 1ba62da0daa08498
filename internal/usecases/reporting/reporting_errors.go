package reporting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de relatórios
var (
	ErrFetchRecords = errors.New("error fetching performance records")
	ErrFetchLabels  = errors.New("error fetching account labels")
)

// ReportError é um erro com contexto adicional para relatórios
type ReportError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	Operation string // Operação em execução
	Details   string // Detalhes adicionais
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func NewReportError(err error, code, operation, details string) *ReportError {
	return &ReportError{
		Err:       err,
		Code:      code,
		Operation: operation,
		Details:   details,
	}
}
