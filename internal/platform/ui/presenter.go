// internal/platform/ui/presenter.go
package ui

import "time"

// Presenter define la interfaz para presentar una corrida de consolidación
// en la terminal. La capa de UI real es un colaborador externo; esto es solo
// el feedback mínimo del binario batch.
type Presenter interface {
	// Start muestra la información inicial de la corrida
	Start(info RunInfo)

	// Warning muestra una advertencia no fatal
	Warning(msg string)

	// Finish muestra el resumen final
	Finish(stats RunStats)

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo contiene la información inicial de la corrida.
type RunInfo struct {
	Input      string
	Records    int
	Normalize  bool
	MaxRecords int
}

// RunStats contiene el resumen final de la corrida.
type RunStats struct {
	InputRecords  int
	OutputRecords int
	MergedCount   int
	RemovedCount  int
	FellBack      bool
	Duration      time.Duration
}

// NoopPresenter descarta toda la presentación (modo quiet).
type NoopPresenter struct{}

func NewNoopPresenter() *NoopPresenter { return &NoopPresenter{} }

func (p *NoopPresenter) Start(RunInfo)   {}
func (p *NoopPresenter) Warning(string)  {}
func (p *NoopPresenter) Finish(RunStats) {}
func (p *NoopPresenter) Close() error    { return nil }
