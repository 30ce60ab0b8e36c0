// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm para
// renderizar el header, las advertencias y el resumen con colores.
type PTermPresenter struct {
	warnings int
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm.
func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{}
}

// Start muestra el header de la corrida.
func (p *PTermPresenter) Start(info RunInfo) {
	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("accountx - Account Consolidation")

	input := info.Input
	if input == "-" {
		input = "stdin"
	}

	pterm.Info.Printfln("Input: %s (%d records, cap %d)",
		pterm.Cyan(input), info.Records, info.MaxRecords)
	if info.Normalize {
		pterm.Info.Println("Normalization: enabled")
	}
	pterm.Println()
}

// Warning muestra una advertencia no fatal.
func (p *PTermPresenter) Warning(msg string) {
	p.warnings++
	pterm.Warning.Println(msg)
}

// Finish muestra el resumen final de la corrida.
func (p *PTermPresenter) Finish(stats RunStats) {
	pterm.Println()

	if stats.FellBack {
		pterm.Warning.Println("Consolidation fell back to passthrough; records returned untouched.")
	}

	data := pterm.TableData{
		{"Input records", fmt.Sprintf("%d", stats.InputRecords)},
		{"Output accounts", fmt.Sprintf("%d", stats.OutputRecords)},
		{"Merged", fmt.Sprintf("%d", stats.MergedCount)},
		{"Removed", fmt.Sprintf("%d", stats.RemovedCount)},
		{"Duration", stats.Duration.Round(time.Millisecond).String()},
	}
	if err := pterm.DefaultTable.WithData(data).Render(); err != nil {
		// render de tabla es cosmético: degrada a texto plano
		pterm.Info.Printfln("merged=%d removed=%d output=%d",
			stats.MergedCount, stats.RemovedCount, stats.OutputRecords)
	}

	if p.warnings > 0 {
		pterm.Println()
		pterm.Warning.Printfln("%d warning(s) during the run", p.warnings)
	}
}

// Close limpia recursos del presenter.
func (p *PTermPresenter) Close() error {
	return nil
}
