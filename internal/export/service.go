package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rateio-app/rateio/internal/currency"
	"github.com/rateio-app/rateio/internal/session"
)

// Service produces XLSX bytes for a simulation snapshot.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildSimulationXLSX renders the allocation table, deposits and fee split
// of a snapshot into a single-sheet workbook.
func (s *Service) BuildSimulationXLSX(snap session.Snapshot) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Rateio"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defaultIndex, _ := f.GetSheetIndex("Sheet1"); defaultIndex != -1 && defaultIndex != activeIndex {
		_ = f.DeleteSheet("Sheet1")
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	headers := []string{"Descrição", "Valor Original", "Valor Pago", "Valor Restante"}
	for i, h := range headers {
		write(i+1, 1, h)
	}

	row := 2
	for _, item := range snap.Items {
		entry := snap.Result[item.ID]
		write(1, row, item.Description)
		write(2, row, currency.Format(item.FaceValue))
		if item.Selected {
			write(3, row, currency.Format(entry.Paid))
			write(4, row, currency.Format(entry.Remaining))
		} else {
			write(3, row, "-")
			write(4, row, "-")
		}
		row++
	}

	row++
	write(1, row, "Total da Dívida")
	write(2, row, currency.Format(snap.Totals.TotalDebt))
	write(3, row, currency.Format(snap.Totals.TotalPaid))
	write(4, row, currency.Format(snap.Totals.TotalRemaining))
	row++
	write(1, row, "Saldo Final dos Depósitos")
	write(2, row, currency.Format(snap.Totals.Balance))

	row += 2
	write(1, row, "Depósitos Judiciais")
	row++
	for i, dep := range snap.Deposits {
		write(1, row, fmt.Sprintf("Depósito %d", i+1))
		write(2, row, currency.Format(dep.Amount))
		row++
	}
	write(1, row, "Total Depositado")
	write(2, row, currency.Format(snap.TotalDeposits))

	if snap.FeeShare.Beneficiaries > 0 && snap.FeeShare.Total > 0 {
		row += 2
		write(1, row, "Divisão de Honorários")
		row++
		write(1, row, "Total de Honorários Pagos")
		write(2, row, currency.Format(snap.FeeShare.Total))
		row++
		write(1, row, fmt.Sprintf("Valor por Advogado (%d)", snap.FeeShare.Beneficiaries))
		write(2, row, currency.Format(snap.FeeShare.PerBeneficiary))
	}

	_ = f.SetColWidth(sheet, "A", "A", 48)
	_ = f.SetColWidth(sheet, "B", "D", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"session_id", snap.ID,
		"rows", len(snap.Items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
