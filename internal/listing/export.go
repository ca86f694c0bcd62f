package listing

import (
	"fmt"
	"io"

	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the media type of exported spreadsheets
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// ExportProducers writes the producers as a spreadsheet to w
func ExportProducers(w io.Writer, producers []models.Producer) error {
	header := []interface{}{"ID", "Nome", "CPF", "Contato", "Comunidade", "Município", "UF", "NIS", "CAF", "Aposentado", "PCD"}
	rows := make([][]interface{}, 0, len(producers))
	for _, p := range producers {
		rows = append(rows, []interface{}{
			p.ID, p.Name, utils.FormatCPF(p.CPF), utils.FormatPhone(p.Contact),
			p.Community, p.Municipality, p.State, p.NIS, p.CAF,
			yesNo(p.IsRetired), yesNo(p.IsPcd),
		})
	}
	return writeSheet(w, "Produtores", header, rows)
}

// ExportProperties writes the properties, owners joined, to w
func ExportProperties(w io.Writer, properties []models.Property) error {
	header := []interface{}{"ID", "Área produtiva", "Produtor", "CPF do produtor", "Área total (ha)", "Área agrícola (ha)", "Quintal produtivo (ha)", "Latitude", "Longitude", "Itens"}
	rows := make([][]interface{}, 0, len(properties))
	for _, p := range properties {
		owner, ownerCPF := "", ""
		if p.Producer != nil {
			owner, ownerCPF = p.Producer.Name, utils.FormatCPF(p.Producer.CPF)
		}
		rows = append(rows, []interface{}{
			p.ID, p.ProductiveAreaName, owner, ownerCPF,
			utils.FormatOptionalFloat(p.TotalArea),
			utils.FormatOptionalFloat(p.AgriculturalArea),
			utils.FormatOptionalFloat(p.ProductiveBackyardArea),
			p.Latitude, p.Longitude, len(p.Items),
		})
	}
	return writeSheet(w, "Propriedades", header, rows)
}

func writeSheet(w io.Writer, sheet string, header []interface{}, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}
