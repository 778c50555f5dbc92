package csv_to_postgres

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Processor отвечает за чтение и фильтрацию CSV данных.
type Processor struct {
	columns   []string
	separator rune
}

// NewProcessor создаёт новый Processor для документа с заданными колонками.
func NewProcessor(columns []string) *Processor {
	return &Processor{
		columns:   columns,
		separator: ';',
	}
}

func (p *Processor) SetSeparator(sep rune) *Processor {
	if sep != 0 {
		p.separator = sep
	}
	return p
}

// ProcessCSV читает CSV данные из reader, декодируя из Windows-1251,
// и возвращает строки с количеством полей по числу колонок.
// Строка заголовка и строки с неверным числом полей отбрасываются.
func (p *Processor) ProcessCSV(reader io.Reader) ([][]string, error) {
	decoded := transform.NewReader(reader, charmap.Windows1251.NewDecoder())

	csvReader := csv.NewReader(decoded)
	csvReader.Comma = p.separator
	csvReader.FieldsPerRecord = -1

	var rows [][]string
	lineNum := 0
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv read error on line %d: %w", lineNum+1, err)
		}
		lineNum++

		if len(record) != len(p.columns) {
			log.Printf("Пропущена строка %d: %d полей вместо %d", lineNum, len(record), len(p.columns))
			continue
		}
		if lineNum == 1 && p.isHeader(record) {
			continue
		}

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func (p *Processor) isHeader(record []string) bool {
	for i, col := range p.columns {
		if strings.EqualFold(strings.TrimSpace(record[i]), col) {
			return true
		}
	}
	return false
}
