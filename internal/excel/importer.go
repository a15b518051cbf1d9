package excel

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/wordsrs/internal/session"
	"github.com/example/wordsrs/pkg/models"
)

// WordStore receives imported words.
type WordStore interface {
	UpsertWord(ctx context.Context, userID string, in session.WordInput) (*models.Word, bool, error)
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath         string // Path to the Excel or CSV file
	UserID           string // Owner of the imported words
	WordColumn       string // Column with the word
	MeaningColumn    string // Column with the meaning
	ExampleColumn    string // Column with an example sentence
	DifficultyColumn string // Column with the difficulty
	SheetName        string // Sheet to import, the first sheet if empty
	StartRow         int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:       "A",
		MeaningColumn:    "B",
		ExampleColumn:    "C",
		DifficultyColumn: "D",
		StartRow:         2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int      `json:"total_processed"`
	Created        int      `json:"created"`
	Updated        int      `json:"updated"`
	Errors         []string `json:"errors,omitempty"`
}

// Importer loads word lists into a WordStore.
type Importer struct {
	store WordStore
}

// NewImporter creates an importer writing to store.
func NewImporter(store WordStore) *Importer {
	return &Importer{store: store}
}

// ImportWords imports words from an Excel or CSV file. Problems with single
// rows are collected in the result; only unreadable files fail the import.
func (im *Importer) ImportWords(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	if config.UserID == "" {
		return nil, errors.New("import requires a user")
	}
	if config.StartRow < 1 {
		config.StartRow = 1
	}

	var (
		rows [][]string
		err  error
	)
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, row := range rows {
		rowNum := i + 1
		// Skip header rows
		if rowNum < config.StartRow || isBlank(row) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.TotalProcessed++
		if err := im.processRow(ctx, row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}
	return result, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// processRow processes a single row from any source
func (im *Importer) processRow(ctx context.Context, row []string, config ImportConfig, result *ImportResult) error {
	in := session.WordInput{
		Word:       cleanWord(cell(row, config.WordColumn)),
		Meaning:    strings.TrimSpace(cell(row, config.MeaningColumn)),
		Example:    strings.TrimSpace(cell(row, config.ExampleColumn)),
		Difficulty: normalizeDifficulty(cell(row, config.DifficultyColumn)),
	}
	if in.Word == "" {
		return errors.New("word cannot be empty")
	}

	_, created, err := im.store.UpsertWord(ctx, config.UserID, in)
	if err != nil {
		return err
	}
	if created {
		result.Created++
	} else {
		result.Updated++
	}
	return nil
}

func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
		return row[idx]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// cleanWord removes trailing notes in parentheses, e.g. "go (went, gone)".
func cleanWord(word string) string {
	if i := strings.Index(word, "("); i > 0 {
		return strings.TrimSpace(word[:i])
	}
	return strings.TrimSpace(word)
}

// normalizeDifficulty accepts difficulty names as well as the numeric 1-5
// scale used by older word lists. Unknown values are passed through so the
// row is reported.
func normalizeDifficulty(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	n, err := strconv.Atoi(s)
	if err != nil {
		return s
	}
	switch {
	case n <= 2:
		return "easy"
	case n == 3:
		return "medium"
	default:
		return "hard"
	}
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
