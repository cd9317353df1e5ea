// Package catalog seeds the default programmer roster and imports task
// templates from the catalog workbook.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"github.com/yukikurage/project-estimation-api/internal/constants"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"gorm.io/gorm"
)

var maxBaseHours = decimal.RequireFromString("999.99")

// DefaultProgrammers is the roster created by the seed command.
var DefaultProgrammers = []models.Programmer{
	{Name: "Alice", Seniority: "Junior", Coefficient: decimal.RequireFromString("1.75")},
	{Name: "Bob", Seniority: "Pleno", Coefficient: decimal.RequireFromString("1.00")},
	{Name: "Charlie", Seniority: "Senior", Coefficient: decimal.RequireFromString("0.75")},
	{Name: "Diana", Seniority: "lead", Coefficient: decimal.RequireFromString("0.60")},
	{Name: "Eve", Seniority: "PM", Coefficient: decimal.RequireFromString("1.00")},
}

type ProgrammerStore interface {
	FindByName(ctx context.Context, name string) (*models.Programmer, error)
	Create(ctx context.Context, programmer *models.Programmer) error
}

type TaskStore interface {
	FindByName(ctx context.Context, name string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
}

// SeedProgrammers creates every programmer whose name is not taken yet and
// returns how many were created.
func SeedProgrammers(ctx context.Context, store ProgrammerStore, programmers []models.Programmer) (int, error) {
	created := 0
	for _, p := range programmers {
		found, err := exists(func() error {
			_, err := store.FindByName(ctx, p.Name)
			return err
		})
		if err != nil {
			return created, fmt.Errorf("failed to look up programmer %q: %w", p.Name, err)
		}
		if found {
			continue
		}

		programmer := p
		if err := store.Create(ctx, &programmer); err != nil {
			return created, fmt.Errorf("failed to create programmer %q: %w", p.Name, err)
		}
		created++
	}
	return created, nil
}

// Options names the sheet and the header of each column read from it.
type Options struct {
	Sheet             string
	NameColumn        string
	DescriptionColumn string
	ClassColumn       string
	HoursColumn       string
}

func DefaultOptions() Options {
	return Options{
		Sheet:             constants.DefaultCatalogSheet,
		NameColumn:        constants.DefaultCatalogNameColumn,
		DescriptionColumn: constants.DefaultCatalogDescColumn,
		ClassColumn:       constants.DefaultCatalogClassColumn,
		HoursColumn:       constants.DefaultCatalogHoursColumn,
	}
}

// RowError describes a skipped row. Row is the 1-based sheet row.
type RowError struct {
	Row    int
	Reason string
}

type LoadReport struct {
	Created  int
	Existing int
	Invalid  []RowError
}

// LoadTasksFromWorkbook imports task templates from the workbook at path.
func LoadTasksFromWorkbook(ctx context.Context, store TaskStore, path string, opts Options) (*LoadReport, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return loadTasks(ctx, store, f, opts)
}

// LoadTasks imports task templates from a workbook stream.
func LoadTasks(ctx context.Context, store TaskStore, r io.Reader, opts Options) (*LoadReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return loadTasks(ctx, store, f, opts)
}

func loadTasks(ctx context.Context, store TaskStore, f *excelize.File, opts Options) (*LoadReport, error) {
	rows, err := f.GetRows(opts.Sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", opts.Sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", opts.Sheet)
	}

	cols, err := locateColumns(rows[0], opts)
	if err != nil {
		return nil, err
	}

	report := &LoadReport{}
	for i, row := range rows[1:] {
		rowNum := i + 2

		task, reason := parseRow(row, cols)
		if task == nil {
			if reason != "" {
				report.Invalid = append(report.Invalid, RowError{Row: rowNum, Reason: reason})
			}
			continue
		}

		found, err := exists(func() error {
			_, err := store.FindByName(ctx, task.Name)
			return err
		})
		if err != nil {
			return report, fmt.Errorf("failed to look up task %q: %w", task.Name, err)
		}
		if found {
			report.Existing++
			continue
		}

		if err := store.Create(ctx, task); err != nil {
			return report, fmt.Errorf("failed to create task %q: %w", task.Name, err)
		}
		report.Created++
	}

	return report, nil
}

type columns struct {
	name, description, class, hours int
}

func locateColumns(header []string, opts Options) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	var cols columns
	var missing []string
	lookup := func(name string, dst *int) {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
			return
		}
		*dst = i
	}
	lookup(opts.NameColumn, &cols.name)
	lookup(opts.DescriptionColumn, &cols.description)
	lookup(opts.ClassColumn, &cols.class)
	lookup(opts.HoursColumn, &cols.hours)

	if len(missing) > 0 {
		return cols, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// parseRow returns the task of a row, or a reason when the row is invalid.
// Blank rows yield neither.
func parseRow(row []string, cols columns) (*models.Task, string) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	name := cell(cols.name)
	rawHours := cell(cols.hours)
	if name == "" && rawHours == "" {
		return nil, ""
	}
	if name == "" {
		return nil, "task name is empty"
	}

	hours, err := decimal.NewFromString(strings.ReplaceAll(rawHours, ",", "."))
	if err != nil {
		return nil, fmt.Sprintf("invalid hours %q", rawHours)
	}
	hours = hours.Round(2)
	if hours.IsNegative() || hours.GreaterThan(maxBaseHours) {
		return nil, fmt.Sprintf("hours %s out of range", hours.StringFixed(2))
	}

	taskType := models.TaskTypeDevelopment
	if cell(cols.class) == constants.CatalogManagementClass {
		taskType = models.TaskTypeManagement
	}

	return &models.Task{
		Name:          name,
		Description:   cell(cols.description),
		Type:          taskType,
		BaseTimeHours: hours,
	}, ""
}

// exists runs a find and reports whether it matched, treating
// gorm.ErrRecordNotFound as a miss.
func exists(find func() error) (bool, error) {
	err := find()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}
