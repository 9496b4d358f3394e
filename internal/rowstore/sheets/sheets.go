// Package sheets provides a Google Sheets row store: one spreadsheet with a
// `tasks` sheet and a `logs` sheet, data rows starting at row 2 under a
// header. This is a genuinely row-scan backend; every find walks the rows.
package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/hay-kot/sprout/internal/habit"
	"github.com/hay-kot/sprout/internal/rowstore"
)

const (
	tasksSheet = "tasks"
	logsSheet  = "logs"
)

// Config locates the spreadsheet and the OAuth material.
type Config struct {
	SpreadsheetID   string
	CredentialsPath string
	TokenPath       string
}

// sheetData is the shared handle behind both row collections.
type sheetData struct {
	srv           *gsheets.Service
	spreadsheetID string
	sheetIDs      map[string]int64
}

// Open authenticates and returns a Store over the configured spreadsheet.
// Both sheets must already exist.
func Open(ctx context.Context, cfg Config) (rowstore.Store, error) {
	httpClient, err := client(ctx, cfg.CredentialsPath, cfg.TokenPath)
	if err != nil {
		return rowstore.Store{}, err
	}

	srv, err := gsheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return rowstore.Store{}, fmt.Errorf("create sheets service: %w", err)
	}

	// Row deletion needs numeric sheet ids, so resolve them once up front.
	meta, err := srv.Spreadsheets.Get(cfg.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return rowstore.Store{}, fmt.Errorf("fetch spreadsheet metadata: %w", err)
	}

	ids := make(map[string]int64)
	for _, sheet := range meta.Sheets {
		ids[sheet.Properties.Title] = sheet.Properties.SheetId
	}
	for _, name := range []string{tasksSheet, logsSheet} {
		if _, ok := ids[name]; !ok {
			return rowstore.Store{}, fmt.Errorf("spreadsheet has no sheet named %q", name)
		}
	}

	data := &sheetData{srv: srv, spreadsheetID: cfg.SpreadsheetID, sheetIDs: ids}
	return rowstore.Store{
		Tasks: &sheetTasks{data: data},
		Logs:  &sheetLogs{data: data},
	}, nil
}

// rows returns the data rows of a sheet (everything below the header).
func (d *sheetData) rows(ctx context.Context, sheet string) ([][]any, error) {
	resp, err := d.srv.Spreadsheets.Values.Get(d.spreadsheetID, sheet+"!A2:C").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s rows: %w", sheet, err)
	}
	return resp.Values, nil
}

func (d *sheetData) appendRow(ctx context.Context, sheet string, row []any) error {
	vr := &gsheets.ValueRange{Values: [][]any{row}}
	_, err := d.srv.Spreadsheets.Values.Append(d.spreadsheetID, sheet+"!A:C", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %s row: %w", sheet, err)
	}
	return nil
}

// deleteRow removes data row index (zero-based, header excluded).
func (d *sheetData) deleteRow(ctx context.Context, sheet string, index int) error {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			DeleteDimension: &gsheets.DeleteDimensionRequest{
				Range: &gsheets.DimensionRange{
					SheetId:    d.sheetIDs[sheet],
					Dimension:  "ROWS",
					StartIndex: int64(index + 1), // +1 skips the header row
					EndIndex:   int64(index + 2),
				},
			},
		}},
	}
	if _, err := d.srv.Spreadsheets.BatchUpdate(d.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete %s row %d: %w", sheet, index, err)
	}
	return nil
}

func (d *sheetData) updateCell(ctx context.Context, sheet, column string, index int, value any) error {
	rangeRef := fmt.Sprintf("%s!%s%d", sheet, column, index+2)
	vr := &gsheets.ValueRange{Values: [][]any{{value}}}
	_, err := d.srv.Spreadsheets.Values.Update(d.spreadsheetID, rangeRef, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rangeRef, err)
	}
	return nil
}

func cell(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

type sheetTasks struct {
	data *sheetData
}

var _ rowstore.TaskStore = (*sheetTasks)(nil)

func (s *sheetTasks) GetAll(ctx context.Context) ([]habit.Task, error) {
	rows, err := s.data.rows(ctx, tasksSheet)
	if err != nil {
		return nil, err
	}

	tasks := make([]habit.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, habit.Task{
			ID:        cell(row, 0),
			Title:     cell(row, 1),
			CreatedAt: parseTime(cell(row, 2)),
		})
	}
	return tasks, nil
}

func (s *sheetTasks) Add(ctx context.Context, task habit.Task) (habit.Task, error) {
	row := []any{task.ID, task.Title, task.CreatedAt.Format(time.RFC3339)}
	if err := s.data.appendRow(ctx, tasksSheet, row); err != nil {
		return habit.Task{}, err
	}
	return task, nil
}

func (s *sheetTasks) Update(ctx context.Context, id, title string) (habit.Task, error) {
	rows, err := s.data.rows(ctx, tasksSheet)
	if err != nil {
		return habit.Task{}, err
	}

	for i, row := range rows {
		if cell(row, 0) != id {
			continue
		}
		if err := s.data.updateCell(ctx, tasksSheet, "B", i, title); err != nil {
			return habit.Task{}, err
		}
		return habit.Task{ID: id, Title: title, CreatedAt: parseTime(cell(row, 2))}, nil
	}
	return habit.Task{}, rowstore.ErrNotFound
}

func (s *sheetTasks) Delete(ctx context.Context, id string) (bool, error) {
	rows, err := s.data.rows(ctx, tasksSheet)
	if err != nil {
		return false, err
	}

	for i, row := range rows {
		if cell(row, 0) == id {
			if err := s.data.deleteRow(ctx, tasksSheet, i); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

type sheetLogs struct {
	data *sheetData
}

var _ rowstore.LogStore = (*sheetLogs)(nil)

func (s *sheetLogs) GetAll(ctx context.Context) ([]habit.Log, error) {
	rows, err := s.data.rows(ctx, logsSheet)
	if err != nil {
		return nil, err
	}

	logs := make([]habit.Log, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, habit.Log{
			Date:      cell(row, 0),
			TaskID:    cell(row, 1),
			Timestamp: parseTime(cell(row, 2)),
		})
	}
	return logs, nil
}

func (s *sheetLogs) Add(ctx context.Context, log habit.Log) (habit.Log, error) {
	row := []any{log.Date, log.TaskID, log.Timestamp.Format(time.RFC3339)}
	if err := s.data.appendRow(ctx, logsSheet, row); err != nil {
		return habit.Log{}, err
	}
	return log, nil
}

func (s *sheetLogs) Delete(ctx context.Context, date, taskID string) (bool, error) {
	rows, err := s.data.rows(ctx, logsSheet)
	if err != nil {
		return false, err
	}

	// Newest first, so duplicate rows shed from the end.
	for i := len(rows) - 1; i >= 0; i-- {
		if cell(rows[i], 0) == date && cell(rows[i], 1) == taskID {
			if err := s.data.deleteRow(ctx, logsSheet, i); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *sheetLogs) DeleteByTaskID(ctx context.Context, taskID string) (int, error) {
	rows, err := s.data.rows(ctx, logsSheet)
	if err != nil {
		return 0, err
	}

	// Delete bottom-up so earlier indexes stay valid as rows shift.
	removed := 0
	for i := len(rows) - 1; i >= 0; i-- {
		if cell(rows[i], 1) == taskID {
			if err := s.data.deleteRow(ctx, logsSheet, i); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}
