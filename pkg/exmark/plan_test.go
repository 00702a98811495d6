package exmark

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoadPlan reads a YAML plan and validates required fields.
func TestLoadPlan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	contents := `workbook: report.xlsx
marks:
  - image: brand.png
    sheets: [1, 2]
  - image: watermark.jpg
    sheet_names: ["Budget"]
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	plan, err := LoadPlan(path)
	require.NoError(t, err)
	require.Equal(t, "report.xlsx", plan.Workbook)
	require.Len(t, plan.Marks, 2)
	require.Equal(t, []int{1, 2}, plan.Marks[0].Sheets)
	require.Equal(t, []string{"Budget"}, plan.Marks[1].SheetNames)

	_, err = LoadPlan(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

// TestPlanValidate covers each required field.
func TestPlanValidate(t *testing.T) {
	t.Parallel()

	err := (&Plan{Marks: []Mark{{Image: "a.png", Sheets: []int{1}}}}).Validate()
	require.ErrorIs(t, err, errPlanWorkbookRequired)

	err = (&Plan{Workbook: "b.xlsx"}).Validate()
	require.ErrorIs(t, err, errPlanMarksRequired)

	err = (&Plan{Workbook: "b.xlsx", Marks: []Mark{{Sheets: []int{1}}}}).Validate()
	require.ErrorContains(t, err, "mark 1")

	err = (&Plan{Workbook: "b.xlsx", Marks: []Mark{{Image: "a.png"}}}).Validate()
	require.ErrorContains(t, err, "mark 1")

	plan := &Plan{Workbook: "b.xlsx", Marks: []Mark{{Image: "a.png", SheetNames: []string{"S"}}}}
	require.NoError(t, plan.Validate())
}

// TestRunPlan applies one image to a numbered sheet and one to a named sheet.
func TestRunPlan(t *testing.T) {
	t.Parallel()

	workbook := newTestWorkbook(t, "Budget")
	img := newTestImage(t, "brand.png")

	plan := &Plan{
		Workbook: workbook,
		Marks: []Mark{
			{Image: img, Sheets: []int{1}},
			{Image: img, SheetNames: []string{"Budget"}},
		},
	}

	require.NoError(t, RunPlan(context.Background(), plan, DefaultOptions()))

	for sheet := 1; sheet <= 2; sheet++ {
		report, err := Verify(workbook, sheet)
		require.NoError(t, err)
		require.True(t, report.OK(), "sheet %d report: %+v", sheet, report)
	}
}

// TestRunPlanFlushesAfterFailure verifies the workbook still closes with the
// earlier marks applied when a later mark fails.
func TestRunPlanFlushesAfterFailure(t *testing.T) {
	t.Parallel()

	workbook := newTestWorkbook(t)
	img := newTestImage(t, "ok.png")

	plan := &Plan{
		Workbook: workbook,
		Marks: []Mark{
			{Image: img, Sheets: []int{1}},
			{Image: filepath.Join(t.TempDir(), "missing.png"), Sheets: []int{1}},
		},
	}

	require.Error(t, RunPlan(context.Background(), plan, DefaultOptions()))

	report, err := Verify(workbook, 1)
	require.NoError(t, err)
	require.True(t, report.OK(), "first mark must stay applied: %+v", report)
}
