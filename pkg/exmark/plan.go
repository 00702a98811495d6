package exmark

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/exmark-go/internal/logger"
)

// Mark pairs one image with the worksheets it becomes the background of.
type Mark struct {
	// Image is the path of the image file.
	Image string `yaml:"image"`
	// Sheets lists target worksheets by 1-based number.
	Sheets []int `yaml:"sheets,omitempty"`
	// SheetNames lists target worksheets by display name.
	SheetNames []string `yaml:"sheet_names,omitempty"`
}

// Plan describes a batch of background bindings applied to one workbook.
type Plan struct {
	// Workbook is the path of the xlsx package to edit.
	Workbook string `yaml:"workbook"`
	// Marks are applied in order.
	Marks []Mark `yaml:"marks"`
}

var (
	// errPlanWorkbookRequired is returned when a plan names no workbook.
	errPlanWorkbookRequired = errors.New("workbook must be provided")
	// errPlanMarksRequired is returned when a plan has no marks.
	errPlanMarksRequired = errors.New("at least one mark must be provided")
)

// LoadPlan reads a plan from the provided YAML path and validates it.
func LoadPlan(path string) (*Plan, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(contents, &plan); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return &plan, nil
}

// Validate checks the plan for required fields.
func (p *Plan) Validate() error {
	if p.Workbook == "" {
		return errPlanWorkbookRequired
	}

	if len(p.Marks) == 0 {
		return errPlanMarksRequired
	}

	for i, mark := range p.Marks {
		if mark.Image == "" {
			return fmt.Errorf("mark %d: image must be provided", i+1)
		}
		if len(mark.Sheets) == 0 && len(mark.SheetNames) == 0 {
			return fmt.Errorf("mark %d: at least one sheet must be provided", i+1)
		}
	}

	return nil
}

// RunPlan applies every mark of the plan to its workbook, strictly in order
// on a single editor, and flushes the result. The context scopes logging
// only; archive operations are synchronous and are not cancelled partway.
func RunPlan(ctx context.Context, plan *Plan, opts Options) (err error) {
	if err := plan.Validate(); err != nil {
		return err
	}

	editor, err := Open(plan.Workbook, opts)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}

	// Flush whatever landed, even after a failed mark; propagate the close
	// error only when the marks themselves succeeded.
	defer func() {
		closeErr := editor.Close()
		if err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	for i, mark := range plan.Marks {
		id, err := editor.AddImage(mark.Image)
		if err != nil {
			return fmt.Errorf("mark %d: add image: %w", i+1, err)
		}

		sheets := append([]int(nil), mark.Sheets...)
		for _, name := range mark.SheetNames {
			num, err := editor.SheetNumber(name)
			if err != nil {
				return fmt.Errorf("mark %d: %w", i+1, err)
			}
			sheets = append(sheets, num)
		}

		for _, sheet := range sheets {
			if err := editor.SelectSheet(sheet).BindBackground(id); err != nil {
				return fmt.Errorf("mark %d: %w", i+1, err)
			}

			logger.InfoKV(ctx, "background bound",
				"workbook", plan.Workbook, "sheet", sheet, "image", mark.Image)
		}
	}

	return nil
}
