package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/aqi-risk-service/internal/export"
)

// WorkbookName is the file name of the XLSX export.
const WorkbookName = "county_aqi_risk.xlsx"

// ExportCommand writes the county tables to a directory.
type ExportCommand struct {
	Dir  string `short:"o" long:"out" description:"Output directory" default:"."`
	XLSX bool   `long:"xlsx" description:"Also write every table as a sheet of one XLSX workbook"`

	env env
}

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(_ []string) error {
	s, err := c.env.open()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tables := export.BuildAll(s.table, c.env.globals.Percentile)
	for _, tbl := range tables {
		path := filepath.Join(c.Dir, tbl.FileName())
		if err := writeFile(path, func(f *os.File) error { return export.WriteCSV(f, tbl) }); err != nil {
			return err
		}
		fmt.Fprintf(c.env.out, "wrote %s (%d rows)\n", path, len(tbl.Rows))
	}

	if c.XLSX {
		path := filepath.Join(c.Dir, WorkbookName)
		if err := writeFile(path, func(f *os.File) error { return export.WriteXLSX(f, tables) }); err != nil {
			return err
		}
		fmt.Fprintf(c.env.out, "wrote %s (%d sheets)\n", path, len(tables))
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
