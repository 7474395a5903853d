package main

import (
	"fmt"
	"os"

	"sheetapi/internal/engine"
	"sheetapi/internal/models"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newInspectCommand() *cobra.Command {
	var table, row string

	cmd := &cobra.Command{
		Use:   "inspect [input.xlsx]",
		Short: "Ingest a local workbook and print query results as JSON",
		Long: `inspect runs a local file through the same loader and query engine as the
server. With no flags it lists tables; --table lists that table's rows;
--table with --row prints the row sum.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if row != "" && table == "" {
				return fmt.Errorf("--row requires --table")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out, err := inspect(args[0], cfg.LoadOptions(), table, row)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVarP(&table, "table", "t", "", "Table to list rows from")
	cmd.Flags().StringVarP(&row, "row", "r", "", "Row label to sum (needs --table)")
	return cmd
}

func inspect(path string, opts engine.LoadOptions, table, row string) (interface{}, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	wb, err := engine.LoadFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	eng := engine.New(nil)
	id := eng.Register(wb)

	switch {
	case table == "":
		tables, err := eng.ListTables(id)
		if err != nil {
			return nil, err
		}
		return models.UploadResponse{FileID: id, Tables: tables}, nil
	case row == "":
		name, rows, err := eng.ListRows(id, table)
		if err != nil {
			return nil, err
		}
		return models.RowsResponse{TableName: name, RowNames: rows}, nil
	default:
		name, res, err := eng.SumRow(id, table, row)
		if err != nil {
			return nil, err
		}
		return models.RowSumResponse{Table: name, Row: res.Label, Sum: res.Sum}, nil
	}
}
