package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"
)

// renderTable lays rows out under headers. Columns listed in rightAligned are zero based.
func renderTable(headers []string, rows [][]string, rightAligned ...int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(headers))
	for _, row := range rows {
		tw.AppendRow(toRow(row))
	}
	tw.SetColumnConfigs(lo.Map(rightAligned, func(column int, _ int) table.ColumnConfig {
		return table.ColumnConfig{Number: column + 1, Align: text.AlignRight, AlignHeader: text.AlignLeft}
	}))
	return tw.Render()
}

func toRow(cells []string) table.Row {
	return lo.Map(cells, func(cell string, _ int) any { return cell })
}

// statusText colours the well-known status words when writing to a terminal.
func statusText(status string, colorize bool) string {
	if !colorize {
		return status
	}
	switch status {
	case "ok", "available", "passed":
		return text.Colors{text.FgGreen, text.Bold}.Sprint(status)
	case "failed", "missing":
		return text.Colors{text.FgRed, text.Bold}.Sprint(status)
	default:
		return status
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
