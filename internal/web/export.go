package web

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"StockDashboard/internal/loader"
	"StockDashboard/internal/model"
	"StockDashboard/internal/presenter"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"

	mimeCSV  = "text/csv"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Excel rejects these characters in sheet names.
var sheetNameReplacer = strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")

// handleExport downloads the whole loaded table, not just the tail slice.
func (s *Server) handleExport(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", formatCSV))
	if format != formatCSV && format != formatXLSX {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported format %q", format)})
		return
	}

	q := s.dash.Input.Collect(c.Query("symbol"), c.Query("period"), c.Query("interval"))
	res := s.dash.Load(c.Request.Context(), q)
	switch res.Status {
	case loader.StatusEmpty:
		c.JSON(http.StatusNotFound, gin.H{"error": "No data found. Please check the stock symbol."})
		return
	case loader.StatusFailed:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error occurred: " + res.Err.Error()})
		return
	}

	var buf bytes.Buffer
	var mime string
	var err error
	if format == formatXLSX {
		mime = mimeXLSX
		err = writeXLSX(&buf, q, res.Table)
	} else {
		mime = mimeCSV
		err = writeCSV(&buf, q.Interval, res.Table)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("%s_%s_%s.%s", q.DisplaySymbol(), q.Period, q.Interval, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, mime, buf.Bytes())
}

func exportRecord(o model.Observation, layout string) []string {
	return []string{
		o.Time.Format(layout),
		strconv.FormatFloat(o.Open, 'f', -1, 64),
		strconv.FormatFloat(o.High, 'f', -1, 64),
		strconv.FormatFloat(o.Low, 'f', -1, 64),
		strconv.FormatFloat(o.Close, 'f', -1, 64),
		strconv.FormatUint(o.Volume, 10),
	}
}

func writeCSV(w io.Writer, interval model.Interval, t model.Table) error {
	_, layout := presenter.IndexColumn(interval)
	cw := csv.NewWriter(w)
	if err := cw.Write(presenter.Columns(interval)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, o := range t.Rows {
		if err := cw.Write(exportRecord(o, layout)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, q model.Query, t model.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetNameReplacer.Replace(q.DisplaySymbol())
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	_, layout := presenter.IndexColumn(q.Interval)
	for col, name := range presenter.Columns(q.Interval) {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for i, o := range t.Rows {
		row := i + 2
		values := []any{
			o.Time.Format(layout),
			o.Open, o.High, o.Low, o.Close, o.Volume,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set %s: %w", cell, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
