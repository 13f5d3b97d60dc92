package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/EngOsamaQazan/Archeef/config"
	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/model"
	"github.com/EngOsamaQazan/Archeef/internal/repository"
)

// ── Export business errors ──

var (
	ErrExportGenerateFail = errors.New("فشل إنشاء ملف التصدير")
	ErrExportBadFormat    = errors.New("صيغة التصدير غير مدعومة")
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ExportService renders the transfer log, the contract register and the
// activity report as downloadable files. Content is returned as a buffer;
// the handler sets the HTTP headers and streams it.
type ExportService interface {
	ExportTransactions(ctx context.Context, period, format string) (*bytes.Buffer, string, error)
	ExportContracts(ctx context.Context, format string) (*bytes.Buffer, string, error)
	// ExportReport renders the aggregated activity report as .xlsx.
	ExportReport(ctx context.Context, period string) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService creates an ExportService instance.
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

func (s *exportService) ExportTransactions(ctx context.Context, period, format string) (*bytes.Buffer, string, error) {
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatCSV {
		return nil, "", ErrExportBadFormat
	}

	transactions, err := s.repo.Transaction.List(ctx, &repository.TransactionListFilters{
		Since: periodStart(period, s.now()),
	}, s.maxRecords())
	if err != nil {
		s.logger.Error("load transfers for export failed", zap.Error(err))
		return nil, "", err
	}

	rows := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		rows = append(rows, toTransactionResponse(&transactions[i]))
	}

	date := s.now().Format("2006-01-02")
	if format == FormatJSON {
		buf, err := marshalJSON(rows)
		if err != nil {
			s.logger.Error("encode transfers export failed", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
		return buf, fmt.Sprintf("transactions_%s.json", date), nil
	}

	csvRows := make([][]string, 0, len(rows)+1)
	csvRows = append(csvRows, []string{
		"رقم الإيصال", "النوع", "من", "إلى", "عدد العقود", "التاريخ", "ملاحظات",
	})
	for _, r := range rows {
		from, to := "", ""
		if r.FromEmployee != nil {
			from = r.FromEmployee.Name
		}
		if r.ToEmployee != nil {
			to = r.ToEmployee.Name
		}
		csvRows = append(csvRows, []string{
			r.ReceiptNumber,
			r.TypeLabel,
			from,
			to,
			fmt.Sprintf("%d", r.DocumentCount),
			r.TransactionDate,
			r.Notes,
		})
	}
	return writeCSV(csvRows), fmt.Sprintf("transactions_%s.csv", date), nil
}

func (s *exportService) ExportContracts(ctx context.Context, format string) (*bytes.Buffer, string, error) {
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatCSV {
		return nil, "", ErrExportBadFormat
	}

	contracts, err := s.repo.Contract.ListAll(ctx)
	if err != nil {
		s.logger.Error("load contracts for export failed", zap.Error(err))
		return nil, "", err
	}

	rows := make([]dto.ContractResponse, 0, len(contracts))
	for i := range contracts {
		rows = append(rows, toContractResponse(&contracts[i]))
	}

	date := s.now().Format("2006-01-02")
	if format == FormatJSON {
		buf, err := marshalJSON(rows)
		if err != nil {
			s.logger.Error("encode contracts export failed", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
		return buf, fmt.Sprintf("contracts_%s.json", date), nil
	}

	csvRows := make([][]string, 0, len(rows)+1)
	csvRows = append(csvRows, []string{"رقم العقد", "الحالة", "الحامل الحالي", "آخر تحديث"})
	for _, r := range rows {
		holder := ""
		if r.CurrentHolder != nil {
			holder = r.CurrentHolder.Name
		}
		csvRows = append(csvRows, []string{r.ContractNumber, r.Status, holder, r.UpdatedAt})
	}
	return writeCSV(csvRows), fmt.Sprintf("contracts_%s.csv", date), nil
}

// ═══════════════════════════════════════════════════════════
// ExportReport: activity report as Excel
// ═══════════════════════════════════════════════════════════
//
// One workbook, three sheets:
//   - "ملخص": totals and the by-type split
//   - "الموظفون": sent/received per employee and per department
//   - "النشاط اليومي": the per-day series

func (s *exportService) ExportReport(ctx context.Context, period string) (*bytes.Buffer, string, error) {
	now := s.now()

	transactions, err := s.repo.Transaction.List(ctx, &repository.TransactionListFilters{
		Since: periodStart(period, now),
	}, 0)
	if err != nil {
		s.logger.Error("load transfers for report export failed", zap.Error(err))
		return nil, "", err
	}

	report := Aggregate(transactions)
	period = normalizePeriod(period)

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// Summary sheet
	summary := "ملخص"
	idx, err := f.NewSheet(summary)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	f.SetColWidth(summary, "A", "A", 28)
	f.SetColWidth(summary, "B", "B", 16)

	f.SetCellValue(summary, "A1", "تقرير حركة المستندات")
	f.MergeCell(summary, "A1", "B1")
	f.SetCellStyle(summary, "A1", "B1", headerStyle)

	summaryRows := [][]interface{}{
		{"الفترة", period},
		{"إجمالي الحركات", report.Total},
		{"إجمالي العقود المنقولة", report.TotalContracts},
		{model.TransactionTypeLabels[model.TransactionTypeReceive], report.ByType[model.TransactionTypeReceive]},
		{model.TransactionTypeLabels[model.TransactionTypeDeliver], report.ByType[model.TransactionTypeDeliver]},
	}
	for i, row := range summaryRows {
		f.SetCellValue(summary, cell("A", i+2), row[0])
		f.SetCellValue(summary, cell("B", i+2), row[1])
	}

	// Employee sheet
	employees := "الموظفون"
	if _, err := f.NewSheet(employees); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetColWidth(employees, "A", "A", 28)
	f.SetColWidth(employees, "B", "C", 12)

	f.SetCellValue(employees, "A1", "الموظف")
	f.SetCellValue(employees, "B1", "سلّم")
	f.SetCellValue(employees, "C1", "استلم")
	f.SetCellStyle(employees, "A1", "C1", headerStyle)

	row := 2
	for _, name := range sortedKeys(report.ByEmployee) {
		count := report.ByEmployee[name]
		f.SetCellValue(employees, cell("A", row), name)
		f.SetCellValue(employees, cell("B", row), count.Sent)
		f.SetCellValue(employees, cell("C", row), count.Received)
		row++
	}

	row++
	f.SetCellValue(employees, cell("A", row), "القسم")
	f.SetCellValue(employees, cell("B", row), "سلّم")
	f.SetCellValue(employees, cell("C", row), "استلم")
	f.SetCellStyle(employees, cell("A", row), cell("C", row), headerStyle)
	row++
	for _, dept := range sortedKeys(report.ByDepartment) {
		count := report.ByDepartment[dept]
		f.SetCellValue(employees, cell("A", row), dept)
		f.SetCellValue(employees, cell("B", row), count.Sent)
		f.SetCellValue(employees, cell("C", row), count.Received)
		row++
	}

	// Daily activity sheet
	daily := "النشاط اليومي"
	if _, err := f.NewSheet(daily); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetColWidth(daily, "A", "C", 16)
	f.SetCellValue(daily, "A1", "اليوم")
	f.SetCellValue(daily, "B1", model.TransactionTypeLabels[model.TransactionTypeReceive])
	f.SetCellValue(daily, "C1", model.TransactionTypeLabels[model.TransactionTypeDeliver])
	f.SetCellStyle(daily, "A1", "C1", headerStyle)
	for i, day := range report.ByDay {
		f.SetCellValue(daily, cell("A", i+2), day.Day)
		f.SetCellValue(daily, cell("B", i+2), day.Receive)
		f.SetCellValue(daily, cell("C", i+2), day.Deliver)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write report workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("report_%s_%s.xlsx", period, now.Format("2006-01-02"))
	return buf, filename, nil
}

func (s *exportService) maxRecords() int {
	if s.cfg.Reports.MaxRecords > 0 {
		return s.cfg.Reports.MaxRecords
	}
	return 0
}

// ── Helpers ──

func marshalJSON(v interface{}) (*bytes.Buffer, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return bytes.NewBuffer(data), nil
}

// writeCSV renders rows with every field quoted and embedded quotes
// doubled, matching what the office's spreadsheet imports expect.
// A UTF-8 BOM keeps Excel from garbling the Arabic text.
func writeCSV(rows [][]string) *bytes.Buffer {
	buf := new(bytes.Buffer)
	buf.WriteString("\xEF\xBB\xBF")
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
			buf.WriteByte('"')
		}
		buf.WriteString("\r\n")
	}
	return buf
}

func sortedKeys(m map[string]dto.DirectionCount) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
