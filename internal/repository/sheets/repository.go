// Package sheets is a read-mostly record store backend for businesses that
// keep their herd register on a Google spreadsheet, one tab per collection.
// Rows are parsed defensively: an unreadable row is skipped and logged, never
// fatal, because the sheet is edited by hand.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/herdbook/internal/config"
	"github.com/mamadbah2/herdbook/internal/domain/models"
)

const (
	dateLayout = "2006-01-02"

	goatsRange      = "Goats!A2:H"
	expensesRange   = "Expenses!A2:F"
	healthRange     = "Health!A2:E"
	caretakersRange = "Caretakers!A2:C"
	businessRange   = "Business!A2:B2"
	reportsRange    = "Reports!A:I"
)

// Repository implements repository.Store and repository.ReportSink backed by
// the official Google Sheets API. Sale finalization requires an in-place row
// update the append-only adapter does not support.
type Repository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewRepository builds a Google Sheets backed record store.
func NewRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &Repository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

func (r *Repository) readRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}
	return resp.Values, nil
}

// ListGoats parses the Goats tab: id, tag, status, purchase price, purchase
// date, sale price, sale date, caretaker id.
func (r *Repository) ListGoats(ctx context.Context) ([]models.Goat, error) {
	rows, err := r.readRange(ctx, goatsRange)
	if err != nil {
		return nil, err
	}

	goats := make([]models.Goat, 0, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}

		price, err := parseAmount(row[3])
		if err != nil {
			r.logger.Debug("skip goat row with invalid purchase price", zap.Any("value", row[3]), zap.Error(err))
			continue
		}
		purchaseDate, err := parseDate(row[4])
		if err != nil {
			r.logger.Debug("skip goat row with invalid purchase date", zap.Any("value", row[4]), zap.Error(err))
			continue
		}

		g := models.Goat{
			ID:            cell(row, 0),
			Tag:           cell(row, 1),
			Status:        models.GoatStatus(cell(row, 2)),
			PurchasePrice: price,
			PurchaseDate:  purchaseDate,
			CaretakerID:   cell(row, 7),
		}

		if salePrice := cell(row, 5); salePrice != "" {
			sp, err := parseAmount(salePrice)
			if err != nil {
				r.logger.Debug("skip goat row with invalid sale price", zap.Any("value", row[5]), zap.Error(err))
				continue
			}
			sd, err := parseDate(cell(row, 6))
			if err != nil {
				r.logger.Debug("skip goat row with invalid sale date", zap.Any("value", row[6]), zap.Error(err))
				continue
			}
			g.SalePrice = &sp
			g.SaleDate = &sd
		}

		goats = append(goats, g)
	}
	return goats, nil
}

// ListExpenses parses the Expenses tab: id, amount, date, category, goat id,
// notes. An empty goat id cell marks a shared expense.
func (r *Repository) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := r.readRange(ctx, expensesRange)
	if err != nil {
		return nil, err
	}

	expenses := make([]models.Expense, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}

		amount, err := parseAmount(row[1])
		if err != nil {
			r.logger.Debug("skip expense row with invalid amount", zap.Any("value", row[1]), zap.Error(err))
			continue
		}
		date, err := parseDate(row[2])
		if err != nil {
			r.logger.Debug("skip expense row with invalid date", zap.Any("value", row[2]), zap.Error(err))
			continue
		}

		expenses = append(expenses, models.Expense{
			ID:       cell(row, 0),
			Amount:   amount,
			Date:     date,
			Category: models.ExpenseCategory(cell(row, 3)),
			GoatID:   cell(row, 4),
			Notes:    cell(row, 5),
		})
	}
	return expenses, nil
}

// ListHealthEvents parses the Health tab: id, goat id, cost, date, treatment.
func (r *Repository) ListHealthEvents(ctx context.Context) ([]models.HealthEvent, error) {
	rows, err := r.readRange(ctx, healthRange)
	if err != nil {
		return nil, err
	}

	events := make([]models.HealthEvent, 0, len(rows))
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}

		cost, err := parseAmount(row[2])
		if err != nil {
			r.logger.Debug("skip health row with invalid cost", zap.Any("value", row[2]), zap.Error(err))
			continue
		}
		date, err := parseDate(row[3])
		if err != nil {
			r.logger.Debug("skip health row with invalid date", zap.Any("value", row[3]), zap.Error(err))
			continue
		}

		events = append(events, models.HealthEvent{
			ID:        cell(row, 0),
			GoatID:    cell(row, 1),
			Cost:      cost,
			Date:      date,
			Treatment: cell(row, 4),
		})
	}
	return events, nil
}

// ListCaretakers parses the Caretakers tab: id, name, phone.
func (r *Repository) ListCaretakers(ctx context.Context) ([]models.Caretaker, error) {
	rows, err := r.readRange(ctx, caretakersRange)
	if err != nil {
		return nil, err
	}

	caretakers := make([]models.Caretaker, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		caretakers = append(caretakers, models.Caretaker{
			ID:    cell(row, 0),
			Name:  cell(row, 1),
			Phone: cell(row, 2),
		})
	}
	return caretakers, nil
}

// GetPaymentModel reads the single business configuration row: type, amount.
func (r *Repository) GetPaymentModel(ctx context.Context) (models.PaymentModel, error) {
	rows, err := r.readRange(ctx, businessRange)
	if err != nil {
		return models.PaymentModel{}, err
	}
	if len(rows) == 0 || len(rows[0]) < 2 {
		return models.PaymentModel{}, errors.New("payment model not configured")
	}

	amount, err := parseAmount(rows[0][1])
	if err != nil {
		return models.PaymentModel{}, fmt.Errorf("payment model: %w", err)
	}
	return models.PaymentModel{
		Type:   models.PaymentModelType(cell(rows[0], 0)),
		Amount: amount,
	}, nil
}

// FinalizeSale is not supported on the spreadsheet backend; sales are edited
// in the sheet directly.
func (r *Repository) FinalizeSale(ctx context.Context, goatID string, price decimal.Decimal, date time.Time) error {
	return fmt.Errorf("finalize sale on sheets backend: %w", errors.ErrUnsupported)
}

// SaveDailyReport appends one report row to the Reports tab.
func (r *Repository) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	values := []interface{}{
		report.Date.Format(dateLayout),
		report.TotalGoats,
		report.ActiveGoats,
		report.SoldGoats,
		report.TotalInvestment.String(),
		report.TotalRevenue.String(),
		report.TotalExpenses.String(),
		report.NetProfit.String(),
		report.CreatedAt.Format(time.RFC3339),
	}
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, reportsRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append report row: %w", err)
	}

	r.logger.Debug("daily report appended to sheet")
	return nil
}

func cell(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return fmt.Sprint(row[idx])
}

func parseDate(value interface{}) (time.Time, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(str) > 10 {
		str = str[:10]
	}
	return time.Parse(dateLayout, str)
}

func parseAmount(value interface{}) (decimal.Decimal, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	return decimal.NewFromString(str)
}
