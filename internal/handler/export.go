package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"shop-ledger/internal/models"
	"shop-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler downloads the recorded books as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var transactionHeader = []string{
	"Date", "Shop", "Sales", "Cash Out", "Expenses", "Description", "Bank Deposit",
}

func transactionRow(t *models.Transaction) []string {
	return []string{
		t.Date.Format("2006-01-02"),
		t.ShopName,
		t.Sales.StringFixed(2),
		t.CashOut.StringFixed(2),
		t.Expenses.Total().StringFixed(2),
		t.Description,
		t.BankDeposit.StringFixed(2),
	}
}

// ExportCSV streams all transactions as a CSV download.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var transactions []models.Transaction
	if err := h.DB.Order("date DESC, id DESC").Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(transactionHeader)
	for i := range transactions {
		writer.Write(transactionRow(&transactions[i]))
	}
}

// ExportXLSX builds a workbook with a transactions sheet and a cheques
// sheet and streams it as a download.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var transactions []models.Transaction
	if err := h.DB.Order("date DESC, id DESC").Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}
	var cheques []models.Cheque
	if err := h.DB.Order("date DESC, id DESC").Find(&cheques).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load cheques")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const txSheet = "Transactions"
	f.SetSheetName("Sheet1", txSheet)

	for col, name := range transactionHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(txSheet, cell, name)
	}
	for row := range transactions {
		for col, value := range transactionRow(&transactions[row]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(txSheet, cell, value)
		}
	}

	const chequeSheet = "Cheques"
	if _, err := f.NewSheet(chequeSheet); err == nil {
		chequeHeader := []string{"Date", "Shop", "Amount", "Payee", "Status"}
		for col, name := range chequeHeader {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(chequeSheet, cell, name)
		}
		for row := range cheques {
			ch := &cheques[row]
			values := []string{
				ch.Date.Format("2006-01-02"),
				ch.ShopName,
				ch.Amount.StringFixed(2),
				ch.Payee,
				ch.Status,
			}
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(chequeSheet, cell, value)
			}
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"shop_ledger_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write workbook")
		return
	}
}
