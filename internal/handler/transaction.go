package handler

import (
	"fmt"
	"net/http"
	"time"

	"shop-ledger/internal/models"
	"shop-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler serves the daily sales entry form and listings.
// The shop list and expense categories come from configuration.
type TransactionHandler struct {
	DB         *gorm.DB
	Shops      []string
	Categories []string
}

func NewTransactionHandler(db *gorm.DB, shops, categories []string) *TransactionHandler {
	return &TransactionHandler{
		DB:         db,
		Shops:      shops,
		Categories: categories,
	}
}

type createTransactionReq struct {
	ShopName    string            `json:"shop_name" binding:"required"`
	Date        string            `json:"date" binding:"required"`
	Sales       string            `json:"sales"`
	CashOut     string            `json:"cash_out"`
	Expenses    map[string]string `json:"expenses"`
	Description string            `json:"description" binding:"max=255"`
	BankDeposit string            `json:"bank_deposit"`
}

type transactionResp struct {
	ID          uint              `json:"id"`
	ShopName    string            `json:"shop_name"`
	Date        string            `json:"date"`
	Sales       string            `json:"sales"`
	CashOut     string            `json:"cash_out"`
	Expenses    models.ExpenseMap `json:"expenses"`
	Description string            `json:"description"`
	BankDeposit string            `json:"bank_deposit"`
	CreatedAt   time.Time         `json:"created_at"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:          t.ID,
		ShopName:    t.ShopName,
		Date:        t.Date.Format("2006-01-02"),
		Sales:       t.Sales.StringFixed(2),
		CashOut:     t.CashOut.StringFixed(2),
		Expenses:    t.Expenses,
		Description: t.Description,
		BankDeposit: t.BankDeposit.StringFixed(2),
		CreatedAt:   t.CreatedAt,
	}
}

// parseExpenses validates category names against the configured set and
// parses each amount; unset categories simply stay absent.
func (h *TransactionHandler) parseExpenses(src map[string]string) (models.ExpenseMap, error) {
	allowed := make(map[string]bool, len(h.Categories))
	for _, cat := range h.Categories {
		allowed[cat] = true
	}

	expenses := models.ExpenseMap{}
	for category, amountStr := range src {
		if !allowed[category] {
			return nil, fmt.Errorf("unknown expense category %q", category)
		}
		amount, err := util.ParseAmount(amountStr)
		if err != nil {
			return nil, err
		}
		expenses[category] = amount
	}
	return expenses, nil
}

// CreateTransaction records one daily sales entry. Rows are write-once.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	if err := util.ValidateShop(req.ShopName, h.Shops); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	date, err := util.ParseDate(req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date must be YYYY-MM-DD")
		return
	}

	sales, err := util.ParseAmount(req.Sales)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid sales amount")
		return
	}
	cashOut, err := util.ParseAmount(req.CashOut)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid cash out amount")
		return
	}
	bankDeposit, err := util.ParseAmount(req.BankDeposit)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid bank deposit amount")
		return
	}

	expenses, err := h.parseExpenses(req.Expenses)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	tx := models.Transaction{
		ShopName:    req.ShopName,
		Date:        date,
		Sales:       sales,
		CashOut:     cashOut,
		Expenses:    expenses,
		Description: req.Description,
		BankDeposit: bankDeposit,
	}
	if err := h.DB.Create(&tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save transaction")
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(&tx),
	})
}

// ListTransactions returns all recorded transactions, newest first, with
// an optional ?shop= filter.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	query := h.DB.Model(&models.Transaction{})
	if shop := c.Query("shop"); shop != "" {
		if err := util.ValidateShop(shop, h.Shops); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		query = query.Where("shop_name = ?", shop)
	}

	var transactions []models.Transaction
	if err := query.Order("date DESC, id DESC").Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list transactions")
		return
	}

	items := make([]transactionResp, 0, len(transactions))
	for i := range transactions {
		items = append(items, toTransactionResp(&transactions[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

// ListDeposits returns the bank deposit view: transactions whose deposit
// is positive, newest first.
func (h *TransactionHandler) ListDeposits(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var transactions []models.Transaction
	if err := h.DB.Where("bank_deposit > 0").
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list deposits")
		return
	}

	type depositResp struct {
		Date        string `json:"date"`
		ShopName    string `json:"shop_name"`
		BankDeposit string `json:"bank_deposit"`
	}

	items := make([]depositResp, 0, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		items = append(items, depositResp{
			Date:        t.Date.Format("2006-01-02"),
			ShopName:    t.ShopName,
			BankDeposit: t.BankDeposit.StringFixed(2),
		})
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}
