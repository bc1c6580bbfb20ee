package handler

import (
	"net/http"
	"strconv"
	"time"

	"shop-ledger/internal/models"
	"shop-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ChequeHandler serves cheque issuance, history, status transitions and
// the derived bank balance.
type ChequeHandler struct {
	DB       *gorm.DB
	Shops    []string
	Currency string
}

func NewChequeHandler(db *gorm.DB, shops []string, currency string) *ChequeHandler {
	return &ChequeHandler{
		DB:       db,
		Shops:    shops,
		Currency: currency,
	}
}

type createChequeReq struct {
	Date     string `json:"date" binding:"required"`
	ShopName string `json:"shop_name" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
	Payee    string `json:"payee" binding:"max=128"`
}

type chequeResp struct {
	ID        uint      `json:"id"`
	Date      string    `json:"date"`
	ShopName  string    `json:"shop_name"`
	Amount    string    `json:"amount"`
	Payee     string    `json:"payee"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toChequeResp(ch *models.Cheque) chequeResp {
	return chequeResp{
		ID:        ch.ID,
		Date:      ch.Date.Format("2006-01-02"),
		ShopName:  ch.ShopName,
		Amount:    ch.Amount.StringFixed(2),
		Payee:     ch.Payee,
		Status:    ch.Status,
		CreatedAt: ch.CreatedAt,
	}
}

// CreateCheque records a cheque. Status is always Pending at creation.
func (h *ChequeHandler) CreateCheque(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req createChequeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	date, err := util.ParseDate(req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date must be YYYY-MM-DD")
		return
	}
	if err := util.ValidateShop(req.ShopName, h.Shops); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	amount, err := util.ParsePositiveAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "cheque amount must be positive")
		return
	}

	cheque := models.Cheque{
		Date:     date,
		ShopName: req.ShopName,
		Amount:   amount,
		Payee:    req.Payee,
		Status:   models.ChequeStatusPending,
	}
	if err := h.DB.Create(&cheque).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save cheque")
		return
	}

	util.Success(c, util.Response{
		"cheque": toChequeResp(&cheque),
	})
}

// ListCheques returns the full cheque history, newest first.
func (h *ChequeHandler) ListCheques(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var cheques []models.Cheque
	if err := h.DB.Order("date DESC, id DESC").Find(&cheques).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list cheques")
		return
	}

	items := make([]chequeResp, 0, len(cheques))
	for i := range cheques {
		items = append(items, toChequeResp(&cheques[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

type updateChequeStatusReq struct {
	Status string `json:"status" binding:"required,oneof=Cleared Bounced"`
}

// UpdateChequeStatus marks a pending cheque as Cleared or Bounced.
// No other transition is allowed; a settled cheque stays settled.
func (h *ChequeHandler) UpdateChequeStatus(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid cheque id")
		return
	}

	var req updateChequeStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "status must be Cleared or Bounced")
		return
	}

	var cheque models.Cheque
	if err := h.DB.First(&cheque, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "cheque not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load cheque")
		}
		return
	}

	if cheque.Status != models.ChequeStatusPending {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "only pending cheques can change status")
		return
	}

	if err := h.DB.Model(&cheque).Update("status", req.Status).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update cheque")
		return
	}
	cheque.Status = req.Status

	util.Success(c, util.Response{
		"cheque": toChequeResp(&cheque),
	})
}

// ComputeBalance derives the bank balance: total deposits minus the
// amounts of cheques still pending. Recomputed per call, never stored.
func ComputeBalance(db *gorm.DB) (decimal.Decimal, error) {
	var transactions []models.Transaction
	if err := db.Select("bank_deposit").Find(&transactions).Error; err != nil {
		return decimal.Zero, err
	}

	var cheques []models.Cheque
	if err := db.Select("amount").
		Where("status = ?", models.ChequeStatusPending).
		Find(&cheques).Error; err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for i := range transactions {
		balance = balance.Add(transactions[i].BankDeposit)
	}
	for i := range cheques {
		balance = balance.Sub(cheques[i].Amount)
	}
	return balance, nil
}

// GetBalance returns the current bank balance.
func (h *ChequeHandler) GetBalance(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	balance, err := ComputeBalance(h.DB)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute balance")
		return
	}

	util.Success(c, util.Response{
		"balance":  balance.StringFixed(2),
		"currency": h.Currency,
	})
}
