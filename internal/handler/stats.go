package handler

import (
	"net/http"
	"sort"

	"shop-ledger/internal/models"
	"shop-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatsHandler serves the aggregates behind the visualization page:
// monthly sales, monthly net profit and sales share per shop.
type StatsHandler struct {
	DB    *gorm.DB
	Shops []string
}

func NewStatsHandler(db *gorm.DB, shops []string) *StatsHandler {
	return &StatsHandler{DB: db, Shops: shops}
}

type monthlyPoint struct {
	Month  string `json:"month"` // YYYY-MM
	Amount string `json:"amount"`
}

type shopPoint struct {
	ShopName string `json:"shop_name"`
	Sales    string `json:"sales"`
}

// monthlySales groups total sales by calendar month, ascending.
func monthlySales(transactions []models.Transaction) []monthlyPoint {
	byMonth := make(map[string]decimal.Decimal)
	for i := range transactions {
		t := &transactions[i]
		month := t.Date.Format("2006-01")
		byMonth[month] = byMonth[month].Add(t.Sales)
	}
	return sortedMonthly(byMonth)
}

// monthlyNetProfit groups net profit by calendar month, ascending.
// Net profit is sales minus cash out minus expense amounts; the free-text
// description contributes nothing.
func monthlyNetProfit(transactions []models.Transaction) []monthlyPoint {
	byMonth := make(map[string]decimal.Decimal)
	for i := range transactions {
		t := &transactions[i]
		month := t.Date.Format("2006-01")
		byMonth[month] = byMonth[month].Add(t.NetProfit())
	}
	return sortedMonthly(byMonth)
}

func sortedMonthly(byMonth map[string]decimal.Decimal) []monthlyPoint {
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	points := make([]monthlyPoint, 0, len(months))
	for _, m := range months {
		points = append(points, monthlyPoint{
			Month:  m,
			Amount: byMonth[m].StringFixed(2),
		})
	}
	return points
}

// salesByShop sums sales per shop for the pie chart.
func salesByShop(transactions []models.Transaction) []shopPoint {
	byShop := make(map[string]decimal.Decimal)
	for i := range transactions {
		t := &transactions[i]
		byShop[t.ShopName] = byShop[t.ShopName].Add(t.Sales)
	}

	shops := make([]string, 0, len(byShop))
	for shop := range byShop {
		shops = append(shops, shop)
	}
	sort.Strings(shops)

	points := make([]shopPoint, 0, len(shops))
	for _, shop := range shops {
		points = append(points, shopPoint{
			ShopName: shop,
			Sales:    byShop[shop].StringFixed(2),
		})
	}
	return points
}

// GetStats returns the three chart series, optionally narrowed to one shop.
func (h *StatsHandler) GetStats(c *gin.Context) {
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
	if err := query.Order("date ASC").Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}

	util.Success(c, util.Response{
		"monthly_sales":      monthlySales(transactions),
		"monthly_net_profit": monthlyNetProfit(transactions),
		"sales_by_shop":      salesByShop(transactions),
		"transactions":       len(transactions),
	})
}
