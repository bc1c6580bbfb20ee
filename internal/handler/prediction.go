package handler

import (
	"net/http"

	"shop-ledger/internal/prediction"
	"shop-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

// PredictionHandler serves the stock prediction lookup. The CSV is loaded
// fresh on every request; this service never writes it.
type PredictionHandler struct {
	Path string
}

func NewPredictionHandler(path string) *PredictionHandler {
	return &PredictionHandler{Path: path}
}

// GetPredictions returns the shop list, the items predicted for the
// chosen shop, the matching quantity when both shop and item are given,
// and the full table. A shop or item absent from the file yields empty
// results, not an error.
func (h *PredictionHandler) GetPredictions(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	rows, err := prediction.Load(h.Path)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load prediction data")
		return
	}

	shop := c.Query("shop")
	item := c.Query("item")

	// items is always present so the payload shape is stable; without a
	// shop (or for a shop absent from the file) it is simply empty
	data := util.Response{
		"shops": prediction.Shops(rows),
		"items": prediction.Items(rows, shop),
		"rows":  rows,
	}
	if shop != "" && item != "" {
		if qty, ok := prediction.Lookup(rows, shop, item); ok {
			data["predicted_quantity"] = qty
		}
	}

	util.Success(c, data)
}
