package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frqgit/year-7-math/internal/services"
)

type WalletHandler struct {
	walletService services.WalletService
}

func NewWalletHandler(walletService services.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// POST /api/coins/spend
// body: { "amount": 50, "description": "Avatar hat" }
func (wh *WalletHandler) Spend(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req struct {
		Amount      int    `json:"amount"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	record, err := wh.walletService.Spend(c.Request.Context(), userID, req.Amount, req.Description)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"transaction": record})
}

// GET /api/coins/transactions?limit=50
func (wh *WalletHandler) ListTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	txs, err := wh.walletService.ListTransactions(c.Request.Context(), userID, queryInt(c, "limit", 50))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"transactions": txs})
}
