// Package api exposes the pack game over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xtding233/cricket-packs/internal/card"
	"github.com/xtding233/cricket-packs/internal/economy"
	"github.com/xtding233/cricket-packs/internal/pack"
)

// Game is the part of economy.Engine the handlers use.
type Game interface {
	Open(ctx context.Context, name string) (*economy.Result, error)
	Reset(ctx context.Context) economy.State
	SetMuted(ctx context.Context, muted bool)
	Snapshot() economy.State
	Browse(f economy.Filter) []card.Card
	Teams() []string
	Table() pack.Table
}

type packResp struct {
	Name   string                `json:"name"`
	Price  int                   `json:"price"`
	Odds   map[card.Tier]float64 `json:"odds"`
	Chance map[card.Tier]float64 `json:"chance"`
}

type walletResp struct {
	Coins  int  `json:"coins"`
	Muted  bool `json:"muted"`
	Unique int  `json:"unique"`
	Copies int  `json:"copies"`
}

type openResp struct {
	*economy.Result
	Duplicates int  `json:"duplicates"`
	HasPremium bool `json:"has_premium"`
}

type ownedCard struct {
	card.Card
	Count int `json:"count"`
}

type errResp struct {
	Error string `json:"error"`
}

type mutedReq struct {
	Muted *bool `json:"muted" binding:"required"`
}

// NewRouter wires the routes onto a fresh gin engine.
func NewRouter(g Game) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	Register(r, g)
	return r
}

// Register adds the game routes to an existing router.
func Register(r gin.IRouter, g Game) {
	h := &handlers{game: g}
	r.GET("/healthz", h.health)
	r.GET("/packs", h.listPacks)
	r.POST("/packs/:name/open", h.openPack)
	r.GET("/wallet", h.wallet)
	r.POST("/reset", h.reset)
	r.PUT("/settings/muted", h.setMuted)
	r.GET("/collection", h.collection)
	r.GET("/collection/teams", h.teams)
}

type handlers struct {
	game Game
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) listPacks(c *gin.Context) {
	tbl := h.game.Table()
	out := make([]packResp, 0, len(tbl.Packs))
	for _, d := range tbl.Packs {
		chance := make(map[card.Tier]float64, len(card.Tiers))
		for _, t := range card.Tiers {
			chance[t] = d.Chance(t)
		}
		out = append(out, packResp{Name: d.Name, Price: d.Price, Odds: d.Odds, Chance: chance})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) openPack(c *gin.Context) {
	res, err := h.game.Open(c.Request.Context(), c.Param("name"))
	switch {
	case errors.Is(err, economy.ErrInsufficientFunds):
		c.JSON(http.StatusPaymentRequired, errResp{Error: "not enough coins"})
		return
	case errors.Is(err, pack.ErrUnknownPack):
		c.JSON(http.StatusNotFound, errResp{Error: err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, errResp{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, openResp{
		Result:     res,
		Duplicates: res.Duplicates(),
		HasPremium: res.HasPremium(),
	})
}

func (h *handlers) wallet(c *gin.Context) {
	c.JSON(http.StatusOK, walletOf(h.game.Snapshot()))
}

func (h *handlers) reset(c *gin.Context) {
	c.JSON(http.StatusOK, walletOf(h.game.Reset(c.Request.Context())))
}

func (h *handlers) setMuted(c *gin.Context) {
	var req mutedReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errResp{Error: err.Error()})
		return
	}
	h.game.SetMuted(c.Request.Context(), *req.Muted)
	c.JSON(http.StatusOK, walletOf(h.game.Snapshot()))
}

func (h *handlers) collection(c *gin.Context) {
	var f economy.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, errResp{Error: err.Error()})
		return
	}
	st := h.game.Snapshot()
	cards := h.game.Browse(f)
	out := make([]ownedCard, len(cards))
	for i, cd := range cards {
		out[i] = ownedCard{Card: cd, Count: st.Counts[cd.ID]}
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) teams(c *gin.Context) {
	c.JSON(http.StatusOK, h.game.Teams())
}

func walletOf(st economy.State) walletResp {
	copies := 0
	for _, n := range st.Counts {
		copies += n
	}
	return walletResp{Coins: st.Coins, Muted: st.Muted, Unique: st.Unique(), Copies: copies}
}
