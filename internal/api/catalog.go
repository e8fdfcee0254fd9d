package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
)

func (h *Handler) ListPlayable(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Playable())
}

func (h *Handler) GetPlayable(c *gin.Context) {
	p, err := h.catalog.ByName(c.Param("name"))
	if err != nil {
		respondError(c, err, constants.ErrPokemonNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) ListTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Types())
}

func (h *Handler) FilterByType(c *gin.Context) {
	out, err := h.catalog.FilterByType(c.Param("type"))
	if err != nil {
		respondError(c, err, constants.ErrInvalidType)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) SortByStat(c *gin.Context) {
	out, err := h.catalog.SortByStat(c.Param("stat"))
	if err != nil {
		respondError(c, err, constants.ErrInvalidStat)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CatalogStatistics(c *gin.Context) {
	st, err := h.catalog.Statistics()
	if err != nil {
		respondError(c, err, constants.ErrFailedFetchStats)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) SpeciesExists(c *gin.Context) {
	name := c.Param("name")
	c.JSON(http.StatusOK, gin.H{"name": name, "exists": h.catalog.Exists(name)})
}
