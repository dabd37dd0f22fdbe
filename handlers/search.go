package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"casepilot/utils"
)

type SearchHandler struct {
	es    utils.ElasticsearchClient
	cache utils.RedisClient
}

func NewSearchHandler(es utils.ElasticsearchClient, cache utils.RedisClient) *SearchHandler {
	return &SearchHandler{es: es, cache: cache}
}

// SearchClients queries the search projection maintained by the consumer.
// An exact 6-digit query is answered from the cache when possible; the
// projection is eventually consistent with the relational store either way.
func (h *SearchHandler) SearchClients(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	if looksLikeIfaNumber(query) && h.cache != nil {
		if cached, err := h.cache.GetFromCache(c.Request.Context(), fmt.Sprintf("client:%s", query)); err == nil {
			var client map[string]interface{}
			if err := json.Unmarshal([]byte(cached), &client); err == nil {
				c.JSON(http.StatusOK, []map[string]interface{}{client})
				return
			}
		}
	}

	if h.es == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not available"})
		return
	}

	results, err := h.es.SearchRecords(c.Request.Context(), "clients", map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"ifa_number", "last_name", "first_name"},
			},
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, results)
}

func looksLikeIfaNumber(s string) bool {
	if len(s) != 6 {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}
