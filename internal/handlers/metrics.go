package handlers

import (
	"errors"
	"net/http"

	"social_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const msgMetricNotFound = "Metric not found or unauthorized"

type createMetricRequest struct {
	Title    string `json:"title" binding:"required"`
	Value    string `json:"value" binding:"required"`
	Category string `json:"category" binding:"required"`
}

type updateMetricRequest struct {
	Value string `json:"value" binding:"required"`
}

// @Summary      List the authenticated user's metrics
// @Tags         metrics
// @Produce      json
// @Success      200  {array}   models.Metric
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /metrics [get]
// @Security     BearerAuth
func (h *Handler) listMetrics(c *gin.Context) {
	metrics, err := h.services.Metrics.List(c.Request.Context(), userIDFrom(c))
	if err != nil {
		h.internalError(c, "Error fetching metrics", "metrics_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// @Summary      Create a metric
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        body  body  createMetricRequest  true  "Metric payload"
// @Success      201   {object}  models.Metric
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /metrics [post]
// @Security     BearerAuth
func (h *Handler) createMetric(c *gin.Context) {
	var input createMetricRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	m, err := h.services.Metrics.Create(c.Request.Context(), userIDFrom(c), service.MetricInput{
		Title:    input.Title,
		Value:    input.Value,
		Category: input.Category,
	})
	if err != nil {
		h.internalError(c, "Error adding metrics", "metrics_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// @Summary      Update a metric's value
// @Description  Only the value is mutable. A metric owned by another user reports not-found.
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Metric id"
// @Param        body  body  updateMetricRequest  true  "New value"
// @Success      200   {object}  models.Metric
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /metrics/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateMetric(c *gin.Context) {
	var input updateMetricRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	m, err := h.services.Metrics.UpdateValue(c.Request.Context(), c.Param("id"), userIDFrom(c), input.Value)
	if errors.Is(err, service.ErrMetricNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": msgMetricNotFound})
		return
	}
	if err != nil {
		h.internalError(c, "Error updating metrics", "metrics_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary      Delete a metric
// @Tags         metrics
// @Produce      json
// @Param        id  path  string  true  "Metric id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /metrics/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteMetric(c *gin.Context) {
	err := h.services.Metrics.Delete(c.Request.Context(), c.Param("id"), userIDFrom(c))
	if errors.Is(err, service.ErrMetricNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": msgMetricNotFound})
		return
	}
	if err != nil {
		h.internalError(c, "Error deleting metrics", "metrics_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Metrics deleted"})
}
