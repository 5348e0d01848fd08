package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jblick1327/shipping/internal/application"
	"github.com/jblick1327/shipping/pkg/errors"
	"github.com/jblick1327/shipping/pkg/logging"
)

// dimensionRequest is one handling unit entry. Value is the raw
// operator text; the session normalizes it under the carrier's policy.
type dimensionRequest struct {
	Value string `json:"value"`
	Kind  string `json:"kind" binding:"omitempty,oneof=skid carpet box"`
}

// generateRequest is the full shipment input for generate and preview
type generateRequest struct {
	CarrierOption        int                `json:"carrierOption" binding:"required,min=1,max=7"`
	CustomCarrierName    string             `json:"customCarrierName"`
	OrderNumbers         []string           `json:"orderNumbers" binding:"required,min=1,dive,required"`
	Dimensions           []dimensionRequest `json:"dimensions" binding:"omitempty,dive"`
	DeclaredSkids        *int               `json:"declaredSkids" binding:"omitempty,min=0"`
	Cartons              int                `json:"cartons" binding:"omitempty,min=0"`
	TrackingNumber       string             `json:"trackingNumber"`
	QuoteNumber          string             `json:"quoteNumber"`
	QuotePrice           string             `json:"quotePrice"`
	Weight               string             `json:"weight"`
	DeliveryInstructions []string           `json:"deliveryInstructions" binding:"omitempty,dive,delivery_service"`
	ShipDate             *time.Time         `json:"shipDate"`
}

func (r generateRequest) toCommand() application.GenerateBOLCommand {
	dimensions := make([]application.DimensionEntry, len(r.Dimensions))
	for i, dim := range r.Dimensions {
		dimensions[i] = application.DimensionEntry{Value: dim.Value, Kind: dim.Kind}
	}

	return application.GenerateBOLCommand{
		CarrierOption:        r.CarrierOption,
		CustomCarrierName:    r.CustomCarrierName,
		OrderNumbers:         r.OrderNumbers,
		Dimensions:           dimensions,
		DeclaredSkids:        r.DeclaredSkids,
		Cartons:              r.Cartons,
		TrackingNumber:       r.TrackingNumber,
		QuoteNumber:          r.QuoteNumber,
		QuotePrice:           r.QuotePrice,
		Weight:               r.Weight,
		DeliveryInstructions: r.DeliveryInstructions,
		ShipDate:             r.ShipDate,
	}
}

func generateBOLHandler(service *application.BOLService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req generateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, errors.ErrInputFormat("request body", err.Error()))
			return
		}

		report, err := service.Generate(c.Request.Context(), req.toCommand())
		if err != nil {
			logger.WithError(err).Warn("Generate request rejected")
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, report)
	}
}

func previewBOLHandler(service *application.BOLService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req generateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, errors.ErrInputFormat("request body", err.Error()))
			return
		}

		preview, err := service.Preview(c.Request.Context(), req.toCommand())
		if err != nil {
			logger.WithError(err).Warn("Preview request rejected")
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, preview)
	}
}

func getOrderHandler(service *application.BOLService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := application.GetOrderQuery{OrderNumber: c.Param("number")}

		record, err := service.GetOrder(c.Request.Context(), query)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, record)
	}
}

func recentRunsHandler(service *application.BOLService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				respondError(c, errors.ErrBadRequest("limit must be a positive integer"))
				return
			}
			limit = parsed
		}

		summaries, err := service.RecentRuns(c.Request.Context(), application.RecentRunsQuery{Limit: limit})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"runs": summaries})
	}
}
