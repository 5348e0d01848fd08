// Package api exposes the generation pipeline over HTTP for the
// interactive form collaborator.
package api

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jblick1327/shipping/internal/application"
	"github.com/jblick1327/shipping/internal/domain"
	"github.com/jblick1327/shipping/pkg/logging"
	"github.com/jblick1327/shipping/pkg/metrics"
)

const serviceName = "bolgen"

var registerValidatorsOnce sync.Once

// registerValidators adds the domain vocabularies to gin's binding
// validator
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("delivery_service", validateDeliveryService)
	})
}

func validateDeliveryService(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case domain.DeliveryInside, domain.DeliveryTailgate, domain.DeliveryAppointment,
		domain.DeliveryTwoMan, domain.DeliveryWhiteGlove:
		return true
	}
	return false
}

// NewRouter builds the HTTP surface: the generation routes plus
// health, readiness and metrics endpoints
func NewRouter(service *application.BOLService, m *metrics.Metrics, logger *logging.Logger, readiness func() error) *gin.Engine {
	registerValidators()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(Recovery(logger))
	router.Use(RequestID())
	router.Use(RequestLogger(logger))
	router.Use(Metrics(m))
	router.NoRoute(NoRoute())

	router.GET("/health", HealthCheck(serviceName))
	router.GET("/ready", ReadinessCheck(serviceName, readiness))
	router.GET("/metrics", MetricsEndpoint(m))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/bol", generateBOLHandler(service, logger))
		v1.POST("/bol/preview", previewBOLHandler(service, logger))
		v1.GET("/orders/:number", getOrderHandler(service, logger))
		v1.GET("/runs", recentRunsHandler(service, logger))
	}

	return router
}
