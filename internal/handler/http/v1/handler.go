package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_response_system/internal/config"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	emergencyService service.EmergencyService
	trackingService  service.TrackingService
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(emergencyService service.EmergencyService, trackingService service.TrackingService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		emergencyService: emergencyService,
		trackingService:  trackingService,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// respondServiceError сопоставляет категорию ошибки ядра с HTTP-статусом
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoContacts):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Trigger an emergency
// @Description Trigger a new emergency for a subject and start the notification escalation. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param emergency body TriggerEmergencyRequest true "Emergency trigger request"
// @Success 201 {object} EmergencyResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Subject not found"
// @Failure 422 {object} map[string]string "Subject has no contacts configured"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/trigger [post]
func (h *Handler) triggerEmergency(c *gin.Context) {
	var input TriggerEmergencyRequest
	log := h.logger.WithField("method", "triggerEmergency")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subjectID, _ := uuid.Parse(input.SubjectID)
	location := models.Coordinate{Latitude: *input.Latitude, Longitude: *input.Longitude}

	emergency, err := h.emergencyService.Trigger(c.Request.Context(), subjectID, models.EmergencyKind(input.Kind), location, input.AccuracyMeters, input.Evidence)
	if err != nil {
		log.WithError(err).Error("Failed to trigger emergency in service")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToEmergencyResponse(emergency))
}

// @Summary Get a list of emergencies
// @Description Get a paginated list of emergencies. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Success 200 {array} EmergencyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies [get]
func (h *Handler) listEmergencies(c *gin.Context) {
	log := h.logger.WithField("method", "listEmergencies")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	emergencies, err := h.emergencyService.ListEmergencies(c.Request.Context(), page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list emergencies from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToEmergencyResponses(emergencies))
}

// @Summary Get emergency by ID
// @Description Get a single emergency with its timeline, notification log and responder assignments. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Success 200 {object} EmergencyResponse
// @Failure 400 {object} map[string]string "Invalid emergency ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id} [get]
func (h *Handler) getEmergency(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid emergency ID"})
		return
	}
	log := h.logger.WithField("method", "getEmergency").WithField("id", id)

	emergency, err := h.emergencyService.GetEmergency(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get emergency from service")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEmergencyResponse(emergency))
}

// @Summary Resolve an emergency
// @Description Move an emergency to a terminal status and send the relief notification. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Param resolve body ResolveEmergencyRequest true "Emergency resolve request"
// @Success 200 {object} EmergencyResponse
// @Failure 400 {object} map[string]string "Invalid emergency ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 409 {object} map[string]string "Emergency is already in a terminal status"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/resolve [post]
func (h *Handler) resolveEmergency(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid emergency ID"})
		return
	}
	log := h.logger.WithField("method", "resolveEmergency").WithField("id", id)

	var input ResolveEmergencyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emergency, err := h.emergencyService.Resolve(c.Request.Context(), id, models.EmergencyStatus(input.Status), input.Reason)
	if err != nil {
		log.WithError(err).Warn("Failed to resolve emergency in service")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEmergencyResponse(emergency))
}

// @Summary Accept a responder assignment
// @Description Mark a notified responder as accepted for the emergency. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Param accept body AcceptResponseRequest true "Responder acceptance request"
// @Success 200 {object} EmergencyResponse
// @Failure 400 {object} map[string]string "Invalid emergency ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Emergency or responder assignment not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/respond [post]
func (h *Handler) acceptResponse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid emergency ID"})
		return
	}
	log := h.logger.WithField("method", "acceptResponse").WithField("id", id)

	var input AcceptResponseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	responderID, _ := uuid.Parse(input.ResponderID)
	emergency, err := h.emergencyService.AcceptResponse(c.Request.Context(), id, responderID)
	if err != nil {
		log.WithError(err).Warn("Failed to accept response in service")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEmergencyResponse(emergency))
}

// @Summary Match responders near a location
// @Description Build a ranked, direction-diverse shortlist of available certified responders. Requires API key.
// @Tags Responders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param match body MatchRespondersRequest true "Responder match request"
// @Success 200 {array} RankedResponderResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /responders/match [post]
func (h *Handler) matchResponders(c *gin.Context) {
	var input MatchRespondersRequest
	log := h.logger.WithField("method", "matchResponders")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location := models.Coordinate{Latitude: *input.Latitude, Longitude: *input.Longitude}
	ranked, err := h.emergencyService.MatchResponders(c.Request.Context(), location, input.Limit)
	if err != nil {
		log.WithError(err).Error("Failed to match responders in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, RankedToResponderResponses(ranked))
}

// @Summary Start journey tracking
// @Description Start tracking a subject's journey against an expected path. Requires API key.
// @Tags Tracking
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param tracking body StartTrackingRequest true "Tracking start request"
// @Success 201 {object} TrackingResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Subject already has an active tracking"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /tracking [post]
func (h *Handler) startTracking(c *gin.Context) {
	var input StartTrackingRequest
	log := h.logger.WithField("method", "startTracking")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subjectID, _ := uuid.Parse(input.SubjectID)
	origin := models.Coordinate{Latitude: *input.Origin.Latitude, Longitude: *input.Origin.Longitude}
	destination := models.Coordinate{Latitude: *input.Destination.Latitude, Longitude: *input.Destination.Longitude}

	tracking, err := h.trackingService.StartTracking(c.Request.Context(), subjectID, origin, destination, DTOToCoordinates(input.ExpectedPath))
	if err != nil {
		log.WithError(err).Error("Failed to start tracking in service")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToTrackingResponse(tracking))
}

// @Summary Submit an observed position
// @Description Apply an observed position to an active tracking and run the deviation check. Requires API key.
// @Tags Tracking
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Tracking ID"
// @Param position body UpdatePositionRequest true "Observed position"
// @Success 200 {object} UpdatePositionResponse
// @Failure 400 {object} map[string]string "Invalid tracking ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tracking not found"
// @Failure 409 {object} map[string]string "Tracking is already completed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /tracking/{id}/position [post]
func (h *Handler) updatePosition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tracking ID"})
		return
	}
	log := h.logger.WithField("method", "updatePosition").WithField("id", id)

	var input UpdatePositionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	point := models.Coordinate{Latitude: *input.Latitude, Longitude: *input.Longitude}
	tracking, result, err := h.trackingService.UpdatePosition(c.Request.Context(), id, point)
	if err != nil {
		log.WithError(err).Warn("Failed to update position in service")
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, UpdatePositionResponse{
		Result:    string(result),
		Deviation: tracking.Deviation,
		Status:    string(tracking.Status),
	})
}

// @Summary Complete journey tracking
// @Description Mark a journey tracking as completed. Requires API key.
// @Tags Tracking
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Tracking ID"
// @Success 200 {object} TrackingResponse
// @Failure 400 {object} map[string]string "Invalid tracking ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tracking not found"
// @Failure 409 {object} map[string]string "Tracking is already completed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /tracking/{id}/complete [post]
func (h *Handler) completeTracking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tracking ID"})
		return
	}
	log := h.logger.WithField("method", "completeTracking").WithField("id", id)

	tracking, err := h.trackingService.CompleteTracking(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to complete tracking in service")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToTrackingResponse(tracking))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
