package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_response_system/internal/config"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/service"
	"github.com/shenikar/emergency_response_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*mocks.MockEmergencyService, *mocks.MockTrackingService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	emergencyMock := mocks.NewMockEmergencyService(ctrl)
	trackingMock := mocks.NewMockTrackingService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys: []string{"test-api-key"},
	}

	handler := NewHandler(emergencyMock, trackingMock, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return emergencyMock, trackingMock, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func authHeader() map[string]string {
	return map[string]string{"X-API-Key": "test-api-key"}
}

func ptr(f float64) *float64 {
	return &f
}

func TestTriggerEmergency_Success(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)
	subjectID := uuid.New()
	emergencyID := uuid.New()
	reqBody := TriggerEmergencyRequest{
		SubjectID: subjectID.String(),
		Kind:      "manual",
		Latitude:  ptr(55.7558),
		Longitude: ptr(37.6173),
	}
	expected := &models.Emergency{
		ID:          emergencyID,
		SubjectID:   subjectID,
		Kind:        models.KindManual,
		Location:    models.Coordinate{Latitude: 55.7558, Longitude: 37.6173},
		Status:      models.StatusActive,
		TriggeredAt: time.Now(),
	}

	emergencyMock.EXPECT().
		Trigger(gomock.Any(), subjectID, models.KindManual, expected.Location, gomock.Any(), gomock.Any()).
		Return(expected, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergencies/trigger", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp EmergencyResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, emergencyID, resp.ID)
	assert.Equal(t, "active", resp.Status)
}

func TestTriggerEmergency_InvalidJSON(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)

	emergencyMock.EXPECT().
		Trigger(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/emergencies/trigger", bytes.NewBufferString(`{"kind": "manual"`), authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestTriggerEmergency_UnknownKind(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)
	reqBody := TriggerEmergencyRequest{
		SubjectID: uuid.New().String(),
		Kind:      "teleport",
		Latitude:  ptr(55.7558),
		Longitude: ptr(37.6173),
	}

	emergencyMock.EXPECT().
		Trigger(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergencies/trigger", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Kind' failed on the 'oneof' tag")
}

func TestTriggerEmergency_MissingCoordinates(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)
	reqBody := TriggerEmergencyRequest{
		SubjectID: uuid.New().String(),
		Kind:      "manual",
	}

	emergencyMock.EXPECT().
		Trigger(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergencies/trigger", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Latitude")
}

func TestTriggerEmergency_NoContacts(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)
	subjectID := uuid.New()
	reqBody := TriggerEmergencyRequest{
		SubjectID: subjectID.String(),
		Kind:      "fall",
		Latitude:  ptr(55.7558),
		Longitude: ptr(37.6173),
	}

	emergencyMock.EXPECT().
		Trigger(gomock.Any(), subjectID, models.KindFall, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, service.ErrNoContacts).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergencies/trigger", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListEmergencies_Success(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)
	expected := []*models.Emergency{
		{ID: uuid.New(), Status: models.StatusActive},
		{ID: uuid.New(), Status: models.StatusResolved},
	}

	emergencyMock.EXPECT().
		ListEmergencies(gomock.Any(), 2, 5).
		Return(expected, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies?page=2&pageSize=5", nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*EmergencyResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Len(t, resp, 2)
}

func TestGetEmergency_Success(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)
	emergencyID := uuid.New()
	expected := &models.Emergency{ID: emergencyID, Status: models.StatusActive}

	emergencyMock.EXPECT().
		GetEmergency(gomock.Any(), emergencyID).
		Return(expected, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies/"+emergencyID.String(), nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp EmergencyResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, emergencyID, resp.ID)
}

func TestGetEmergency_InvalidID(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)

	emergencyMock.EXPECT().GetEmergency(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/emergencies/not-a-uuid", nil, authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid emergency ID")
}

func TestGetEmergency_NotFound(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)
	emergencyID := uuid.New()

	emergencyMock.EXPECT().
		GetEmergency(gomock.Any(), emergencyID).
		Return(nil, service.ErrNotFound).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies/"+emergencyID.String(), nil, authHeader())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResolveEmergency_Success(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)
	emergencyID := uuid.New()
	now := time.Now()
	reqBody := ResolveEmergencyRequest{Status: "resolved", Reason: "subject is safe"}
	expected := &models.Emergency{
		ID:         emergencyID,
		Status:     models.StatusResolved,
		Reason:     reqBody.Reason,
		ResolvedAt: &now,
	}

	emergencyMock.EXPECT().
		Resolve(gomock.Any(), emergencyID, models.StatusResolved, "subject is safe").
		Return(expected, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergencies/"+emergencyID.String()+"/resolve", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp EmergencyResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "resolved", resp.Status)
}

func TestResolveEmergency_AlreadyTerminal(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)
	emergencyID := uuid.New()
	reqBody := ResolveEmergencyRequest{Status: "cancelled", Reason: "duplicate"}

	emergencyMock.EXPECT().
		Resolve(gomock.Any(), emergencyID, models.StatusCancelled, "duplicate").
		Return(nil, service.ErrInvalidTransition).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergencies/"+emergencyID.String()+"/resolve", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestResolveEmergency_InvalidStatus(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)
	reqBody := ResolveEmergencyRequest{Status: "active", Reason: "reason"}

	emergencyMock.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergencies/"+uuid.New().String()+"/resolve", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Status' failed on the 'oneof' tag")
}

func TestAcceptResponse_Success(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)
	emergencyID := uuid.New()
	responderID := uuid.New()
	reqBody := AcceptResponseRequest{ResponderID: responderID.String()}
	expected := &models.Emergency{
		ID:     emergencyID,
		Status: models.StatusActive,
		Responders: []models.ResponderAssignment{
			{ResponderID: responderID, Status: models.ResponderAccepted},
		},
	}

	emergencyMock.EXPECT().
		AcceptResponse(gomock.Any(), emergencyID, responderID).
		Return(expected, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergencies/"+emergencyID.String()+"/respond", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMatchResponders_Success(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)
	reqBody := MatchRespondersRequest{Latitude: ptr(55.7558), Longitude: ptr(37.6173), Limit: 2}
	expected := []models.RankedResponder{
		{
			Responder:      models.Responder{ID: uuid.New(), Name: "Иван"},
			DistanceMeters: 120,
			ETAMinutes:     2,
			Sector:         0,
		},
	}

	emergencyMock.EXPECT().
		MatchResponders(gomock.Any(), models.Coordinate{Latitude: 55.7558, Longitude: 37.6173}, 2).
		Return(expected, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/responders/match", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*RankedResponderResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Иван", resp[0].Name)
	assert.Equal(t, 2, resp[0].ETAMinutes)
}

func TestStartTracking_HTTP_Success(t *testing.T) {
	_, trackingMock, router := newTestHandler(t)
	subjectID := uuid.New()
	trackingID := uuid.New()
	reqBody := StartTrackingRequest{
		SubjectID:   subjectID.String(),
		Origin:      CoordinateDTO{Latitude: ptr(0), Longitude: ptr(0)},
		Destination: CoordinateDTO{Latitude: ptr(0.01), Longitude: ptr(0)},
		ExpectedPath: []CoordinateDTO{
			{Latitude: ptr(0), Longitude: ptr(0)},
			{Latitude: ptr(0.01), Longitude: ptr(0)},
		},
	}
	expected := &models.JourneyTracking{
		ID:        trackingID,
		SubjectID: subjectID,
		Status:    models.TrackingActive,
	}

	trackingMock.EXPECT().
		StartTracking(gomock.Any(), subjectID, models.Coordinate{Latitude: 0, Longitude: 0}, models.Coordinate{Latitude: 0.01, Longitude: 0}, gomock.Any()).
		Return(expected, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/tracking", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp TrackingResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, trackingID, resp.ID)
	assert.Equal(t, "active", resp.Status)
}

func TestUpdatePosition_HTTP_NewlyDetected(t *testing.T) {
	_, trackingMock, router := newTestHandler(t)
	trackingID := uuid.New()
	reqBody := UpdatePositionRequest{Latitude: ptr(0), Longitude: ptr(0.01)}
	now := time.Now()
	updated := &models.JourneyTracking{
		ID:     trackingID,
		Status: models.TrackingDeviationAlert,
		Deviation: models.DeviationState{
			Detected:           true,
			DetectedAt:         &now,
			MaxDeviationMeters: 1112,
		},
	}

	trackingMock.EXPECT().
		UpdatePosition(gomock.Any(), trackingID, models.Coordinate{Latitude: 0, Longitude: 0.01}).
		Return(updated, models.DeviationNewlyDetected, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/tracking/"+trackingID.String()+"/position", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp UpdatePositionResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "newly_detected", resp.Result)
	assert.True(t, resp.Deviation.Detected)
	assert.Equal(t, "deviation_alert", resp.Status)
}

func TestUpdatePosition_HTTP_CompletedConflict(t *testing.T) {
	_, trackingMock, router := newTestHandler(t)
	trackingID := uuid.New()
	reqBody := UpdatePositionRequest{Latitude: ptr(0), Longitude: ptr(0)}

	trackingMock.EXPECT().
		UpdatePosition(gomock.Any(), trackingID, gomock.Any()).
		Return(nil, models.DeviationNoChange, service.ErrInvalidTransition).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/tracking/"+trackingID.String()+"/position", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCompleteTracking_HTTP_Success(t *testing.T) {
	_, trackingMock, router := newTestHandler(t)
	trackingID := uuid.New()
	expected := &models.JourneyTracking{ID: trackingID, Status: models.TrackingCompleted}

	trackingMock.EXPECT().
		CompleteTracking(gomock.Any(), trackingID).
		Return(expected, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/tracking/"+trackingID.String()+"/complete", nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp TrackingResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAPIKeyAuthMiddleware_Success(t *testing.T) {
	// Создаем Gin-роутер и добавляем middleware
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_MissingKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "wrong-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(router, "GET", "/test", nil, map[string]string{"Authorization": "Bearer valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireAPIKey(t *testing.T) {
	emergencyMock, _, router := newTestHandler(t)

	emergencyMock.EXPECT().
		ListEmergencies(gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	w := makeRequest(router, "GET", "/api/v1/emergencies", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
