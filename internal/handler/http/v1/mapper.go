package v1

import "github.com/shenikar/emergency_response_system/internal/models"

// ModelToEmergencyResponse преобразует доменную модель в DTO для ответа
func ModelToEmergencyResponse(model *models.Emergency) *EmergencyResponse {
	return &EmergencyResponse{
		ID:             model.ID,
		SubjectID:      model.SubjectID,
		Kind:           string(model.Kind),
		Location:       model.Location,
		AccuracyMeters: model.AccuracyMeters,
		Status:         string(model.Status),
		Reason:         model.Reason,
		TriggeredAt:    model.TriggeredAt,
		ResolvedAt:     model.ResolvedAt,
		Timeline:       model.Timeline,
		Notifications:  model.Notifications,
		Responders:     model.Responders,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// ModelsToEmergencyResponses преобразует слайс моделей в слайс DTO
func ModelsToEmergencyResponses(models []*models.Emergency) []*EmergencyResponse {
	responses := make([]*EmergencyResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToEmergencyResponse(model)
	}
	return responses
}

// RankedToResponderResponses преобразует шорт-лист подбора в слайс DTO
func RankedToResponderResponses(ranked []models.RankedResponder) []*RankedResponderResponse {
	responses := make([]*RankedResponderResponse, len(ranked))
	for i, r := range ranked {
		responses[i] = &RankedResponderResponse{
			ResponderID:    r.Responder.ID,
			Name:           r.Responder.Name,
			DistanceMeters: r.DistanceMeters,
			ETAMinutes:     r.ETAMinutes,
			BearingDegrees: r.BearingDegrees,
			Sector:         r.Sector,
			Rating:         r.Responder.Rating,
		}
	}
	return responses
}

// ModelToTrackingResponse преобразует доменную модель отслеживания в DTO
func ModelToTrackingResponse(model *models.JourneyTracking) *TrackingResponse {
	return &TrackingResponse{
		ID:           model.ID,
		SubjectID:    model.SubjectID,
		Origin:       model.Origin,
		Destination:  model.Destination,
		ExpectedPath: model.ExpectedPath,
		ObservedPath: model.ObservedPath,
		Deviation:    model.Deviation,
		Status:       string(model.Status),
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// DTOToCoordinates преобразует слайс координатных DTO в доменные координаты
func DTOToCoordinates(dtos []CoordinateDTO) []models.Coordinate {
	coords := make([]models.Coordinate, len(dtos))
	for i, dto := range dtos {
		coords[i] = models.Coordinate{Latitude: *dto.Latitude, Longitude: *dto.Longitude}
	}
	return coords
}
