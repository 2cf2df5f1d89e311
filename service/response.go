package service

import "net/http"

// ServiceResponse is the envelope every use case returns and every HTTP
// handler writes as is.
type ServiceResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ResponseObject any    `json:"responseObject"`
	StatusCode     int    `json:"statusCode"`
}

func Success(message string, object any) ServiceResponse {
	return ServiceResponse{Success: true, Message: message, ResponseObject: object, StatusCode: http.StatusOK}
}

func Failure(message string, statusCode int) ServiceResponse {
	return ServiceResponse{Success: false, Message: message, StatusCode: statusCode}
}
