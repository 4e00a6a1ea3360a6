package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"portfolio-api/internal/logger"
	analyticsService "portfolio-api/internal/service/analytics"
	"portfolio-api/pkg/validation"
)

// Request/Response types

type VisitRequest struct {
	VisitorID       string `json:"visitorId,omitempty"`
	SessionDuration *int   `json:"sessionDuration,omitempty"`
	PageViews       *int   `json:"pageViews,omitempty"`
}

type VisitResponse struct {
	Success   bool   `json:"success"`
	VisitorID string `json:"visitorId"`
}

type StatsResponse struct {
	TotalVisitors int `json:"totalVisitors"`
	TodayVisitors int `json:"todayVisitors"`
	OnlineNow     int `json:"onlineNow"`
}

type VisitData struct {
	ID              string  `json:"id"`
	VisitorID       string  `json:"visitorId"`
	IPAddress       *string `json:"ipAddress"`
	UserAgent       *string `json:"userAgent"`
	Referrer        *string `json:"referrer"`
	SessionDuration *int    `json:"sessionDuration"`
	PageViews       *int    `json:"pageViews"`
	Timestamp       string  `json:"timestamp"`
}

type VisitsResponse struct {
	Visits []VisitData `json:"visits"`
}

// AnalyticsHandlers maps the analytics endpoints onto the analytics service
type AnalyticsHandlers struct {
	analyticsService *analyticsService.AnalyticsService
}

// NewAnalyticsHandlers creates a new AnalyticsHandlers
func NewAnalyticsHandlers(service *analyticsService.AnalyticsService) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		analyticsService: service,
	}
}

// VisitHandler records one page visit. IP, user agent and referrer come
// from request metadata, not the body.
func (ah *AnalyticsHandlers) VisitHandler(w http.ResponseWriter, r *http.Request) {
	var req VisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	visitor, err := ah.analyticsService.RecordVisit(analyticsService.RecordVisitRequest{
		VisitorID:       req.VisitorID,
		IPAddress:       clientIP(r),
		UserAgent:       r.UserAgent(),
		Referrer:        r.Referer(),
		SessionDuration: req.SessionDuration,
		PageViews:       req.PageViews,
	})
	if err != nil {
		logger.Log.WithError(err).Error("Error tracking visitor")

		var validationErr *validation.ValidationError
		if errors.As(err, &validationErr) {
			sendError(w, http.StatusBadRequest, "Validation failed", err)
			return
		}
		sendError(w, http.StatusInternalServerError, "Failed to track visitor", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(VisitResponse{
		Success:   true,
		VisitorID: visitor.VisitorID,
	})
}

// StatsHandler returns the aggregate visitor counts
func (ah *AnalyticsHandlers) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := ah.analyticsService.GetStats()
	if err != nil {
		logger.Log.WithError(err).Error("Error getting analytics")
		sendError(w, http.StatusInternalServerError, "Failed to get analytics", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatsResponse{
		TotalVisitors: stats.TotalVisitors,
		TodayVisitors: stats.TodayVisitors,
		OnlineNow:     stats.OnlineNow,
	})
}

// VisitsHandler returns every recorded visit, newest first. Registered
// behind the admin auth middleware.
func (ah *AnalyticsHandlers) VisitsHandler(w http.ResponseWriter, r *http.Request) {
	visits, err := ah.analyticsService.ListVisits()
	if err != nil {
		logger.Log.WithError(err).Error("Error listing visits")
		sendError(w, http.StatusInternalServerError, "Failed to list visits", err)
		return
	}

	visitData := make([]VisitData, 0, len(visits))
	for _, v := range visits {
		visitData = append(visitData, VisitData{
			ID:              v.ID,
			VisitorID:       v.VisitorID,
			IPAddress:       v.IPAddress,
			UserAgent:       v.UserAgent,
			Referrer:        v.Referrer,
			SessionDuration: v.SessionDuration,
			PageViews:       v.PageViews,
			Timestamp:       v.Timestamp.Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(VisitsResponse{Visits: visitData})
}

// clientIP extracts the caller's address, preferring X-Forwarded-For
// when the server sits behind a proxy
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
