package analytics

import (
	"fmt"

	"portfolio-api/internal/logger"
	"portfolio-api/internal/repository/db"
	"portfolio-api/pkg/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RecordVisitRequest contains one tracked page visit. VisitorID may be
// empty, in which case the service mints one and returns it so the
// client can reuse it on later visits.
type RecordVisitRequest struct {
	VisitorID       string
	IPAddress       string
	UserAgent       string
	Referrer        string
	SessionDuration *int
	PageViews       *int
}

// Stats holds the aggregate visitor counts for the stats endpoint
type Stats struct {
	TotalVisitors int
	TodayVisitors int
	OnlineNow     int
}

// AnalyticsService records page visits and answers aggregate counts.
// "Online now" is derived from a time-windowed set of recently seen
// visitor identifiers, not from the visit log itself.
type AnalyticsService struct {
	db        db.Database
	presence  *PresenceTracker
	validator *validation.VisitRequestValidator
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(database db.Database, presence *PresenceTracker) *AnalyticsService {
	return &AnalyticsService{
		db:        database,
		presence:  presence,
		validator: validation.NewVisitRequestValidator(),
	}
}

// RecordVisit validates and appends one visit record and marks the
// visitor as currently present
func (s *AnalyticsService) RecordVisit(req RecordVisitRequest) (*db.Visitor, error) {
	if err := s.validator.ValidateVisitRequest(req.SessionDuration, req.PageViews); err != nil {
		return nil, err
	}

	visitorID := req.VisitorID
	if visitorID == "" {
		visitorID = uuid.New().String()
	}

	pageViews := req.PageViews
	if pageViews == nil {
		one := 1
		pageViews = &one
	}

	input := db.VisitorInput{
		VisitorID:       visitorID,
		IPAddress:       optionalString(req.IPAddress),
		UserAgent:       optionalString(req.UserAgent),
		Referrer:        optionalString(req.Referrer),
		SessionDuration: req.SessionDuration,
		PageViews:       pageViews,
	}

	visitor, err := s.db.AddVisitor(input)
	if err != nil {
		return nil, fmt.Errorf("failed to record visit: %w", err)
	}

	s.presence.Touch(visitorID)

	logger.Log.WithFields(logrus.Fields{
		"visitor_id": visitorID,
		"referrer":   req.Referrer,
	}).Debug("Recorded visit")

	return visitor, nil
}

// GetStats returns the total and same-day visit counts plus the number
// of visitors seen within the presence window
func (s *AnalyticsService) GetStats() (*Stats, error) {
	total, err := s.db.GetVisitorCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count visitors: %w", err)
	}

	today, err := s.db.GetTodayVisitorCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count today's visitors: %w", err)
	}

	return &Stats{
		TotalVisitors: total,
		TodayVisitors: today,
		OnlineNow:     s.presence.ActiveCount(),
	}, nil
}

// ListVisits returns all recorded visits, newest first
func (s *AnalyticsService) ListVisits() ([]db.Visitor, error) {
	return s.db.GetVisitors()
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
