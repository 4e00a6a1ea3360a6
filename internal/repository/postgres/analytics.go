package postgres

import (
	"fmt"
	"time"

	"portfolio-api/internal/repository/db"

	"github.com/google/uuid"
)

// AddVisitor appends one visit record
func (p *PostgresDB) AddVisitor(input db.VisitorInput) (*db.Visitor, error) {
	conn := p.conn

	visitID := uuid.New().String()
	var timestamp time.Time

	query := `
	INSERT INTO analytics (id, visitor_id, ip_address, user_agent, referrer, session_duration, page_views)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, timestamp
	`

	err := conn.QueryRow(query, visitID, input.VisitorID, input.IPAddress, input.UserAgent,
		input.Referrer, input.SessionDuration, input.PageViews).Scan(&visitID, &timestamp)
	if err != nil {
		return nil, fmt.Errorf("error adding visitor: %w", err)
	}

	return &db.Visitor{
		ID:              visitID,
		VisitorID:       input.VisitorID,
		IPAddress:       input.IPAddress,
		UserAgent:       input.UserAgent,
		Referrer:        input.Referrer,
		SessionDuration: input.SessionDuration,
		PageViews:       input.PageViews,
		Timestamp:       timestamp,
	}, nil
}

// GetVisitors retrieves all visit records, newest first
func (p *PostgresDB) GetVisitors() ([]db.Visitor, error) {
	conn := p.conn

	query := `
	SELECT id, visitor_id, ip_address, user_agent, referrer, session_duration, page_views, timestamp
	FROM analytics
	ORDER BY timestamp DESC
	`

	rows, err := conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying visitors: %w", err)
	}
	defer rows.Close()

	visitors := make([]db.Visitor, 0)
	for rows.Next() {
		var v db.Visitor
		if err := rows.Scan(&v.ID, &v.VisitorID, &v.IPAddress, &v.UserAgent, &v.Referrer,
			&v.SessionDuration, &v.PageViews, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("error scanning visitor: %w", err)
		}
		visitors = append(visitors, v)
	}

	return visitors, nil
}

// GetVisitorCount returns the total number of recorded visits
func (p *PostgresDB) GetVisitorCount() (int, error) {
	conn := p.conn

	var count int
	query := `SELECT COUNT(*) FROM analytics`
	if err := conn.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting visitors: %w", err)
	}
	return count, nil
}

// GetTodayVisitorCount counts visits recorded on the current calendar
// date. The day boundary is computed from this process's local clock,
// not the database session's timezone.
func (p *PostgresDB) GetTodayVisitorCount() (int, error) {
	conn := p.conn

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int
	query := `SELECT COUNT(*) FROM analytics WHERE timestamp >= $1 AND timestamp < $2`
	if err := conn.QueryRow(query, dayStart, dayEnd).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting today's visitors: %w", err)
	}
	return count, nil
}
