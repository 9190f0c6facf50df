package main

import (
	"time"
)

type OrganizerAnalytics struct {
	TotalEvents        int                 `json:"total_events"`
	CompletedEvents    int                 `json:"completed_events"`
	UpcomingEvents     int                 `json:"upcoming_events"`
	TotalBudget        float64             `json:"total_budget"`
	TotalSpent         float64             `json:"total_spent"`
	Savings            float64             `json:"savings"`
	AverageEventBudget float64             `json:"average_event_budget"`
	EventsByStatus     map[EventStatus]int `json:"events_by_status"`
}

type VendorAnalytics struct {
	TotalRequests    int     `json:"total_requests"`
	AcceptedRequests int     `json:"accepted_requests"`
	CompletedJobs    int     `json:"completed_jobs"`
	TotalEarnings    float64 `json:"total_earnings"`
	AverageRating    float64 `json:"average_rating"`
	TotalReviews     int     `json:"total_reviews"`
	ResponseRate     float64 `json:"response_rate"`
}

// OrganizerDashboard summarizes the events an organizer owns.
// Savings goes negative when spending exceeds the budget.
func OrganizerDashboard(events []Event, now time.Time) OrganizerAnalytics {
	a := OrganizerAnalytics{
		TotalEvents:    len(events),
		EventsByStatus: make(map[EventStatus]int, len(EventStatuses)),
	}
	for _, s := range EventStatuses {
		a.EventsByStatus[s] = 0
	}

	for _, e := range events {
		if e.Status == EventCompleted {
			a.CompletedEvents++
		}
		if e.Date.Start.After(now) {
			a.UpcomingEvents++
		}
		if _, known := a.EventsByStatus[e.Status]; known {
			a.EventsByStatus[e.Status]++
		}
		a.TotalBudget += e.TotalBudget
		a.TotalSpent += e.TotalSpent()
	}

	a.Savings = a.TotalBudget - a.TotalSpent
	if a.TotalEvents > 0 {
		a.AverageEventBudget = a.TotalBudget / float64(a.TotalEvents)
	}
	return a
}

// VendorDashboard summarizes a vendor's requests across the events that
// name it, plus the reviews it received.
//
// ResponseRate divides accepted requests by the number of matched events, not
// by the number of requests, so it can exceed 100 when one event holds
// several accepted requests for the same vendor.
func VendorDashboard(vendorID string, events []Event, reviews []Review) VendorAnalytics {
	var a VendorAnalytics
	matched := 0
	for _, e := range events {
		involved := false
		for _, vr := range e.VendorRequests {
			if vr.VendorID != vendorID {
				continue
			}
			involved = true
			a.TotalRequests++
			switch vr.Status {
			case RequestAccepted:
				a.AcceptedRequests++
			case RequestCompleted:
				a.CompletedJobs++
			}
			if vr.FinalPrice != nil {
				a.TotalEarnings += *vr.FinalPrice
			}
		}
		if involved {
			matched++
		}
	}

	r := AverageRating(reviews)
	a.AverageRating = r.Average
	a.TotalReviews = r.Count

	if matched > 0 {
		a.ResponseRate = float64(a.AcceptedRequests) / float64(matched) * 100
	}
	return a
}
