package task

import "time"

// DemoTasks returns a realistic sample collection relative to now, used when
// the demo option is enabled. Fixtures bypass validation so that one of them
// can already be overdue.
func DemoTasks(now time.Time, newID func() string) []Task {
	day := func(n int) time.Time {
		y, m, d := now.AddDate(0, 0, n).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	}

	fixtures := []Task{
		{
			Title:       "Pay rent",
			Description: "Transfer October rent to the landlord before the first.",
			Priority:    PriorityHigh,
			DueDate:     day(2),
			CreatedAt:   now.AddDate(0, 0, -3),
		},
		{
			Title:       "Buy milk",
			Description: "Oat milk, two cartons.",
			Priority:    PriorityLow,
			DueDate:     day(1),
			CreatedAt:   now.AddDate(0, 0, -1),
		},
		{
			Title:       "Review pull request",
			Description: "Go through the search filter changes and leave comments.",
			Priority:    PriorityMedium,
			DueDate:     day(3),
			CreatedAt:   now.AddDate(0, 0, -2),
		},
		{
			Title:       "Renew passport",
			Description: "Book an appointment and bring two photos.",
			Priority:    PriorityHigh,
			DueDate:     day(-2),
			CreatedAt:   now.AddDate(0, 0, -30),
		},
		{
			Title:       "Water the plants",
			Description: "Balcony and kitchen.",
			Priority:    PriorityLow,
			Completed:   true,
			DueDate:     day(5),
			CreatedAt:   now.AddDate(0, 0, -4),
		},
		{
			Title:       "Plan team offsite",
			Description: "Shortlist three venues and circulate dates.",
			Priority:    PriorityMedium,
			DueDate:     day(14),
			CreatedAt:   now.AddDate(0, 0, -7),
		},
	}

	for i := range fixtures {
		fixtures[i].ID = newID()
	}
	return fixtures
}
