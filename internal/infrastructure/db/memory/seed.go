package memory

import (
	"time"

	"github.com/homeharbor/harbor-api/internal/core/domain"
)

// SeedApartments returns the demo building directory.
func SeedApartments() []domain.Apartment {
	occupied := func(id, number, floor, typ, name, email, phone, moveIn string) domain.Apartment {
		return domain.Apartment{
			ID: id, Number: number, Floor: floor, Type: typ, Status: domain.StatusOccupied,
			Resident: &domain.Resident{Name: name, Email: email, Phone: phone, MoveInDate: moveIn},
		}
	}
	vacant := func(id, number, floor, typ string) domain.Apartment {
		return domain.Apartment{ID: id, Number: number, Floor: floor, Type: typ, Status: domain.StatusVacant}
	}

	return []domain.Apartment{
		occupied("1", "101", "1", "2 Bedroom", "John Smith", "john.smith@example.com", "(555) 123-4567", "01/15/2023"),
		occupied("2", "102", "1", "1 Bedroom", "Maria Garcia", "maria.garcia@example.com", "(555) 234-5678", "03/05/2023"),
		vacant("3", "103", "1", "Studio"),
		occupied("4", "201", "2", "2 Bedroom", "Robert Chen", "robert.chen@example.com", "(555) 345-6789", "05/10/2022"),
		occupied("5", "202", "2", "2 Bedroom", "Sarah Johnson", "sarah.johnson@example.com", "(555) 456-7890", "06/20/2023"),
		occupied("6", "203", "2", "1 Bedroom", "David Kim", "david.kim@example.com", "(555) 567-8901", "11/01/2022"),
		occupied("7", "301", "3", "3 Bedroom", "Emily Wilson", "emily.wilson@example.com", "(555) 678-9012", "02/15/2023"),
		vacant("8", "302", "3", "2 Bedroom"),
		occupied("9", "303", "3", "1 Bedroom", "Michael Brown", "michael.brown@example.com", "(555) 789-0123", "04/01/2023"),
		occupied("10", "304", "3", "2 Bedroom", "Jessica Taylor", "jessica.taylor@example.com", "(555) 890-1234", "07/12/2022"),
	}
}

// SeedTasks returns the open maintenance tasks shown on the staff dashboard,
// reported relative to now.
func SeedTasks(now time.Time) []domain.Task {
	task := func(id, title, category, location string, p domain.Priority, age time.Duration) domain.Task {
		created := now.Add(-age).UTC()
		return domain.Task{
			ID:         id,
			Title:      title,
			Category:   category,
			Location:   location,
			Priority:   p,
			Status:     domain.TaskOpen,
			ReportedBy: "resident@example.com",
			CreatedAt:  created,
			UpdatedAt:  created,
			History:    []domain.TaskTransition{{Status: domain.TaskOpen, Timestamp: created}},
		}
	}

	return []domain.Task{
		task("seed-1", "Fix Leaking Faucet", "Plumbing", "Unit 304", domain.PriorityHigh, 10*time.Minute),
		task("seed-2", "Replace Light Bulb", "Electrical", "Unit 207 - Hallway", domain.PriorityMedium, 24*time.Hour),
		task("seed-3", "Check AC Unit", "Appliance", "Unit 512", domain.PriorityLow, 48*time.Hour),
	}
}

// SeedNotifications returns the admin inbox shown on first launch.
func SeedNotifications(now time.Time) []domain.Notification {
	n := func(id, title, body string, kind domain.NotificationKind, age time.Duration) domain.Notification {
		return domain.Notification{
			ID:        id,
			Recipient: "admin@example.com",
			Title:     title,
			Body:      body,
			Kind:      kind,
			CreatedAt: now.Add(-age).UTC(),
		}
	}

	// Oldest first; the repository lists newest first.
	return []domain.Notification{
		n("seed-4", "Alert", "Fire drill scheduled for June 15th", domain.KindAlert, 72*time.Hour),
		n("seed-3", "New Resident", "Unit 105 - John Smith", domain.KindResident, 48*time.Hour),
		n("seed-2", "Package Delivered", "Unit 201 - Amazon", domain.KindPackage, time.Hour),
		n("seed-1", "New Maintenance Request", "Unit 304 - Leaking Faucet", domain.KindMaintenance, 10*time.Minute),
	}
}
