package notifier

import "fmt"

// Milestone describes a crossed registration milestone.
type Milestone struct {
	// Reached is the milestone value that was crossed (a multiple of the
	// configured step).
	Reached int
	// Total is the current participant count.
	Total int
}

// Notifier defines the interface for posting milestone announcements
type Notifier interface {
	// Notify posts an announcement for the given milestone
	Notify(m Milestone) error
}

// Crossed returns the highest milestone newly crossed between the previous
// and current totals, and whether one was crossed at all. A step of zero
// disables milestones.
func Crossed(previous, current, step int) (Milestone, bool) {
	if step <= 0 || current <= previous {
		return Milestone{}, false
	}
	reached := (current / step) * step
	if reached <= previous {
		return Milestone{}, false
	}
	return Milestone{Reached: reached, Total: current}, true
}

// formatAnnouncement formats a milestone as a post
func formatAnnouncement(m Milestone) string {
	return fmt.Sprintf(
		"🏃 %d runners! The startlist just passed %d registrations (%d total so far).\n\n#Osterlauf #running",
		m.Total, m.Reached, m.Total,
	)
}
