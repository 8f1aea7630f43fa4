package notifier

import "fmt"

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct{}

// NewDryRunNotifier creates a new dry-run notifier
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify prints the announcement that would be posted
func (n *DryRunNotifier) Notify(m Milestone) error {
	post := formatAnnouncement(m)
	fmt.Println("--- Milestone announcement ---")
	fmt.Println(post)
	fmt.Printf("\n(Length: %d characters)\n", len(post))
	return nil
}
