// Package notifier posts registration-milestone announcements.
//
// The notifier package supports announcing that the tracked race crossed a
// registration milestone (every N participants) to various channels. It
// handles OAuth authentication and message formatting; a dry-run
// implementation prints instead of posting.
package notifier
