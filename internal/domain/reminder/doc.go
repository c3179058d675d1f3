// Package reminder holds the immutable pool of hydration reminder messages.
package reminder
