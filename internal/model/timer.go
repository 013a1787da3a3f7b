package model

import "time"

// Blob keys, one per page.
const (
	KeyCountdownTimers = "countdownTimers"
	KeyBlogComments    = "blogComments"
	KeyContactMessages = "contactMessages"
)

const (
	TargetDateLayout = "2006-01-02"
	TargetTimeLayout = "15:04"
)

// TimerRecord is the persisted state of one countdown timer.
type TimerRecord struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	TargetDate     string    `json:"targetDate"`
	TargetTime     string    `json:"targetTime"`
	TargetDateTime time.Time `json:"targetDateTime"`
	Completed      bool      `json:"completed"`
}
