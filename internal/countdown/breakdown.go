package countdown

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// Breakdown is a remaining duration split into whole units.
type Breakdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Display is a Breakdown rendered as two-digit strings.
type Display struct {
	Days    string `json:"days"`
	Hours   string `json:"hours"`
	Minutes string `json:"minutes"`
	Seconds string `json:"seconds"`
}

// Decompose floors d into days, hours, minutes and seconds; each unit's
// remainder feeds the next and sub-second parts are dropped.
func Decompose(d time.Duration) Breakdown {
	if d <= 0 {
		return Breakdown{}
	}

	days := d / day
	d -= days * day
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second

	return Breakdown{
		Days:    int(days),
		Hours:   int(hours),
		Minutes: int(minutes),
		Seconds: int(seconds),
	}
}

func (b Breakdown) Display() Display {
	return Display{
		Days:    padZero(b.Days),
		Hours:   padZero(b.Hours),
		Minutes: padZero(b.Minutes),
		Seconds: padZero(b.Seconds),
	}
}

func padZero(n int) string {
	return fmt.Sprintf("%02d", n)
}
