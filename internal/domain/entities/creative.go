package entities

import "time"

// AdSource identifies the ad library a creative was observed in
type AdSource string

const (
	AdSourceMeta   AdSource = "meta"
	AdSourceGoogle AdSource = "google"
)

// AdCreative represents one observed ad creative
type AdCreative struct {
	ID          string    `json:"id" db:"id"`
	RunID       string    `json:"run_id" db:"run_id"`
	Source      AdSource  `json:"source" db:"source"`
	Advertiser  string    `json:"advertiser" db:"advertiser"`
	Text        string    `json:"text" db:"text"`
	Headline    string    `json:"headline" db:"headline"`
	Description string    `json:"description" db:"description"`
	FirstSeen   time.Time `json:"first_seen" db:"first_seen"`
	LastSeen    time.Time `json:"last_seen" db:"last_seen"`
	Active      bool      `json:"active" db:"active"`
	MediaType   string    `json:"media_type" db:"media_type"`
}

// DaysRunning returns how many whole days the ad has been observed running.
// Active ads count up to now, inactive ads up to their last sighting. Never
// negative, even for inconsistent timestamps.
func (c *AdCreative) DaysRunning() int {
	end := c.LastSeen
	if c.Active {
		end = time.Now()
	}
	days := int(end.Sub(c.FirstSeen).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
