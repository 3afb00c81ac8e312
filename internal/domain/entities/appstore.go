package entities

// AppPlatform identifies where an app listing was found
type AppPlatform string

const (
	PlatformIOS     AppPlatform = "ios"
	PlatformAndroid AppPlatform = "android"
	PlatformWeb     AppPlatform = "web"
)

// AppStoreResult is one app listing returned by the store collectors
type AppStoreResult struct {
	ID          string      `json:"id" db:"id"`
	RunID       string      `json:"run_id" db:"run_id"`
	Platform    AppPlatform `json:"platform" db:"platform"`
	Name        string      `json:"name" db:"name"`
	Developer   string      `json:"developer" db:"developer"`
	Rating      float64     `json:"rating" db:"rating"`
	ReviewCount int         `json:"review_count" db:"review_count"`
	URL         string      `json:"url" db:"url"`
}
