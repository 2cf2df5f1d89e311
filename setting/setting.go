package setting

import "time"

const (
	UsersIndex = "users"
)

const (
	CrontabSyncTime = "0 */6 * * *"
)

const (
	HubspotDefaultURL       = "https://api.hubapi.com/crm/v3/objects"
	HubspotContactsPath     = "/contacts"
	HubspotDefaultPageLimit = 10
	HubspotPageDelay        = 500 * time.Millisecond
	HubspotFetchTimeout     = 30 * time.Second
)

const (
	AgeStrategyRuntime = "runtime"
	AgeStrategyLocal   = "local"

	// LocalAgeScrollSize is the batch size the local age searcher scrolls with.
	LocalAgeScrollSize = 1000
)
