package cmd

type Config struct {
	HTTPPort              string
	OrdersAPIBaseURL      string
	OrdersAPIToken        string
	NCMAPIBaseURL         string
	CacheTimezone         string
	OrderPollSchedule     string
	BranchRefreshSchedule string
}
