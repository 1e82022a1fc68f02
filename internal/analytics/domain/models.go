package domain

// DailyVolume is one calendar day's transaction count over the whole
// filtered set, keyed by a YYYY-MM-DD date string.
type DailyVolume struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// MCCCount ranks one merchant category code over the whole filtered set.
// The description is the first one seen for the code.
type MCCCount struct {
	MCC    string `json:"mcc"`
	MCCDes string `json:"mccDes"`
	Count  int    `json:"count"`
}

// MerchantAnalytics is the per-merchant summary computed for one request.
// A merchant is identified by the full (merchantName, mid, tid) triple;
// name collisions across different ids are never merged.
//
// DailyVolumes and MCCCounts are computed over the whole filtered set,
// not the group's own records, so every entry of one response carries
// identical copies. This mirrors the dashboard contract this service
// replaces; see DESIGN.md before changing it.
type MerchantAnalytics struct {
	MerchantName             string         `json:"merchantName"`
	MID                      string         `json:"mid"`
	TID                      string         `json:"tid"`
	TotalTransactions        int            `json:"totalTransactions"`
	TotalAmount              float64        `json:"totalAmount"`
	AverageTransactionAmount float64        `json:"averageTransactionAmount"`
	SuccessRate              float64        `json:"successRate"`
	HourlyVolumes            [24]int        `json:"hourlyVolumes"`
	DailyVolumes             []DailyVolume  `json:"dailyVolumes"`
	ListenerDesDistribution  map[string]int `json:"listenerDesDistribution"`
	ChannelDesDistribution   map[string]int `json:"channelDesDistribution"`
	OnOffStatusDistribution  map[string]int `json:"onOffStatusDistribution"`
	MCCCounts                []MCCCount     `json:"mccCounts"`
}
