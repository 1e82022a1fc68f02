package service

import (
	"sort"

	"github.com/smallbiznis/txnsight/internal/analytics/domain"
	txndomain "github.com/smallbiznis/txnsight/internal/transaction/domain"
)

type groupKey struct {
	merchantName string
	mid          string
	tid          string
}

// Aggregate partitions records by the (merchantName, mid, tid) triple and
// computes one MerchantAnalytics per group. Daily volumes and the MCC
// ranking are computed once over the whole record set and shared by every
// group of the response.
func Aggregate(records []txndomain.TransactionRecord) []domain.MerchantAnalytics {
	groups := make(map[groupKey][]txndomain.TransactionRecord)
	var order []groupKey
	for _, r := range records {
		key := groupKey{merchantName: r.MerchantName, mid: r.MID, tid: r.TID}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	daily := dailyVolumes(records)
	mccs := mccCounts(records)

	result := make([]domain.MerchantAnalytics, 0, len(order))
	for _, key := range order {
		group := groups[key]

		var total float64
		var approved int
		var hourly [24]int
		listener := make(map[string]int)
		channel := make(map[string]int)
		onOff := make(map[string]int)
		for _, r := range group {
			total += r.TxnAmount
			if r.Approved() {
				approved++
			}
			hourly[r.TxnDateTime.Hour()]++
			listener[r.ListenerDes]++
			channel[r.ChannelDes]++
			onOff[r.OnOffStatus]++
		}

		count := len(group)
		result = append(result, domain.MerchantAnalytics{
			MerchantName:             key.merchantName,
			MID:                      key.mid,
			TID:                      key.tid,
			TotalTransactions:        count,
			TotalAmount:              total,
			AverageTransactionAmount: total / float64(count),
			SuccessRate:              float64(approved) / float64(count),
			HourlyVolumes:            hourly,
			DailyVolumes:             daily,
			ListenerDesDistribution:  listener,
			ChannelDesDistribution:   channel,
			OnOffStatusDistribution:  onOff,
			MCCCounts:                mccs,
		})
	}
	return result
}

func dailyVolumes(records []txndomain.TransactionRecord) []domain.DailyVolume {
	byDate := make(map[string]int)
	for _, r := range records {
		byDate[r.TxnDateTime.Format("2006-01-02")]++
	}
	out := make([]domain.DailyVolume, 0, len(byDate))
	for date, count := range byDate {
		out = append(out, domain.DailyVolume{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

func mccCounts(records []txndomain.TransactionRecord) []domain.MCCCount {
	index := make(map[string]int)
	var out []domain.MCCCount
	for _, r := range records {
		i, ok := index[r.MCC]
		if !ok {
			// first occurrence fixes the description for the code
			index[r.MCC] = len(out)
			out = append(out, domain.MCCCount{MCC: r.MCC, MCCDes: r.MCCDes})
			i = index[r.MCC]
		}
		out[i].Count++
	}
	// stable: equal counts keep first-seen order
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// SortAnalytics orders the result by the requested field and direction.
// Order defaults to descending, the field to totalAmount. merchantName is
// compared lexicographically, all other fields numerically. The sort is
// stable, so equal keys keep their grouping order.
func SortAnalytics(items []domain.MerchantAnalytics, sortBy, sortOrder string) {
	var less func(a, b domain.MerchantAnalytics) bool
	switch sortBy {
	case domain.SortByTotalTransactions:
		less = func(a, b domain.MerchantAnalytics) bool { return a.TotalTransactions < b.TotalTransactions }
	case domain.SortByMerchantName:
		less = func(a, b domain.MerchantAnalytics) bool { return a.MerchantName < b.MerchantName }
	case domain.SortBySuccessRate:
		less = func(a, b domain.MerchantAnalytics) bool { return a.SuccessRate < b.SuccessRate }
	case domain.SortByAverageAmount:
		less = func(a, b domain.MerchantAnalytics) bool {
			return a.AverageTransactionAmount < b.AverageTransactionAmount
		}
	default:
		less = func(a, b domain.MerchantAnalytics) bool { return a.TotalAmount < b.TotalAmount }
	}

	desc := sortOrder != domain.SortOrderAsc
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
