package main

import (
	"sort"

	"memtrack/internal/model"
)

// topUsageFallback is how many processes the highest-usage list falls back to
// when nothing crosses a threshold, so the view never renders empty on a
// healthy machine.
const topUsageFallback = 5

// Analyze turns a snapshot into an AnalysisResult. Pure function: same
// snapshot and thresholds always produce bit-identical output.
//
// Percent of total is resident/total*100 and is NOT clamped: shared-memory
// double counting can legitimately push a single process above 100%. With a
// zero total every percent is 0 and the efficiency score degenerates to 100.
// Zero-valued thresholds apply literally (resident >= 0 always holds).
func Analyze(snap Snapshot, cfg ThresholdConfig) AnalysisResult {
	var highest, flagged []ClassifiedProcess
	var usedBytes float64

	classified := make([]ClassifiedProcess, 0, len(snap.Samples))
	for _, s := range snap.Samples {
		usedBytes += float64(s.ResidentBytes)

		var pct float64
		if snap.TotalSystemBytes > 0 {
			pct = float64(s.ResidentBytes) / float64(snap.TotalSystemBytes) * 100
		}

		// Flagged takes precedence: a process never lands in both buckets.
		bucket := model.BucketNormal
		switch {
		case pct >= cfg.FlaggedPercent || s.ResidentBytes >= cfg.FlaggedMinBytes:
			bucket = model.BucketFlagged
		case pct >= cfg.HighestUsagePercent || s.ResidentBytes >= cfg.HighestUsageMinBytes:
			bucket = model.BucketHighest
		}

		cp := ClassifiedProcess{
			Sample:         s,
			PercentOfTotal: pct,
			Bucket:         bucket,
			Recommendation: recommendFor(s.Name, pct, bucket),
		}
		classified = append(classified, cp)

		switch bucket {
		case model.BucketFlagged:
			flagged = append(flagged, cp)
		case model.BucketHighest:
			highest = append(highest, cp)
		}
	}

	sortClassified(highest)
	sortClassified(flagged)

	// Fallback: surface the top consumers even when every process is NORMAL.
	if len(highest) == 0 && len(flagged) == 0 && len(classified) > 0 {
		sortClassified(classified)
		n := topUsageFallback
		if len(classified) < n {
			n = len(classified)
		}
		highest = append([]ClassifiedProcess(nil), classified[:n]...)
	}

	score := 100.0
	if snap.TotalSystemBytes > 0 {
		score = 100 - usedBytes/float64(snap.TotalSystemBytes)*100
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
	}

	return AnalysisResult{
		SnapshotTime:     snap.CapturedAt,
		TotalSystemBytes: snap.TotalSystemBytes,
		SampleCount:      len(snap.Samples),
		EfficiencyScore:  score,
		EfficiencyStatus: efficiencyStatus(score),
		HighestUsage:     highest,
		Flagged:          flagged,
	}
}

// sortClassified orders by descending percent, then descending resident
// bytes, then ascending pid, so the output is fully deterministic.
func sortClassified(list []ClassifiedProcess) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.PercentOfTotal != b.PercentOfTotal {
			return a.PercentOfTotal > b.PercentOfTotal
		}
		if a.Sample.ResidentBytes != b.Sample.ResidentBytes {
			return a.Sample.ResidentBytes > b.Sample.ResidentBytes
		}
		return a.Sample.PID < b.Sample.PID
	})
}

func efficiencyStatus(score float64) string {
	switch {
	case score > 60:
		return model.StatusGood
	case score > 30:
		return model.StatusFair
	default:
		return model.StatusPoor
	}
}
