package model

import "time"

// Bucket is the classification outcome for a sampled process.
type Bucket int

const (
	BucketNormal Bucket = iota
	BucketHighest
	BucketFlagged
)

func (b Bucket) String() string {
	switch b {
	case BucketHighest:
		return "highest"
	case BucketFlagged:
		return "flagged"
	default:
		return "normal"
	}
}

// ProcessSample is one process observed in a snapshot. Immutable once built.
// ExePath and Owner stay empty when the OS denies access to them; StartedAt
// is zero when the start time is unknown.
type ProcessSample struct {
	PID           int32
	Name          string
	ExePath       string
	ResidentBytes uint64
	Owner         string
	StartedAt     time.Time
}

// Snapshot is a point-in-time capture of the process table. A new Snapshot
// fully replaces the previous one; it is never mutated after creation.
type Snapshot struct {
	CapturedAt       time.Time
	TotalSystemBytes uint64
	Samples          []ProcessSample
}

// ThresholdConfig holds the classification thresholds. A process qualifies
// for a bucket when EITHER its percent of total OR its absolute byte count
// crosses that bucket's threshold.
type ThresholdConfig struct {
	HighestUsagePercent  float64
	HighestUsageMinBytes uint64
	FlaggedPercent       float64
	FlaggedMinBytes      uint64
}

// ClassifiedProcess is a ProcessSample with its derived classification.
type ClassifiedProcess struct {
	Sample         ProcessSample
	PercentOfTotal float64
	Bucket         Bucket
	Recommendation string
}

// Efficiency status bands shown next to the score.
const (
	StatusGood = "Good"
	StatusFair = "Fair"
	StatusPoor = "Poor"
)

// AnalysisResult is the view model produced by one refresh cycle. It is
// immutable and superseded wholesale by the next cycle's result.
type AnalysisResult struct {
	SnapshotTime     time.Time
	TotalSystemBytes uint64
	SampleCount      int
	EfficiencyScore  float64
	EfficiencyStatus string
	HighestUsage     []ClassifiedProcess
	Flagged          []ClassifiedProcess
}
