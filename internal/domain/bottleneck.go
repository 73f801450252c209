package domain

// BottleneckReason classifies why a slot could not be filled.
type BottleneckReason string

const (
	// ReasonNoCapability: nobody in the universe holds the required capability.
	ReasonNoCapability BottleneckReason = "NO_CAPABILITY"
	// ReasonAllBlocked: capable employees exist but none has calendar
	// availability for the slot's window.
	ReasonAllBlocked BottleneckReason = "ALL_BLOCKED"
	// ReasonWorkloadExhausted: capable, available employees exist but were
	// consumed by earlier slots in the same pass.
	ReasonWorkloadExhausted BottleneckReason = "WORKLOAD_EXHAUSTED"
)

// BottleneckSeverity grades the operational impact of a shortfall.
type BottleneckSeverity string

const (
	SeverityCritical BottleneckSeverity = "CRITICAL"
	SeverityHigh     BottleneckSeverity = "HIGH"
)

// SeverityForShortfall maps a shortfall count to its severity grade.
func SeverityForShortfall(shortfall int) BottleneckSeverity {
	if shortfall >= 2 {
		return SeverityCritical
	}
	return SeverityHigh
}

// Bottleneck records one slot whose required headcount could not be met,
// together with the classified root cause and a remediation suggestion.
type Bottleneck struct {
	Slot       SlotKey
	Required   int
	Filled     int
	Shortfall  int
	Severity   BottleneckSeverity
	Reason     BottleneckReason
	Suggestion string
}
