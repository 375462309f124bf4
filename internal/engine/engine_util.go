package engine

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

// ScoreDelta sums the score changes carried by events.
func ScoreDelta(events []Event) int {
	total := 0
	for _, event := range events {
		total += event.Delta
	}
	return total
}
