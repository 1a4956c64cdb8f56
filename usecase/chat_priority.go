package usecase

import (
	"sort"

	"github.com/ikunnect/agentdesk/domain/entities"
)

// priorityWeights orders conversations in the agent queue. Unknown priorities
// weigh zero and sort below every known level.
var priorityWeights = map[entities.ChatPriority]int{
	entities.ChatPriorityUrgent: 4,
	entities.ChatPriorityHigh:   3,
	entities.ChatPriorityMedium: 2,
	entities.ChatPriorityLow:    1,
}

var priorityStyles = map[entities.ChatPriority]entities.PriorityStyle{
	entities.ChatPriorityUrgent: {Color: "#dc2626", BackgroundColor: "#fef2f2", Label: "Urgent"},
	entities.ChatPriorityHigh:   {Color: "#ea580c", BackgroundColor: "#fff7ed", Label: "High"},
	entities.ChatPriorityMedium: {Color: "#ca8a04", BackgroundColor: "#fefce8", Label: "Medium"},
	entities.ChatPriorityLow:    {Color: "#16a34a", BackgroundColor: "#f0fdf4", Label: "Low"},
}

// neutralStyle is returned for unrecognized priority values.
var neutralStyle = entities.PriorityStyle{Color: "#6b7280", BackgroundColor: "#f3f4f6", Label: "None"}

// RankConversations returns a new slice ordered by priority weight descending
// and, within equal priority, by timestamp ascending (oldest waiting first).
// The sort is stable, so equal entries keep their input order. The input is
// never modified.
func RankConversations(conversations []entities.ConversationSummary) []entities.ConversationSummary {
	ranked := make([]entities.ConversationSummary, len(conversations))
	copy(ranked, conversations)

	sort.SliceStable(ranked, func(i, j int) bool {
		wi := priorityWeights[ranked[i].Priority]
		wj := priorityWeights[ranked[j].Priority]
		if wi != wj {
			return wi > wj
		}
		return ranked[i].Timestamp.Before(ranked[j].Timestamp)
	})
	return ranked
}

// PriorityWeight returns the numeric weight for a priority; zero for unknown
// values.
func PriorityWeight(priority entities.ChatPriority) int {
	return priorityWeights[priority]
}

// StyleFor returns the display style for a priority. Unknown values get a
// neutral style rather than an error.
func StyleFor(priority entities.ChatPriority) entities.PriorityStyle {
	if style, ok := priorityStyles[priority]; ok {
		return style
	}
	return neutralStyle
}
