package advice

import "strings"

const (
	firstActivityTip = "Log your first activity to get a personalized tip!"
	defaultTip       = "Review your daily habits! Small changes like turning off lights can make a big difference."
	fallbackReply    = "I'm not sure how to answer that. Try asking about reducing waste, saving energy, or sustainable travel."
)

// tips maps an activity type to a reduction tip
var tips = map[string]string{
	"car_petrol":   "Try carpooling or using public transport once a week to reduce your travel emissions.",
	"flight_short": "For your next short trip, consider traveling by train or bus instead of flying.",
	"electricity":  "Unplug electronics when not in use and switch to energy-efficient LED bulbs.",
	"beef":         "Try swapping beef for chicken or plant-based proteins for a couple of meals this week.",
	"chicken":      "Opt for a meat-free Monday to reduce your dietary carbon footprint.",
}

type chatRule struct {
	keywords []string
	reply    string
}

// chatRules are checked in order; the first rule with a matching keyword wins
var chatRules = []chatRule{
	{
		keywords: []string{"waste"},
		reply:    "To reduce waste, focus on the 3 R's: Reduce, Reuse, and Recycle. Avoid single-use plastics and compost food scraps if you can.",
	},
	{
		keywords: []string{"energy"},
		reply:    "Saving energy at home is easy! Lower your thermostat in the winter, use smart power strips, and ensure your home is well-insulated.",
	},
	{
		keywords: []string{"travel"},
		reply:    "For sustainable travel, choose direct flights when possible, pack light, and use public transportation at your destination.",
	},
	{
		keywords: []string{"hello", "hi"},
		reply:    "Hello! How can I help you be more sustainable today?",
	},
}

// TipFor returns the tip for an activity type, or the general tip for unknown types
func TipFor(activityType string) string {
	if tip, ok := tips[activityType]; ok {
		return tip
	}
	return defaultTip
}

// Reply answers a chat message by case-insensitive keyword match
func Reply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range chatRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reply
			}
		}
	}
	return fallbackReply
}
