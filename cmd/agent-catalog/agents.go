package main

type sampleAgent struct {
	key          string
	instructions string
	description  string
	properties   map[string]any
}

var sampleAgents = []sampleAgent{
	{
		key:          "weather-agent",
		instructions: "You are a helpful weather assistant that provides weather information.",
		description:  "An agent that helps users with weather-related queries.",
		properties: map[string]any{
			"icon":       "https://example.com/icons/weather.png",
			"beta":       false,
			"visibility": "Visible",
		},
	},
	{
		key:          "travel-agent",
		instructions: "You are a helpful travel assistant that helps plan trips.",
		description:  "An agent that helps users plan their travel and vacations.",
		properties: map[string]any{
			"icon":       "https://example.com/icons/travel.png",
			"beta":       true,
			"visibility": "Visible",
		},
	},
	{
		key:          "experimental-agent",
		instructions: "You are an experimental assistant for testing new features.",
		description:  "An experimental agent for internal testing only.",
		properties: map[string]any{
			"icon":       "https://example.com/icons/experimental.png",
			"beta":       true,
			"visibility": "Unlisted",
		},
	},
}
