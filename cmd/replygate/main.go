// Replygate is a reply-governance daemon for automated social-feed agents.
//
// It sits between a feed adapter and a model provider and decides, for every
// incoming event, whether the agent may reply right now:
//   - Budget governance with hard daily spend/call caps and a soft cap
//   - Daily pacing that spreads the call quota across the day, with burst
//     pools for urgent tiers
//   - Event deduplication, keyword classification, and hourly P2 ceilings
//   - Retry with capped exponential backoff around the model call
//
// Usage:
//
//	# Dry run with the mock adapter and default configuration
//	replygate run
//
//	# Live run against a config file
//	replygate run --config /etc/replygate/config.yaml --live
//
//	# Process one poll cycle and exit
//	replygate run --once
//
//	# Validate a configuration file
//	replygate validate --config config.yaml
//
//	# Inspect the persisted counters
//	replygate status
package main

func main() {
	Execute()
}
