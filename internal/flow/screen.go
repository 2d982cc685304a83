// Package flow models the screen sequencing and loading feedback the web
// client walks through around a bill submission.
package flow

// Screen 前端页面路由
type Screen string

const (
	ScreenHome            Screen = "/"
	ScreenForm            Screen = "/form"
	ScreenResults         Screen = "/results"
	ScreenAdvocates       Screen = "/advocates"
	ScreenCongratulations Screen = "/congratulations"
	ScreenWaitlist        Screen = "/waitlist"
	ScreenMarketplace     Screen = "/marketplace"
)

// Outcome 一次提交的最终状态
type Outcome int

const (
	OutcomeRejected Outcome = iota // validation failed, no network call made
	OutcomeFailed                  // transport error or malformed response
	OutcomeSucceeded               // analysis stored, move to results
)

// Next picks the screen that follows a settled submission. Rejected and
// failed submissions keep the user where they are so the form state and
// error message stay visible.
func Next(current Screen, outcome Outcome) Screen {
	if outcome == OutcomeSucceeded {
		return ScreenResults
	}
	return current
}

// ResultsFallback is where the results screen sends the user when the
// shared result slot is empty (direct navigation, page reload).
func ResultsFallback() Screen {
	return ScreenHome
}

// FollowUps lists the user-driven transitions offered from the results
// screen. Only one of these flows is linked per build; the sequencer
// exposes all of them and the page decides.
func FollowUps() []Screen {
	return []Screen{ScreenAdvocates, ScreenCongratulations, ScreenWaitlist}
}
