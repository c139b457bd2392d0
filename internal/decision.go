package internal

import (
	"encoding/json"
	"fmt"
	"time"
)

// Action tags the variant of a Decision.
type Action string

const (
	ActionNoChange         Action = "no_change"
	ActionScaleUp          Action = "scale_up"
	ActionScaleDown        Action = "scale_down"
	ActionScaleDownDelayed Action = "scale_down_delayed"
	ActionScaleDownWaiting Action = "scale_down_waiting"
)

// Decision is the single outcome of one evaluation of the scaling state
// machine. Which fields are meaningful depends on the Action:
//
//   - NoChange: From.
//   - ScaleUp, ScaleDown: From, To.
//   - ScaleDownDelayed: From, Candidate, Remaining.
//   - ScaleDownWaiting: From, Candidate, Elapsed, Remaining.
type Decision struct {
	Action    Action
	From      int
	To        int
	Candidate int
	Elapsed   time.Duration
	Remaining time.Duration
	Comments  []string
}

func NoChange(current int) Decision {
	return Decision{Action: ActionNoChange, From: current, To: current}
}

func ScaleUp(from, to int) Decision {
	return Decision{Action: ActionScaleUp, From: from, To: to}
}

func ScaleDown(from, to int) Decision {
	return Decision{Action: ActionScaleDown, From: from, To: to}
}

func ScaleDownDelayed(from, candidate int, remaining time.Duration) Decision {
	return Decision{
		Action:    ActionScaleDownDelayed,
		From:      from,
		Candidate: candidate,
		Remaining: remaining,
	}
}

func ScaleDownWaiting(from, candidate int, elapsed, remaining time.Duration) Decision {
	return Decision{
		Action:    ActionScaleDownWaiting,
		From:      from,
		Candidate: candidate,
		Elapsed:   elapsed,
		Remaining: remaining,
	}
}

// RequiresWrite tells whether the decision changes the fleet's desired count.
func (d Decision) RequiresWrite() bool {
	return d.Action == ActionScaleUp || d.Action == ActionScaleDown
}

func (d Decision) withComment(format string, args ...any) Decision {
	d.Comments = append(d.Comments, fmt.Sprintf(format, args...))
	return d
}

func (d Decision) String() string {
	switch d.Action {
	case ActionScaleUp, ActionScaleDown:
		return fmt.Sprintf("%s %d -> %d", d.Action, d.From, d.To)
	case ActionScaleDownDelayed:
		return fmt.Sprintf("%s %d -> %d in %s", d.Action, d.From, d.Candidate, d.Remaining)
	case ActionScaleDownWaiting:
		return fmt.Sprintf("%s %d -> %d in %s (waited %s)", d.Action, d.From, d.Candidate, d.Remaining, d.Elapsed)
	default:
		return fmt.Sprintf("%s at %d", d.Action, d.From)
	}
}

type decisionJSON struct {
	Action           Action   `json:"action"`
	From             int      `json:"from"`
	To               *int     `json:"to,omitempty"`
	Candidate        *int     `json:"candidate,omitempty"`
	ElapsedSeconds   *float64 `json:"elapsed_seconds,omitempty"`
	RemainingSeconds *float64 `json:"remaining_seconds,omitempty"`
	Comments         []string `json:"comments,omitempty"`
}

// MarshalJSON only emits the fields belonging to the decision's variant.
func (d Decision) MarshalJSON() ([]byte, error) {
	out := decisionJSON{Action: d.Action, From: d.From, Comments: d.Comments}

	switch d.Action {
	case ActionScaleUp, ActionScaleDown:
		out.To = &d.To
	case ActionScaleDownDelayed:
		out.Candidate = &d.Candidate
		out.RemainingSeconds = seconds(d.Remaining)
	case ActionScaleDownWaiting:
		out.Candidate = &d.Candidate
		out.ElapsedSeconds = seconds(d.Elapsed)
		out.RemainingSeconds = seconds(d.Remaining)
	}

	return json.Marshal(out)
}

func seconds(d time.Duration) *float64 {
	s := d.Seconds()
	return &s
}
