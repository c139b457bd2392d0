package internal

import "fmt"

const delayTimerKeyPrefix = "queuescalr:scale_down:"

// Target identifies the fleet whose replica count is being controlled. What
// Cluster means depends on the platform: an ECS cluster, an AWS region, an
// Azure resource group or a GCP project location.
type Target struct {
	Cluster string `json:"cluster"`
	Service string `json:"service"`
}

// ID is the stable identity of the target, used to address its delay timer.
func (t Target) ID() string {
	return fmt.Sprintf("%s/%s", t.Cluster, t.Service)
}

func delayTimerKey(targetID string) string {
	return delayTimerKeyPrefix + targetID
}
