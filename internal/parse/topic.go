package parse

import (
	"fmt"
	"regexp"
	"strings"
)

// machineIDRe restricts machine identifiers to the naming scheme the floor
// gateways use for topic prefixes.
var machineIDRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// MachineTopic extracts the machine identifier from a gateway data topic of
// the form "<machine_id>/data".
func MachineTopic(topic string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 2 || parts[1] != "data" {
		return "", fmt.Errorf("unexpected topic shape: %q", topic)
	}
	id := parts[0]
	if !machineIDRe.MatchString(id) {
		return "", fmt.Errorf("invalid machine id in topic: %q", topic)
	}
	return id, nil
}
