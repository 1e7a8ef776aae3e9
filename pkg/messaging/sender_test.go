package messaging

import "testing"

func TestTopicName(t *testing.T) {
	if name := getName("property", TrackingTopic); name != "property_tracking" {
		t.Errorf("Expected property_tracking, got %s", name)
	}
}
