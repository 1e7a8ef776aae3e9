package messaging

type ChangeTopic string

const (
	TrackingTopic ChangeTopic = "tracking"
)
