package metrics

// Labels attached to the go-metrics counters of packet and transfer handling.
const (
	LabelSourcePort         = "source_port"
	LabelSourceChannel      = "source_channel"
	LabelDestinationPort    = "destination_port"
	LabelDestinationChannel = "destination_channel"
	LabelDenom              = "denom"
	LabelSource             = "source"
)
