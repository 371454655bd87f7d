package types

const (
	// SubModuleName defines the IBC channels name
	SubModuleName = "channel"
)
