package bank

// bank module event types
const (
	EventTypeTransfer = "transfer"
	EventTypeCoinMint = "coinbase"
	EventTypeCoinBurn = "burn"

	AttributeKeyRecipient = "recipient"
	AttributeKeySender    = "sender"
	AttributeKeyMinter    = "minter"
	AttributeKeyBurner    = "burner"
)
