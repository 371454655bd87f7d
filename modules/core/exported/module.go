package exported

// ModuleName is the name of the simulated IBC module. It is also the codespace of the
// module wide errors and the prefix of the module logger.
const ModuleName = "ibc"

// SudoMsg is a privileged message handled by the IBC module. Sudo messages bypass any
// signer checks: only the chain itself, or a relayer acting on its behalf, submits them.
type SudoMsg interface {
	// Type returns a short human readable name used in logs.
	Type() string
	ValidateBasic() error
}

// QueryRequest is a read-only request answered by the IBC module.
type QueryRequest interface {
	ValidateBasic() error
}

// RelayerAddress is the relayer address handed to application packet callbacks. Packets
// are delivered through privileged messages which carry no signer.
const RelayerAddress = "relayer"
