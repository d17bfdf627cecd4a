package potledger

// Participant provides the ledger access to a seat's stack and fold state
type Participant interface {
	ID() int64
	AdjustStack(amount int)
	IsFolded() bool
}
