package potledger

// Pot is a main or side pot. ContributorIDs are the seats that were still in
// the hand when the pot was built; showdown eligibility is this set minus any
// seat that folded later.
type Pot struct {
	Amount         int     `json:"amount"`
	ContributorIDs []int64 `json:"contributorIds"`
}

// HasContributor returns true if the seat contributed to this pot
func (p *Pot) HasContributor(id int64) bool {
	for _, c := range p.ContributorIDs {
		if c == id {
			return true
		}
	}

	return false
}

// Pots is an ordered collection of pots, main pot first
type Pots []*Pot

// Total returns the combined total of all pots
func (p Pots) Total() int {
	total := 0
	for _, pot := range p {
		total += pot.Amount
	}

	return total
}
