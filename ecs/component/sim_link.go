package component

// SimLink ties an ECS entity to the simulation entity it mirrors.
type SimLink struct {
	ID uint64
}

var SimLinkComponent = NewComponent[SimLink]()
