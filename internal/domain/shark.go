package domain

// SharkStock is the cash & carry quantity of the plush sharks in one store.
type SharkStock struct {
	Store   string
	Beeghaj int
	Smolhaj int
	Whale   int
}
