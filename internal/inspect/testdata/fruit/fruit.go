package fruit

// Fruit is the loader fixture.
type Fruit uint8

const (
	Apple  Fruit = iota // crunchy
	Banana              // yellow
	Orange
)
