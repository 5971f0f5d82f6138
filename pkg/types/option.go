package types

// Option — пункт выпадающего списка.
type Option struct {
	Value string
	Label string
}
