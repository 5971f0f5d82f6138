package entities

// Entity - общее для всех справочников, которые панель показывает списком.
type Entity interface {
	GetID() uint64
	DisplayName() string
}
