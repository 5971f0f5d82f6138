package events

// ResourceChangedName — имя события успешного изменения записи.
const ResourceChangedName = "resource.changed"

// ResourceChanged публикуется после успешного изменения данных через панель.
type ResourceChanged struct {
	Resource string
	Action   string
	ObjectID *uint64
	ActorID  uint64
}

func (e ResourceChanged) Name() string {
	return ResourceChangedName
}
