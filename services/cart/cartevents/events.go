package cartevents

const (
	TopicName           = "cart"
	itemAddedName       = TopicName + ".item.added"
	itemRemovedName     = TopicName + ".item.removed"
	quantityChangedName = TopicName + ".quantity.changed"
	clearedName         = TopicName + ".cleared"
)

type ItemAdded struct {
	CartKey  string
	Name     string
	Price    string
	Quantity int
}

func (e ItemAdded) GetEventTypeName() string {
	return itemAddedName
}

func (e ItemAdded) GetAggregateName() string {
	return e.CartKey
}

type ItemRemoved struct {
	CartKey string
	Name    string
	Price   string
}

func (e ItemRemoved) GetEventTypeName() string {
	return itemRemovedName
}

func (e ItemRemoved) GetAggregateName() string {
	return e.CartKey
}

type QuantityChanged struct {
	CartKey  string
	Name     string
	Price    string
	Quantity int
}

func (e QuantityChanged) GetEventTypeName() string {
	return quantityChangedName
}

func (e QuantityChanged) GetAggregateName() string {
	return e.CartKey
}

type Cleared struct {
	CartKey string
}

func (e Cleared) GetEventTypeName() string {
	return clearedName
}

func (e Cleared) GetAggregateName() string {
	return e.CartKey
}
