package affiliate

import "time"

type Click struct {
	UID        string
	ProductUID string
	Target     string
	ClickedAt  time.Time
}

const (
	TopicName   = "affiliate"
	clickedName = TopicName + ".clicked"
)

type Clicked struct {
	ClickUID   string
	ProductUID string
	Target     string
}

func (e Clicked) GetEventTypeName() string {
	return clickedName
}

func (e Clicked) GetAggregateName() string {
	return e.ProductUID
}
