package mypubsub

import "context"

type PubSub interface {
	CreateTopic(c context.Context, topic string) error
	Publish(c context.Context, topic string, data string) error
}

var New func(c context.Context) (PubSub, func(), error)
