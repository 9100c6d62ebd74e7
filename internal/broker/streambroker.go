// Package broker hands a producer's channel to the first consumer that asks
// for it, keyed by ID. It connects the goroutine generating a growth plan to
// the SSE handler streaming it to the browser.
package broker

type publication[TID comparable, TPayload any] struct {
	id      TID
	channel chan TPayload
}

type subscription[TID comparable, TPayload any] struct {
	id      TID
	channel chan chan TPayload
}

// StreamBroker passes a channel with ID from a producer to the first
// consumer. Later consumers for the same ID block until the producer is done,
// at which point they can fall back to the persisted result. That covers a
// browser reconnecting mid-stream: the reconnect waits out the generation and
// then loads the stored plan instead of receiving a truncated stream.
type StreamBroker[TID comparable, TPayload any] struct {
	publish     chan publication[TID, TPayload]
	unpublish   chan TID
	subscribe   chan subscription[TID, TPayload]
	doneChannel chan struct{}
}

func NewStreamBroker[TID comparable, TPayload any]() *StreamBroker[TID, TPayload] {
	return &StreamBroker[TID, TPayload]{
		publish:     make(chan publication[TID, TPayload]),
		unpublish:   make(chan TID),
		subscribe:   make(chan subscription[TID, TPayload]),
		doneChannel: make(chan struct{}),
	}
}

// Run owns the broker state and serves publish, unpublish, and subscribe
// requests until Stop is called. It blocks, so call it in a goroutine.
func (b *StreamBroker[TID, TPayload]) Run() {
	producers := map[TID]chan TPayload{}
	waiters := map[TID][]chan chan TPayload{}
	for {
		select {
		case <-b.doneChannel:
			return

		case sub := <-b.subscribe:
			producer, published := producers[sub.id]
			if !published {
				// No producer: closing signals the consumer to fall back to
				// persisted data.
				close(sub.channel)
				break
			}
			if len(waiters[sub.id]) == 0 {
				waiters[sub.id] = []chan chan TPayload{sub.channel}
				sub.channel <- producer
			} else {
				waiters[sub.id] = append(waiters[sub.id], sub.channel)
			}

		case pub := <-b.publish:
			producers[pub.id] = pub.channel

		case id := <-b.unpublish:
			if list := waiters[id]; len(list) > 1 {
				// The head already holds the producer channel; the rest were
				// waiting and get released empty-handed.
				for _, waiter := range list[1:] {
					close(waiter)
				}
			}
			delete(producers, id)
			delete(waiters, id)
		}
	}
}

// Stop terminates the Run loop.
func (b *StreamBroker[TID, TPayload]) Stop() {
	close(b.doneChannel)
}

// Publish registers the producer's channel under ID. The producer should use
// an unbuffered channel so that it blocks until a consumer attaches, and give
// up with a timeout if none ever does.
func (b *StreamBroker[TID, TPayload]) Publish(id TID, channel chan TPayload) {
	b.publish <- publication[TID, TPayload]{id: id, channel: channel}
}

// Unpublish removes the producer for ID and releases any waiting consumers.
// Call it when the producer is finished and the result has been persisted.
func (b *StreamBroker[TID, TPayload]) Unpublish(id TID) {
	b.unpublish <- id
}

// Subscribe asks for the producer channel registered under ID. The returned
// channel yields the producer's channel for the first subscriber. If nothing
// is published under ID, or a subscriber is already attached and the producer
// finishes, the returned channel is closed without a value.
func (b *StreamBroker[TID, TPayload]) Subscribe(id TID) chan chan TPayload {
	channel := make(chan chan TPayload, 1)
	b.subscribe <- subscription[TID, TPayload]{id: id, channel: channel}
	return channel
}
