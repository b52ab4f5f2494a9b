package notify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func trayRegistration() Registration {
	return Registration{
		Key:     "preferences.TrayIconColor",
		Default: "default",
		NodeID:  "preferences.trayiconcolor",
	}
}

func TestNotifier_NotifyRegister(t *testing.T) {
	n := New()
	defer n.Close()

	var got []Registration
	n.Subscribe(func(r Registration) { got = append(got, r) })

	n.NotifyRegister(trayRegistration())

	assert.Equal(t, []Registration{trayRegistration()}, got)
}

func TestNotifier_SubscriptionOrder(t *testing.T) {
	n := New()
	defer n.Close()

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		n.Subscribe(func(Registration) { order = append(order, name) })
	}

	n.NotifyRegister(trayRegistration())
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := New()
	defer n.Close()

	var calls int
	sub := n.Subscribe(func(Registration) { calls++ })

	n.NotifyRegister(trayRegistration())
	sub.Unsubscribe()
	sub.Unsubscribe()
	n.NotifyRegister(trayRegistration())

	assert.Equal(t, 1, calls)
}

func TestNotifier_ObserverMayUnsubscribeDuringDelivery(t *testing.T) {
	n := New()
	defer n.Close()

	var sub *Subscription
	var calls int
	sub = n.Subscribe(func(Registration) {
		calls++
		sub.Unsubscribe()
	})

	n.NotifyRegister(trayRegistration())
	n.NotifyRegister(trayRegistration())
	assert.Equal(t, 1, calls)
}

func TestNotifier_NothingDeliveredAfterClose(t *testing.T) {
	n := New()

	var calls int
	n.Subscribe(func(Registration) { calls++ })

	n.Close()
	n.Close()
	n.NotifyRegister(trayRegistration())

	assert.Zero(t, calls)
}

func TestNotifier_CloseDuringConcurrentNotify(t *testing.T) {
	n := New()

	var mu sync.Mutex
	var delivered int
	n.Subscribe(func(Registration) {
		mu.Lock()
		delivered++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				n.NotifyRegister(trayRegistration())
			}
		}()
	}
	n.Close()
	wg.Wait()

	mu.Lock()
	after := delivered
	mu.Unlock()

	n.NotifyRegister(trayRegistration())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, after, delivered)
	assert.LessOrEqual(t, delivered, 800)
}
