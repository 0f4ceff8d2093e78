package dashboard

import (
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Subscription is the change-feed listener. Any notification on the
// configured channel triggers a full Refresh of the state container; no
// incremental patching is attempted, matching the re-fetch-on-any-change
// policy of the dashboard.
type Subscription struct {
	listener *pq.Listener
	state    *State
	logger   *zap.Logger
	done     chan struct{}
}

// Subscribe opens a listener on channel and starts the pump goroutine.
// Close releases it.
func Subscribe(dsn, channel string, state *State, logger *zap.Logger) (*Subscription, error) {
	listener := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("change feed listener event", zap.Int("event", int(ev)), zap.Error(err))
		}
	})
	if err := listener.Listen(channel); err != nil {
		listener.Close()
		return nil, err
	}

	sub := &Subscription{
		listener: listener,
		state:    state,
		logger:   logger,
		done:     make(chan struct{}),
	}
	go sub.pump()

	logger.Info("subscribed to change feed", zap.String("channel", channel))
	return sub, nil
}

func (s *Subscription) pump() {
	for {
		select {
		case <-s.done:
			return
		case n := <-s.listener.Notify:
			// A nil notification signals a reconnect; refresh either way,
			// changes may have been missed while disconnected.
			if n != nil {
				s.logger.Debug("change notification", zap.String("payload", n.Extra))
			}
			s.state.Refresh()
		case <-time.After(90 * time.Second):
			if err := s.listener.Ping(); err != nil {
				s.logger.Warn("change feed ping failed", zap.Error(err))
			}
		}
	}
}

// Close stops the pump and releases the listener connection.
func (s *Subscription) Close() error {
	close(s.done)
	return s.listener.Close()
}
