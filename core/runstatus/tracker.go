package runstatus

import (
	"context"

	"github.com/vanditkanudia/gridgap/core/events"
	"github.com/vanditkanudia/gridgap/internal/eventbus"
)

// StartTracker subscribes to the run event bus and keeps the store current.
// It returns immediately; updates stop when the context is cancelled or the
// bus closes.
func StartTracker(ctx context.Context, bus eventbus.EventBus, store Store) {
	if bus == nil || store == nil {
		return
	}
	ch := bus.Subscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				bus.Unsubscribe(ch)
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				apply(store, ev)
			}
		}
	}()
}

func apply(store Store, ev eventbus.Event) {
	switch e := ev.(type) {
	case events.RunStarted:
		for _, g := range e.Groups {
			store.Set(Status{RunID: e.RunID, Group: g, State: StatePending})
		}
	case events.GroupStarted:
		store.Set(Status{
			RunID:     e.RunID,
			Group:     e.Group,
			State:     StateRunning,
			Members:   e.Members,
			StartedAt: e.Time,
		})
	case events.GroupCompleted:
		st, _ := store.Get(e.Group)
		st.RunID = e.RunID
		st.Group = e.Group
		st.State = StateCompleted
		st.FinishedAt = e.Time
		st.ShortfallMW = e.Gap.DispatchableShortfallMW
		st.UnmetMWh = e.Gap.UnmetMWh
		store.Set(st)
	case events.GroupFailed:
		st, _ := store.Get(e.Group)
		st.RunID = e.RunID
		st.Group = e.Group
		st.State = StateFailed
		st.FinishedAt = e.Time
		st.ErrorKind = e.Kind
		if e.Err != nil {
			st.Error = e.Err.Error()
		}
		store.Set(st)
	}
}
