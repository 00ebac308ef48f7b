package media

import "github.com/kasuboski/mediaindex/pkg/machine"

// Lifecycle is the state of a child record relative to the previous scan
type Lifecycle string

const (
	LifecycleNew       Lifecycle = "new"
	LifecycleUnchanged Lifecycle = "unchanged"
	LifecycleDeleted   Lifecycle = "deleted"
)

// Machine returns the allowed lifecycle transitions starting from l. Records loaded from storage
// start a rescan as deleted and are proven alive; fresh records are new.
func (l Lifecycle) Machine() *machine.StateMachine[Lifecycle] {
	return machine.New(l,
		machine.From(LifecycleNew).To(LifecycleDeleted),
		machine.From(LifecycleUnchanged).To(LifecycleDeleted),
		machine.From(LifecycleDeleted).To(LifecycleUnchanged),
	)
}
