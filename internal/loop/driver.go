package loop

import "github.com/san-kum/constellation/internal/dynamo"

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	default:
		return "stopped"
	}
}

// Driver runs tick once per frame while running. Every Start opens a new
// generation; a frame from an older generation never ticks or reschedules.
type Driver struct {
	sched   dynamo.Scheduler
	tick    func()
	state   State
	gen     uint64
	pending dynamo.FrameID
	frames  int
}

func NewDriver(sched dynamo.Scheduler, tick func()) (*Driver, error) {
	if sched == nil {
		return nil, dynamo.ErrNoScheduler
	}
	return &Driver{sched: sched, tick: tick}, nil
}

func (d *Driver) State() State { return d.state }

// Frames counts ticks run since construction.
func (d *Driver) Frames() int { return d.frames }

func (d *Driver) Start() {
	if d.state == Running {
		return
	}
	d.state = Running
	d.gen++
	d.schedule(d.gen)
}

func (d *Driver) Stop() {
	if d.state == Stopped {
		return
	}
	d.state = Stopped
	d.gen++
	if d.pending != 0 {
		d.sched.CancelFrame(d.pending)
		d.pending = 0
	}
}

func (d *Driver) schedule(gen uint64) {
	d.pending = d.sched.RequestFrame(func() { d.frame(gen) })
}

func (d *Driver) frame(gen uint64) {
	if d.state != Running || gen != d.gen {
		return
	}
	d.pending = 0
	d.tick()
	d.frames++

	// tick may have stopped the driver
	if d.state != Running || gen != d.gen {
		return
	}
	d.schedule(gen)
}
