// Package loop drives a tick function once per repaint.
//
// [Driver] is a two-state machine (stopped, running) that keeps a
// self-perpetuating chain of frame requests alive on a [dynamo.Scheduler].
// [FrameQueue] is the scheduler every host shares: the host calls
// [FrameQueue.Dispatch] once per repaint from its own frame loop.
//
//	q := loop.NewFrameQueue()
//	d, _ := loop.NewDriver(q, s.Tick)
//	d.Start()
//	for !windowClosed() {
//		q.Dispatch()
//	}
package loop
