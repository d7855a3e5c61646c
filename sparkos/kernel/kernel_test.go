package kernel

import "testing"

type recvTask struct {
	ep   Capability
	got  []string
	runs int
}

func (t *recvTask) Step(ctx *Context) {
	t.runs++
	for {
		msg, ok := ctx.Recv(t.ep)
		if !ok {
			return
		}
		t.got = append(t.got, string(msg.Payload()))
	}
}

type tickTask struct {
	runs int
}

func (t *tickTask) Step(ctx *Context) {
	t.runs++
	ctx.BlockOnTick()
}

type sendTask struct {
	to   Capability
	msgs []string
}

func (t *sendTask) Step(ctx *Context) {
	if len(t.msgs) == 0 {
		ctx.BlockOnTick()
		return
	}
	if ctx.SendTo(t.to, 1, []byte(t.msgs[0])) {
		t.msgs = t.msgs[1:]
	}
}

func TestMessagePayloadClampsLen(t *testing.T) {
	var msg Message
	msg.Len = MaxMessageBytes + 10
	if got := len(msg.Payload()); got != MaxMessageBytes {
		t.Fatalf("expected payload length %d, got %d", MaxMessageBytes, got)
	}
}

func TestRecvParksUntilSend(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	rt := &recvTask{ep: ep.Restrict(RightRecv)}
	if _, ok := k.AddTask(rt); !ok {
		t.Fatal("AddTask failed")
	}

	if n := k.RunUntilIdle(10); n != 1 {
		t.Fatalf("expected 1 step before parking, got %d", n)
	}
	if k.Step() {
		t.Fatal("parked task should not run")
	}

	ctx := &Context{k: k}
	if res := ctx.SendToResult(ep.Restrict(RightSend), 1, []byte("hi")); res != SendOK {
		t.Fatalf("send: %s", res)
	}
	k.RunUntilIdle(10)

	if rt.runs != 2 {
		t.Fatalf("expected 2 runs, got %d", rt.runs)
	}
	if len(rt.got) != 1 || rt.got[0] != "hi" {
		t.Fatalf("got %q", rt.got)
	}
}

func TestBlockOnTickWakesOnTick(t *testing.T) {
	k := New()
	tt := &tickTask{}
	k.AddTask(tt)

	k.RunUntilIdle(10)
	k.RunUntilIdle(10)
	if tt.runs != 1 {
		t.Fatalf("expected 1 run before tick, got %d", tt.runs)
	}

	k.Tick()
	k.RunUntilIdle(10)
	if tt.runs != 2 {
		t.Fatalf("expected 2 runs after tick, got %d", tt.runs)
	}
	if k.NowTick() != 1 {
		t.Fatalf("NowTick=%d", k.NowTick())
	}
}

func TestTasksInterleave(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	rt := &recvTask{ep: ep.Restrict(RightRecv)}
	st := &sendTask{to: ep.Restrict(RightSend), msgs: []string{"a", "b", "c"}}
	k.AddTask(rt)
	k.AddTask(st)

	k.RunUntilIdle(100)

	if len(rt.got) != 3 || rt.got[0] != "a" || rt.got[2] != "c" {
		t.Fatalf("got %q", rt.got)
	}
}

func TestSendChecksRights(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k}

	if res := ctx.SendToResult(ep.Restrict(RightRecv), 1, nil); res != SendErrToNoSendRight {
		t.Fatalf("expected SendErrToNoSendRight, got %s", res)
	}
	if res := ctx.SendToResult(Capability{}, 1, nil); res != SendErrInvalidToCap {
		t.Fatalf("expected SendErrInvalidToCap, got %s", res)
	}
	if res := ctx.SendResult(ep.Restrict(RightRecv), ep, 1, nil); res != SendErrFromNoSendRight {
		t.Fatalf("expected SendErrFromNoSendRight, got %s", res)
	}
	if res := ctx.SendToResult(ep, 1, make([]byte, MaxMessageBytes+1)); res != SendErrPayloadTooLarge {
		t.Fatalf("expected SendErrPayloadTooLarge, got %s", res)
	}
	if _, ok := ctx.TryRecv(ep.Restrict(RightSend)); ok {
		t.Fatal("TryRecv without recv right succeeded")
	}
}

func TestSendQueueFull(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k}

	for i := 0; i < mailboxSlots; i++ {
		if res := ctx.SendToResult(ep, 1, []byte("x")); res != SendOK {
			t.Fatalf("expected SendOK filling queue, got %s", res)
		}
	}
	if res := ctx.SendToResult(ep, 1, []byte("y")); res != SendErrQueueFull {
		t.Fatalf("expected SendErrQueueFull, got %s", res)
	}
	if _, ok := ctx.TryRecv(ep); !ok {
		t.Fatal("expected a queued message")
	}
	if res := ctx.SendToResult(ep, 1, []byte("y")); res != SendOK {
		t.Fatalf("expected SendOK after drain, got %s", res)
	}
}

func TestRestrict(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend)
	if ep.Restrict(RightRecv).Valid() {
		t.Fatal("restricting to a missing right must yield an invalid capability")
	}
	if !ep.Restrict(RightSend | RightRecv).Valid() {
		t.Fatal("expected valid capability")
	}
	if (Capability{}).Restrict(RightSend).Valid() {
		t.Fatal("zero capability must stay invalid")
	}
}

type panicTask struct{}

func (panicTask) Step(*Context) { panic("boom") }

func TestPanicHaltsKernel(t *testing.T) {
	var got []PanicInfo
	SetPanicHandler(func(info PanicInfo) { got = append(got, info) })
	defer SetPanicHandler(nil)

	k := New()
	tt := &tickTask{}
	k.AddTask(tt)
	id, _ := k.AddTask(panicTask{})

	k.RunUntilIdle(10)

	if !k.Halted() || !InPanicMode() {
		t.Fatal("expected halted kernel in panic mode")
	}
	if len(got) != 1 || got[0].TaskID != id || got[0].Value != "boom" || len(got[0].Stack) == 0 {
		t.Fatalf("unexpected panic info: %+v", got)
	}
	k.Tick()
	if k.Step() {
		t.Fatal("halted kernel must not schedule")
	}
}
