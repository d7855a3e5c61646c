package kernel

const (
	maxTasks     = 32
	maxEndpoints = 32
	mailboxSlots = 16
)

type TaskID uint8

// Rights define which operations are allowed for a capability.
type Rights uint8

const (
	RightSend Rights = 1 << iota
	RightRecv
)

// Endpoint identifies an IPC destination.
type Endpoint uint8

// Capability grants access to an IPC endpoint.
//
// It is opaque by construction (no exported fields).
type Capability struct {
	ep     Endpoint
	rights Rights
}

func (c Capability) valid() bool { return c.rights != 0 }

func (c Capability) Valid() bool { return c.valid() }

func (c Capability) canSend() bool { return c.rights&RightSend != 0 }
func (c Capability) canRecv() bool { return c.rights&RightRecv != 0 }

// Restrict returns a capability with a reduced set of rights.
func (c Capability) Restrict(rights Rights) Capability {
	if !c.valid() {
		return Capability{}
	}
	r := c.rights & rights
	if r == 0 {
		return Capability{}
	}
	return Capability{ep: c.ep, rights: r}
}

// MaxMessageBytes is the maximum payload size for IPC messages.
const MaxMessageBytes = 128

// Message is a fixed-size IPC envelope.
type Message struct {
	From Endpoint
	To   Endpoint
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
}

// Payload returns the valid prefix of Data.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > MaxMessageBytes {
		n = MaxMessageBytes
	}
	return m.Data[:n]
}

// SendResult describes the outcome of a send attempt.
type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrInvalidFromCap
	SendErrInvalidToCap
	SendErrFromNoSendRight
	SendErrToNoSendRight
	SendErrNoEndpoint
	SendErrPayloadTooLarge
	SendErrQueueFull
)

func (r SendResult) String() string {
	switch r {
	case SendOK:
		return "ok"
	case SendErrInvalidFromCap:
		return "invalid from capability"
	case SendErrInvalidToCap:
		return "invalid to capability"
	case SendErrFromNoSendRight:
		return "from capability has no send right"
	case SendErrToNoSendRight:
		return "to capability has no send right"
	case SendErrNoEndpoint:
		return "no such endpoint"
	case SendErrPayloadTooLarge:
		return "payload too large"
	case SendErrQueueFull:
		return "queue full"
	default:
		return "unknown"
	}
}

// Task is a cooperative unit of execution. Step must return promptly; a task
// that has nothing to do blocks through its Context.
type Task interface {
	Step(*Context)
}

type endpointState struct {
	q        mailbox
	waitMask uint32
}

type taskState struct {
	task     Task
	runnable bool
}

// Kernel is a minimal cooperative scheduler plus IPC router. It is not safe
// for concurrent use; the host loop owns it.
type Kernel struct {
	endpoints     [maxEndpoints]endpointState
	endpointCount Endpoint

	tasks     [maxTasks]taskState
	taskCount TaskID

	rr TaskID

	tick         uint64
	tickWaitMask uint32

	halted bool
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{}
}

// NewEndpoint allocates a new endpoint and returns a capability for it.
// The zero Capability is returned once all endpoints are in use.
func (k *Kernel) NewEndpoint(rights Rights) Capability {
	if k.endpointCount >= maxEndpoints || rights == 0 {
		return Capability{}
	}
	ep := k.endpointCount
	k.endpointCount++
	return Capability{ep: ep, rights: rights}
}

// AddTask registers a runnable task and returns its ID.
func (k *Kernel) AddTask(t Task) (TaskID, bool) {
	if t == nil || k.taskCount >= maxTasks {
		return 0, false
	}
	id := k.taskCount
	k.taskCount++
	k.tasks[id] = taskState{task: t, runnable: true}
	return id, true
}

// Halted reports whether a task panic stopped the scheduler.
func (k *Kernel) Halted() bool { return k.halted }

// NowTick returns the number of Tick calls so far.
func (k *Kernel) NowTick() uint64 { return k.tick }

// Step runs at most one runnable task step, round-robin. It reports whether
// a task ran.
func (k *Kernel) Step() bool {
	if k.halted || k.taskCount == 0 {
		return false
	}

	for i := TaskID(0); i < k.taskCount; i++ {
		id := (k.rr + i) % k.taskCount
		st := &k.tasks[id]
		if st.task == nil || !st.runnable {
			continue
		}

		k.rr = (id + 1) % k.taskCount
		ctx := &Context{k: k, taskID: id}
		if !k.runStep(st.task, ctx) {
			k.halted = true
			st.runnable = false
			return true
		}
		k.park(id, ctx)
		return true
	}
	return false
}

// RunUntilIdle steps tasks until none is runnable or budget steps ran.
// It returns the number of steps taken.
func (k *Kernel) RunUntilIdle(budget int) int {
	n := 0
	for n < budget && k.Step() {
		n++
	}
	return n
}

// Tick advances the tick counter and wakes tasks blocked via
// Context.BlockOnTick.
func (k *Kernel) Tick() {
	k.tick++
	wait := k.tickWaitMask
	if wait == 0 {
		return
	}
	for tid := TaskID(0); tid < k.taskCount; tid++ {
		if wait&(1<<tid) != 0 {
			k.tasks[tid].runnable = true
		}
	}
	k.tickWaitMask = 0
}

func (k *Kernel) runStep(t Task, ctx *Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			triggerPanic(PanicInfo{TaskID: ctx.taskID, Value: r})
			ok = false
		}
	}()
	t.Step(ctx)
	return true
}

func (k *Kernel) park(id TaskID, ctx *Context) {
	if !ctx.blocked {
		return
	}
	st := &k.tasks[id]
	if ctx.blockOnTick {
		st.runnable = false
		k.tickWaitMask |= 1 << id
		return
	}

	ep := ctx.blockOn
	if ep >= k.endpointCount {
		st.runnable = false
		return
	}
	// A message may have arrived later in the same step.
	if !k.endpoints[ep].q.empty() {
		return
	}
	st.runnable = false
	k.endpoints[ep].waitMask |= 1 << id
}

func (k *Kernel) send(from, to Endpoint, kind uint16, payload []byte) SendResult {
	if to >= k.endpointCount {
		return SendErrNoEndpoint
	}
	if len(payload) > MaxMessageBytes {
		return SendErrPayloadTooLarge
	}

	var msg Message
	msg.From = from
	msg.To = to
	msg.Kind = kind
	msg.Len = uint16(len(payload))
	copy(msg.Data[:], payload)

	ep := &k.endpoints[to]
	if !ep.q.push(msg) {
		return SendErrQueueFull
	}

	wait := ep.waitMask
	if wait == 0 {
		return SendOK
	}
	for tid := TaskID(0); tid < k.taskCount; tid++ {
		if wait&(1<<tid) != 0 {
			k.tasks[tid].runnable = true
		}
	}
	ep.waitMask = 0
	return SendOK
}

func (k *Kernel) recv(from Endpoint) (Message, bool) {
	if from >= k.endpointCount {
		return Message{}, false
	}
	return k.endpoints[from].q.pop()
}
