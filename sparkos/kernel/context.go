package kernel

// Context provides task-local access to kernel operations for one step.
type Context struct {
	k      *Kernel
	taskID TaskID

	blocked     bool
	blockOnTick bool
	blockOn     Endpoint
}

// Recv reads one message from the capability endpoint. When the endpoint is
// empty it returns false and the task is parked until a message arrives;
// the caller should return from Step.
func (c *Context) Recv(epCap Capability) (Message, bool) {
	msg, ok := c.TryRecv(epCap)
	if ok {
		return msg, true
	}
	if epCap.valid() && epCap.canRecv() {
		c.blocked = true
		c.blockOnTick = false
		c.blockOn = epCap.ep
	}
	return Message{}, false
}

// TryRecv reads one message from the capability endpoint without parking.
func (c *Context) TryRecv(epCap Capability) (Message, bool) {
	if !epCap.valid() || !epCap.canRecv() {
		return Message{}, false
	}
	return c.k.recv(epCap.ep)
}

// BlockOnTick parks the task until the next Kernel.Tick call.
func (c *Context) BlockOnTick() {
	c.blocked = true
	c.blockOnTick = true
}

// NowTick returns the kernel tick counter.
func (c *Context) NowTick() uint64 { return c.k.tick }

// Send sends a message from one endpoint to another.
func (c *Context) Send(fromCap, toCap Capability, kind uint16, payload []byte) bool {
	return c.SendResult(fromCap, toCap, kind, payload) == SendOK
}

// SendResult is Send with the detailed outcome.
func (c *Context) SendResult(fromCap, toCap Capability, kind uint16, payload []byte) SendResult {
	if !fromCap.valid() {
		return SendErrInvalidFromCap
	}
	if !fromCap.canSend() {
		return SendErrFromNoSendRight
	}
	if !toCap.valid() {
		return SendErrInvalidToCap
	}
	if !toCap.canSend() {
		return SendErrToNoSendRight
	}
	return c.k.send(fromCap.ep, toCap.ep, kind, payload)
}

// SendTo sends a message to the capability endpoint.
//
// The message From field is set to 0 (unknown).
func (c *Context) SendTo(toCap Capability, kind uint16, payload []byte) bool {
	return c.SendToResult(toCap, kind, payload) == SendOK
}

// SendToResult is SendTo with the detailed outcome.
func (c *Context) SendToResult(toCap Capability, kind uint16, payload []byte) SendResult {
	if !toCap.valid() {
		return SendErrInvalidToCap
	}
	if !toCap.canSend() {
		return SendErrToNoSendRight
	}
	return c.k.send(0, toCap.ep, kind, payload)
}
