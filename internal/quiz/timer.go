package quiz

// Countdown 显式驱动的倒计时。剩余时间首次穿过低时阈值时触发一次警告回调，
// 归零时触发超时回调；两个回调各至多触发一次。
type Countdown struct {
	remaining int
	warnAt    int
	warned    bool
	expired   bool
	onWarn    func()
	onExpire  func()
}

// NewCountdown 创建倒计时；seconds <= 0 时返回 nil（不限时）
func NewCountdown(seconds, warnAt int, onWarn, onExpire func()) *Countdown {
	if seconds <= 0 {
		return nil
	}
	return &Countdown{
		remaining: seconds,
		warnAt:    warnAt,
		onWarn:    onWarn,
		onExpire:  onExpire,
	}
}

// Tick 推进 seconds 秒。回调在状态更新完成后触发。
func (c *Countdown) Tick(seconds int) {
	if c == nil || c.expired || seconds <= 0 {
		return
	}

	c.remaining -= seconds
	if c.remaining < 0 {
		c.remaining = 0
	}

	if !c.warned && c.remaining <= c.warnAt && c.remaining > 0 {
		c.warned = true
		if c.onWarn != nil {
			c.onWarn()
		}
	}

	if c.remaining == 0 {
		c.expired = true
		if c.onExpire != nil {
			c.onExpire()
		}
	}
}

// Remaining 剩余秒数；nil 倒计时（不限时）返回 0
func (c *Countdown) Remaining() int {
	if c == nil {
		return 0
	}
	return c.remaining
}

// Expired 是否已超时
func (c *Countdown) Expired() bool {
	return c != nil && c.expired
}
