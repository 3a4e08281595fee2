package core

import "errors"

var ErrInvalidPeriod = errors.New("invalid_period")

// Two-LED pattern timing
const (
	BootWaitMS   = 5000
	LED1PeriodMS = 500
	LED2PeriodMS = 300
)

// PeriodicToggle flips one pin on a fixed period. Each toggle is an
// independent timer, so several of them interleave on the scheduler.
type PeriodicToggle struct {
	Timer  Timer
	Pin    GPIOPin
	Period uint32 // Ticks

	state   bool
	Toggles uint32
}

// NewPeriodicToggle creates a toggle for pin with a period in ms
func NewPeriodicToggle(pin GPIOPin, periodMS uint32) *PeriodicToggle {
	return &PeriodicToggle{Pin: pin, Period: TimerFromMS(periodMS)}
}

// Start configures the pin as output and schedules the first flip at wake
func (t *PeriodicToggle) Start(wake uint32) error {
	if t.Period == 0 {
		return ErrInvalidPeriod
	}
	if err := MustGPIO().ConfigureOutput(t.Pin); err != nil {
		return err
	}
	t.Timer.Next = nil
	t.Timer.WakeTime = wake
	t.Timer.Handler = t.fire
	ScheduleTimer(&t.Timer)
	return nil
}

// State returns the level last driven
func (t *PeriodicToggle) State() bool {
	return t.state
}

func (t *PeriodicToggle) fire(tm *Timer) uint8 {
	next := !t.state
	if err := MustGPIO().SetPin(t.Pin, next); err != nil {
		return SF_DONE
	}
	t.state = next
	t.Toggles++

	tm.WakeTime += t.Period
	if !timerIsBefore(currentTime, tm.WakeTime) {
		// Overran a whole period; resync on the current time
		tm.WakeTime = currentTime + t.Period
	}
	return SF_RESCHEDULE
}

// StartTwoLEDPattern waits BootWaitMS from now, then flips led1 every
// LED1PeriodMS and led2 every LED2PeriodMS on separate timers
func StartTwoLEDPattern(led1, led2 GPIOPin) (*PeriodicToggle, *PeriodicToggle, error) {
	first := GetTime() + TimerFromMS(BootWaitMS)

	t1 := NewPeriodicToggle(led1, LED1PeriodMS)
	t2 := NewPeriodicToggle(led2, LED2PeriodMS)
	if err := t2.Start(first); err != nil {
		return nil, nil, err
	}
	if err := t1.Start(first); err != nil {
		return nil, nil, err
	}
	DebugPrintln("two-led pattern armed")
	return t1, t2, nil
}
