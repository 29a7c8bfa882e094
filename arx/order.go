package arx

import (
	"fmt"
	"math"
	"strings"
)

// Order is the lag structure of an ARX model.
type Order struct {
	NA int // Output lags (a1..a_na)
	NB int // Input lags (b1..b_nb)
	NK int // Dead time in samples
}

// Validate checks na >= 1, nb >= 1, nk >= 0 and that nb+nk fits in an int.
func (o Order) Validate() error {
	if o.NA < 1 || o.NB < 1 || o.NK < 0 || o.NK > math.MaxInt-o.NB {
		return fmt.Errorf("%w: na=%d nb=%d nk=%d", ErrInvalidOrder, o.NA, o.NB, o.NK)
	}
	return nil
}

// MaxLag returns the first sample index with a complete history,
// max(na, nb+nk).
func (o Order) MaxLag() int {
	return max(o.NA, o.NB+o.NK)
}

// NumParams returns the number of lag coefficients, na+nb.
func (o Order) NumParams() int {
	return o.NA + o.NB
}

func (o Order) String() string {
	return fmt.Sprintf("ARX(%d,%d,%d)", o.NA, o.NB, o.NK)
}

// Mode selects how past outputs are obtained during prediction.
type Mode int

const (
	// ModeStep predicts one step ahead from measured past outputs.
	ModeStep Mode = iota
	// ModeSimulate runs the model freely on its own past predictions.
	ModeSimulate
)

// ParseMode converts a mode name. "meas" is accepted for step and "model"
// and "mean" for simulate.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "step", "meas":
		return ModeStep, nil
	case "simulate", "sim", "model", "mean":
		return ModeSimulate, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

func (m Mode) String() string {
	switch m {
	case ModeStep:
		return "step"
	case ModeSimulate:
		return "simulate"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Shift selects how operating-point offsets of u and y are handled.
type Shift int

const (
	// ShiftNone regresses on the raw signals.
	ShiftNone Shift = iota
	// ShiftInit subtracts the first sample of u and y.
	ShiftInit
	// ShiftMean subtracts the means of u and y.
	ShiftMean
	// ShiftCalc estimates a constant bias term alongside the coefficients.
	ShiftCalc
)

// ParseShift converts a shift name: none, init, mean or calc.
func ParseShift(s string) (Shift, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return ShiftNone, nil
	case "init":
		return ShiftInit, nil
	case "mean":
		return ShiftMean, nil
	case "calc":
		return ShiftCalc, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidShift, s)
}

func (s Shift) String() string {
	switch s {
	case ShiftNone:
		return "none"
	case ShiftInit:
		return "init"
	case ShiftMean:
		return "mean"
	case ShiftCalc:
		return "calc"
	}
	return fmt.Sprintf("Shift(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Shift) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shift) UnmarshalText(text []byte) error {
	v, err := ParseShift(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
