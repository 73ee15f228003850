// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package control provides interactive simulation controllers.
//
package control

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	hw "github.com/sideprojectslab/ezhdl"
	"golang.org/x/term"
)

// Key bindings.
//
const (
	KeyPause    = 'p'
	KeySpace    = ' '
	KeyQuit     = 'q'
	KeyDump     = 'd'
	KeyForceRun = 'r'
	KeyCtrlC    = 0x03
)

// Keys is an ezhdl.Controller driven by key presses read from a channel.
//
// Pending keys are handled each time the simulator polls the controller. A
// pause key blocks the simulation until the pause key is pressed again or the
// simulation is stopped.
//
type Keys struct {
	keys   <-chan byte
	log    logrus.FieldLogger
	paused bool
}

// NewKeys returns a controller reading keys from ch. A nil logger uses
// logrus.StandardLogger().
//
func NewKeys(ch <-chan byte, log logrus.FieldLogger) *Keys {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Keys{keys: ch, log: log}
}

// Paused returns true while the controller blocks the simulation.
func (k *Keys) Paused() bool { return k.paused }

// Poll implements ezhdl.Controller.
//
func (k *Keys) Poll(sim *hw.Simulator) error {
	for {
		select {
		case c, ok := <-k.keys:
			if !ok {
				return nil
			}
			k.handle(sim, c)
			for k.paused && !sim.Stopped() {
				c, ok := <-k.keys
				if !ok {
					k.paused = false
					break
				}
				k.handle(sim, c)
			}
		default:
			return nil
		}
	}
}

func (k *Keys) handle(sim *hw.Simulator, c byte) {
	switch c {
	case KeyPause, KeySpace:
		k.paused = !k.paused
		if k.paused {
			k.log.WithField("time", sim.Now()).Info("simulation paused, press p to resume or q to terminate")
		} else {
			k.log.WithField("time", sim.Now()).Info("simulation resumed")
		}
	case KeyQuit, KeyCtrlC:
		k.log.WithField("time", sim.Now()).Info("stopping simulation")
		k.paused = false
		sim.Stop()
	case KeyDump:
		sim.ForceDump()
	case KeyForceRun:
		sim.ForceRun()
	}
}

// Keyboard is a Keys controller reading the terminal in raw mode.
//
type Keyboard struct {
	*Keys
	fd    int
	state *term.State
}

// NewKeyboard puts the terminal attached to stdin in raw mode and starts
// reading keys from it. Close must be called to restore the terminal.
//
func NewKeyboard(log logrus.FieldLogger) (*Keyboard, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "raw mode")
	}
	ch := make(chan byte, 16)
	go readKeys(os.Stdin, ch)
	return &Keyboard{Keys: NewKeys(ch, log), fd: fd, state: state}, nil
}

func readKeys(r io.Reader, ch chan<- byte) {
	defer close(ch)
	var buf [1]byte
	for {
		n, err := r.Read(buf[:])
		if n == 1 {
			ch <- buf[0]
		}
		if err != nil {
			return
		}
	}
}

// Close restores the terminal state.
//
func (k *Keyboard) Close() error {
	return term.Restore(k.fd, k.state)
}
