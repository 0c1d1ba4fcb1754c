// Package viewer maps viewer commands onto a figure controller. It holds
// the interactive state that is not part of the figure itself, such as
// which dimension the keyboard currently edits.
package viewer

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/Faultbox/geosim/internal/controller"
	"github.com/Faultbox/geosim/internal/logger"
	"github.com/Faultbox/geosim/pkg/figure"
)

const (
	// ProgressStep is the manual progress increment.
	ProgressStep = 0.05
	// DimensionStep is the manual dimension increment.
	DimensionStep = 0.1
)

// CommandKind identifies a viewer command.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdSelectShape
	CmdAutoAssemble
	CmdStepBackward
	CmdStepForward
	CmdNextDimension
	CmdGrowDimension
	CmdShrinkDimension
	CmdScreenshot
	CmdResetView
	CmdQuit
)

// Command is one user request. Shape is used by CmdSelectShape.
type Command struct {
	Kind  CommandKind
	Shape figure.ShapeType
}

// Effect tells the main loop what to do beyond the figure update.
type Effect int

const (
	EffectNone Effect = iota
	EffectRefit
	EffectScreenshot
	EffectQuit
)

// Session applies commands to a controller.
type Session struct {
	ctrl  *controller.Controller
	param int
	log   *zap.Logger
}

// NewSession creates a session editing the first dimension.
func NewSession(ctrl *controller.Controller) *Session {
	return &Session{ctrl: ctrl, log: logger.Named("viewer")}
}

// Execute applies cmd. Rejected dimension edits return the controller's
// error and leave the figure unchanged.
func (s *Session) Execute(cmd Command) (Effect, error) {
	switch cmd.Kind {
	case CmdSelectShape:
		if err := s.ctrl.SetType(cmd.Shape); err != nil {
			return EffectNone, err
		}
		s.param = 0
		return EffectRefit, nil

	case CmdAutoAssemble:
		s.ctrl.StartAutoAssemble()

	case CmdStepBackward:
		s.ctrl.SetProgress(s.ctrl.Progress() - ProgressStep)

	case CmdStepForward:
		s.ctrl.SetProgress(s.ctrl.Progress() + ProgressStep)

	case CmdNextDimension:
		s.param = (s.param + 1) % len(s.ctrl.Type().Params())
		s.log.Debug("editing dimension", zap.String("key", s.Param()))

	case CmdGrowDimension:
		return s.adjust(DimensionStep)

	case CmdShrinkDimension:
		return s.adjust(-DimensionStep)

	case CmdScreenshot:
		return EffectScreenshot, nil

	case CmdResetView:
		return EffectRefit, nil

	case CmdQuit:
		return EffectQuit, nil
	}
	return EffectNone, nil
}

func (s *Session) adjust(delta float64) (Effect, error) {
	key := s.Param()
	value := scalar.Round(s.ctrl.Dimensions()[key]+delta, 2)
	if err := s.ctrl.SetDimension(key, value); err != nil {
		return EffectNone, fmt.Errorf("set %s to %g: %w", key, value, err)
	}
	return EffectNone, nil
}

// Param returns the dimension key edited by grow and shrink.
func (s *Session) Param() string {
	params := s.ctrl.Type().Params()
	return params[s.param%len(params)]
}

// Title summarizes the figure for the window title.
func (s *Session) Title() string {
	m := s.ctrl.Metrics()
	p, a, v := m.Display()

	dims := s.ctrl.Dimensions()
	parts := make([]string, 0, len(dims))
	for _, k := range s.ctrl.Type().Params() {
		entry := fmt.Sprintf("%s=%g", k, dims[k])
		if k == s.Param() {
			entry = "[" + entry + "]"
		}
		parts = append(parts, entry)
	}

	state := fmt.Sprintf("%3.0f%%", s.ctrl.Progress()*100)
	if s.ctrl.Animating() {
		state += " assembling"
	}
	return fmt.Sprintf("geosim | %s %s | %s | P=%s A=%s V=%s",
		s.ctrl.Type(), strings.Join(parts, " "), state, p, a, v)
}
