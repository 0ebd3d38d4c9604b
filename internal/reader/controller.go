package reader

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/eleven-am/battle-narrator/internal/hp"
	"github.com/eleven-am/battle-narrator/internal/notification"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/screen"
	"github.com/eleven-am/battle-narrator/internal/team"
	"github.com/eleven-am/battle-narrator/internal/tera"
	"github.com/eleven-am/battle-narrator/internal/vision"
)

// Controller runs the full per-frame pipeline and collects everything worth
// announcing, in announcement order.
type Controller struct {
	oracle        vision.Oracle
	sceneDetector *scene.Detector

	screenshots  *Screenshots
	teraDetector *tera.Detector
	sceneFlow    *SceneFlow
	ally         *AllyRouter
	opponentTeam *team.Tracker
	allyTeam     *team.Tracker
	selection    *team.SelectionTracker
	opponentHp   *hp.Tracker[float64]
	readOpponent hp.OpponentFunc
	allyHp       *hp.Tracker[hp.VisibleHp]
	allyReader   *hp.AllyReader
	moves        *MoveFlow
	cursors      *CursorFlow
	logFlow      *LogFlow
}

// ControllerConfig wires the per-frame pipeline. TeraDetector and LogFlow
// are optional features and may be nil.
type ControllerConfig struct {
	Oracle       vision.Oracle
	Screenshots  *Screenshots
	TeraDetector *tera.Detector
	SceneFlow    *SceneFlow
	Ally         *AllyRouter
	OpponentTeam *team.Tracker
	AllyTeam     *team.Tracker
	Selection    *team.SelectionTracker
	OpponentHp   *hp.Tracker[float64]
	ReadOpponent hp.OpponentFunc
	AllyHp       *hp.Tracker[hp.VisibleHp]
	AllyReader   *hp.AllyReader
	Moves        *MoveFlow
	Cursors      *CursorFlow
	LogFlow      *LogFlow
}

func NewController(cfg ControllerConfig) *Controller {
	return &Controller{
		oracle:        cfg.Oracle,
		sceneDetector: scene.NewDetector(scene.DefaultLookback),
		screenshots:   cfg.Screenshots,
		teraDetector:  cfg.TeraDetector,
		sceneFlow:     cfg.SceneFlow,
		ally:          cfg.Ally,
		opponentTeam:  cfg.OpponentTeam,
		allyTeam:      cfg.AllyTeam,
		selection:     cfg.Selection,
		opponentHp:    cfg.OpponentHp,
		readOpponent:  cfg.ReadOpponent,
		allyHp:        cfg.AllyHp,
		allyReader:    cfg.AllyReader,
		moves:         cfg.Moves,
		cursors:       cfg.Cursors,
		logFlow:       cfg.LogFlow,
	}
}

// Handle processes one frame. Notifications come back in a fixed order so
// identical inputs always produce identical speech.
func (c *Controller) Handle(ctx context.Context, frame *screen.Frame) ([]notification.Notification, error) {
	var out []notification.Notification

	if n := c.screenshots.Handle(frame); n != nil {
		out = append(out, n)
	}

	// Tera detection outranks everything else. While it is sampling, the
	// rest of the pipeline is skipped to keep its latency down.
	if c.teraDetector != nil {
		if summary := c.teraDetector.Detect(frame); summary != nil {
			out = append(out, teraNotification(summary))
		}
		if c.teraDetector.Detecting() {
			return out, nil
		}
	}

	observed := c.oracle.ClassifyScene(frame)
	stabilized := c.sceneDetector.Detect(observed)
	out = append(out, c.sceneFlow.Handle(stabilized, observed)...)
	c.ally.Handle(stabilized)

	if a := c.opponentTeam.Handle(observed, frame); a != nil {
		out = append(out, teamNotification(a))
	}
	if a := c.allyTeam.Handle(observed, frame); a != nil {
		out = append(out, teamNotification(a))
	}
	if items, ok := c.selection.Handle(observed, frame); ok {
		out = append(out, notification.Selection{Items: items})
	}

	// The remaining readers are independent, so they run concurrently; the
	// announcement order stays fixed regardless of which finishes first.
	var moves, cursors, opponentHp, allyHp, log notification.Notification
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		moves, err = c.moves.Handle(gctx, observed, frame)
		return err
	})
	g.Go(func() error {
		var err error
		cursors, err = c.cursors.Handle(gctx, observed, frame)
		return err
	})
	g.Go(func() error {
		var reading hp.Reading[float64]
		if c.readOpponent != nil {
			reading = c.readOpponent(frame)
		}
		if value, ok := c.opponentHp.Handle(reading); ok {
			opponentHp = notification.OpponentHp{Ratio: value}
		}
		return nil
	})
	g.Go(func() error {
		reading, err := c.allyReader.Read(gctx, frame)
		if err != nil {
			return err
		}
		if value, ok := c.allyHp.Handle(reading); ok {
			allyHp = notification.AllyHp{Value: value}
		}
		return nil
	})
	g.Go(func() error {
		if c.logFlow == nil {
			return nil
		}
		var err error
		log, err = c.logFlow.Handle(gctx, observed, frame)
		return err
	})
	if err := g.Wait(); err != nil {
		return out, err
	}

	for _, n := range []notification.Notification{moves, cursors, opponentHp, allyHp, log} {
		if n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

func teamNotification(a *team.Announcement) notification.Notification {
	return notification.Team{Direction: a.Direction, Team: a.Team, WithTypes: a.WithTypes}
}

func teraNotification(s *tera.Summary) notification.Notification {
	possible := make([]tera.Type, len(s.Possible))
	for i, d := range s.Possible {
		possible[i] = d.Type
	}
	return notification.TeraType{Primary: s.Primary.Type, Possible: possible}
}
