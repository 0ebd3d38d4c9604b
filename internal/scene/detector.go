package scene

// Detector smooths per-frame ImageScene observations into the current Scene.
//
// A scene is often unrecognized for a frame or two, so "no scene" is only
// reported once the whole lookback window agrees on it.
type Detector struct {
	buffer []ImageScene
	size   int
}

const DefaultLookback = 10

func NewDetector(lookback int) *Detector {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &Detector{size: lookback}
}

// Detect pushes the newest observation and returns the stabilized scene:
// the mapping of the most recent non-unknown observation in the window, or
// Unknown when the whole window is unknown.
func (d *Detector) Detect(observed ImageScene) Scene {
	if len(d.buffer) == d.size {
		copy(d.buffer, d.buffer[1:])
		d.buffer = d.buffer[:d.size-1]
	}
	d.buffer = append(d.buffer, observed)

	for i := len(d.buffer) - 1; i >= 0; i-- {
		if d.buffer[i] != ImageUnknown {
			return imageSceneToScene[d.buffer[i]]
		}
	}
	return Unknown
}

// ChangeDetector derives group-transition events from consecutive scenes.
type ChangeDetector struct {
	curr Scene
}

func NewChangeDetector() *ChangeDetector {
	return &ChangeDetector{curr: Unknown}
}

// Detect returns the transitions entered between the previous call's scene
// and curr. The canonical group mapping makes at most one fire per call.
func (d *ChangeDetector) Detect(curr Scene) []Change {
	prev := d.curr
	d.curr = curr

	var changes []Change
	if curr.Group() == GroupSelection && prev.Group() != GroupSelection {
		changes = append(changes, ChangeSelectionStart)
	}
	if curr.Group() == GroupSelectionComplete && prev.Group() != GroupSelectionComplete {
		changes = append(changes, ChangeSelectionComplete)
	}
	if curr.Group() == GroupCommand && prev.Group() != GroupCommand {
		changes = append(changes, ChangeCommandStart)
	}
	return changes
}

// SelectionStartDetector reports the first glimpse of the selection screen
// exactly once per visit. The raw label drives detection so the full team
// re-read starts as early as possible; the stabilized scene drives the reset
// so flicker inside the selection group cannot re-trigger it.
type SelectionStartDetector struct {
	inSelection bool
}

func NewSelectionStartDetector() *SelectionStartDetector {
	return &SelectionStartDetector{}
}

func (d *SelectionStartDetector) Detect(observed ImageScene) bool {
	if !d.inSelection && observed == ImageSelection {
		d.inSelection = true
		return true
	}
	return false
}

func (d *SelectionStartDetector) Update(stabilized Scene) {
	if stabilized.Group() != GroupSelection {
		d.inSelection = false
	}
}
