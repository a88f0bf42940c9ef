package vars

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Keyframe is one point on a timeline. At is the normalized offset in
// [0, 1]; Easing names the curve shaping the segment that leaves this frame
// (empty means linear).
type Keyframe struct {
	At     float64 `yaml:"at"`
	Value  float64 `yaml:"value"`
	Easing string  `yaml:"easing,omitempty"`
}

// Timeline is a keyframed animation description, typically authored as a
// YAML document:
//
//	duration: 800ms
//	loop: 2
//	frames:
//	  - { at: 0, value: 0 }
//	  - { at: 0.6, value: 120, easing: out-cubic }
//	  - { at: 1, value: 100 }
//
// Loop is the number of extra repeats after the first play; -1 loops
// forever.
type Timeline struct {
	Duration time.Duration
	Loop     int
	Frames   []Keyframe

	easings []EasingFn
}

type timelineDoc struct {
	Duration string     `yaml:"duration"`
	Loop     int        `yaml:"loop,omitempty"`
	Frames   []Keyframe `yaml:"frames"`
}

// LoadTimeline decodes and validates a YAML timeline document.
func LoadTimeline(r io.Reader) (*Timeline, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc timelineDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode timeline: %w", err)
	}

	d, err := time.ParseDuration(doc.Duration)
	if err != nil {
		return nil, fmt.Errorf("invalid timeline duration %q: %w", doc.Duration, err)
	}
	if d <= 0 {
		return nil, fmt.Errorf("timeline duration must be positive, got %v", d)
	}
	tl := &Timeline{Duration: d, Loop: doc.Loop, Frames: doc.Frames}
	if err := tl.compile(); err != nil {
		return nil, err
	}
	return tl, nil
}

// LoadTimelineFile loads a timeline from a YAML file.
func LoadTimelineFile(path string) (*Timeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadTimeline(f)
}

// compile validates the frames and resolves easing names.
func (tl *Timeline) compile() error {
	if len(tl.Frames) < 2 {
		return fmt.Errorf("timeline needs at least 2 frames, got %d", len(tl.Frames))
	}
	if tl.Frames[0].At != 0 {
		return fmt.Errorf("first frame must be at 0, got %v", tl.Frames[0].At)
	}
	if last := tl.Frames[len(tl.Frames)-1].At; last != 1 {
		return fmt.Errorf("last frame must be at 1, got %v", last)
	}
	tl.easings = make([]EasingFn, len(tl.Frames))
	prev := 0.0
	for i, f := range tl.Frames {
		if f.At < 0 || f.At > 1 {
			return fmt.Errorf("frame %d offset %v outside [0, 1]", i, f.At)
		}
		if f.At < prev {
			return fmt.Errorf("frame %d offset %v before previous frame %v", i, f.At, prev)
		}
		prev = f.At
		fn, err := EasingByName(f.Easing)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		tl.easings[i] = fn
	}
	return nil
}

// At samples the timeline value at a normalized time in [0, 1].
func (tl *Timeline) At(t float64) float64 {
	if t <= tl.Frames[0].At {
		return tl.Frames[0].Value
	}
	last := len(tl.Frames) - 1
	if t >= tl.Frames[last].At {
		return tl.Frames[last].Value
	}
	// First frame strictly after t; the segment is [i-1, i].
	i := sort.Search(len(tl.Frames), func(i int) bool {
		return tl.Frames[i].At > t
	})
	a, b := tl.Frames[i-1], tl.Frames[i]
	span := b.At - a.At
	if span <= 0 {
		return b.Value
	}
	local := (t - a.At) / span
	step := tl.easings[i-1](EasingTime(local))
	return Lerp(a.Value, b.Value, step)
}

// Play runs the timeline on target through the animation scheduler.
func (tl *Timeline) Play(vs *Vars, target Var[float64]) (*AnimationHandle, error) {
	if target.ReadOnly() {
		return nil, ErrReadOnly
	}
	h := vs.anim.Animate(func(a *AnimationArgs) {
		if superseded(a, target) {
			a.Stop()
			return
		}
		t := a.Elapsed(tl.Duration)
		target.Set(vs, tl.At(float64(t)))
		if t.End() {
			if tl.Loop < 0 || a.RestartCount() < tl.Loop {
				a.Restart()
			} else {
				a.Stop()
			}
		}
	})
	return h, nil
}

// EasingByName resolves a curve name like "quad", "out-cubic" or
// "in-out-sine". The empty string resolves to linear.
func EasingByName(name string) (EasingFn, error) {
	if name == "" || name == "linear" {
		return Linear, nil
	}
	mod := "in"
	base := name
	switch {
	case strings.HasPrefix(name, "in-out-"):
		mod, base = "in-out", strings.TrimPrefix(name, "in-out-")
	case strings.HasPrefix(name, "out-"):
		mod, base = "out", strings.TrimPrefix(name, "out-")
	case strings.HasPrefix(name, "in-"):
		base = strings.TrimPrefix(name, "in-")
	}

	var fn EasingFn
	switch base {
	case "quad":
		fn = InQuad
	case "cubic":
		fn = InCubic
	case "quart":
		fn = InQuart
	case "sine":
		fn = InSine
	case "expo":
		fn = InExpo
	case "circ":
		fn = InCirc
	case "back":
		fn = InBack
	case "elastic":
		fn = InElastic
	case "bounce":
		// Bounce is natively an ease-out curve: bare "bounce" means
		// out-bounce, and the in-variant is its mirror.
		if mod == "out" || name == "bounce" {
			return OutBounce, nil
		}
		fn = Out(OutBounce)
	default:
		return nil, fmt.Errorf("unknown easing %q", name)
	}

	switch mod {
	case "out":
		return Out(fn), nil
	case "in-out":
		return InOut(fn), nil
	default:
		return fn, nil
	}
}
