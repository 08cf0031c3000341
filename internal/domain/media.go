package domain

import (
	"math"
	"strconv"
)

type MediaKind string

const (
	MediaKindPhoto MediaKind = "PHOTO"
	MediaKindVideo MediaKind = "VIDEO"
)

func (k MediaKind) Valid() bool {
	return k == MediaKindPhoto || k == MediaKindVideo
}

// Transition names the blend effect applied when leaving a clip for the
// next one. The values are the engine's xfade transition names.
type Transition string

const (
	TransitionFade        Transition = "fade"
	TransitionFadeBlack   Transition = "fadeblack"
	TransitionFadeWhite   Transition = "fadewhite"
	TransitionDistance    Transition = "distance"
	TransitionWipeLeft    Transition = "wipeleft"
	TransitionWipeRight   Transition = "wiperight"
	TransitionWipeUp      Transition = "wipeup"
	TransitionWipeDown    Transition = "wipedown"
	TransitionSlideLeft   Transition = "slideleft"
	TransitionSlideRight  Transition = "slideright"
	TransitionSlideUp     Transition = "slideup"
	TransitionSlideDown   Transition = "slidedown"
	TransitionSmoothLeft  Transition = "smoothleft"
	TransitionSmoothRight Transition = "smoothright"
	TransitionSmoothUp    Transition = "smoothup"
	TransitionSmoothDown  Transition = "smoothdown"
)

var validTransitions = map[Transition]bool{
	TransitionFade:        true,
	TransitionFadeBlack:   true,
	TransitionFadeWhite:   true,
	TransitionDistance:    true,
	TransitionWipeLeft:    true,
	TransitionWipeRight:   true,
	TransitionWipeUp:      true,
	TransitionWipeDown:    true,
	TransitionSlideLeft:   true,
	TransitionSlideRight:  true,
	TransitionSlideUp:     true,
	TransitionSlideDown:   true,
	TransitionSmoothLeft:  true,
	TransitionSmoothRight: true,
	TransitionSmoothUp:    true,
	TransitionSmoothDown:  true,
}

func (t Transition) Valid() bool {
	return validTransitions[t]
}

// MediaItem is one entry on the timeline. Duration is seconds occupied in
// the final cut: user-assigned for photos, intrinsic for videos.
type MediaItem struct {
	ID         string
	Kind       MediaKind
	SourceURL  string
	Duration   float64
	Transition Transition
}

// Frames returns how many frames the item spans at the given frame rate.
func (m MediaItem) Frames(frameRate int) int {
	return int(math.Round(m.Duration * float64(frameRate)))
}

// FormatSeconds renders a duration or offset in seconds the way the filter
// graph and input options expect: no exponent, no trailing zeros.
func FormatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
