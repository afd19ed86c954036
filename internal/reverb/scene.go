package reverb

import (
	"errors"
	"fmt"
)

// SpeakerType selects how the speaker radiates energy.
type SpeakerType int

const (
	// Directing radiates into the hemisphere around the speaker axis with
	// energy falling off as the cosine of the emission angle.
	Directing SpeakerType = iota
	// Diffuse radiates uniformly into the hemisphere around the axis.
	Diffuse
	// Omni radiates uniformly into the full sphere.
	Omni
)

func (t SpeakerType) String() string {
	switch t {
	case Directing:
		return "directing"
	case Diffuse:
		return "diffuse"
	case Omni:
		return "omni"
	}
	return fmt.Sprintf("SpeakerType(%d)", int(t))
}

// ParseSpeakerType maps a config string to a SpeakerType.
func ParseSpeakerType(s string) (SpeakerType, error) {
	switch s {
	case "directing", "":
		return Directing, nil
	case "diffuse":
		return Diffuse, nil
	case "omni":
		return Omni, nil
	}
	return 0, fmt.Errorf("unknown speaker type %q", s)
}

// up is the world up axis used to place the ears on a horizontal line
// through the listener's head.
var up = Vector3{0, 1, 0}

// Scene is a validated simulation setup: a rectangular room spanning
// [0,X]x[0,Y]x[0,Z] with energy-retaining walls, one speaker and one
// two-eared listener. Derived geometry is cached at construction and the
// Scene is treated as immutable afterwards.
type Scene struct {
	Room        Vector3
	Attenuation Real // fraction of energy kept per bounce, in (0,1)
	Speaker     Vector3
	SpeakerType SpeakerType
	Listener    Vector3
	HeadWidth   Real
	Facing      Vector3 // unit listener look direction

	// cached
	ToLeftEar   Vector3 // head center -> left ear (the ear's outward axis)
	ToRightEar  Vector3
	LeftEar     Vector3
	RightEar    Vector3
	SpeakerAxis Vector3 // unit speaker -> listener
}

// NewScene validates the configuration and precomputes ear positions and
// the speaker axis.
func NewScene(room Vector3, attenuation Real, speaker Vector3, speakerType SpeakerType,
	listener Vector3, headWidth Real, facing Vector3) (*Scene, error) {
	if room.X <= 0 || room.Y <= 0 || room.Z <= 0 {
		return nil, fmt.Errorf("room extents must be positive; got %+v", room)
	}
	if attenuation <= 0 || attenuation >= 1 {
		return nil, fmt.Errorf("attenuation must be in (0,1); got %g", attenuation)
	}
	if !insideRoom(speaker, room) {
		return nil, fmt.Errorf("speaker %+v must be strictly inside the room", speaker)
	}
	if !insideRoom(listener, room) {
		return nil, fmt.Errorf("listener %+v must be strictly inside the room", listener)
	}
	if speaker == listener {
		return nil, errors.New("speaker and listener must not coincide")
	}
	if headWidth <= 0 {
		return nil, fmt.Errorf("head width must be positive; got %g", headWidth)
	}
	if facing.Len() == 0 {
		return nil, errors.New("listener orientation must be non-zero")
	}
	facing = facing.Norm()
	toLeft := up.Cross(facing)
	if toLeft.Len() == 0 {
		return nil, errors.New("listener cannot face straight up or down")
	}
	toLeft = toLeft.Norm().Mul(headWidth * 0.5)
	toRight := toLeft.Mul(-1)

	s := &Scene{
		Room:        room,
		Attenuation: attenuation,
		Speaker:     speaker,
		SpeakerType: speakerType,
		Listener:    listener,
		HeadWidth:   headWidth,
		Facing:      facing,
		ToLeftEar:   toLeft,
		ToRightEar:  toRight,
		LeftEar:     listener.Add(toLeft),
		RightEar:    listener.Add(toRight),
		SpeakerAxis: listener.Sub(speaker).Norm(),
	}
	DebugLog("Scene: room=%+v attenuation=%.3f", room, attenuation)
	DebugLog("Speaker at %+v (%s), pointing towards %+v", speaker, speakerType, s.SpeakerAxis)
	DebugLog("Listener at %+v, left ear relative %+v, right ear relative %+v", listener, toLeft, toRight)
	return s, nil
}

func insideRoom(p, room Vector3) bool {
	return p.X > 0 && p.X < room.X &&
		p.Y > 0 && p.Y < room.Y &&
		p.Z > 0 && p.Z < room.Z
}
