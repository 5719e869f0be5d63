package model

import "fmt"

// Part identifies one selectable line in a MIDI file: a (track, channel)
// pair. Tracks are numbered in file order starting at 0.
type Part struct {
	Track   int
	Channel uint8
}

func (p Part) String() string {
	return fmt.Sprintf("%d,%d", p.Track, p.Channel)
}

type EventKind uint8

const (
	Press EventKind = iota
	Release
)

func (k EventKind) String() string {
	if k == Press {
		return "press"
	}
	return "release"
}

// NoteEvent is a single key action. Pitch is in semitones and carries any
// selection shift, so it may sit outside MIDI's 0..127 until the range
// check weeds it out after the merge.
type NoteEvent struct {
	Part     Part
	Pitch    int
	Kind     EventKind
	Tick     uint64
	Velocity uint8
}

// Owner records which part is holding a pressed key and since when.
type Owner struct {
	Part Part
	Tick uint64
}

type ConflictKind uint8

const (
	// AlreadyPressed: a press arrived for a key another part is still holding.
	AlreadyPressed ConflictKind = iota
	// NotPressed: a release arrived for a key nobody is holding.
	NotPressed
)

func (k ConflictKind) String() string {
	if k == AlreadyPressed {
		return "already_pressed"
	}
	return "not_pressed"
}

// Conflict is one physically impossible key action found during the
// merge. Owner is only meaningful for AlreadyPressed.
type Conflict struct {
	Kind  ConflictKind
	Pitch int
	Tick  uint64
	Part  Part
	Owner Owner
}

// RangeError flags an accepted event whose pitch the roll has no column
// for.
type RangeError struct {
	Pitch int
	Tick  uint64
	Part  Part
}

// Note is a press paired with its release on the merged timeline.
type Note struct {
	Pitch    int
	Tick     uint64
	Duration uint64
	Velocity uint8
}

func (n Note) EndTick() uint64 {
	return n.Tick + n.Duration
}
