package web

import (
	"github.com/vovakirdan/crossy-arcade/internal/games/crossy"
)

// Client message types.
const (
	MsgHello = "hello"
	MsgMove  = "move"
	MsgStep  = "step"
	MsgHit   = "hit"
	MsgReset = "reset"
	MsgPause = "pause"
)

// ClientMessage is anything the browser sends.
type ClientMessage struct {
	Type      string `json:"type" jsonschema:"enum=hello,enum=move,enum=step,enum=hit,enum=reset,enum=pause,description=Message kind"`
	Name      string `json:"name,omitempty" jsonschema:"maxLength=16,description=Player name for hello"`
	Direction string `json:"direction,omitempty" jsonschema:"enum=forward,enum=backward,enum=left,enum=right,description=Hop direction for move"`
	Paused    bool   `json:"paused,omitempty" jsonschema:"description=Pause flag for pause"`
}

// PositionView is a grid position on the wire.
type PositionView struct {
	Row  int `json:"row"`
	Tile int `json:"tile"`
}

// TreeView is one tree.
type TreeView struct {
	Tile   int `json:"tile"`
	Height int `json:"height"`
}

// SegmentView is a log or animal at its spawn position.
type SegmentView struct {
	Index   int    `json:"index"`
	Length  int    `json:"length"`
	Species string `json:"species,omitempty"`
}

// LaneView is one lane. Row is Index+1.
type LaneView struct {
	Index     int           `json:"index"`
	Kind      string        `json:"kind" jsonschema:"enum=grass,enum=forest,enum=log,enum=animal"`
	Trees     []TreeView    `json:"trees,omitempty"`
	Corn      []int         `json:"corn,omitempty"`
	Collected []int         `json:"collected,omitempty"`
	Rightward bool          `json:"rightward,omitempty"`
	Speed     float64       `json:"speed,omitempty" jsonschema:"description=Tiles per second"`
	Segments  []SegmentView `json:"segments,omitempty"`
}

// StateMessage is the session state pushed after every change.
// Lanes holds only lanes appended since the previous push unless Full is set.
type StateMessage struct {
	Type       string       `json:"type" jsonschema:"const=state"`
	Position   PositionView `json:"position"`
	Pending    []string     `json:"pending"`
	Score      int          `json:"score"`
	Corn       int          `json:"corn"`
	Best       int          `json:"best"`
	PlayCount  int          `json:"playCount"`
	Checkpoint PositionView `json:"checkpoint"`
	Status     string       `json:"status" jsonschema:"enum=running,enum=over"`
	Paused     bool         `json:"paused"`
	Respawning bool         `json:"respawning"`
	Shaking    bool         `json:"shaking"`
	Full       bool         `json:"full" jsonschema:"description=Lanes replaces the client's lane list"`
	LaneFrom   int          `json:"laneFrom"`
	Lanes      []LaneView   `json:"lanes"`
}

// EventMessage mirrors a session event.
type EventMessage struct {
	Type      string        `json:"type" jsonschema:"const=event"`
	Name      string        `json:"name" jsonschema:"enum=corn_collected,enum=lanes_added,enum=score_milestone,enum=respawned,enum=game_over,enum=reset"`
	At        *PositionView `json:"at,omitempty"`
	Score     int           `json:"score,omitempty"`
	Corn      int           `json:"corn,omitempty"`
	From      int           `json:"from,omitempty"`
	Count     int           `json:"count,omitempty"`
	PlayCount int           `json:"playCount,omitempty"`
}

func positionView(p crossy.Position) PositionView {
	return PositionView{Row: p.Row, Tile: p.Tile}
}

func laneView(index int, l crossy.Lane) LaneView {
	v := LaneView{Index: index, Kind: string(l.Kind())}
	switch lane := l.(type) {
	case *crossy.ForestLane:
		for _, t := range lane.Trees {
			v.Trees = append(v.Trees, TreeView{Tile: t.Tile, Height: t.Height})
		}
		v.Corn = append(v.Corn, lane.Corn...)
		for _, c := range lane.Collected {
			v.Collected = append(v.Collected, c.Tile)
		}
	case *crossy.LogLane:
		v.Rightward = lane.Rightward
		v.Speed = lane.Speed
		for _, s := range lane.Logs {
			v.Segments = append(v.Segments, SegmentView{Index: s.Index, Length: s.Length})
		}
	case *crossy.AnimalLane:
		v.Rightward = lane.Rightward
		v.Speed = lane.Speed
		for _, a := range lane.Animals {
			v.Segments = append(v.Segments, SegmentView{Index: a.Index, Length: a.Length, Species: a.Species})
		}
	}
	return v
}

func eventMessage(e crossy.Event) EventMessage {
	msg := EventMessage{Type: "event", Name: crossy.EventName(e)}
	switch ev := e.(type) {
	case crossy.CornCollectedEvent:
		at := positionView(ev.At)
		msg.At = &at
		msg.Corn = ev.Total
	case crossy.LanesAddedEvent:
		msg.From = ev.From
		msg.Count = ev.Count
	case crossy.ScoreMilestoneEvent:
		msg.Score = ev.Score
	case crossy.RespawnedEvent:
		at := positionView(ev.At)
		msg.At = &at
	case crossy.GameOverEvent:
		msg.Score = ev.Score
		msg.Corn = ev.Corn
	case crossy.ResetEvent:
		msg.PlayCount = ev.PlayCount
	}
	return msg
}
